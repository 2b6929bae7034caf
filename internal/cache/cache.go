package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Store keeps enriched article text keyed by article URL.
// Only non-empty text is worth storing; an empty Save is a no-op.
type Store interface {
	Lookup(url string) (string, bool)
	Save(url, text string) error
	Purge() error
}

// Counter is implemented by stores that count lookups
type Counter interface {
	Stats() (hits, misses int64)
}

// ContentKey derives the storage key for the enriched text of a URL
func ContentKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "trendscope:content:v1:" + hex.EncodeToString(sum[:])
}

// digest is the bare hash part of ContentKey, used for file names
func digest(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
