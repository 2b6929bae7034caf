package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an expiring in-process store backed by go-cache
type MemoryStore struct {
	items  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryStore creates a store whose entries live for ttl
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemoryStore{items: gocache.New(ttl, ttl)}
}

func (s *MemoryStore) Lookup(url string) (string, bool) {
	v, found := s.items.Get(ContentKey(url))
	text, ok := v.(string)
	if !found || !ok || text == "" {
		s.misses.Add(1)
		return "", false
	}
	s.hits.Add(1)
	return text, true
}

func (s *MemoryStore) Save(url, text string) error {
	if text == "" {
		return nil
	}
	s.items.SetDefault(ContentKey(url), text)
	return nil
}

func (s *MemoryStore) Purge() error {
	s.items.Flush()
	return nil
}

// Stats returns lookup hit and miss counts since creation
func (s *MemoryStore) Stats() (hits, misses int64) {
	return s.hits.Load(), s.misses.Load()
}

// Len reports the number of unexpired entries
func (s *MemoryStore) Len() int {
	return s.items.ItemCount()
}
