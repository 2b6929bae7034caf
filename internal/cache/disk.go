package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskStore persists enriched text as one JSON record per URL under dir/<2-char shard>/
type DiskStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewDiskStore creates a disk store whose records expire after ttl
func NewDiskStore(dir string, ttl time.Duration) *DiskStore {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &DiskStore{dir: dir, ttl: ttl, now: time.Now}
}

type contentRecord struct {
	URL       string    `json:"url"`
	Text      string    `json:"text"`
	SavedAt   time.Time `json:"saved_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *DiskStore) Lookup(url string) (string, bool) {
	path := s.path(url)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	var rec contentRecord
	if err := json.Unmarshal(data, &rec); err != nil || rec.URL != url {
		return "", false
	}
	if s.now().After(rec.ExpiresAt) {
		_ = os.Remove(path)
		return "", false
	}

	return rec.Text, rec.Text != ""
}

func (s *DiskStore) Save(url, text string) error {
	if text == "" {
		return nil
	}

	now := s.now()
	data, err := json.Marshal(contentRecord{
		URL:       url,
		Text:      text,
		SavedAt:   now,
		ExpiresAt: now.Add(s.ttl),
	})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	path := s.path(url)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	// Write to a temp file and rename so concurrent readers never see a partial record
	tmp, err := os.CreateTemp(filepath.Dir(path), ".record-*")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close record: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("commit record: %w", err)
	}

	return nil
}

// Purge removes every record under the store directory
func (s *DiskStore) Purge() error {
	return os.RemoveAll(s.dir)
}

func (s *DiskStore) path(url string) string {
	d := digest(url)
	return filepath.Join(s.dir, d[:2], d+".json")
}
