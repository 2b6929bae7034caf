package cache

import "sync/atomic"

// TieredStore serves hot entries from memory and falls back to disk across restarts
type TieredStore struct {
	memory *MemoryStore
	disk   *DiskStore
	hits   atomic.Int64
	misses atomic.Int64
}

// NewTieredStore layers memory in front of disk
func NewTieredStore(memory *MemoryStore, disk *DiskStore) *TieredStore {
	return &TieredStore{memory: memory, disk: disk}
}

func (s *TieredStore) Lookup(url string) (string, bool) {
	if text, ok := s.memory.Lookup(url); ok {
		s.hits.Add(1)
		return text, true
	}
	if text, ok := s.disk.Lookup(url); ok {
		_ = s.memory.Save(url, text)
		s.hits.Add(1)
		return text, true
	}
	s.misses.Add(1)
	return "", false
}

func (s *TieredStore) Save(url, text string) error {
	_ = s.memory.Save(url, text)
	return s.disk.Save(url, text)
}

func (s *TieredStore) Purge() error {
	_ = s.memory.Purge()
	return s.disk.Purge()
}

// Stats returns lookup hit and miss counts since creation
func (s *TieredStore) Stats() (hits, misses int64) {
	return s.hits.Load(), s.misses.Load()
}
