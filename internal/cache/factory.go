package cache

import "github.com/ppiankov/trendscope/internal/model"

// FromConfig builds the content store described by cfg, or nil when caching is disabled
func FromConfig(cfg model.CacheConfig) Store {
	if !cfg.Enabled {
		return nil
	}
	memory := NewMemoryStore(cfg.MemoryTTL)
	if cfg.Dir == "" {
		return memory
	}
	return NewTieredStore(memory, NewDiskStore(cfg.Dir, cfg.DiskTTL))
}
