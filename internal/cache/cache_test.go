package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/trendscope/internal/model"
)

func TestContentKey(t *testing.T) {
	a := ContentKey("https://example.com/a")
	b := ContentKey("https://example.com/b")

	if a == b {
		t.Error("expected different keys for different URLs")
	}
	if !strings.HasPrefix(a, "trendscope:content:v1:") {
		t.Errorf("unexpected key prefix: %s", a)
	}
	if a != ContentKey("https://example.com/a") {
		t.Error("expected stable keys")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(time.Minute)

	if _, found := s.Lookup("https://example.com/a"); found {
		t.Error("expected miss for unknown URL")
	}

	_ = s.Save("https://example.com/a", "body")
	text, found := s.Lookup("https://example.com/a")
	if !found || text != "body" {
		t.Errorf("expected hit with body, got %q %v", text, found)
	}

	if hits, misses := s.Stats(); hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d and %d", hits, misses)
	}

	_ = s.Save("https://example.com/empty", "")
	if s.Len() != 1 {
		t.Errorf("expected empty text not to be stored, got %d entries", s.Len())
	}

	_ = s.Purge()
	if _, found := s.Lookup("https://example.com/a"); found {
		t.Error("expected miss after purge")
	}
}

func TestDiskStore_Expiry(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStore(dir, time.Hour)

	if err := s.Save("https://example.com/a", "body"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	text, found := s.Lookup("https://example.com/a")
	if !found || text != "body" {
		t.Errorf("expected hit, got %q %v", text, found)
	}

	d := digest("https://example.com/a")
	if _, err := os.Stat(filepath.Join(dir, d[:2], d+".json")); err != nil {
		t.Errorf("expected sharded record file, got %v", err)
	}

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, found := s.Lookup("https://example.com/a"); found {
		t.Error("expected expired record to miss")
	}
}

func TestDiskStore_RejectsForeignRecord(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStore(dir, time.Hour)

	_ = s.Save("https://example.com/a", "body")

	// Copy a's record into b's slot
	da, db := digest("https://example.com/a"), digest("https://example.com/b")
	data, err := os.ReadFile(filepath.Join(dir, da[:2], da+".json"))
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	_ = os.MkdirAll(filepath.Join(dir, db[:2]), 0o755)
	_ = os.WriteFile(filepath.Join(dir, db[:2], db+".json"), data, 0o644)

	if _, found := s.Lookup("https://example.com/b"); found {
		t.Error("expected record for another URL to miss")
	}
}

func TestTieredStore_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()

	disk := NewDiskStore(dir, time.Hour)
	_ = disk.Save("https://example.com/a", "from-disk")

	memory := NewMemoryStore(time.Minute)
	tiered := NewTieredStore(memory, disk)

	text, found := tiered.Lookup("https://example.com/a")
	if !found || text != "from-disk" {
		t.Fatalf("expected disk hit, got %q %v", text, found)
	}
	if text, found := memory.Lookup("https://example.com/a"); !found || text != "from-disk" {
		t.Error("expected entry promoted to memory")
	}

	tiered.Lookup("https://example.com/missing")
	hits, misses := tiered.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d and %d", hits, misses)
	}

	if err := tiered.Purge(); err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if _, found := tiered.Lookup("https://example.com/a"); found {
		t.Error("expected miss after Purge")
	}
}

func TestFromConfig(t *testing.T) {
	if s := FromConfig(model.CacheConfig{Enabled: false}); s != nil {
		t.Error("expected nil store when disabled")
	}
	if _, ok := FromConfig(model.CacheConfig{Enabled: true, MemoryTTL: time.Minute}).(*MemoryStore); !ok {
		t.Error("expected memory store without a directory")
	}
	if _, ok := FromConfig(model.CacheConfig{Enabled: true, Dir: t.TempDir(), MemoryTTL: time.Minute, DiskTTL: time.Hour}).(*TieredStore); !ok {
		t.Error("expected tiered store with a directory")
	}
}
