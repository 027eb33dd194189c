package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()

	c, err := New(filepath.Join(tmpDir, "cache"), 24, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if !c.enabled {
		t.Error("cache should be enabled")
	}

	c, err = New("", 0, false)
	if err != nil {
		t.Fatalf("New() error for disabled cache: %v", err)
	}
	if c.enabled {
		t.Error("cache should be disabled")
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "nested", "cache", "dir")

	if _, err := New(cacheDir, 24, true); err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := os.Stat(cacheDir); os.IsNotExist(err) {
		t.Error("New() should create cache directory")
	}
}

func TestDefaultDir(t *testing.T) {
	dir := DefaultDir()
	if dir == "" {
		t.Fatal("DefaultDir() returned empty path")
	}
	if !strings.Contains(filepath.Base(dir), "strata") {
		t.Errorf("DefaultDir() = %q, want a strata-specific directory", dir)
	}
}

func TestSetAndGet(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache"), 24, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	key := "measure:.py:abc"
	data := []byte(`{"cyclomatic":5}`)

	if err := c.Set(key, data); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get() returned false for existing key")
	}
	if string(got) != string(data) {
		t.Errorf("Get() = %q, want %q", string(got), string(data))
	}

	if _, ok := c.Get("missing-key"); ok {
		t.Error("Get() should return false for missing key")
	}
}

func TestSetAndGetWithHash(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache"), 24, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	key := "test-key"
	hash := "abc123"
	data := []byte("test data with hash")

	if err := c.SetWithHash(key, hash, data); err != nil {
		t.Fatalf("SetWithHash() error: %v", err)
	}

	got, ok := c.GetWithHash(key, hash)
	if !ok {
		t.Fatal("GetWithHash() returned false for matching hash")
	}
	if string(got) != string(data) {
		t.Errorf("GetWithHash() = %q, want %q", string(got), string(data))
	}

	if _, ok := c.GetWithHash(key, "different-hash"); ok {
		t.Error("GetWithHash() should return false for non-matching hash")
	}
}

func TestInvalidate(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache"), 24, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	key := "test-key"
	if err := c.Set(key, []byte("data")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok := c.Get(key); !ok {
		t.Fatal("key should exist before invalidation")
	}

	if err := c.Invalidate(key); err != nil {
		t.Fatalf("Invalidate() error: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("key should not exist after invalidation")
	}
}

func TestClear(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "cache")
	c, err := New(cacheDir, 24, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := c.Set(string(rune('a'+i)), []byte("data")); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, err := os.Stat(cacheDir); !os.IsNotExist(err) {
		t.Error("Clear() should remove cache directory")
	}
}

func TestDisabledCache(t *testing.T) {
	c, err := New("", 0, false)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := c.Set("key", []byte("data")); err != nil {
		t.Errorf("Set() on disabled cache should not error: %v", err)
	}
	if _, ok := c.Get("key"); ok {
		t.Error("Get() on disabled cache should return false")
	}
	if err := c.SetWithHash("key", "hash", []byte("data")); err != nil {
		t.Errorf("SetWithHash() on disabled cache should not error: %v", err)
	}
	if _, ok := c.GetWithHash("key", "hash"); ok {
		t.Error("GetWithHash() on disabled cache should return false")
	}
	if err := c.Invalidate("key"); err != nil {
		t.Errorf("Invalidate() on disabled cache should not error: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Errorf("Clear() on disabled cache should not error: %v", err)
	}
}

func TestHashBytes(t *testing.T) {
	hash1 := HashBytes([]byte("hello world"))
	hash2 := HashBytes([]byte("hello world"))
	hash3 := HashBytes([]byte("different"))

	if hash1 == "" {
		t.Error("HashBytes() returned empty hash")
	}
	if hash1 != hash2 {
		t.Error("HashBytes() should return consistent hashes for same content")
	}
	if hash1 == hash3 {
		t.Error("HashBytes() should return different hashes for different content")
	}
}

func TestGetStats(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache"), 24, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error: %v", err)
	}
	if stats.Entries != 0 {
		t.Errorf("empty cache should have 0 entries, got %d", stats.Entries)
	}

	for i := 0; i < 3; i++ {
		if err := c.Set(string(rune('a'+i)), []byte("data")); err != nil {
			t.Fatalf("Set() error: %v", err)
		}
	}

	stats, err = c.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error: %v", err)
	}
	if stats.Entries != 3 {
		t.Errorf("cache should have 3 entries, got %d", stats.Entries)
	}
	if stats.TotalSize <= 0 {
		t.Error("TotalSize should be positive")
	}
}

func TestGetStatsDisabled(t *testing.T) {
	c, _ := New("", 0, false)

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error: %v", err)
	}
	if stats.Entries != 0 {
		t.Errorf("disabled cache stats should have 0 entries, got %d", stats.Entries)
	}
}

func TestTTLExpiration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping TTL test in short mode")
	}

	c := &Cache{
		dir:     filepath.Join(t.TempDir(), "cache"),
		ttl:     1 * time.Second,
		enabled: true,
	}
	os.MkdirAll(c.dir, 0755)

	key := "test-key"
	if err := c.Set(key, []byte("test data")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	if _, ok := c.Get(key); !ok {
		t.Error("Get() should return data before TTL expires")
	}

	time.Sleep(2 * time.Second)

	if _, ok := c.Get(key); ok {
		t.Error("Get() should return false after TTL expires")
	}
}

func TestKeyPath(t *testing.T) {
	c, _ := New(filepath.Join(t.TempDir(), "cache"), 24, true)

	path1 := c.keyPath("key1")
	path2 := c.keyPath("key2")
	path3 := c.keyPath("key1")

	if path1 == path2 {
		t.Error("different keys should produce different paths")
	}
	if path1 != path3 {
		t.Error("same key should produce the same path")
	}
	if filepath.Ext(path1) != ".json" {
		t.Errorf("key path should end with .json, got %s", path1)
	}
	if filepath.Dir(path1) != c.dir {
		t.Error("key path should be inside the cache directory")
	}
}

func TestSpecialCharactersInKey(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache"), 24, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	keys := []string{
		"measure:.py:0a1b2c",
		"/path/to/file.py",
		"file with spaces",
		"unicode/文件/test",
	}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			data := []byte("data for " + key)

			if err := c.Set(key, data); err != nil {
				t.Errorf("Set(%q) error: %v", key, err)
				return
			}

			got, ok := c.Get(key)
			if !ok {
				t.Errorf("Get(%q) returned false", key)
				return
			}
			if string(got) != string(data) {
				t.Errorf("Get(%q) = %q, want %q", key, string(got), string(data))
			}
		})
	}
}
