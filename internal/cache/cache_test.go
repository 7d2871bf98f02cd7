package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("https://abc.supabase.co/rest/v1/materials?select=*")
	b := CacheKey("https://abc.supabase.co/rest/v1/etchants?select=*")

	if a == b {
		t.Error("Expected different keys for different URLs")
	}
	if a != CacheKey("https://abc.supabase.co/rest/v1/materials?select=*") {
		t.Error("Expected stable key for the same URL")
	}
	if !strings.HasPrefix(a, "etchant-v1-") {
		t.Errorf("Expected versioned prefix, got %s", a)
	}
	if strings.ContainsAny(a, `/\:?*`) {
		t.Errorf("Key is not file-safe: %s", a)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}
	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, ok := c.Get("k"); !ok || string(got) != "v" {
		t.Errorf("Expected v, got %q (found=%v)", got, ok)
	}

	_ = c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_RoundTripAndExpiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("fresh", []byte(`[{"id":"m1"}]`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := c.Get("fresh")
	if !ok || string(got) != `[{"id":"m1"}]` {
		t.Errorf("Expected cached payload, got %q (found=%v)", got, ok)
	}

	// Write as if two hours ago; the default TTL is one hour.
	c.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	if err := c.Set("stale", []byte("x"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	c.now = time.Now
	if _, ok := c.Get("stale"); ok {
		t.Error("Expected expired entry to miss")
	}
	if _, err := os.Stat(filepath.Join(dir, "stale.cache")); !os.IsNotExist(err) {
		t.Error("Expected expired entry file to be removed")
	}
}

func TestDiskCache_DeleteMissing(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	if err := c.Delete("nothing-here"); err != nil {
		t.Errorf("Expected no error deleting a missing key, got %v", err)
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()

	writer := NewLayeredCache(time.Minute, dir, time.Hour)
	if err := writer.Set("k", []byte("payload"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh process has an empty memory layer but shares the disk layer.
	reader := NewLayeredCache(time.Minute, dir, time.Hour)
	got, ok := reader.Get("k")
	if !ok || string(got) != "payload" {
		t.Fatalf("Expected disk hit, got %q (found=%v)", got, ok)
	}
	if got, ok := reader.memory.Get("k"); !ok || string(got) != "payload" {
		t.Error("Expected disk hit to be promoted to memory")
	}

	if err := reader.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := reader.Get("k"); ok {
		t.Error("Expected miss after clear")
	}
}

func TestNew(t *testing.T) {
	if New(false, t.TempDir(), time.Minute, time.Hour) != nil {
		t.Error("Expected nil cache when disabled")
	}
	if _, ok := New(true, "", time.Minute, time.Hour).(*MemoryCache); !ok {
		t.Error("Expected memory cache without a directory")
	}
	if _, ok := New(true, t.TempDir(), time.Minute, time.Hour).(*LayeredCache); !ok {
		t.Error("Expected layered cache with a directory")
	}
}

func TestDiskCache_ClearKeepsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)

	foreign := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(foreign, []byte("keep"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Expected cache entries removed")
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Errorf("Expected foreign file kept, got %v", err)
	}
}

func TestLayeredCache_PromotionKeepsDiskExpiry(t *testing.T) {
	dir := t.TempDir()
	disk := NewDiskCache(dir, time.Hour)
	disk.now = func() time.Time { return time.Now().Add(-59 * time.Minute) }
	if err := disk.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	c := NewLayeredCache(10*time.Minute, dir, time.Hour)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("Expected disk hit")
	}

	_, exp, ok := c.memory.cache.GetWithExpiration("k")
	if !ok {
		t.Fatal("Expected promoted entry")
	}
	if remaining := time.Until(exp); remaining > 2*time.Minute {
		t.Errorf("Expected promoted TTL capped by disk expiry, got %v", remaining)
	}
}
