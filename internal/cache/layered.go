package cache

import (
	"errors"
	"time"
)

// LayeredCache reads memory first and falls back to disk. A disk hit is
// promoted to memory for no longer than the disk entry has left to live.
type LayeredCache struct {
	memory    *MemoryCache
	disk      *DiskCache
	memoryTTL time.Duration
}

// NewLayeredCache creates a memory-over-disk cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory:    NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:      NewDiskCache(diskDir, diskTTL),
		memoryTTL: memoryTTL,
	}
}

// Get implements Cache
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, ok := c.memory.Get(key); ok {
		return val, true
	}

	entry, ok := c.disk.entry(key)
	if !ok {
		return nil, false
	}

	ttl := time.Until(entry.ExpiresAt)
	if c.memoryTTL > 0 && c.memoryTTL < ttl {
		ttl = c.memoryTTL
	}
	_ = c.memory.Set(key, entry.Data, ttl)
	return entry.Data, true
}

// Set implements Cache. The memory layer keeps its own, shorter TTL.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	memTTL := ttl
	if memTTL <= 0 || (c.memoryTTL > 0 && c.memoryTTL < memTTL) {
		memTTL = 0
	}
	_ = c.memory.Set(key, value, memTTL)
	return c.disk.Set(key, value, ttl)
}

// Delete implements Cache
func (c *LayeredCache) Delete(key string) error {
	return errors.Join(c.memory.Delete(key), c.disk.Delete(key))
}

// Clear implements Cache
func (c *LayeredCache) Clear() error {
	return errors.Join(c.memory.Clear(), c.disk.Clear())
}
