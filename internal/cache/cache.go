// Package cache stores raw catalog responses between runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-oriented key/value cache with per-entry TTL
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey derives a file-safe key from a request URL. The version segment
// changes whenever the cached record layout does.
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "etchant-v1-" + hex.EncodeToString(hash[:])
}

// New builds the cache described by the configuration: memory and disk
// layers when a directory is set, memory only otherwise.
func New(enabled bool, dir string, memoryTTL, diskTTL time.Duration) Cache {
	if !enabled {
		return nil
	}
	if dir == "" {
		return NewMemoryCache(memoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(memoryTTL, dir, diskTTL)
}
