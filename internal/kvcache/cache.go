// ABOUTME: Cache combines the cloud store with a local fallback.
// ABOUTME: Local writes are unconditional; cloud writes are best-effort.
package kvcache

import (
	"github.com/charmbracelet/log"
)

// Cache is the client's key-value cache adapter. Reads prefer the cloud
// store and fall back to local on a miss or error; writes land locally first
// so state survives with no connectivity, then go to the cloud best-effort.
type Cache struct {
	cloud Store // may be nil when the host provides no cloud storage
	local Store
	log   *log.Logger
}

// New creates a cache over a cloud store and a local fallback.
// cloud may be nil; the cache then runs local-only.
func New(cloud, local Store) *Cache {
	return &Cache{
		cloud: cloud,
		local: local,
		log:   log.WithPrefix("kvcache"),
	}
}

// Get reads key, preferring the cloud store.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	if c.cloud != nil {
		if v, ok, err := c.cloud.Get(key); err == nil && ok {
			return v, true, nil
		}
	}
	return c.local.Get(key)
}

// Set writes key locally, then to the cloud store best-effort. A cloud
// failure is logged, never surfaced: the local copy is the source of truth
// until the next successful sync.
func (c *Cache) Set(key string, value []byte) error {
	if err := c.local.Set(key, value); err != nil {
		return err
	}
	if c.cloud != nil {
		if err := c.cloud.Set(key, value); err != nil {
			c.log.Warn("cloud write failed, kept locally", "key", key, "err", err)
		}
	}
	return nil
}

// Remove deletes key from both stores.
func (c *Cache) Remove(key string) error {
	if err := c.local.Remove(key); err != nil {
		return err
	}
	if c.cloud != nil {
		if err := c.cloud.Remove(key); err != nil {
			c.log.Warn("cloud remove failed", "key", key, "err", err)
		}
	}
	return nil
}

// Close closes both stores.
func (c *Cache) Close() error {
	var firstErr error
	if c.cloud != nil {
		firstErr = c.cloud.Close()
	}
	if err := c.local.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
