// ABOUTME: Charm Cloud KV store, the client's cloud half of the cache.
// ABOUTME: Syncs after writes; read-only mode degrades to local reads.
package kvcache

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/kv"
)

const (
	dbName    = "fitcoach"
	charmHost = "charm.2389.dev"
)

// CharmStore wraps a Charm KV database. Writes sync to Charm Cloud
// best-effort; when another process holds the badger lock the database opens
// read-only and writes are refused.
type CharmStore struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

// OpenCharm opens (or creates) the fitcoach Charm KV database and pulls
// remote state once.
func OpenCharm() (*CharmStore, error) {
	// Set server before opening KV
	if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
		return nil, err
	}

	db, err := kv.OpenWithDefaultsFallback(dbName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	s := &CharmStore{kv: db, autoSync: true}

	// Pull remote data on startup (skip in read-only mode)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}

	return s, nil
}

// SetAutoSync enables or disables the cloud sync issued after each write.
func (s *CharmStore) SetAutoSync(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoSync = enabled
}

// Sync pushes local state to Charm Cloud and pulls remote updates.
func (s *CharmStore) Sync() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.kv.IsReadOnly() {
		return nil
	}
	return s.kv.Sync()
}

func (s *CharmStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, err := s.kv.Get([]byte(key))
	if err != nil {
		return nil, false, nil // treat lookup failures as a miss
	}
	if len(val) == 0 {
		return nil, false, nil
	}
	return val, true, nil
}

func (s *CharmStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv.IsReadOnly() {
		return fmt.Errorf("cannot write: database is locked by another process")
	}
	if err := s.kv.Set([]byte(key), value); err != nil {
		return err
	}
	s.syncIfEnabled()
	return nil
}

func (s *CharmStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv.IsReadOnly() {
		return fmt.Errorf("cannot write: database is locked by another process")
	}
	if err := s.kv.Delete([]byte(key)); err != nil {
		return err
	}
	s.syncIfEnabled()
	return nil
}

// Close closes the KV database connection.
func (s *CharmStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv != nil {
		return s.kv.Close()
	}
	return nil
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (s *CharmStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Reset()
}

// syncIfEnabled calls Sync if autoSync is on. Callers hold the lock.
func (s *CharmStore) syncIfEnabled() {
	if s.autoSync && !s.kv.IsReadOnly() {
		_ = s.kv.Sync()
	}
}
