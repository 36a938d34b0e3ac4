// ABOUTME: In-memory Store used by tests and ephemeral dev runs.
// ABOUTME: Optionally fails writes/reads to simulate a flaky cloud store.
package kvcache

import "sync"

// Memory is a map-backed Store.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailWrites and FailReads, when set, make the corresponding operations
	// return this error. Used to simulate an unreachable cloud store.
	FailWrites error
	FailReads  error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailReads != nil {
		return nil, false, m.FailReads
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error { return nil }

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
