// Package evalcache memoizes externally assisted evaluation and question
// generation results. Keys are stable hashes over normalized request fields,
// so logically identical requests land on the same entry regardless of
// incidental whitespace, casing, or skill ordering. Values are opaque JSON
// payloads, giving every backend the same codec.
package evalcache

import (
	"context"
	"sync"
)

// Store is the cache contract. A miss is (nil, false, nil): absence is not an
// error. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Memory is the in-process Store used by default and in tests. Entries never
// expire and are copied on both read and write so callers cannot alias the
// backing map.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

// Get returns the cached value for key, if present.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Put stores value under key, replacing any previous entry.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = stored
	return nil
}

// Len reports the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
