package store

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-process Store. It is safe for concurrent use and suited
// to tests and single-instance deployments without durability needs.
type Memory struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{snapshots: make(map[string][]byte)}
}

// Load returns a copy of the snapshot stored under name.
func (m *Memory) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.snapshots[name]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

// Save stores a copy of data under name.
func (m *Memory) Save(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[name] = slices.Clone(data)
	return nil
}

// Delete removes the snapshot under name.
func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.snapshots, name)
	return nil
}
