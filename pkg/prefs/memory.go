package prefs

import (
	"context"
	"sync"
)

// Memory is an in-process Store for tests and single-instance deployments.
type Memory struct {
	mu     sync.RWMutex
	values map[string]bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: map[string]bool{}}
}

// Bool returns the stored value for key, or def when the key was never set.
func (m *Memory) Bool(_ context.Context, key string, def bool) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return def, nil
	}

	return v, nil
}

// SetBool stores the value for key.
func (m *Memory) SetBool(_ context.Context, key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value

	return nil
}

// Ensure Memory conforms to the Store interface at compile time.
var _ Store = (*Memory)(nil)
