package adscache

import (
	"context"
	"reviewd/pkg/domain"
	"sync"
)

// Memory is an in-process Cache for tests and single-instance deployments.
// Entries live until process exit.
type Memory struct {
	mu      sync.RWMutex
	entries map[domain.ProductID][]domain.Ad
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: map[domain.ProductID][]domain.Ad{}}
}

// Get returns the cached ads for the product and whether an entry existed.
func (m *Memory) Get(_ context.Context, id domain.ProductID) ([]domain.Ad, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ads, ok := m.entries[id]
	if !ok {
		return nil, false, nil
	}

	out := make([]domain.Ad, len(ads))
	copy(out, ads)

	return out, true, nil
}

// Put stores the ads for the product, replacing any existing entry.
func (m *Memory) Put(_ context.Context, id domain.ProductID, ads []domain.Ad) error {
	stored := make([]domain.Ad, len(ads))
	copy(stored, ads)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = stored

	return nil
}

// Ensure Memory conforms to the Cache interface at compile time.
var _ Cache = (*Memory)(nil)
