package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps items in a map. A positive quota caps the total number
// of bytes held by keys and values together.
type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string]string
	quota int
	used  int
}

// MemoryOption configures a MemoryBackend.
type MemoryOption func(*MemoryBackend)

// WithQuota limits the backend to n bytes. Zero means unlimited.
func WithQuota(n int) MemoryOption {
	return func(m *MemoryBackend) {
		m.quota = n
	}
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend(opts ...MemoryOption) *MemoryBackend {
	m := &MemoryBackend{items: make(map[string]string)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetItem returns the raw value stored under key.
func (m *MemoryBackend) GetItem(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// SetItem stores value under key, replacing any previous value.
func (m *MemoryBackend) SetItem(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used + len(value)
	if old, ok := m.items[key]; ok {
		used -= len(old)
	} else {
		used += len(key)
	}
	if m.quota > 0 && used > m.quota {
		return ErrQuotaExceeded
	}

	m.items[key] = value
	m.used = used
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (m *MemoryBackend) RemoveItem(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.items[key]; ok {
		m.used -= len(key) + len(old)
		delete(m.items, key)
	}
	return nil
}

// Len reports how many keys are stored.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
