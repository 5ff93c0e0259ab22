package persistence

import (
	"context"
	"sync"
)

// MemoryAdapter is an in-process adapter used by tests and ephemeral runs.
// FailOn, when set, lets tests inject write failures per key.
type MemoryAdapter struct {
	mu     sync.RWMutex
	data   map[string][]byte
	FailOn func(key string) error
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{data: make(map[string][]byte)}
}

func (a *MemoryAdapter) Load(_ context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	value, ok := a.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

func (a *MemoryAdapter) Save(_ context.Context, key string, value []byte) error {
	if a.FailOn != nil {
		if err := a.FailOn(key); err != nil {
			return err
		}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	a.data[key] = cp
	return nil
}
