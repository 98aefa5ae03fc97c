package storage

import (
	"context"
	"sync"
)

// MemoryKV keeps the whole store in a map. Used by tests and as a
// stand-in when no database is configured.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
	notifier
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (s *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryKV) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	s.notify(key)
	return nil
}

func (s *MemoryKV) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	s.notify(key)
	return nil
}
