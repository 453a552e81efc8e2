package storage

import (
	"fmt"
	"sync"
)

// MemoryStore is an in-memory key-value store. It backs the
// session-scoped state and doubles as a Durable for tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var (
	_ Ephemeral = (*MemoryStore)(nil)
	_ Durable   = durableMemory{}
)

func NewMemory() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return value, nil
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// durableMemory adapts MemoryStore to the Durable interface, whose
// mutating methods return errors.
type durableMemory struct {
	*MemoryStore
}

// AsDurable returns a Durable view of the store for tests.
func (s *MemoryStore) AsDurable() Durable {
	return durableMemory{s}
}

func (d durableMemory) Set(key, value string) error {
	d.MemoryStore.Set(key, value)
	return nil
}

func (d durableMemory) Delete(key string) error {
	d.MemoryStore.Delete(key)
	return nil
}

func (d durableMemory) Close() error { return nil }
