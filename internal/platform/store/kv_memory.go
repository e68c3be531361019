package store

import "sync"

// MemoryKV is an in-process KV used by tests and as an ephemeral backend
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string]string

	// FailWrites makes Set return a storage error; lets tests exercise
	// the swallow-and-degrade path without a real quota failure
	FailWrites error
}

// NewMemoryKV returns an empty memory store
func NewMemoryKV() *MemoryKV { return &MemoryKV{m: map[string]string{}} }

// Get implements KV
func (s *MemoryKV) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Set implements KV
func (s *MemoryKV) Set(key, value string) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// Remove implements KV
func (s *MemoryKV) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
