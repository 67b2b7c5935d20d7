package storage

import "sync"

// MemoryStore implements Store using an in-memory map
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates a new MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// Read implements Store
func (s *MemoryStore) Read(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write implements Store
func (s *MemoryStore) Write(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[key] = stored
	return nil
}

// Delete implements Store
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
