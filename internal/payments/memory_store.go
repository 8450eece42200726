package payments

import (
	"context"
	"errors"
	"sync"
	"time"
)

type memoryStore struct {
	mu      sync.RWMutex
	storage map[string]Payment
}

// NewMemoryStore constructs an in-memory payment store for tests.
func NewMemoryStore() Store {
	return &memoryStore{storage: make(map[string]Payment)}
}

func (s *memoryStore) Create(_ context.Context, p Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.storage[p.ID]; exists {
		return errors.New("payment exists")
	}
	s.storage[p.ID] = p
	return nil
}

func (s *memoryStore) GetByPspReference(_ context.Context, pspReference string) (Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.storage {
		if p.PspReference == pspReference {
			return p, nil
		}
	}
	return Payment{}, ErrNotFound
}

func (s *memoryStore) UpdateStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.storage[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	s.storage[id] = p
	return nil
}
