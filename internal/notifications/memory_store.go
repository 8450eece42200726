package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryStore struct {
	mu      sync.RWMutex
	storage map[string]Notification
	unique  map[string]string
}

// NewMemoryStore constructs an in-memory notification store for tests. It
// replicates the storage layer's unique index with a key map.
func NewMemoryStore() Store {
	return &memoryStore{
		storage: make(map[string]Notification),
		unique:  make(map[string]string),
	}
}

func uniqueKey(n Notification) string {
	return fmt.Sprintf("%s|%s|%t", n.PspReference, n.EventCode, n.Success)
}

func (s *memoryStore) Save(_ context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := uniqueKey(n)
	if _, exists := s.unique[key]; exists {
		return ErrDuplicate
	}
	s.unique[key] = n.ID
	s.storage[n.ID] = n
	return nil
}

func (s *memoryStore) MarkProcessed(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.storage[id]
	if !ok {
		return fmt.Errorf("notification %s not found", id)
	}
	now := time.Now().UTC()
	n.ProcessedAt = &now
	s.storage[id] = n
	return nil
}

func (s *memoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.storage), nil
}
