package card

import (
	"context"
	"errors"
	"sync"
	"time"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]StoredCard
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]StoredCard)}
}

func (r *memoryRepository) Get(_ context.Context, id string) (StoredCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.storage[id]
	if !ok {
		return StoredCard{}, ErrNotFound
	}
	return c, nil
}

func (r *memoryRepository) Save(_ context.Context, c StoredCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[c.ID]; exists {
		return errors.New("card exists")
	}
	r.storage[c.ID] = c
	return nil
}

func (r *memoryRepository) FindByCustomerAndFingerprint(_ context.Context, customerID string, fp Fingerprint) ([]StoredCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matches []StoredCard
	for _, c := range r.storage {
		if c.CustomerID == nil || *c.CustomerID != customerID {
			continue
		}
		if c.Fingerprint().Equal(fp) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

func (r *memoryRepository) UpdateCanonical(_ context.Context, ids []string, details CanonicalDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	for _, id := range ids {
		c, ok := r.storage[id]
		if !ok {
			return ErrNotFound
		}
		c.Name = details.Name
		c.LastDigits = details.LastDigits
		c.Month = details.Month
		c.Year = details.Year
		c.Brand = details.Brand
		profileID := details.GatewayProfileID
		c.GatewayProfileID = &profileID
		document := details.DocumentNumber
		c.DocumentNumber = &document
		c.UpdatedAt = now
		r.storage[id] = c
	}
	return nil
}

func (r *memoryRepository) ClearProfile(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.storage[id]
	if !ok {
		return ErrNotFound
	}
	c.GatewayProfileID = nil
	c.UpdatedAt = time.Now().UTC()
	r.storage[id] = c
	return nil
}
