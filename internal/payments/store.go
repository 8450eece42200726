package payments

import (
	"context"
	"errors"
)

// ErrNotFound indicates no payment matches the given reference.
var ErrNotFound = errors.New("payment not found")

// Store persists payment records.
type Store interface {
	Create(ctx context.Context, p Payment) error
	GetByPspReference(ctx context.Context, pspReference string) (Payment, error)
	// UpdateStatus applies a status transition as a single atomic write.
	UpdateStatus(ctx context.Context, id, status string) error
}
