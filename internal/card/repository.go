package card

import (
	"context"
	"errors"
)

// ErrNotFound indicates the requested card record does not exist.
var ErrNotFound = errors.New("card not found")

// CanonicalDetails carries the processor-sourced values written over local
// card rows during reconciliation. The write is a full overwrite, not a
// merge, so concurrent reconciliations converge on the same state.
type CanonicalDetails struct {
	Name             string
	LastDigits       string
	Month            int
	Year             int
	Brand            string
	GatewayProfileID string
	DocumentNumber   string
}

// Repository persists stored card records.
type Repository interface {
	Get(ctx context.Context, id string) (StoredCard, error)
	Save(ctx context.Context, card StoredCard) error
	// FindByCustomerAndFingerprint returns every card of the customer whose
	// fingerprint matches exactly.
	FindByCustomerAndFingerprint(ctx context.Context, customerID string, fp Fingerprint) ([]StoredCard, error)
	// UpdateCanonical overwrites each listed row with the canonical details.
	// Each row update must be atomic at the storage layer.
	UpdateCanonical(ctx context.Context, ids []string, details CanonicalDetails) error
	// ClearProfile nulls the gateway profile reference, keeping the row.
	ClearProfile(ctx context.Context, id string) error
}
