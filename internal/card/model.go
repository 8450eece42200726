package card

import "time"

// StoredCard is a locally persisted card record. A card may exist unlinked
// from any customer (CustomerID nil). GatewayProfileID is the processor's
// opaque recurring-detail reference; its presence signals the card is
// tokenized and reusable without raw card data.
//
// StoredCard fields are mutated only by contract reconciliation after a
// successful authorization or contract fetch. Disabling a contract clears
// GatewayProfileID; rows are never hard-deleted.
type StoredCard struct {
	ID               string
	CustomerID       *string
	Name             string
	LastDigits       string
	Month            int
	Year             int
	Brand            string
	GatewayProfileID *string
	DocumentNumber   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Fingerprint derives the card's matching identity.
func (c StoredCard) Fingerprint() Fingerprint {
	return Fingerprint{
		LastDigits: c.LastDigits,
		Month:      c.Month,
		Year:       c.Year,
		Brand:      c.Brand,
	}
}

// HasProfile reports whether the card carries a recurring profile reference.
func (c StoredCard) HasProfile() bool {
	return c.GatewayProfileID != nil && *c.GatewayProfileID != ""
}
