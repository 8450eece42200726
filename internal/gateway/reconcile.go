package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/petlove/spree-adyen/internal/adyen"
	"github.com/petlove/spree-adyen/internal/card"
)

// Reconciler refreshes locally stored card rows from the processor's
// canonical recurring-detail list after a settled authorization.
type Reconciler struct {
	client adyen.Client
	cards  card.Repository
	logger *slog.Logger
}

// NewReconciler constructs a contract reconciler.
func NewReconciler(client adyen.Client, cards card.Repository, logger *slog.Logger) *Reconciler {
	return &Reconciler{client: client, cards: cards, logger: logger}
}

// Reconcile fetches the shopper's recurring details and overwrites every
// matching local card row with the processor's canonical values. The
// overwrite is idempotent: repeated runs against the same processor data
// leave the rows unchanged.
//
// Returns ErrRecurringDetailsNotFound when the shopper has no details or
// none matches the card's fingerprint. Callers at authorization sites treat
// that as recoverable.
func (r *Reconciler) Reconcile(ctx context.Context, src card.StoredCard, shopperReference string) error {
	details, err := r.client.ListRecurringDetails(ctx, shopperReference)
	if err != nil {
		return fmt.Errorf("list recurring details for shopper %q: %w", shopperReference, err)
	}
	if len(details) == 0 {
		return fmt.Errorf("%w: shopper %q has no recurring details", ErrRecurringDetailsNotFound, shopperReference)
	}

	var match *adyen.RecurringDetail
	for i := range details {
		if details[i].Fingerprint.Equal(src.Fingerprint()) {
			match = &details[i]
			break
		}
	}
	if match == nil {
		return fmt.Errorf("%w: no detail matches card %s", ErrRecurringDetailsNotFound, src.Fingerprint())
	}

	ids, err := r.updateSet(ctx, src, match.Fingerprint)
	if err != nil {
		return err
	}

	if err := r.cards.UpdateCanonical(ctx, ids, card.CanonicalDetails{
		Name:             match.HolderName,
		LastDigits:       match.Fingerprint.LastDigits,
		Month:            match.Fingerprint.Month,
		Year:             match.Fingerprint.Year,
		Brand:            match.Fingerprint.Brand,
		GatewayProfileID: match.RecurringDetailReference,
		DocumentNumber:   shopperReference,
	}); err != nil {
		return fmt.Errorf("update cards %v: %w", ids, err)
	}

	r.logger.Info("contract reconciled",
		slog.String("card_id", src.ID),
		slog.String("shopper_reference", shopperReference),
		slog.Int("cards_updated", len(ids)))
	return nil
}

// updateSet resolves which rows receive the canonical overwrite: the
// customer's cards matching the processor's fingerprint, with the input card
// always included by identity even when the query misses it. An unlinked
// card resolves to itself alone.
func (r *Reconciler) updateSet(ctx context.Context, src card.StoredCard, fp card.Fingerprint) ([]string, error) {
	if src.CustomerID == nil {
		return []string{src.ID}, nil
	}

	matches, err := r.cards.FindByCustomerAndFingerprint(ctx, *src.CustomerID, fp)
	if err != nil {
		return nil, fmt.Errorf("find customer cards: %w", err)
	}

	ids := make([]string, 0, len(matches)+1)
	seen := false
	for _, c := range matches {
		if c.ID == src.ID {
			seen = true
		}
		ids = append(ids, c.ID)
	}
	if !seen {
		ids = append(ids, src.ID)
	}
	return ids, nil
}
