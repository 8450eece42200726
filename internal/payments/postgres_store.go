package payments

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists payments in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a payment store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts a payment record.
func (s *PostgresStore) Create(ctx context.Context, p Payment) error {
	_, err := s.db.Exec(ctx, `INSERT INTO payments
        (id, order_ref, psp_reference, status, amount_cents, currency, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.OrderRef, p.PspReference, p.Status, p.AmountCents, p.Currency,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	return err
}

// GetByPspReference fetches the payment carrying the processor reference.
func (s *PostgresStore) GetByPspReference(ctx context.Context, pspReference string) (Payment, error) {
	row := s.db.QueryRow(ctx, `SELECT id, order_ref, psp_reference, status, amount_cents, currency, created_at, updated_at
        FROM payments WHERE psp_reference = $1`, pspReference)
	var p Payment
	var createdAt, updatedAt time.Time
	if err := row.Scan(&p.ID, &p.OrderRef, &p.PspReference, &p.Status, &p.AmountCents, &p.Currency, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, err
	}
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}

// UpdateStatus applies the transition as one atomic UPDATE.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := s.db.Exec(ctx, `UPDATE payments SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
