package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL error code raised by the unique index on
// (psp_reference, event_code, success).
const uniqueViolation = "23505"

// PostgresStore persists notifications in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a notification store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts the notification. A unique-index conflict maps to
// ErrDuplicate so the caller can acknowledge the redelivery as a no-op.
func (s *PostgresStore) Save(ctx context.Context, n Notification) error {
	raw, err := json.Marshal(n.RawParams)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `INSERT INTO adyen_notifications
        (id, event_code, psp_reference, original_reference, merchant_reference, success,
         reason, amount_cents, currency, raw_params, received_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		n.ID, n.EventCode, n.PspReference, n.OriginalReference, n.MerchantReference, n.Success,
		n.Reason, n.AmountCents, n.Currency, raw, n.ReceivedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// MarkProcessed stamps the notification once its transition was applied.
func (s *PostgresStore) MarkProcessed(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `UPDATE adyen_notifications SET processed_at = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	return err
}

// Count returns the number of stored notifications.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM adyen_notifications`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
