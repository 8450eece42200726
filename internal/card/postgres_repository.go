package card

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores card records in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get fetches a card record by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (StoredCard, error) {
	row := r.db.QueryRow(ctx, `SELECT id, customer_id, name, last_digits, month, year, brand,
        gateway_profile_id, document_number, created_at, updated_at
        FROM credit_cards WHERE id = $1`, id)
	c, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoredCard{}, ErrNotFound
		}
		return StoredCard{}, err
	}
	return c, nil
}

// Save inserts a card record.
func (r *PostgresRepository) Save(ctx context.Context, c StoredCard) error {
	_, err := r.db.Exec(ctx, `INSERT INTO credit_cards
        (id, customer_id, name, last_digits, month, year, brand, gateway_profile_id, document_number, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.CustomerID, c.Name, c.LastDigits, c.Month, c.Year, c.Brand,
		c.GatewayProfileID, c.DocumentNumber, c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	return err
}

// FindByCustomerAndFingerprint returns the customer's cards matching the
// fingerprint on all four fields.
func (r *PostgresRepository) FindByCustomerAndFingerprint(ctx context.Context, customerID string, fp Fingerprint) ([]StoredCard, error) {
	rows, err := r.db.Query(ctx, `SELECT id, customer_id, name, last_digits, month, year, brand,
        gateway_profile_id, document_number, created_at, updated_at
        FROM credit_cards
        WHERE customer_id = $1 AND last_digits = $2 AND month = $3 AND year = $4 AND brand = $5`,
		customerID, fp.LastDigits, fp.Month, fp.Year, fp.Brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []StoredCard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// UpdateCanonical overwrites every listed row with the processor's canonical
// values in a single statement, so each row update is atomic.
func (r *PostgresRepository) UpdateCanonical(ctx context.Context, ids []string, details CanonicalDetails) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `UPDATE credit_cards SET
        name = $1, last_digits = $2, month = $3, year = $4, brand = $5,
        gateway_profile_id = $6, document_number = $7, updated_at = $8
        WHERE id = ANY($9)`,
		details.Name, details.LastDigits, details.Month, details.Year, details.Brand,
		details.GatewayProfileID, details.DocumentNumber, time.Now().UTC(), ids)
	return err
}

// ClearProfile nulls the gateway profile reference for the card.
func (r *PostgresRepository) ClearProfile(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE credit_cards SET gateway_profile_id = NULL, updated_at = $1
        WHERE id = $2`, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCard(row pgx.Row) (StoredCard, error) {
	var c StoredCard
	var createdAt, updatedAt time.Time
	if err := row.Scan(&c.ID, &c.CustomerID, &c.Name, &c.LastDigits, &c.Month, &c.Year, &c.Brand,
		&c.GatewayProfileID, &c.DocumentNumber, &createdAt, &updatedAt); err != nil {
		return StoredCard{}, err
	}
	c.CreatedAt = createdAt.UTC()
	c.UpdatedAt = updatedAt.UTC()
	return c, nil
}
