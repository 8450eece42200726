package card

import (
	"context"
	"errors"
	"testing"
)

func seedCard(t *testing.T, repo Repository, c StoredCard) {
	t.Helper()
	if err := repo.Save(context.Background(), c); err != nil {
		t.Fatalf("save %s: %v", c.ID, err)
	}
}

func testCard(id string, customerID *string) StoredCard {
	return StoredCard{
		ID:         id,
		CustomerID: customerID,
		Name:       "J Doe",
		LastDigits: "1111",
		Month:      12,
		Year:       2025,
		Brand:      "visa",
	}
}

func TestMemoryRepositoryGetMissing(t *testing.T) {
	repo := NewMemoryRepository()
	if _, err := repo.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepositorySaveRejectsDuplicateID(t *testing.T) {
	repo := NewMemoryRepository()
	seedCard(t, repo, testCard("card-1", nil))
	if err := repo.Save(context.Background(), testCard("card-1", nil)); err == nil {
		t.Fatalf("expected duplicate id rejection")
	}
}

func TestMemoryRepositoryFindByCustomerAndFingerprint(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	customer := "customer-1"

	seedCard(t, repo, testCard("card-1", &customer))
	seedCard(t, repo, testCard("card-2", &customer))

	other := testCard("card-3", &customer)
	other.LastDigits = "4242"
	seedCard(t, repo, other)

	stranger := "customer-2"
	seedCard(t, repo, testCard("card-4", &stranger))
	seedCard(t, repo, testCard("card-5", nil))

	matches, err := repo.FindByCustomerAndFingerprint(ctx, customer, Fingerprint{
		LastDigits: "1111", Month: 12, Year: 2025, Brand: "visa",
	})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(matches), matches)
	}
	for _, m := range matches {
		if m.ID != "card-1" && m.ID != "card-2" {
			t.Fatalf("unexpected match %s", m.ID)
		}
	}
}

func TestMemoryRepositoryUpdateCanonicalOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	seedCard(t, repo, testCard("card-1", nil))

	details := CanonicalDetails{
		Name:             "J Q Doe",
		LastDigits:       "4242",
		Month:            6,
		Year:             2028,
		Brand:            "mc",
		GatewayProfileID: "profile-1",
		DocumentNumber:   "12345678900",
	}
	if err := repo.UpdateCanonical(ctx, []string{"card-1"}, details); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	c, err := repo.Get(ctx, "card-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Name != "J Q Doe" || c.LastDigits != "4242" || c.Month != 6 || c.Year != 2028 || c.Brand != "mc" {
		t.Fatalf("row not overwritten: %+v", c)
	}
	if !c.HasProfile() || *c.GatewayProfileID != "profile-1" {
		t.Fatalf("profile not set: %+v", c)
	}
	if c.DocumentNumber == nil || *c.DocumentNumber != "12345678900" {
		t.Fatalf("document not set: %+v", c)
	}
	if c.UpdatedAt.IsZero() {
		t.Fatalf("updated_at not touched")
	}
}

func TestMemoryRepositoryUpdateCanonicalMissingRow(t *testing.T) {
	repo := NewMemoryRepository()
	err := repo.UpdateCanonical(context.Background(), []string{"nope"}, CanonicalDetails{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepositoryClearProfile(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	profiled := testCard("card-1", nil)
	ref := "abc123"
	profiled.GatewayProfileID = &ref
	seedCard(t, repo, profiled)

	if err := repo.ClearProfile(ctx, "card-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	c, err := repo.Get(ctx, "card-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.HasProfile() {
		t.Fatalf("profile not cleared: %+v", c)
	}
}
