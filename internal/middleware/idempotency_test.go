package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/petlove/spree-adyen/internal/logging"
)

func setupTestApp(t *testing.T) (*fiber.App, *atomic.Int64, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	logger := logging.Discard()
	app.Use(Idempotency(cache, time.Minute, logger))

	var handled atomic.Int64
	app.Post("/payments", func(c *fiber.Ctx) error {
		handled.Add(1)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"authorization": "psp-1"})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}

	return app, &handled, cleanup
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	app, _, cleanup := setupTestApp(t)
	defer cleanup()

	req := httptest.NewRequest(fiber.MethodPost, "/payments", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected %d got %d", fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestIdempotencySkipsSafeMethods(t *testing.T) {
	app, _, cleanup := setupTestApp(t)
	defer cleanup()

	app.Get("/payments", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/payments", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET must not require the header, got %d", resp.StatusCode)
	}
}

func TestIdempotencyReplaysFirstResponse(t *testing.T) {
	app, handled, cleanup := setupTestApp(t)
	defer cleanup()

	req := httptest.NewRequest(fiber.MethodPost, "/payments", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(idempotencyKeyHeader, "key-1")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected status %d got %d", fiber.StatusCreated, resp.StatusCode)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()

	req2 := httptest.NewRequest(fiber.MethodPost, "/payments", strings.NewReader("{}"))
	req2.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req2.Header.Set(idempotencyKeyHeader, "key-1")

	resp2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	if resp2.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected replayed status %d got %d", fiber.StatusCreated, resp2.StatusCode)
	}
	replayed, err := io.ReadAll(resp2.Body)
	if err != nil {
		t.Fatalf("read replayed body: %v", err)
	}
	resp2.Body.Close()

	if string(replayed) != string(payload) {
		t.Fatalf("expected replayed payload %s got %s", string(payload), string(replayed))
	}
	if handled.Load() != 1 {
		t.Fatalf("handler must run once, ran %d times", handled.Load())
	}

	var decoded map[string]any
	if err := json.Unmarshal(replayed, &decoded); err != nil {
		t.Fatalf("replayed payload invalid json: %v", err)
	}
}

func TestIdempotencyDistinctKeysAreIndependent(t *testing.T) {
	app, handled, cleanup := setupTestApp(t)
	defer cleanup()

	for _, key := range []string{"key-1", "key-2"} {
		req := httptest.NewRequest(fiber.MethodPost, "/payments", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(idempotencyKeyHeader, key)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %s: %v", key, err)
		}
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("key %s: expected %d got %d", key, fiber.StatusCreated, resp.StatusCode)
		}
		resp.Body.Close()
	}

	if handled.Load() != 2 {
		t.Fatalf("distinct keys must both run the handler, ran %d times", handled.Load())
	}
}

func TestIdempotencyInFlightConflicts(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))
	app.Post("/payments", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	// Pre-seed the reservation marker to simulate a first attempt still in
	// flight.
	mr.Set(idempotencyPrefix+"key-1", inProgressMarker)

	req := httptest.NewRequest(fiber.MethodPost, "/payments", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(idempotencyKeyHeader, "key-1")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected %d got %d", fiber.StatusConflict, resp.StatusCode)
	}
}
