package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/petlove/spree-adyen/internal/adyen"
	"github.com/petlove/spree-adyen/internal/card"
	"github.com/petlove/spree-adyen/internal/config"
	"github.com/petlove/spree-adyen/internal/gateway"
	"github.com/petlove/spree-adyen/internal/middleware"
	"github.com/petlove/spree-adyen/internal/notifications"
	"github.com/petlove/spree-adyen/internal/payments"
)

// Deps aggregates shared dependencies required to wire routes. Client may be
// nil, in which case the approving stub stands in (development only).
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Client adyen.Client
	Logger *slog.Logger
	Policy gateway.Policy
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	client := d.Client
	if client == nil {
		client = adyen.StaticClient{}
	}

	var cardRepo card.Repository
	var paymentStore payments.Store
	var notificationStore notifications.Store
	if d.DB != nil {
		cardRepo = card.NewPostgresRepository(d.DB)
		paymentStore = payments.NewPostgresStore(d.DB)
		notificationStore = notifications.NewPostgresStore(d.DB)
	} else {
		cardRepo = card.NewMemoryRepository()
		paymentStore = payments.NewMemoryStore()
		notificationStore = notifications.NewMemoryStore()
	}

	reconciler := gateway.NewReconciler(client, cardRepo, d.Logger)
	engine := gateway.NewEngine(client, cardRepo, reconciler, d.Policy, d.Logger)
	paymentHandler := gateway.NewHandler(engine, cardRepo, paymentStore)

	notificationSvc := notifications.NewService(notificationStore, paymentStore, d.Logger)
	notificationHandler := notifications.NewHandler(notificationSvc, d.Logger)

	// The processor authenticates webhook deliveries with fixed Basic auth
	// credentials before the always-accept contract applies.
	RegisterNotificationRoutes(app, notificationHandler, basicauth.New(basicauth.Config{
		Users: map[string]string{d.Cfg.NotifyUsername: d.Cfg.NotifyPassword},
	}))

	api := app.Group("/api/v1")
	if d.Cache != nil {
		api.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	RegisterPaymentRoutes(api, paymentHandler)

	return nil
}
