package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petlove/spree-adyen/internal/notifications"
)

// RegisterNotificationRoutes wires the processor's webhook endpoint behind
// Basic authentication.
func RegisterNotificationRoutes(app *fiber.App, h *notifications.Handler, auth fiber.Handler) {
	app.Post("/notifications", auth, h.Notify)
}
