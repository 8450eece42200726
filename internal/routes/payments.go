package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petlove/spree-adyen/internal/gateway"
)

// RegisterPaymentRoutes wires the payment operation endpoints.
func RegisterPaymentRoutes(r fiber.Router, h *gateway.Handler) {
	r.Post("/payments/authorize", h.Authorize)
	r.Post("/payments/:pspRef/capture", h.Capture)
	r.Post("/payments/:pspRef/void", h.Void)
	r.Post("/payments/:pspRef/refund", h.Refund)
	r.Post("/profiles", h.CreateProfile)
	r.Post("/cards/:id/disable", h.DisableContract)
}
