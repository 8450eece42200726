package notifications

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// acknowledgment is the body the processor expects on every delivery. Always
// returning it, whatever happened internally, is the contract that stops the
// processor from retrying events we already hold.
const acknowledgment = "[accepted]"

// Handler receives the processor's webhook deliveries. Authentication is
// applied by the route wiring before dispatch reaches here.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a webhook handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Notify ingests one notification. The response is 200 [accepted] no matter
// the internal outcome: duplicates, validation failures, and transition
// errors are logged and swallowed to satisfy at-least-once delivery.
func (h *Handler) Notify(c *fiber.Ctx) error {
	n := parseNotification(c)

	if err := h.service.Handle(c.UserContext(), n); err != nil {
		h.logger.Error("notification handling failed",
			slog.String("psp_reference", n.PspReference),
			slog.String("event_code", n.EventCode),
			slog.Any("error", err))
	}

	return c.Status(fiber.StatusOK).SendString(acknowledgment)
}

// parseNotification maps the processor's form-encoded payload. Unknown keys
// are kept verbatim in RawParams.
func parseNotification(c *fiber.Ctx) Notification {
	raw := make(map[string]string)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		raw[string(key)] = string(value)
	})

	amount, _ := strconv.ParseInt(c.FormValue("value"), 10, 64)

	return Notification{
		EventCode:         c.FormValue("eventCode"),
		PspReference:      c.FormValue("pspReference"),
		OriginalReference: c.FormValue("originalReference"),
		MerchantReference: c.FormValue("merchantReference"),
		Success:           c.FormValue("success") == "true",
		Reason:            c.FormValue("reason"),
		AmountCents:       amount,
		Currency:          c.FormValue("currency"),
		RawParams:         raw,
		ReceivedAt:        time.Now().UTC(),
	}
}
