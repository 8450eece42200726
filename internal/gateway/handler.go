package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/petlove/spree-adyen/internal/adyen"
	"github.com/petlove/spree-adyen/internal/card"
	"github.com/petlove/spree-adyen/internal/payments"
)

// Handler exposes the payment operations over HTTP.
type Handler struct {
	engine   *Engine
	cards    card.Repository
	payments payments.Store
}

// NewHandler constructs a payment handler.
func NewHandler(engine *Engine, cards card.Repository, paymentStore payments.Store) *Handler {
	return &Handler{engine: engine, cards: cards, payments: paymentStore}
}

// Authorize runs one authorization attempt. Declines come back as a 200 with
// success=false; gateway faults surface as errors.
func (h *Handler) Authorize(c *fiber.Ctx) error {
	var req AuthorizeAPIRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.OrderRef == "" || req.AmountCents <= 0 || req.Currency == "" {
		return fiber.NewError(http.StatusBadRequest, "order_ref, amount_cents and currency are required")
	}

	source, err := h.resolveCard(c, req.CardID, req.CustomerID, req.Card, req.Shopper.Reference)
	if err != nil {
		return err
	}

	outcome, err := h.engine.Authorize(c.UserContext(), AuthorizeRequest{
		Amount:       req.AmountCents,
		Currency:     req.Currency,
		OrderRef:     req.OrderRef,
		Shopper:      toShopper(req.Shopper, req.OrderRef),
		Card:         source,
		RawCard:      toRawCard(req.Card),
		CVC:          req.CVC,
		Installments: req.Installments,
		UseOneClick:  req.UseOneClick,
	})
	if err != nil {
		return gatewayHTTPError(err)
	}

	resp := toResponse(outcome)
	resp.CardID = source.ID

	if !outcome.Success {
		return c.Status(http.StatusOK).JSON(resp)
	}

	now := time.Now().UTC()
	payment := payments.Payment{
		ID:           uuid.NewString(),
		OrderRef:     req.OrderRef,
		PspReference: outcome.Authorization,
		Status:       payments.StatusPending,
		AmountCents:  req.AmountCents,
		Currency:     req.Currency,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.payments.Create(c.UserContext(), payment); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	resp.PaymentID = payment.ID

	return c.Status(http.StatusCreated).JSON(resp)
}

// Capture settles an authorized amount identified by its psp reference.
func (h *Handler) Capture(c *fiber.Ctx) error {
	return h.modification(c, h.engine.Capture)
}

// Refund returns a captured amount identified by its psp reference.
func (h *Handler) Refund(c *fiber.Ctx) error {
	return h.modification(c, h.engine.Refund)
}

// Void cancels an authorization before capture.
func (h *Handler) Void(c *fiber.Ctx) error {
	outcome, err := h.engine.Void(c.UserContext(), c.Params("pspRef"))
	if err != nil {
		return gatewayHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(outcome))
}

// DisableContract revokes the recurring contract for a stored card.
func (h *Handler) DisableContract(c *fiber.Ctx) error {
	source, err := h.cards.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, card.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if err := h.engine.DisableRecurringContract(c.UserContext(), source); err != nil {
		return gatewayHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"card_id": source.ID, "disabled": true})
}

// CreateProfile tokenizes a card through a profile-creating authorization.
func (h *Handler) CreateProfile(c *fiber.Ctx) error {
	var req ProfileAPIRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Card == nil {
		return fiber.NewError(http.StatusBadRequest, "card data is required")
	}

	source, err := h.resolveCard(c, req.CardID, req.CustomerID, req.Card, req.Shopper.Reference)
	if err != nil {
		return err
	}

	outcome, err := h.engine.CreateProfile(c.UserContext(), ProfileRequest{
		Card:         source,
		RawCard:      *toRawCard(req.Card),
		Shopper:      toShopper(req.Shopper, req.OrderRef),
		OrderRef:     req.OrderRef,
		Amount:       req.AmountCents,
		Currency:     req.Currency,
		Installments: req.Installments,
	})
	if err != nil {
		return gatewayHTTPError(err)
	}

	resp := toResponse(outcome)
	resp.CardID = source.ID
	status := http.StatusOK
	if outcome.Success {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(resp)
}

func (h *Handler) modification(c *fiber.Ctx, op func(ctx context.Context, pspReference string, amount adyen.Amount) (Outcome, error)) error {
	var req ModificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	outcome, err := op(c.UserContext(), c.Params("pspRef"), adyen.Amount{Currency: req.Currency, Value: req.AmountCents})
	if err != nil {
		return gatewayHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(outcome))
}

// resolveCard loads the referenced stored card or registers a new record
// from submitted card data. A new record is created on first submission so
// reconciliation has a row to attach the recurring token to.
func (h *Handler) resolveCard(c *fiber.Ctx, cardID, customerID string, raw *CardRequest, documentNumber string) (card.StoredCard, error) {
	if cardID != "" {
		source, err := h.cards.Get(c.UserContext(), cardID)
		if err != nil {
			if errors.Is(err, card.ErrNotFound) {
				return card.StoredCard{}, fiber.NewError(http.StatusNotFound, err.Error())
			}
			return card.StoredCard{}, fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return source, nil
	}

	if raw == nil {
		return card.StoredCard{}, fiber.NewError(http.StatusBadRequest, "either card_id or card is required")
	}

	now := time.Now().UTC()
	source := card.StoredCard{
		ID:         uuid.NewString(),
		Name:       raw.HolderName,
		LastDigits: lastDigits(raw.Number),
		Month:      raw.Month,
		Year:       raw.Year,
		Brand:      raw.Brand,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if customerID != "" {
		source.CustomerID = &customerID
	}
	if documentNumber != "" {
		source.DocumentNumber = &documentNumber
	}
	if err := h.cards.Save(c.UserContext(), source); err != nil {
		return card.StoredCard{}, fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return source, nil
}

func toShopper(req ShopperRequest, orderRef string) adyen.Shopper {
	return adyen.Shopper{
		Reference:            req.Reference,
		Email:                req.Email,
		Name:                 adyen.Name{First: req.FirstName, Last: req.LastName},
		IP:                   req.IP,
		Statement:            fmt.Sprintf("Order # %s", orderRef),
		SocialSecurityNumber: req.Reference,
		TelephoneNumber:      req.Telephone,
	}
}

func toRawCard(req *CardRequest) *adyen.Card {
	if req == nil {
		return nil
	}
	return &adyen.Card{
		HolderName:  req.HolderName,
		Number:      req.Number,
		CVC:         req.CVC,
		ExpiryMonth: req.Month,
		ExpiryYear:  req.Year,
	}
}

func lastDigits(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}

// gatewayHTTPError maps engine errors onto HTTP statuses: policy violations
// and processor faults are unprocessable, everything else is internal.
func gatewayHTTPError(err error) error {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return fiber.NewError(http.StatusUnprocessableEntity, gwErr.Error())
	}
	if errors.Is(err, ErrMissingCardSummary) {
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	}
	return fiber.NewError(http.StatusInternalServerError, err.Error())
}
