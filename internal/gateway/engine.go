package gateway

import (
	"context"
	"log/slog"

	"github.com/petlove/spree-adyen/internal/adyen"
	"github.com/petlove/spree-adyen/internal/card"
)

// Engine decides which authorization path to take for a transaction and
// normalizes the processor's answer into an Outcome. One authorization is
// processed per invocation; the engine holds no mutable state of its own.
type Engine struct {
	client     adyen.Client
	cards      card.Repository
	reconciler *Reconciler
	policy     Policy
	logger     *slog.Logger
}

// NewEngine constructs a payment engine for one payment-method type.
func NewEngine(client adyen.Client, cards card.Repository, reconciler *Reconciler, policy Policy, logger *slog.Logger) *Engine {
	return &Engine{client: client, cards: cards, reconciler: reconciler, policy: policy, logger: logger}
}

// AuthorizeRequest carries everything needed for one authorization attempt.
// Constructed per attempt, never persisted. RawCard is present only when the
// shopper submitted full card data; it never reaches local storage.
type AuthorizeRequest struct {
	Amount       int64
	Currency     string
	OrderRef     string
	Shopper      adyen.Shopper
	Card         card.StoredCard
	RawCard      *adyen.Card
	CVC          string
	Installments int
	UseOneClick  bool
	BrowserInfo  *adyen.BrowserInfo
}

// Authorize runs one authorization attempt. Path selection, first match
// wins:
//
//  1. one-click requested (or demanded by policy) and the card has a stored
//     profile: one-click authorization with the fresh CVC;
//  2. the card has a stored profile: recurring-token authorization, no CVC;
//  3. raw-card authorization with the submitted card data.
//
// A processor refusal is returned as an unsuccessful Outcome, not an error.
// Network and processor faults return *Error.
func (e *Engine) Authorize(ctx context.Context, req AuthorizeRequest) (Outcome, error) {
	if req.CVC == "" && e.policy.RequireOneClickPayment {
		return Outcome{}, &Error{Message: "card verification value required"}
	}

	// Refresh the stored contract first so a stale profile reference does
	// not send the attempt down the wrong path. Never blocks the attempt.
	if err := e.reconciler.Reconcile(ctx, req.Card, req.Shopper.Reference); err != nil {
		e.logger.Warn("contract refresh before authorize failed",
			slog.String("order_ref", req.OrderRef),
			slog.String("shopper_reference", req.Shopper.Reference),
			slog.Any("error", err))
	}

	amount := adyen.Amount{Currency: req.Currency, Value: req.Amount}
	opts := e.authoriseOptions(req.Installments, req.BrowserInfo)
	oneClick := req.UseOneClick || e.policy.RequireOneClickPayment

	var resp adyen.Response
	var err error
	switch {
	case oneClick && req.Card.HasProfile():
		resp, err = e.client.AuthorizeOneClick(ctx, req.OrderRef, amount, req.Shopper, req.CVC, *req.Card.GatewayProfileID, opts)
	case req.Card.HasProfile():
		resp, err = e.client.AuthorizeRecurring(ctx, req.OrderRef, amount, req.Shopper, *req.Card.GatewayProfileID, opts)
	default:
		if req.RawCard == nil {
			return Outcome{}, &Error{Message: "card data required for authorization"}
		}
		resp, err = e.client.AuthorizeRaw(ctx, req.OrderRef, amount, req.Shopper, *req.RawCard, opts)
	}
	if err != nil {
		return Outcome{}, &Error{Message: "authorise payment", Err: err}
	}

	e.logAttempt(ctx, "authorize", req.OrderRef, amount, resp)

	if resp.Success {
		// Only settled responses refresh the stored contract; a success
		// without the settled marker is not final yet.
		if transactionAuthorised(resp) {
			if err := e.reconciler.Reconcile(ctx, req.Card, req.Shopper.Reference); err != nil {
				e.logger.Error("contract refresh after authorize failed",
					slog.String("order_ref", req.OrderRef),
					slog.Any("error", err))
			}
		}
		return normalizeSuccess(resp), nil
	}
	return normalizeFailure(resp), nil
}

// Capture settles a previously authorized amount.
func (e *Engine) Capture(ctx context.Context, pspReference string, amount adyen.Amount) (Outcome, error) {
	resp, err := e.client.Capture(ctx, pspReference, amount)
	if err != nil {
		return Outcome{}, &Error{Message: "capture payment", Err: err}
	}
	e.logAttempt(ctx, "capture", pspReference, amount, resp)
	if resp.Success {
		return normalizeSuccess(resp), nil
	}
	return normalizeFailure(resp), nil
}

// Void cancels an authorization before capture.
func (e *Engine) Void(ctx context.Context, pspReference string) (Outcome, error) {
	resp, err := e.client.Cancel(ctx, pspReference)
	if err != nil {
		return Outcome{}, &Error{Message: "cancel payment", Err: err}
	}
	e.logAttempt(ctx, "void", pspReference, adyen.Amount{}, resp)
	if resp.Success {
		return normalizeSuccess(resp), nil
	}
	return normalizeFailure(resp), nil
}

// Refund returns a captured amount to the shopper. Refund declines keep the
// processor's bare refusal text.
func (e *Engine) Refund(ctx context.Context, pspReference string, amount adyen.Amount) (Outcome, error) {
	resp, err := e.client.Refund(ctx, pspReference, amount)
	if err != nil {
		return Outcome{}, &Error{Message: "refund payment", Err: err}
	}
	e.logAttempt(ctx, "refund", pspReference, amount, resp)
	if resp.Success {
		return normalizeSuccess(resp), nil
	}
	return normalizeRefundFailure(resp), nil
}

// DisableRecurringContract revokes the card's recurring contract at the
// processor and clears the local profile reference. The row itself stays. A
// processor-side failure is fatal.
func (e *Engine) DisableRecurringContract(ctx context.Context, c card.StoredCard) error {
	if !c.HasProfile() {
		return nil
	}

	shopperRef := shopperReferenceFor(c)
	if shopperRef == "" {
		return &Error{Message: "card has no shopper reference to disable contract for"}
	}

	resp, err := e.client.DisableRecurringContract(ctx, shopperRef, *c.GatewayProfileID)
	if err != nil {
		return &Error{Message: "disable recurring contract", Err: err}
	}
	if !resp.Success {
		e.logger.Error("disable recurring contract refused",
			slog.String("card_id", c.ID),
			slog.String("result_code", resp.ResultCode),
			slog.String("reason", resp.RefusalReason))
		return &Error{Message: gatewayMessage(resp)}
	}

	return e.cards.ClearProfile(ctx, c.ID)
}

func (e *Engine) authoriseOptions(installments int, browser *adyen.BrowserInfo) adyen.AuthoriseOptions {
	opts := adyen.AuthoriseOptions{Recurring: true, Installments: installments}
	if e.policy.Require3DSecure && browser != nil {
		opts.BrowserInfo = browser
	}
	return opts
}

// logAttempt records one processor round trip with masked detail only.
func (e *Engine) logAttempt(ctx context.Context, operation, reference string, amount adyen.Amount, resp adyen.Response) {
	e.logger.LogAttrs(ctx, slog.LevelInfo, "processor response",
		slog.String("operation", operation),
		slog.String("reference", reference),
		slog.Int64("amount", amount.Value),
		slog.String("currency", amount.Currency),
		slog.Bool("success", resp.Success),
		slog.String("result_code", resp.ResultCode),
		slog.Bool("settled", transactionAuthorised(resp)))
}

func shopperReferenceFor(c card.StoredCard) string {
	if c.CustomerID != nil && *c.CustomerID != "" {
		return *c.CustomerID
	}
	if c.DocumentNumber != nil {
		return *c.DocumentNumber
	}
	return ""
}
