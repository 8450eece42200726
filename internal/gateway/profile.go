package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/petlove/spree-adyen/internal/adyen"
	"github.com/petlove/spree-adyen/internal/card"
)

// ProfileRequest describes a profile-creating authorization: a raw-card
// authorization flagged recurring whose purpose is obtaining a reusable
// token for the stored card.
type ProfileRequest struct {
	Card         card.StoredCard
	RawCard      adyen.Card
	Shopper      adyen.Shopper
	OrderRef     string
	Amount       int64
	Currency     string
	Installments int
	BrowserInfo  *adyen.BrowserInfo
}

// CreateProfile authorizes the order amount with the recurring flag so the
// processor issues a recurring-detail reference, then reconciles the stored
// card against it. No-op when the card already carries a profile.
//
// Rules, in order:
//   - settled success without the card summary the profile store needs:
//     ErrMissingCardSummary;
//   - settled success: reconcile (a missing recurring detail here is logged,
//     the caller decides whether to escalate based on the outcome);
//   - 3-D Secure enrollment: unsuccessful Outcome with Enrolled3DS set so
//     the caller can run the step-up flow;
//   - any other failure: fatal *Error carrying the processor's message.
func (e *Engine) CreateProfile(ctx context.Context, req ProfileRequest) (Outcome, error) {
	if req.Card.HasProfile() {
		return Outcome{Success: true, Authorization: *req.Card.GatewayProfileID}, nil
	}

	amount := adyen.Amount{Currency: req.Currency, Value: req.Amount}
	opts := e.authoriseOptions(req.Installments, req.BrowserInfo)
	opts.Recurring = true

	resp, err := e.client.AuthorizeRaw(ctx, req.OrderRef, amount, req.Shopper, req.RawCard, opts)
	if err != nil {
		return Outcome{}, &Error{Message: "authorise payment for profile", Err: err}
	}
	e.logAttempt(ctx, "create_profile", req.OrderRef, amount, resp)

	switch {
	case resp.Success && transactionAuthorised(resp):
		if err := e.storeProfileDetails(ctx, req.Card, req.Shopper.Reference, resp); err != nil {
			return Outcome{}, err
		}
		return normalizeSuccess(resp), nil

	case resp.Enrolled3DS:
		return normalizeFailure(resp), nil

	default:
		e.logger.Error("profile creation refused",
			slog.String("order_ref", req.OrderRef),
			slog.String("result_code", resp.ResultCode),
			slog.String("reason", resp.RefusalReason))
		msg := gatewayMessage(resp)
		if msg == "" {
			msg = "refused"
		}
		return Outcome{}, &Error{Message: msg}
	}
}

// SetUpContract performs the symbolic zero-amount authorization used to grab
// a recurring token outside of checkout. The processor account must be on
// manual capture delay so the symbolic amount is never taken.
func (e *Engine) SetUpContract(ctx context.Context, req ProfileRequest) (Outcome, error) {
	req.Amount = 0
	if req.OrderRef == "" && req.Card.CustomerID != nil {
		req.OrderRef = fmt.Sprintf("User-%s", *req.Card.CustomerID)
	}
	return e.CreateProfile(ctx, req)
}

// storeProfileDetails records the card summary from a settled profile
// authorization and reconciles the stored card against the freshly created
// recurring detail.
func (e *Engine) storeProfileDetails(ctx context.Context, src card.StoredCard, shopperReference string, resp adyen.Response) error {
	lastDigits := resp.AdditionalData["cardSummary"]
	if lastDigits == "" && e.policy.ProfilesSupported {
		return fmt.Errorf("%w: request last digits to be sent back to support payment profiles", ErrMissingCardSummary)
	}
	if lastDigits != "" {
		src.LastDigits = lastDigits
	}

	if err := e.reconciler.Reconcile(ctx, src, shopperReference); err != nil {
		e.logger.Error("contract refresh after profile creation failed",
			slog.String("card_id", src.ID),
			slog.String("shopper_reference", shopperReference),
			slog.Any("error", err))
	}
	return nil
}
