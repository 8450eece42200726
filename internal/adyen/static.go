package adyen

import (
	"context"

	"github.com/google/uuid"
)

const approvedRawReason = "Transacao autorizada"

// StaticClient simulates an approving processor. It stands in for the real
// transport in development and wiring tests.
type StaticClient struct{}

func approved() Response {
	return Response{
		Success:          true,
		PspReference:     uuid.NewString(),
		ResultCode:       "Authorised",
		RefusalReasonRaw: approvedRawReason,
		AdditionalData:   map[string]string{},
	}
}

// AuthorizeRaw approves the authorization with a synthetic reference.
func (StaticClient) AuthorizeRaw(_ context.Context, _ string, _ Amount, _ Shopper, c Card, _ AuthoriseOptions) (Response, error) {
	resp := approved()
	if n := len(c.Number); n >= 4 {
		resp.AdditionalData["cardSummary"] = c.Number[n-4:]
	}
	return resp, nil
}

// AuthorizeRecurring approves the token authorization.
func (StaticClient) AuthorizeRecurring(_ context.Context, _ string, _ Amount, _ Shopper, _ string, _ AuthoriseOptions) (Response, error) {
	return approved(), nil
}

// AuthorizeOneClick approves the one-click authorization.
func (StaticClient) AuthorizeOneClick(_ context.Context, _ string, _ Amount, _ Shopper, _, _ string, _ AuthoriseOptions) (Response, error) {
	return approved(), nil
}

// Capture approves the capture.
func (StaticClient) Capture(_ context.Context, _ string, _ Amount) (Response, error) {
	return approved(), nil
}

// Cancel approves the void.
func (StaticClient) Cancel(_ context.Context, _ string) (Response, error) {
	return approved(), nil
}

// Refund approves the refund.
func (StaticClient) Refund(_ context.Context, _ string, _ Amount) (Response, error) {
	return approved(), nil
}

// ListRecurringDetails returns an empty list; the stub keeps no contracts.
func (StaticClient) ListRecurringDetails(_ context.Context, _ string) ([]RecurringDetail, error) {
	return nil, nil
}

// DisableRecurringContract approves the disable request.
func (StaticClient) DisableRecurringContract(_ context.Context, _, _ string) (Response, error) {
	return approved(), nil
}
