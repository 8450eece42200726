// Package adyen defines the boundary to the remote payment processor. The
// service consumes this interface; the HTTP transport behind it (TLS,
// signing, SOAP envelopes) lives outside this repository.
package adyen

import (
	"context"

	"github.com/petlove/spree-adyen/internal/card"
)

// Amount is a monetary value in minor units.
type Amount struct {
	Currency string
	Value    int64
}

// Name splits a shopper name the way the processor expects it.
type Name struct {
	First string
	Last  string
}

// Address carries the address fields boleto payments require in place of
// card data.
type Address struct {
	Street      string
	HouseNumber string
	City        string
	State       string
	PostalCode  string
	Country     string
}

// Shopper identifies the buyer on an authorization request. Reference is the
// shopper's document number for this integration and doubles as the key for
// the processor's recurring-detail list.
type Shopper struct {
	Reference            string
	Email                string
	Name                 Name
	IP                   string
	Statement            string
	SocialSecurityNumber string
	TelephoneNumber      string
	BillingAddress       *Address
	ShippingAddress      *Address
}

// Card is the raw card payload for a first-time authorization. Never
// persisted locally.
type Card struct {
	HolderName  string
	Number      string
	CVC         string
	ExpiryMonth int
	ExpiryYear  int
}

// BrowserInfo is forwarded on 3-D Secure eligible authorizations.
type BrowserInfo struct {
	AcceptHeader string
	UserAgent    string
}

// AuthoriseOptions tune a single authorization call.
type AuthoriseOptions struct {
	Recurring    bool
	Installments int
	BrowserInfo  *BrowserInfo
}

// Response is the processor's answer to any payment operation.
//
// Success is the processor's own boolean verdict. RefusalReasonRaw carries
// the untranslated acquirer text; the gateway layers a secondary settled
// check on top of it.
type Response struct {
	Success          bool
	PspReference     string
	ResultCode       string
	RefusalReason    string
	RefusalReasonRaw string
	FaultCode        string
	FaultMessage     string
	AdditionalData   map[string]string
	Enrolled3DS      bool
}

// RecurringDetail is one entry of the processor's canonical recurring-detail
// list for a shopper. Transient; only used to refresh local card rows.
type RecurringDetail struct {
	Fingerprint              card.Fingerprint
	HolderName               string
	RecurringDetailReference string
}

// Client is the consumed processor interface. Calls block on network I/O;
// callers apply their own timeout wrapping through ctx.
type Client interface {
	AuthorizeRaw(ctx context.Context, reference string, amount Amount, shopper Shopper, c Card, opts AuthoriseOptions) (Response, error)
	AuthorizeRecurring(ctx context.Context, reference string, amount Amount, shopper Shopper, profileID string, opts AuthoriseOptions) (Response, error)
	AuthorizeOneClick(ctx context.Context, reference string, amount Amount, shopper Shopper, cvc, profileID string, opts AuthoriseOptions) (Response, error)
	Capture(ctx context.Context, pspReference string, amount Amount) (Response, error)
	Cancel(ctx context.Context, pspReference string) (Response, error)
	Refund(ctx context.Context, pspReference string, amount Amount) (Response, error)
	ListRecurringDetails(ctx context.Context, shopperReference string) ([]RecurringDetail, error)
	DisableRecurringContract(ctx context.Context, shopperReference, profileID string) (Response, error)
}
