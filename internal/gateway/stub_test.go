package gateway

import (
	"context"

	"github.com/petlove/spree-adyen/internal/adyen"
	"github.com/petlove/spree-adyen/internal/card"
)

// stubClient records processor calls and replays canned responses.
type stubClient struct {
	authorizeResp adyen.Response
	authorizeErr  error
	captureResp   adyen.Response
	refundResp    adyen.Response
	cancelResp    adyen.Response
	disableResp   adyen.Response
	details       []adyen.RecurringDetail
	listErr       error

	rawCalls       int
	recurringCalls int
	oneClickCalls  int
	listCalls      int
	disableCalls   int

	lastCVC       string
	lastProfileID string
	lastReference string
}

func settledResponse(pspRef string) adyen.Response {
	return adyen.Response{
		Success:          true,
		PspReference:     pspRef,
		ResultCode:       "Authorised",
		RefusalReasonRaw: "Transacao autorizada",
		AdditionalData:   map[string]string{},
	}
}

func (s *stubClient) AuthorizeRaw(_ context.Context, reference string, _ adyen.Amount, _ adyen.Shopper, _ adyen.Card, _ adyen.AuthoriseOptions) (adyen.Response, error) {
	s.rawCalls++
	s.lastReference = reference
	return s.authorizeResp, s.authorizeErr
}

func (s *stubClient) AuthorizeRecurring(_ context.Context, reference string, _ adyen.Amount, _ adyen.Shopper, profileID string, _ adyen.AuthoriseOptions) (adyen.Response, error) {
	s.recurringCalls++
	s.lastReference = reference
	s.lastProfileID = profileID
	return s.authorizeResp, s.authorizeErr
}

func (s *stubClient) AuthorizeOneClick(_ context.Context, reference string, _ adyen.Amount, _ adyen.Shopper, cvc, profileID string, _ adyen.AuthoriseOptions) (adyen.Response, error) {
	s.oneClickCalls++
	s.lastReference = reference
	s.lastCVC = cvc
	s.lastProfileID = profileID
	return s.authorizeResp, s.authorizeErr
}

func (s *stubClient) Capture(_ context.Context, _ string, _ adyen.Amount) (adyen.Response, error) {
	return s.captureResp, nil
}

func (s *stubClient) Cancel(_ context.Context, _ string) (adyen.Response, error) {
	return s.cancelResp, nil
}

func (s *stubClient) Refund(_ context.Context, _ string, _ adyen.Amount) (adyen.Response, error) {
	return s.refundResp, nil
}

func (s *stubClient) ListRecurringDetails(_ context.Context, _ string) ([]adyen.RecurringDetail, error) {
	s.listCalls++
	return s.details, s.listErr
}

func (s *stubClient) DisableRecurringContract(_ context.Context, _, profileID string) (adyen.Response, error) {
	s.disableCalls++
	s.lastProfileID = profileID
	return s.disableResp, nil
}

func (s *stubClient) totalAuthorizeCalls() int {
	return s.rawCalls + s.recurringCalls + s.oneClickCalls
}

func strPtr(v string) *string { return &v }

func visaCard(id string, customerID, profileID *string) card.StoredCard {
	return card.StoredCard{
		ID:               id,
		CustomerID:       customerID,
		Name:             "J Doe",
		LastDigits:       "1111",
		Month:            12,
		Year:             2025,
		Brand:            "visa",
		GatewayProfileID: profileID,
	}
}

func visaDetail(profileID string) adyen.RecurringDetail {
	return adyen.RecurringDetail{
		Fingerprint: card.Fingerprint{
			LastDigits: "1111",
			Month:      12,
			Year:       2025,
			Brand:      "visa",
		},
		HolderName:               "J Doe",
		RecurringDetailReference: profileID,
	}
}
