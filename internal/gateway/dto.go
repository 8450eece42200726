package gateway

// ShopperRequest carries buyer identification on payment API calls.
// Reference is the shopper's document number.
type ShopperRequest struct {
	Reference string `json:"reference"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IP        string `json:"ip"`
	Telephone string `json:"telephone"`
}

// CardRequest carries raw card data for first-time authorizations and
// profile creation. Never persisted.
type CardRequest struct {
	HolderName string `json:"holder_name"`
	Number     string `json:"number"`
	CVC        string `json:"cvc"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Brand      string `json:"brand"`
}

// AuthorizeAPIRequest is the JSON body of POST /payments/authorize. Either
// CardID references a stored card or Card submits fresh card data.
type AuthorizeAPIRequest struct {
	OrderRef     string         `json:"order_ref"`
	AmountCents  int64          `json:"amount_cents"`
	Currency     string         `json:"currency"`
	Installments int            `json:"installments"`
	UseOneClick  bool           `json:"use_one_click"`
	CVC          string         `json:"cvc"`
	CardID       string         `json:"card_id"`
	CustomerID   string         `json:"customer_id"`
	Card         *CardRequest   `json:"card"`
	Shopper      ShopperRequest `json:"shopper"`
}

// ModificationRequest is the JSON body of capture and refund calls.
type ModificationRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// ProfileAPIRequest is the JSON body of POST /profiles.
type ProfileAPIRequest struct {
	OrderRef     string         `json:"order_ref"`
	AmountCents  int64          `json:"amount_cents"`
	Currency     string         `json:"currency"`
	Installments int            `json:"installments"`
	CardID       string         `json:"card_id"`
	CustomerID   string         `json:"customer_id"`
	Card         *CardRequest   `json:"card"`
	Shopper      ShopperRequest `json:"shopper"`
}

// OutcomeResponse is the API projection of an Outcome.
type OutcomeResponse struct {
	Success       bool   `json:"success"`
	Authorization string `json:"authorization,omitempty"`
	ResultCode    string `json:"result_code,omitempty"`
	RefusalReason string `json:"refusal_reason,omitempty"`
	Enrolled3DS   bool   `json:"enrolled_3ds,omitempty"`
	PaymentID     string `json:"payment_id,omitempty"`
	CardID        string `json:"card_id,omitempty"`
}

func toResponse(o Outcome) OutcomeResponse {
	return OutcomeResponse{
		Success:       o.Success,
		Authorization: o.Authorization,
		ResultCode:    o.ResultCode,
		RefusalReason: o.RefusalReason,
		Enrolled3DS:   o.Enrolled3DS,
	}
}
