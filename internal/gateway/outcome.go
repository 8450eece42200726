package gateway

import (
	"fmt"
	"strings"

	"github.com/petlove/spree-adyen/internal/adyen"
)

// Outcome is the uniform result of any processor operation. A refusal is a
// business decline, not an error: Success is false and ResultCode plus
// RefusalReason describe it.
type Outcome struct {
	Success        bool
	Authorization  string
	ResultCode     string
	RefusalReason  string
	AVSResult      string
	CVVResult      string
	AdditionalData map[string]string
	Enrolled3DS    bool
}

// settledMarker is the acquirer's literal "transaction authorised" text.
// The processor can report Success before the transaction is final; only
// responses carrying this marker in the raw refusal reason are settled
// enough to create profiles or refresh contracts. Locale-specific and
// fragile, so it lives behind transactionAuthorised alone.
const settledMarker = "Transacao autorizada"

// transactionAuthorised is the secondary settled check layered on top of the
// processor's Success flag.
func transactionAuthorised(resp adyen.Response) bool {
	return strings.Contains(resp.RefusalReasonRaw, settledMarker)
}

// normalizeSuccess maps a successful processor response. AVS and CVV results
// stay empty: this integration's processor does not return them.
func normalizeSuccess(resp adyen.Response) Outcome {
	return Outcome{
		Success:        true,
		Authorization:  resp.PspReference,
		ResultCode:     resp.ResultCode,
		AdditionalData: resp.AdditionalData,
	}
}

// normalizeFailure maps a refusal into display form. A 3-D Secure enrollment
// is not a hard decline; Enrolled3DS lets the caller branch into a step-up
// flow.
func normalizeFailure(resp adyen.Response) Outcome {
	return Outcome{
		Success:        false,
		ResultCode:     resp.ResultCode,
		RefusalReason:  fmt.Sprintf("%s - %s", resp.ResultCode, resp.RefusalReason),
		AdditionalData: resp.AdditionalData,
		Enrolled3DS:    resp.Enrolled3DS,
	}
}

// normalizeRefundFailure keeps the bare refusal reason, matching how refund
// declines are reported upstream.
func normalizeRefundFailure(resp adyen.Response) Outcome {
	return Outcome{
		Success:        false,
		ResultCode:     resp.ResultCode,
		RefusalReason:  resp.RefusalReason,
		AdditionalData: resp.AdditionalData,
	}
}

// gatewayMessage extracts the most specific failure text for fatal errors:
// fault code, then fault message, then refusal reason.
func gatewayMessage(resp adyen.Response) string {
	if resp.FaultCode != "" {
		return resp.FaultCode
	}
	if resp.FaultMessage != "" {
		return resp.FaultMessage
	}
	return resp.RefusalReason
}
