package notifications

import "time"

// Processor event codes this integration reacts to. Anything else is stored
// and acknowledged but triggers no transition.
const (
	EventAuthorisation = "AUTHORISATION"
	EventCapture       = "CAPTURE"
	EventCancellation  = "CANCELLATION"
	EventRefund        = "REFUND"
)

// Notification is one asynchronous payment-status event delivered by the
// processor. Delivery is at-least-once; the (psp_reference, event_code,
// success) triple is the uniqueness key.
type Notification struct {
	ID                string
	EventCode         string
	PspReference      string
	OriginalReference string
	MerchantReference string
	Success           bool
	Reason            string
	AmountCents       int64
	Currency          string
	RawParams         map[string]string
	ReceivedAt        time.Time
	ProcessedAt       *time.Time
}
