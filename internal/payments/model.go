package payments

import "time"

// Payment statuses. Asynchronous notifications move a payment forward;
// terminal states never regress.
const (
	StatusPending    = "pending"
	StatusAuthorized = "authorized"
	StatusCaptured   = "captured"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
	StatusFailed     = "failed"
)

// Payment is the stored record of one authorization attempt against the
// processor. PspReference is the processor's transaction reference and the
// key notifications use to find the record.
type Payment struct {
	ID           string
	OrderRef     string
	PspReference string
	Status       string
	AmountCents  int64
	Currency     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
