package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrRecurringDetailsNotFound occurs when the processor has no recurring
	// detail matching a local card. Recoverable: authorization call sites log
	// and continue, only the profile-creation flow decides otherwise.
	ErrRecurringDetailsNotFound = errors.New("recurring details not found")

	// ErrMissingCardSummary indicates the processor omitted the card summary
	// (last digits) that profile storage requires.
	ErrMissingCardSummary = errors.New("authorization response is missing card summary")
)

// Error is a fatal gateway fault for the current operation: a policy
// violation, an unexpected processor error, or a failed contract disable.
// Processor refusals are never an Error; they surface as an unsuccessful
// Outcome.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }
