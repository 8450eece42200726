package card

import "fmt"

// Fingerprint is the derived identity of a card used to match locally stored
// records against the processor's recurring-detail list. Two fingerprints are
// equal only when all four fields match exactly; there is no fuzzy matching.
type Fingerprint struct {
	LastDigits string
	Month      int
	Year       int
	Brand      string
}

// Equal reports whether both fingerprints identify the same card.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f == other
}

// String renders a masked representation safe for logs.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%s ****%s %02d/%d", f.Brand, f.LastDigits, f.Month, f.Year)
}
