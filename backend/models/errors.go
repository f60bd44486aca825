// ABOUTME: Error taxonomy for the pricing service
// ABOUTME: Sentinel errors wrapped with context, matched via errors.Is at the API boundary

package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks out-of-range enrollment figures or an empty
	// program selection. Reported to the operator, no state change.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState marks an operation attempted out of sequence, such as
	// confirming before calculating, or a margin computation with zero total
	// price.
	ErrInvalidState = errors.New("invalid state")

	// ErrMarginTooLow is a business refusal, not a software fault: gross
	// margin across the selected programs fell below the floor. Recoverable
	// by changing inputs or discount and recomputing.
	ErrMarginTooLow = errors.New("gross margin below floor, no pricing can be offered")

	// ErrDeliveryFailure wraps transport or auth errors during mail send.
	// The session stays confirmed and the send may be retried.
	ErrDeliveryFailure = errors.New("mail delivery failed")

	// ErrSessionNotFound marks an unknown or expired session ID.
	ErrSessionNotFound = errors.New("session not found")
)

// MarginError carries the computed gross margin alongside the refusal so
// the operator can see how far below the floor the configuration landed.
type MarginError struct {
	GrossMarginPercent float64
}

func (e *MarginError) Error() string {
	return fmt.Sprintf("%s: gross margin %.1f%% is below the %.0f%% floor",
		ErrMarginTooLow.Error(), e.GrossMarginPercent, MarginFloorPercent)
}

func (e *MarginError) Unwrap() error {
	return ErrMarginTooLow
}
