// ABOUTME: Pricing session model with explicit wizard lifecycle states
// ABOUTME: Collecting -> Calculated -> Confirmed -> Delivered, no ambient globals

package models

import "time"

// SessionState is the wizard lifecycle stage of a pricing session.
type SessionState string

const (
	// StateCollecting accepts school details and program selections.
	StateCollecting SessionState = "collecting"
	// StateCalculated holds computed breakdowns behind a passed margin gate.
	StateCalculated SessionState = "calculated"
	// StateConfirmed unlocks document generation and mail dispatch.
	StateConfirmed SessionState = "confirmed"
	// StateDelivered marks that the agreement document has been produced.
	StateDelivered SessionState = "delivered"
)

// PricingSession is the explicit value holding one in-progress pricing
// conversation with a school. All mutation happens through the session
// service; the struct carries no behavior beyond state queries.
type PricingSession struct {
	ID             string       `json:"id"`
	SchoolName     string       `json:"school_name"`
	RequesterEmail string       `json:"requester_email"`
	SchoolEmail    string       `json:"school_email"`
	State          SessionState `json:"state"`

	// Snapshotted at calculate time; later input edits do not leak into an
	// existing snapshot.
	Programs        []ProgramSelection `json:"programs,omitempty"`
	Policy          OperatingPolicy    `json:"policy"`
	DiscountPercent int                `json:"discount_percent"`

	// Computed results, present from StateCalculated onward.
	Quotes     []ProgramQuote     `json:"quotes,omitempty"`
	Summary    *PricingSummary    `json:"summary,omitempty"`
	Commercial *CommercialSummary `json:"commercial,omitempty"`

	CreatedAt    time.Time  `json:"created_at"`
	CalculatedAt *time.Time `json:"calculated_at,omitempty"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
}

// Calculated reports whether the session holds computed breakdowns that
// passed the margin gate.
func (s *PricingSession) Calculated() bool {
	return s.State == StateCalculated || s.State == StateConfirmed || s.State == StateDelivered
}

// DocumentReady reports whether the agreement document may be generated or
// sent. Delivered sessions stay eligible for re-download and send retries.
func (s *PricingSession) DocumentReady() bool {
	return s.State == StateConfirmed || s.State == StateDelivered
}
