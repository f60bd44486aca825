// ABOUTME: API request and response payloads for the pricing endpoints
// ABOUTME: JSON-serializable structures shared by handlers and the CLI client

package models

import "fmt"

// CreateSessionInput opens a new pricing session for a school.
type CreateSessionInput struct {
	SchoolName     string `json:"school_name"`
	RequesterEmail string `json:"requester_email"`
	SchoolEmail    string `json:"school_email"`
}

// CalculateInput carries the program selections, operating policy, and
// discount for a calculate action. Programs keep their selection order;
// breakdowns are produced in the same order.
type CalculateInput struct {
	Programs        []ProgramSelection `json:"programs"`
	DaysPerWeek     int                `json:"days_per_week"`
	DiscountPercent int                `json:"discount_percent"`
}

// Validate checks the calculate payload: at least one program, no duplicate
// selections, valid enrollment figures, a supported school week, and a
// discount inside the offered range.
func (in CalculateInput) Validate() error {
	if len(in.Programs) == 0 {
		return fmt.Errorf("%w: at least one program must be selected", ErrInvalidInput)
	}
	seen := make(map[Program]bool, len(in.Programs))
	for _, sel := range in.Programs {
		if err := sel.Validate(); err != nil {
			return err
		}
		if seen[sel.Program] {
			return fmt.Errorf("%w: program %s selected twice", ErrInvalidInput, sel.Program)
		}
		seen[sel.Program] = true
	}
	if err := (OperatingPolicy{DaysPerWeek: in.DaysPerWeek}).Validate(); err != nil {
		return err
	}
	if in.DiscountPercent < 0 || in.DiscountPercent > 40 {
		return fmt.Errorf("%w: discount must be between 0 and 40 percent, got %d", ErrInvalidInput, in.DiscountPercent)
	}
	return nil
}

// SendInput optionally overrides the mail recipients for a send action.
// Empty fields fall back to the session's requester and school addresses.
type SendInput struct {
	To string `json:"to,omitempty"`
	Cc string `json:"cc,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`

	// GrossMarginPercent accompanies margin refusals so the operator can see
	// how far below the floor the configuration landed.
	GrossMarginPercent *float64 `json:"gross_margin_percent,omitempty"`
}
