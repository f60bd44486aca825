// ABOUTME: Session service driving the pricing wizard lifecycle
// ABOUTME: Creates sessions, runs calculations behind the margin gate, and advances state

package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/beyondskool/pricing-wizard/backend/cache"
	"github.com/beyondskool/pricing-wizard/backend/models"
)

// SessionService owns all mutation of pricing sessions. Handlers and the
// CLI talk to sessions exclusively through it, so state transitions happen
// in exactly one place.
type SessionService struct {
	store      *cache.Store
	staffing   *StaffingCalculator
	pricing    *PricingCalculator
	commercial *CommercialCalculator
}

// NewSessionService creates a new session service backed by the given store
func NewSessionService(store *cache.Store) *SessionService {
	return &SessionService{
		store:      store,
		staffing:   NewStaffingCalculator(),
		pricing:    NewPricingCalculator(),
		commercial: NewCommercialCalculator(),
	}
}

// Create opens a new pricing session in the collecting state.
func (s *SessionService) Create(input models.CreateSessionInput) (*models.PricingSession, error) {
	if err := ValidateSchoolName(input.SchoolName); err != nil {
		return nil, err
	}
	if err := ValidateEmail("requester_email", input.RequesterEmail); err != nil {
		return nil, err
	}
	if err := ValidateEmail("school_email", input.SchoolEmail); err != nil {
		return nil, err
	}

	session := &models.PricingSession{
		ID:             uuid.NewString(),
		SchoolName:     input.SchoolName,
		RequesterEmail: input.RequesterEmail,
		SchoolEmail:    input.SchoolEmail,
		State:          models.StateCollecting,
		Policy:         models.OperatingPolicy{DaysPerWeek: 5},
		CreatedAt:      time.Now(),
	}
	s.store.Put(session)
	return session, nil
}

// Get retrieves a session by ID.
func (s *SessionService) Get(id string) (*models.PricingSession, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	return session, nil
}

// Calculate runs the full pricing computation for the given selections and
// snapshots the result onto the session. The margin gate sits at the end:
// when the aggregate gross margin falls below the floor, no results are
// kept, the session drops back to collecting, and a MarginError is
// returned so the operator can retry with different inputs.
//
// Recalculating an already-calculated session is allowed; the new snapshot
// replaces the old one.
func (s *SessionService) Calculate(id string, input models.CalculateInput) (*models.PricingSession, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if session.State == models.StateConfirmed || session.State == models.StateDelivered {
		return nil, fmt.Errorf("%w: session is already %s, recalculation is closed", models.ErrInvalidState, session.State)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	policy := models.OperatingPolicy{DaysPerWeek: input.DaysPerWeek}
	maxSections := policy.MaxSectionsPerTeacher()

	quotes := make([]models.ProgramQuote, 0, len(input.Programs))
	totalStudents := 0
	totalCost := 0
	totalFinalPrice := 0.0

	for _, sel := range input.Programs {
		staffing, err := s.staffing.Compute(sel.Students, sel.SectionSize, maxSections)
		if err != nil {
			return nil, err
		}
		breakdown := s.pricing.ComputeCost(sel.Program, staffing, sel.Students, input.DiscountPercent)

		quotes = append(quotes, models.ProgramQuote{
			Selection: sel,
			Staffing:  staffing,
			Breakdown: breakdown,
		})
		totalStudents += sel.Students
		totalCost += breakdown.TotalProgramCost
		totalFinalPrice += breakdown.FinalPrice
	}

	margin, err := s.pricing.GrossMargin(totalCost, totalFinalPrice)
	if err != nil {
		return nil, err
	}
	if !s.pricing.MarginPasses(margin) {
		session.State = models.StateCollecting
		session.Quotes = nil
		session.Summary = nil
		session.Commercial = nil
		s.store.Put(session)
		return nil, &models.MarginError{GrossMarginPercent: margin}
	}

	// The commercial split works on the rounded per-student price, the same
	// figure quoted in the agreement document.
	for i := range quotes {
		quotes[i].Commercial = s.commercial.Split(
			quotes[i].Selection.Program,
			quotes[i].Breakdown.DisplayPricePerStudent(),
		)
	}
	commercialSummary := s.commercial.Summarize(quotes)

	now := time.Now()
	session.Programs = input.Programs
	session.Policy = policy
	session.DiscountPercent = input.DiscountPercent
	session.Quotes = quotes
	session.Summary = &models.PricingSummary{
		TotalStudents:          totalStudents,
		TotalCost:              totalCost,
		TotalFinalPrice:        totalFinalPrice,
		GrossMarginPercent:     margin,
		MarginPassed:           true,
		AveragePricePerStudent: roundToInt(totalFinalPrice / float64(totalStudents)),
		DisplayTotalFinalPrice: roundToInt(totalFinalPrice),
	}
	session.Commercial = &commercialSummary
	session.State = models.StateCalculated
	session.CalculatedAt = &now
	s.store.Put(session)

	return session, nil
}

// Confirm freezes a calculated session so the agreement can be generated.
func (s *SessionService) Confirm(id string) (*models.PricingSession, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if session.State != models.StateCalculated {
		return nil, fmt.Errorf("%w: cannot confirm a session in state %s", models.ErrInvalidState, session.State)
	}

	now := time.Now()
	session.State = models.StateConfirmed
	session.ConfirmedAt = &now
	s.store.Put(session)
	return session, nil
}

// MarkDelivered records a successful agreement dispatch. Delivered sessions
// remain eligible for re-download and send retries.
func (s *SessionService) MarkDelivered(id string) (*models.PricingSession, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !session.DocumentReady() {
		return nil, fmt.Errorf("%w: cannot mark a %s session delivered", models.ErrInvalidState, session.State)
	}

	now := time.Now()
	session.State = models.StateDelivered
	session.DeliveredAt = &now
	s.store.Put(session)
	return session, nil
}
