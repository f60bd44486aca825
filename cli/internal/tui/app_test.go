// ABOUTME: Integration tests for TUI app
// ABOUTME: Tests component wiring and state transitions

package tui

import (
	"strings"
	"testing"

	"github.com/beyondskool/pricing-wizard/cli/internal/client"
	"github.com/beyondskool/pricing-wizard/cli/internal/tui/menu"
	"github.com/beyondskool/pricing-wizard/cli/internal/tui/wizard"
)

func pricedSession() *client.Session {
	return &client.Session{
		ID:             "abc-123",
		SchoolName:     "Greenwood High",
		RequesterEmail: "rep@beyondskool.com",
		SchoolEmail:    "principal@greenwood.edu",
		State:          "calculated",
		Quotes: []client.ProgramQuote{{
			Selection: client.ProgramSelection{Program: "Communication", Students: 600, SectionSize: 30},
			Staffing: client.StaffingResult{
				Sections:         20,
				FullTimeTeachers: 1,
			},
			Breakdown: client.CostBreakdown{
				TotalProgramCost: 608000,
				FinalPrice:       1013333.33,
				PricePerStudent:  1688.89,
			},
			Commercial: client.CommercialLine{Program: "Communication", BookPrice: 1200, ServiceFee: 489, GST: 88},
		}},
		Summary: &client.PricingSummary{
			TotalStudents:          600,
			TotalCost:              608000,
			GrossMarginPercent:     40.0,
			MarginPassed:           true,
			AveragePricePerStudent: 1689,
			DisplayTotalFinalPrice: 1013333,
		},
		Commercial: &client.CommercialSummary{
			TotalBookCost:   1200,
			TotalServiceFee: 489,
			TotalGST:        88,
			TotalPayable:    1777,
		},
	}
}

func TestAppInitialState(t *testing.T) {
	c := client.New("http://localhost:8080")
	app := New(c, false, ".")

	if app.screen != ScreenMenu {
		t.Errorf("expected initial screen to be ScreenMenu, got %d", app.screen)
	}
	if app.menu == nil {
		t.Error("expected menu to be initialized")
	}
}

func TestScreenConstants(t *testing.T) {
	// Verify screen constants are defined correctly
	if ScreenMenu != 0 {
		t.Errorf("expected ScreenMenu to be 0, got %d", ScreenMenu)
	}
	if ScreenWizard != 1 {
		t.Errorf("expected ScreenWizard to be 1, got %d", ScreenWizard)
	}
	if ScreenSummary != 2 {
		t.Errorf("expected ScreenSummary to be 2, got %d", ScreenSummary)
	}
}

func TestAppMenuActionStartsWizard(t *testing.T) {
	c := client.New("http://localhost:8080")
	app := New(c, false, ".")
	app.width = 100
	app.height = 40

	updated, _ := app.Update(menu.ActionSelectedMsg{Action: menu.ActionNewQuote})

	result := updated.(*App)
	if result.screen != ScreenWizard {
		t.Errorf("expected screen to be ScreenWizard, got %d", result.screen)
	}
	if result.wizardScreen == nil {
		t.Error("expected wizard to be created")
	}
}

func TestAppWizardCancelReturnsToMenu(t *testing.T) {
	c := client.New("http://localhost:8080")
	app := New(c, false, ".")
	app.Update(menu.ActionSelectedMsg{Action: menu.ActionNewQuote})

	updated, _ := app.Update(wizard.WizardCancelledMsg{})

	result := updated.(*App)
	if result.screen != ScreenMenu {
		t.Errorf("expected screen back at ScreenMenu, got %d", result.screen)
	}
	if result.wizardScreen != nil {
		t.Error("expected wizard to be discarded")
	}
}

func TestAppQuotePreparedMsg(t *testing.T) {
	c := client.New("http://localhost:8080")
	app := New(c, false, ".")
	app.width = 100
	app.height = 40
	app.busy = true

	session := pricedSession()
	updated, _ := app.Update(quotePreparedMsg{session: session})

	result := updated.(*App)
	if result.screen != ScreenSummary {
		t.Errorf("expected screen to be ScreenSummary, got %d", result.screen)
	}
	if result.session != session {
		t.Error("expected session to be set")
	}
	if result.busy {
		t.Error("expected busy flag cleared")
	}
}

func TestAppMarginRefusal(t *testing.T) {
	c := client.New("http://localhost:8080")
	app := New(c, false, ".")
	app.width = 100
	app.height = 40

	margin := 12.5
	refusal := &client.APIError{StatusCode: 422, Message: "margin too low", GrossMarginPercent: &margin}
	updated, _ := app.Update(quotePreparedMsg{refusal: refusal})

	result := updated.(*App)
	view := result.View()
	if !strings.Contains(view, "No pricing can be offered") {
		t.Error("expected refusal notice in summary view")
	}
	if !strings.Contains(view, "12.50%") {
		t.Error("expected computed margin in refusal notice")
	}
}

func TestAppSummaryView(t *testing.T) {
	c := client.New("http://localhost:8080")
	app := New(c, false, ".")
	app.width = 100
	app.height = 40
	app.screen = ScreenSummary
	app.session = pricedSession()

	view := app.View()

	if !strings.Contains(view, "Greenwood High") {
		t.Error("expected school name in summary view")
	}
	if !strings.Contains(view, "Communication") {
		t.Error("expected program name in summary view")
	}
	if !strings.Contains(view, "Rs.1013333") {
		t.Error("expected total price in summary view")
	}
	if !strings.Contains(view, "40.00%") {
		t.Error("expected gross margin in summary view")
	}
	// Calculated sessions offer confirmation in the footer
	if !strings.Contains(view, "Confirm") {
		t.Error("expected Confirm shortcut for calculated session")
	}
}

func TestAppSummaryShortcutsFollowState(t *testing.T) {
	c := client.New("http://localhost:8080")
	app := New(c, true, ".")
	app.screen = ScreenSummary
	app.session = pricedSession()

	shortcuts := strings.Join(app.summaryShortcuts(), " ")
	if !strings.Contains(shortcuts, "c Confirm") {
		t.Error("expected confirm shortcut while calculated")
	}
	if strings.Contains(shortcuts, "Save agreement") {
		t.Error("save should not be offered before confirmation")
	}

	app.session.State = "confirmed"
	shortcuts = strings.Join(app.summaryShortcuts(), " ")
	if !strings.Contains(shortcuts, "d Save agreement") {
		t.Error("expected save shortcut after confirmation")
	}
	if !strings.Contains(shortcuts, "s Send") {
		t.Error("expected send shortcut with mail configured")
	}
}

func TestAppSendHiddenWhenMailUnconfigured(t *testing.T) {
	c := client.New("http://localhost:8080")
	app := New(c, false, ".")
	app.screen = ScreenSummary
	app.session = pricedSession()
	app.session.State = "confirmed"

	shortcuts := strings.Join(app.summaryShortcuts(), " ")
	if strings.Contains(shortcuts, "s Send") {
		t.Error("send shortcut should be hidden when mail is not configured")
	}
}

func TestAppAgreementSavedMsg(t *testing.T) {
	c := client.New("http://localhost:8080")
	app := New(c, false, ".")
	app.width = 100
	app.height = 40
	app.screen = ScreenSummary
	app.session = pricedSession()
	app.session.State = "confirmed"
	app.busy = true

	updated, _ := app.Update(agreementSavedMsg{path: "Greenwood_High_Agreement.pdf"})

	result := updated.(*App)
	if result.session.State != "delivered" {
		t.Errorf("expected state delivered after save, got %s", result.session.State)
	}
	view := result.View()
	if !strings.Contains(view, "Agreement saved to Greenwood_High_Agreement.pdf") {
		t.Error("expected saved path in summary view")
	}
}

func TestAppViewReturnsContent(t *testing.T) {
	c := client.New("http://localhost:8080")
	app := New(c, false, ".")
	app.width = 100
	app.height = 40

	// Menu view should contain the app title in the header
	view := app.View()
	if !strings.Contains(view, "BeyondSkool Pricing Wizard") {
		t.Error("expected header to contain 'BeyondSkool Pricing Wizard'")
	}
	if !strings.Contains(view, "New pricing quote") {
		t.Error("expected menu to offer a new pricing quote")
	}
}
