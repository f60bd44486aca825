// ABOUTME: Tests for the agreement document renderer
// ABOUTME: Validates PDF output, filename derivation, and state guards

package services

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/beyondskool/pricing-wizard/backend/cache"
	"github.com/beyondskool/pricing-wizard/backend/models"
)

func confirmedSession(t *testing.T) *models.PricingSession {
	t.Helper()
	svc := NewSessionService(cache.New(time.Minute))
	session, err := svc.Create(validCreateInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Calculate(session.ID, validCalculateInput()); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	confirmed, err := svc.Confirm(session.ID)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	return confirmed
}

func TestRender_ProducesPDF(t *testing.T) {
	renderer := NewDocumentRenderer("testdata/missing-logo.png")
	session := confirmedSession(t)

	pdf, err := renderer.Render(session)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("Expected output to start with the PDF magic bytes")
	}
	if len(pdf) < 1000 {
		t.Errorf("Expected a substantial document, got %d bytes", len(pdf))
	}
}

func TestRender_MissingLogoDegrades(t *testing.T) {
	// A missing letterhead logo must not fail the render.
	renderer := NewDocumentRenderer("/nonexistent/logo.png")
	session := confirmedSession(t)

	if _, err := renderer.Render(session); err != nil {
		t.Errorf("Expected render without logo to succeed, got %v", err)
	}
}

func TestRender_RequiresCalculatedPricing(t *testing.T) {
	renderer := NewDocumentRenderer("")

	_, err := renderer.Render(&models.PricingSession{State: models.StateCollecting})
	if !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState, got %v", err)
	}
}

func TestFilename_SanitizesSchoolName(t *testing.T) {
	tests := []struct {
		name   string
		school string
		want   string
	}{
		{"simple name", "Greenwood High", "Greenwood_High_Agreement.pdf"},
		{"punctuation collapsed", "St. Mary's / Annex #2", "St._Mary_s_Annex_2_Agreement.pdf"},
		{"leading and trailing runs trimmed", "  ***Hillside***  ", "Hillside_Agreement.pdf"},
		{"nothing printable", "///", "School_Agreement.pdf"},
	}

	renderer := NewDocumentRenderer("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderer.Filename(tt.school)
			if got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.school, got, tt.want)
			}
		})
	}
}

func TestAmountInWords(t *testing.T) {
	got := amountInWords(1013333)
	if got == "" || got == "Rupees  only" {
		t.Errorf("Expected a spelled-out amount, got %q", got)
	}
}
