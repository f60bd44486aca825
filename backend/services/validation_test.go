// ABOUTME: Tests for session input validation
// ABOUTME: Validates email parsing, school names, and log sanitization

package services

import (
	"errors"
	"testing"

	"github.com/beyondskool/pricing-wizard/backend/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"plain address", "creator@beyondskool.example", false},
		{"address with plus tag", "creator+quotes@beyondskool.example", false},
		{"missing domain", "creator@", true},
		{"missing at sign", "creator.beyondskool.example", true},
		{"display name form", "Jane <jane@school.example>", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail("requester_email", tt.address)
			if tt.wantErr && !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput for %q, got %v", tt.address, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected %q to validate, got %v", tt.address, err)
			}
		})
	}
}

func TestValidateSchoolName(t *testing.T) {
	if err := ValidateSchoolName("Greenwood High"); err != nil {
		t.Errorf("Expected valid name, got %v", err)
	}
	if err := ValidateSchoolName("   "); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestSanitizeForLog_StripsControlCharacters(t *testing.T) {
	got := sanitizeForLog("bad@example\r\ninjected")
	if got != "bad@exampleinjected" {
		t.Errorf("Expected control characters removed, got %q", got)
	}
}
