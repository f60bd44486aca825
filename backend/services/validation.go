// ABOUTME: Input validation functions for session parameters
// ABOUTME: Checks RFC-shaped email addresses and school names from operator input

package services

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/beyondskool/pricing-wizard/backend/models"
)

// sanitizeForLog removes control characters from strings to prevent log
// injection when including operator input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1 // Remove control characters
		}
		return r
	}, s)
}

// ValidateEmail checks that an address parses as a single RFC 5322 address,
// so malformed addresses fail at intake instead of as mail bounces.
func ValidateEmail(field, address string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(address))
	if err != nil {
		return fmt.Errorf("%w: %s is not a valid email address: %s",
			models.ErrInvalidInput, field, sanitizeForLog(address))
	}
	// Reject display-name forms like "Jane <jane@school.example>"; only the
	// bare address is stored and used for SMTP envelopes.
	if addr.Address != strings.TrimSpace(address) {
		return fmt.Errorf("%w: %s must be a bare email address, got %s",
			models.ErrInvalidInput, field, sanitizeForLog(address))
	}
	return nil
}

// ValidateSchoolName checks that the school name is non-empty after
// trimming. The name also seeds the agreement filename, so it must contain
// at least one printable character.
func ValidateSchoolName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: school name cannot be empty", models.ErrInvalidInput)
	}
	return nil
}
