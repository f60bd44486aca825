// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("PRICING_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	// Check for terminals known to commonly have Nerd Fonts
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// iTerm2, Alacritty, WezTerm, Kitty typically have Nerd Fonts
	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	// Check for common Nerd Font environment indicators
	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	// Default to Unicode fallback for maximum compatibility
	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Domain
	School   = Icon{"󰑴", "⌂"} // nf-md-school
	Program  = Icon{"󰂺", "◆"} // nf-md-book_open_variant
	Students = Icon{"󰡉", "●"} // nf-md-account_group
	Teacher  = Icon{"󰃃", "▣"} // nf-md-account_tie
	Rupee    = Icon{"󱔐", "₹"} // nf-md-currency_rupee
	Document = Icon{"󰈦", "▤"} // nf-md-file_pdf_box
	Mail     = Icon{"󰇮", "✉"} // nf-md-email

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Wizard = Icon{"󰂓", "★"} // nf-md-auto_fix
	Save   = Icon{"󰆓", "▼"} // nf-md-content_save
	Back   = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit   = Icon{"󰗼", "×"} // nf-md-exit_to_app

	// Application
	App      = Icon{"󰠮", "◈"} // nf-md-calculator_variant
	Settings = Icon{"󰒓", "⚙"} // nf-md-cog
)
