// ABOUTME: Tests for quote collection wizard
// ABOUTME: Validates input collection, validation, and payload building

package wizard

import (
	"testing"
)

func TestWizardDefaults(t *testing.T) {
	w := New()

	if w.step != 1 {
		t.Errorf("expected wizard to start at step 1, got %d", w.step)
	}
	if w.daysPerWeek != "5" {
		t.Errorf("expected default schedule 5 days, got %s", w.daysPerWeek)
	}
	if w.discount != "0" {
		t.Errorf("expected default discount 0, got %s", w.discount)
	}
	if len(w.programs) != 1 || w.programs[0] != "Communication" {
		t.Errorf("expected Communication preselected, got %v", w.programs)
	}
	for _, name := range programNames {
		s, ok := w.sizings[name]
		if !ok {
			t.Fatalf("expected sizing entry for %s", name)
		}
		if s.students != "100" || s.sectionSize != "30" {
			t.Errorf("expected defaults 100/30 for %s, got %s/%s", name, s.students, s.sectionSize)
		}
	}
	if w.form == nil {
		t.Error("expected step 1 form to be initialized")
	}
}

func TestWizardBuildInputs(t *testing.T) {
	w := New()
	w.schoolName = "  Greenwood High  "
	w.requesterEmail = "rep@beyondskool.com"
	w.schoolEmail = "principal@greenwood.edu"
	w.programs = []string{"Communication", "STEM"}
	w.sizings["Communication"].students = "600"
	w.sizings["Communication"].sectionSize = "30"
	w.sizings["STEM"].students = "120"
	w.sizings["STEM"].sectionSize = "40"
	w.daysPerWeek = "6"
	w.discount = "10"

	create, calculate := w.buildInputs()

	if create.SchoolName != "Greenwood High" {
		t.Errorf("expected school name trimmed, got %q", create.SchoolName)
	}
	if create.RequesterEmail != "rep@beyondskool.com" {
		t.Errorf("unexpected requester email %q", create.RequesterEmail)
	}

	if len(calculate.Programs) != 2 {
		t.Fatalf("expected 2 program selections, got %d", len(calculate.Programs))
	}
	if calculate.Programs[0].Program != "Communication" || calculate.Programs[0].Students != 600 {
		t.Errorf("unexpected first selection %+v", calculate.Programs[0])
	}
	if calculate.Programs[1].Program != "STEM" || calculate.Programs[1].SectionSize != 40 {
		t.Errorf("unexpected second selection %+v", calculate.Programs[1])
	}
	if calculate.DaysPerWeek != 6 {
		t.Errorf("expected 6 days per week, got %d", calculate.DaysPerWeek)
	}
	if calculate.DiscountPercent != 10 {
		t.Errorf("expected 10%% discount, got %d", calculate.DiscountPercent)
	}
}

func TestWizardBuildInputsPreservesProgramOrder(t *testing.T) {
	w := New()
	// Multiselect can report values in toggle order; payload ordering
	// must follow the display order regardless.
	w.programs = []string{"STEM", "Communication"}

	_, calculate := w.buildInputs()

	if len(calculate.Programs) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(calculate.Programs))
	}
	if calculate.Programs[0].Program != "Communication" {
		t.Errorf("expected Communication first, got %s", calculate.Programs[0].Program)
	}
	if calculate.Programs[1].Program != "STEM" {
		t.Errorf("expected STEM second, got %s", calculate.Programs[1].Program)
	}
}

func TestValidateStudents(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"50", false},
		{"600", false},
		{"3000", false},
		{"49", true},
		{"3001", true},
		{"abc", true},
		{"", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			err := validateStudents(tc.input)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateStudents(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestValidateSectionSize(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"10", false},
		{"30", false},
		{"60", false},
		{"9", true},
		{"61", true},
		{"x", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			err := validateSectionSize(tc.input)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateSectionSize(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain address", "rep@beyondskool.com", false},
		{"trimmed", "  rep@beyondskool.com  ", false},
		{"display name rejected", "Rep <rep@beyondskool.com>", true},
		{"missing domain", "rep@", true},
		{"empty", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateEmail(tc.input)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateEmail(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestValidateProgramSelection(t *testing.T) {
	if err := validateProgramSelection(nil); err == nil {
		t.Error("expected error for empty selection")
	}
	if err := validateProgramSelection([]string{"STEM"}); err != nil {
		t.Errorf("unexpected error for valid selection: %v", err)
	}
}

func TestValidateSchoolName(t *testing.T) {
	if err := validateSchoolName("   "); err == nil {
		t.Error("expected error for blank school name")
	}
	if err := validateSchoolName("Greenwood High"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
