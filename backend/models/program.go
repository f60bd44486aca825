// ABOUTME: Program catalog and per-program rate table for pricing
// ABOUTME: Defines program enum, enrollment selection, and operating policy

package models

import "fmt"

// Program identifies one of the offered learning programs.
type Program string

const (
	ProgramCommunication     Program = "Communication"
	ProgramFinancialLiteracy Program = "Financial Literacy"
	ProgramSTEM              Program = "STEM"
)

// Programs lists all offered programs in catalog order.
var Programs = []Program{ProgramCommunication, ProgramFinancialLiteracy, ProgramSTEM}

// Valid reports whether p is a known program.
func (p Program) Valid() bool {
	switch p {
	case ProgramCommunication, ProgramFinancialLiteracy, ProgramSTEM:
		return true
	}
	return false
}

// Enrollment bounds enforced on operator input.
const (
	MinStudents    = 50
	MaxStudents    = 3000
	MinSectionSize = 10
	MaxSectionSize = 60
)

// Rate table constants shared across programs.
const (
	BookCostPerStudent     = 200   // per student, per program
	ManagerCost            = 50000 // flat per program
	VariableTeacherDayRate = 2000  // per substitute teacher-day
	SessionsPerDay         = 35
	AbsenceCoverageRate    = 0.10
	MarginTarget           = 0.4 // cost is 60% of list price
	MarginFloorPercent     = 30.0
)

// TeacherAnnualCost returns the yearly cost of one full-time teacher for p.
func (p Program) TeacherAnnualCost() int {
	if p == ProgramSTEM {
		return 425000
	}
	return 400000
}

// KitCost returns the flat program kit cost for p.
func (p Program) KitCost() int {
	if p == ProgramSTEM {
		return 115000
	}
	return 0
}

// BookBase returns the per-student price cap attributed to books for p.
func (p Program) BookBase() int {
	if p == ProgramSTEM {
		return 1800
	}
	return 1200
}

// ProgramSelection is one program with its enrollment figures.
// Immutable once a calculation has snapshotted it.
type ProgramSelection struct {
	Program     Program `json:"program"`
	Students    int     `json:"students"`
	SectionSize int     `json:"section_size"`
}

// Validate checks the selection against enrollment bounds.
func (s ProgramSelection) Validate() error {
	if !s.Program.Valid() {
		return fmt.Errorf("%w: unknown program %q", ErrInvalidInput, string(s.Program))
	}
	if s.Students < MinStudents || s.Students > MaxStudents {
		return fmt.Errorf("%w: students must be between %d and %d, got %d", ErrInvalidInput, MinStudents, MaxStudents, s.Students)
	}
	if s.SectionSize < MinSectionSize || s.SectionSize > MaxSectionSize {
		return fmt.Errorf("%w: section size must be between %d and %d, got %d", ErrInvalidInput, MinSectionSize, MaxSectionSize, s.SectionSize)
	}
	return nil
}

// OperatingPolicy captures the school week, which caps the weekly section
// load of a full-time teacher. Global for a session.
type OperatingPolicy struct {
	DaysPerWeek int `json:"days_per_week"`
}

// MaxSectionsPerTeacher derives the full-time teacher section cap from the
// school week: 27 for a 5-day week, 32 for a 6-day week.
func (p OperatingPolicy) MaxSectionsPerTeacher() int {
	if p.DaysPerWeek == 6 {
		return 32
	}
	return 27
}

// Validate checks the policy against the supported school weeks.
func (p OperatingPolicy) Validate() error {
	if p.DaysPerWeek != 5 && p.DaysPerWeek != 6 {
		return fmt.Errorf("%w: days per week must be 5 or 6, got %d", ErrInvalidInput, p.DaysPerWeek)
	}
	return nil
}
