// ABOUTME: Staffing calculator converting enrollment into teacher requirements
// ABOUTME: Computes sections, full-time teachers, and variable substitute teacher-days

package services

import (
	"fmt"
	"math"

	"github.com/beyondskool/pricing-wizard/backend/models"
)

// fullTimeThreshold is the section count below which no full-time teacher
// is justified and all sections are covered by variable teacher-days.
const fullTimeThreshold = 20

// StaffingCalculator derives teacher requirements from enrollment figures.
type StaffingCalculator struct{}

// NewStaffingCalculator creates a new staffing calculator
func NewStaffingCalculator() *StaffingCalculator {
	return &StaffingCalculator{}
}

// Compute derives the staffing requirement for one program.
// maxSectionsPerTeacher is the weekly section cap from the operating policy
// (27 for a 5-day week, 32 for a 6-day week).
func (c *StaffingCalculator) Compute(students, sectionSize, maxSectionsPerTeacher int) (models.StaffingResult, error) {
	if students < models.MinStudents || students > models.MaxStudents {
		return models.StaffingResult{}, fmt.Errorf("%w: students must be between %d and %d, got %d",
			models.ErrInvalidInput, models.MinStudents, models.MaxStudents, students)
	}
	if sectionSize < models.MinSectionSize || sectionSize > models.MaxSectionSize {
		return models.StaffingResult{}, fmt.Errorf("%w: section size must be between %d and %d, got %d",
			models.ErrInvalidInput, models.MinSectionSize, models.MaxSectionSize, sectionSize)
	}
	if maxSectionsPerTeacher != 27 && maxSectionsPerTeacher != 32 {
		return models.StaffingResult{}, fmt.Errorf("%w: max sections per teacher must be 27 or 32, got %d",
			models.ErrInvalidInput, maxSectionsPerTeacher)
	}

	sections := ceilDiv(students, sectionSize)

	var fullTime, variableDays, dayCost int

	if sections < fullTimeThreshold {
		// Too few sections for a full-time hire: cover everything with
		// variable teachers, one teacher-day per 5 sections.
		variableDays = ceilDiv(sections, 5)
		dayCost = variableDays * models.VariableTeacherDayRate * models.SessionsPerDay
	} else {
		fullTime = sections / maxSectionsPerTeacher
		remaining := sections % maxSectionsPerTeacher

		switch {
		case remaining > 0 && remaining < fullTimeThreshold:
			variableDays = ceilDiv(remaining, 5)
			dayCost = variableDays * models.VariableTeacherDayRate * models.SessionsPerDay
		case remaining >= fullTimeThreshold:
			// A large remainder justifies rounding up to another hire.
			fullTime++
		}

		// Absence coverage: substitute teacher-days for 10% of full-time
		// sessions, on top of any remainder handling.
		fullTimeSessions := fullTime * maxSectionsPerTeacher * models.SessionsPerDay
		absentSessions := int(math.Ceil(float64(fullTimeSessions) * models.AbsenceCoverageRate))
		absentDays := ceilDiv(absentSessions, 5)
		dayCost += absentDays * models.VariableTeacherDayRate
	}

	return models.StaffingResult{
		Sections:            sections,
		FullTimeTeachers:    fullTime,
		VariableTeacherDays: variableDays,
		TeacherDayCost:      dayCost,
	}, nil
}

// ceilDiv is integer-safe ceiling division for positive operands.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
