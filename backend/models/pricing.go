// ABOUTME: Cost breakdown and per-program quote models
// ABOUTME: Fixed cost buckets, markup-based list price, and discounted final price

package models

import "math"

// CostBreakdown is the full cost and price derivation for one program.
// Cost buckets are exact integer currency; prices carry the unrounded
// division results so totals across programs do not compound rounding error.
type CostBreakdown struct {
	TeacherCostTotal int     `json:"teacher_cost_total"`
	TeacherDayCost   int     `json:"teacher_day_cost"`
	BookCost         int     `json:"book_cost"`
	KitCost          int     `json:"kit_cost"`
	ManagerCost      int     `json:"manager_cost"`
	TotalProgramCost int     `json:"total_program_cost"`
	BasePrice        float64 `json:"base_price"`
	FinalPrice       float64 `json:"final_price"`
	PricePerStudent  float64 `json:"price_per_student"`
}

// DisplayPricePerStudent returns the per-student price rounded to the
// nearest currency unit for presentation.
func (b CostBreakdown) DisplayPricePerStudent() int {
	return int(math.Round(b.PricePerStudent))
}

// DisplayFinalPrice returns the program's final price rounded for presentation.
func (b CostBreakdown) DisplayFinalPrice() int {
	return int(math.Round(b.FinalPrice))
}

// ProgramQuote bundles everything computed for a single selected program:
// the input snapshot, the staffing requirement, the cost derivation, and the
// commercial book/service split.
type ProgramQuote struct {
	Selection  ProgramSelection `json:"selection"`
	Staffing   StaffingResult   `json:"staffing"`
	Breakdown  CostBreakdown    `json:"breakdown"`
	Commercial CommercialLine   `json:"commercial"`
}

// PricingSummary aggregates the session-level totals computed from the
// unrounded per-program figures. GrossMarginPercent is valid only when
// MarginPassed did not short-circuit the calculation.
type PricingSummary struct {
	TotalStudents          int     `json:"total_students"`
	TotalCost              int     `json:"total_cost"`
	TotalFinalPrice        float64 `json:"total_final_price"`
	GrossMarginPercent     float64 `json:"gross_margin_percent"`
	MarginPassed           bool    `json:"margin_passed"`
	AveragePricePerStudent int     `json:"average_price_per_student"`
	DisplayTotalFinalPrice int     `json:"display_total_final_price"`
}
