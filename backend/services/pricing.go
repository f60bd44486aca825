// ABOUTME: Cost aggregator and margin gate for program pricing
// ABOUTME: Converts staffing plus fixed rates into cost, list price, and final price

package services

import (
	"fmt"
	"math"

	"github.com/beyondskool/pricing-wizard/backend/models"
)

// PricingCalculator aggregates program costs into a markup-based price.
type PricingCalculator struct{}

// NewPricingCalculator creates a new pricing calculator
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// ComputeCost derives the full cost breakdown for one program from its
// staffing requirement and the fixed rate table. Pure function of its
// inputs; rounding happens only at display time.
func (c *PricingCalculator) ComputeCost(program models.Program, staffing models.StaffingResult, students, discountPercent int) models.CostBreakdown {
	teacherCostTotal := staffing.FullTimeTeachers * program.TeacherAnnualCost()
	bookCost := students * models.BookCostPerStudent
	kitCost := program.KitCost()

	totalProgramCost := teacherCostTotal + staffing.TeacherDayCost + bookCost + kitCost + models.ManagerCost

	// Cost is treated as 60% of list price: a 40% target margin before discount.
	basePrice := float64(totalProgramCost) / (1 - models.MarginTarget)
	finalPrice := basePrice * (1 - float64(discountPercent)/100)
	pricePerStudent := finalPrice / float64(students)

	return models.CostBreakdown{
		TeacherCostTotal: teacherCostTotal,
		TeacherDayCost:   staffing.TeacherDayCost,
		BookCost:         bookCost,
		KitCost:          kitCost,
		ManagerCost:      models.ManagerCost,
		TotalProgramCost: totalProgramCost,
		BasePrice:        basePrice,
		FinalPrice:       finalPrice,
		PricePerStudent:  pricePerStudent,
	}
}

// GrossMargin computes (price - cost) / price as a percentage across all
// selected programs, on the unrounded sums so display rounding cannot
// flicker the gate. A zero total price is an invalid state, not a division.
func (c *PricingCalculator) GrossMargin(totalCost int, totalFinalPrice float64) (float64, error) {
	if totalFinalPrice == 0 {
		return 0, fmt.Errorf("%w: gross margin undefined for zero total price", models.ErrInvalidState)
	}
	return (totalFinalPrice - float64(totalCost)) / totalFinalPrice * 100, nil
}

// MarginPasses reports whether the margin clears the floor below which no
// pricing may be offered.
func (c *PricingCalculator) MarginPasses(grossMarginPercent float64) bool {
	return grossMarginPercent >= models.MarginFloorPercent
}

// roundToInt rounds a currency amount to the nearest unit for display.
func roundToInt(v float64) int {
	return int(math.Round(v))
}
