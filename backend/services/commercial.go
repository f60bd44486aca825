// ABOUTME: Commercial split calculator decomposing per-student price
// ABOUTME: Caps the book component per program category and taxes the service fee

package services

import (
	"math"

	"github.com/beyondskool/pricing-wizard/backend/models"
)

// gstRate is the tax rate applied to the service-fee component only.
const gstRate = 0.18

// CommercialCalculator splits per-student prices into book and service
// components for the agreement's commercial table.
type CommercialCalculator struct{}

// NewCommercialCalculator creates a new commercial calculator
func NewCommercialCalculator() *CommercialCalculator {
	return &CommercialCalculator{}
}

// Split decomposes a per-student price into a capped book price and the
// residual service fee. BookPrice + ServiceFee == pricePerStudent exactly;
// GST is computed on the fee and added on top, never drawn from the price.
func (c *CommercialCalculator) Split(program models.Program, pricePerStudent int) models.CommercialLine {
	bookBase := program.BookBase()

	if pricePerStudent <= bookBase {
		return models.CommercialLine{
			Program:   program,
			BookPrice: pricePerStudent,
		}
	}

	fee := pricePerStudent - bookBase
	return models.CommercialLine{
		Program:    program,
		BookPrice:  bookBase,
		ServiceFee: fee,
		GST:        int(math.Round(float64(fee) * gstRate)),
	}
}

// Summarize multiplies each quote's per-student commercial values by its
// student count and sums across programs.
func (c *CommercialCalculator) Summarize(quotes []models.ProgramQuote) models.CommercialSummary {
	var sum models.CommercialSummary
	for _, q := range quotes {
		students := q.Selection.Students
		sum.TotalBookCost += q.Commercial.BookPrice * students
		sum.TotalServiceFee += q.Commercial.ServiceFee * students
		sum.TotalGST += q.Commercial.GST * students
	}
	sum.TotalPayable = sum.TotalBookCost + sum.TotalServiceFee + sum.TotalGST
	return sum
}
