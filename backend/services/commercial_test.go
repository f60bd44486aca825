// ABOUTME: Tests for the commercial split calculator
// ABOUTME: Validates book caps, service fee residuals, and GST on fees only

package services

import (
	"testing"

	"github.com/beyondskool/pricing-wizard/backend/models"
)

func TestSplit_BookCapLeavesResidualFee(t *testing.T) {
	// Scenario: Communication at Rs.1689 per student, book cap Rs.1200
	// Fee: 1689 - 1200 = 489
	// GST: round(489 × 0.18) = 88

	calc := NewCommercialCalculator()
	line := calc.Split(models.ProgramCommunication, 1689)

	if line.BookPrice != 1200 {
		t.Errorf("Expected book price 1200, got %d", line.BookPrice)
	}
	if line.ServiceFee != 489 {
		t.Errorf("Expected service fee 489, got %d", line.ServiceFee)
	}
	if line.GST != 88 {
		t.Errorf("Expected GST 88, got %d", line.GST)
	}
	if line.BookPrice+line.ServiceFee != 1689 {
		t.Errorf("Book plus fee must reconstruct the price, got %d", line.BookPrice+line.ServiceFee)
	}
}

func TestSplit_STEMUsesHigherBookCap(t *testing.T) {
	calc := NewCommercialCalculator()
	line := calc.Split(models.ProgramSTEM, 2500)

	if line.BookPrice != 1800 {
		t.Errorf("Expected book price 1800, got %d", line.BookPrice)
	}
	if line.ServiceFee != 700 {
		t.Errorf("Expected service fee 700, got %d", line.ServiceFee)
	}
	// GST: round(700 × 0.18) = 126
	if line.GST != 126 {
		t.Errorf("Expected GST 126, got %d", line.GST)
	}
}

func TestSplit_PriceBelowCapIsAllBook(t *testing.T) {
	// A price at or under the book cap carries no service fee and no GST.
	calc := NewCommercialCalculator()
	line := calc.Split(models.ProgramFinancialLiteracy, 1100)

	if line.BookPrice != 1100 {
		t.Errorf("Expected book price 1100, got %d", line.BookPrice)
	}
	if line.ServiceFee != 0 {
		t.Errorf("Expected zero service fee, got %d", line.ServiceFee)
	}
	if line.GST != 0 {
		t.Errorf("Expected zero GST, got %d", line.GST)
	}
}

func TestSummarize_MultipliesByStudentsAndSums(t *testing.T) {
	// Scenario: two programs
	// Communication: 100 students × (1200 book + 489 fee + 88 GST)
	// STEM: 50 students × (1800 book + 700 fee + 126 GST)
	// Books: 120000 + 90000 = 210000
	// Fees: 48900 + 35000 = 83900
	// GST: 8800 + 6300 = 15100
	// Payable: 210000 + 83900 + 15100 = 309000

	calc := NewCommercialCalculator()
	quotes := []models.ProgramQuote{
		{
			Selection:  models.ProgramSelection{Program: models.ProgramCommunication, Students: 100},
			Commercial: models.CommercialLine{Program: models.ProgramCommunication, BookPrice: 1200, ServiceFee: 489, GST: 88},
		},
		{
			Selection:  models.ProgramSelection{Program: models.ProgramSTEM, Students: 50},
			Commercial: models.CommercialLine{Program: models.ProgramSTEM, BookPrice: 1800, ServiceFee: 700, GST: 126},
		},
	}

	sum := calc.Summarize(quotes)

	if sum.TotalBookCost != 210000 {
		t.Errorf("Expected total book cost 210000, got %d", sum.TotalBookCost)
	}
	if sum.TotalServiceFee != 83900 {
		t.Errorf("Expected total service fee 83900, got %d", sum.TotalServiceFee)
	}
	if sum.TotalGST != 15100 {
		t.Errorf("Expected total GST 15100, got %d", sum.TotalGST)
	}
	if sum.TotalPayable != 309000 {
		t.Errorf("Expected total payable 309000, got %d", sum.TotalPayable)
	}
}
