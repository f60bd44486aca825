// ABOUTME: Agreement document renderer producing the partnership PDF
// ABOUTME: Branding header, per-program pricing, contractual clauses, commercial table

package services

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/divan/num2words"
	"github.com/go-pdf/fpdf"

	"github.com/beyondskool/pricing-wizard/backend/models"
)

// agreementClauses are the fixed terms printed on every agreement in order.
var agreementClauses = []string{
	"The School agrees to enroll the stated number of students in each selected program for one full academic year from the date of commencement.",
	"BeyondSkool shall provide trained teachers, learning kits where applicable, and program books for every enrolled student.",
	"The quoted price per student is inclusive of teaching staff, program materials, and program management for the academic year.",
	"Book charges are payable in full at the start of the academic year; service fees may be paid in two equal installments.",
	"GST at the prevailing rate applies to the service fee component only and is payable in addition to the quoted fees.",
	"Student strength may vary by up to five percent from the stated enrollment without a revision to the per-student price; larger variations require a revised agreement.",
	"Either party may terminate this agreement with ninety days written notice; fees for delivered sessions and distributed materials remain payable.",
	"BeyondSkool retains all intellectual property in its curriculum, books, and kits; the School receives a license to use them for enrolled students only.",
	"Any dispute arising from this agreement shall first be referred to good-faith negotiation between the parties before any other remedy is pursued.",
}

var filenameSanitizer = regexp.MustCompile(`[^0-9A-Za-z._-]+`)

// DocumentRenderer turns a confirmed pricing session into the partnership
// agreement PDF.
type DocumentRenderer struct {
	logoPath string
}

// NewDocumentRenderer creates a renderer using the given letterhead logo.
// A missing logo is tolerated; documents render without branding.
func NewDocumentRenderer(logoPath string) *DocumentRenderer {
	return &DocumentRenderer{logoPath: logoPath}
}

// Filename derives the agreement filename from the school name, replacing
// runs of characters unsafe in filenames or mail attachments.
func (r *DocumentRenderer) Filename(schoolName string) string {
	name := filenameSanitizer.ReplaceAllString(strings.TrimSpace(schoolName), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "School"
	}
	return name + "_Agreement.pdf"
}

// Render produces the agreement PDF for a session that has passed the
// margin gate and been confirmed.
func (r *DocumentRenderer) Render(session *models.PricingSession) ([]byte, error) {
	if session.Summary == nil || session.Commercial == nil || len(session.Quotes) == 0 {
		return nil, fmt.Errorf("%w: session has no confirmed pricing to document", models.ErrInvalidState)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 15, 18)
	pdf.AddPage()

	r.renderHeader(pdf)
	r.renderParties(pdf, session)
	r.renderProgramBlocks(pdf, session)
	r.renderTotals(pdf, session)
	r.renderClauses(pdf)
	r.renderCommercialTable(pdf, session)
	r.renderSignatures(pdf, session)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering agreement: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *DocumentRenderer) renderHeader(pdf *fpdf.Fpdf) {
	if _, err := os.Stat(r.logoPath); err == nil {
		pdf.ImageOptions(r.logoPath, 18, 12, 50, 0, false, fpdf.ImageOptions{}, 0, "")
		pdf.SetY(32)
	} else {
		slog.Warn("Letterhead logo missing, rendering agreement without branding", "path", r.logoPath)
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "School Partnership Agreement", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, "Empowering Schools with Transformative Learning Programs", "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func (r *DocumentRenderer) renderParties(pdf *fpdf.Fpdf, session *models.PricingSession) {
	date := time.Now().Format("2 January 2006")
	if session.ConfirmedAt != nil {
		date = session.ConfirmedAt.Format("2 January 2006")
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, fmt.Sprintf(
		"This agreement is entered into on %s between BeyondSkool (the \"Provider\") and %s (the \"School\") for the delivery of the learning programs listed below for one academic year.",
		date, session.SchoolName), "", "L", false)
	pdf.Ln(3)
}

func (r *DocumentRenderer) renderProgramBlocks(pdf *fpdf.Fpdf, session *models.PricingSession) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Selected Programs", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, q := range session.Quotes {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, string(q.Selection.Program), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		lines := []string{
			fmt.Sprintf("Students: %d in %d sections of up to %d", q.Selection.Students, q.Staffing.Sections, q.Selection.SectionSize),
			fmt.Sprintf("Staffing: %d full-time teacher(s), %d variable teacher-day(s) per week", q.Staffing.FullTimeTeachers, q.Staffing.VariableTeacherDays),
			fmt.Sprintf("Price per student: Rs.%d", q.Breakdown.DisplayPricePerStudent()),
			fmt.Sprintf("Total program price: Rs.%d", q.Breakdown.DisplayFinalPrice()),
		}
		for _, line := range lines {
			pdf.CellFormat(0, 5, "  "+line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}
}

func (r *DocumentRenderer) renderTotals(pdf *fpdf.Fpdf, session *models.PricingSession) {
	total := session.Summary.DisplayTotalFinalPrice
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Annual Price: Rs.%d", total), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 5, amountInWords(total), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Average price per student: Rs.%d across %d students",
		session.Summary.AveragePricePerStudent, session.Summary.TotalStudents), "", 1, "L", false, 0, "")
	pdf.Ln(3)
}

func (r *DocumentRenderer) renderClauses(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Terms and Conditions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for i, clause := range agreementClauses {
		pdf.MultiCell(0, 4.5, fmt.Sprintf("%d. %s", i+1, clause), "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(2)
}

func (r *DocumentRenderer) renderCommercialTable(pdf *fpdf.Fpdf, session *models.PricingSession) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Commercial Summary (per student, annual)", "", 1, "L", false, 0, "")

	widths := []float64{48, 22, 22, 28, 28, 26}
	headers := []string{"Program", "Students", "Sections", "Book Price", "Service Fee", "GST"}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, q := range session.Quotes {
		cells := []string{
			string(q.Selection.Program),
			fmt.Sprintf("%d", q.Selection.Students),
			fmt.Sprintf("%d", q.Staffing.Sections),
			fmt.Sprintf("Rs.%d", q.Commercial.BookPrice),
			fmt.Sprintf("Rs.%d", q.Commercial.ServiceFee),
			fmt.Sprintf("Rs.%d", q.Commercial.GST),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	c := session.Commercial
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 6, "Grand Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 6, fmt.Sprintf("Rs.%d", c.TotalBookCost), "1", 0, "C", false, 0, "")
	pdf.CellFormat(widths[4], 6, fmt.Sprintf("Rs.%d", c.TotalServiceFee), "1", 0, "C", false, 0, "")
	pdf.CellFormat(widths[5], 6, fmt.Sprintf("Rs.%d", c.TotalGST), "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Payable (books + fees + GST): Rs.%d", c.TotalPayable), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, amountInWords(c.TotalPayable), "", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (r *DocumentRenderer) renderSignatures(pdf *fpdf.Fpdf, session *models.PricingSession) {
	if pdf.GetY() > 240 {
		pdf.AddPage()
	}
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	half := 85.0
	pdf.CellFormat(half, 6, "For BeyondSkool", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, fmt.Sprintf("For %s", session.SchoolName), "", 1, "L", false, 0, "")
	pdf.Ln(14)
	pdf.CellFormat(half, 6, "Authorized Signatory", "T", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, "Authorized Signatory", "T", 1, "L", false, 0, "")
}

// amountInWords spells out a currency amount for the agreement totals.
func amountInWords(amount int) string {
	return fmt.Sprintf("Rupees %s only", num2words.Convert(amount))
}
