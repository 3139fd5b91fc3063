// Package report renders computed refinance plans as PDF documents.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"mortgage-planner/domain"
)

// BuildPlanPDF renders a refinance plan as a PDF: headline payment figures,
// then per-series payoff totals with a yearly milestone table.
func BuildPlanPDF(input domain.RefinancePlanInput, result domain.RefinancePlanResult) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Mortgage Refinance Plan", "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Principal $%.2f at %.2f%% over %d years",
		input.Principal, input.RateBefore*100, input.TermYears), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Original payment: $%.2f/month",
		result.OriginalPayment), "", 1, "L", false, 0, "")
	if input.LumpSumAmount > 0 {
		pdf.CellFormat(0, 7, fmt.Sprintf("Lump sum: $%.2f at month %d, monthly extra $%.2f",
			input.LumpSumAmount, input.LumpSumMonth, input.ExtraBefore), "", 1, "L", false, 0, "")
	}
	if result.RefinancePayment > 0 {
		pdf.CellFormat(0, 7, fmt.Sprintf("Refinance at %.2f%%: $%.2f/month standard, $%.2f/month with extra",
			input.RateAfter*100, result.RefinancePayment, result.RefinancePaymentExtra), "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(0, 7, "Loan pays off before the refinance month; nothing left to refinance.", "", 1, "L", false, 0, "")
	}
	if result.Explanation != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 5, result.Explanation, "", "L", false)
	}

	series := []struct {
		name     string
		schedule domain.Schedule
	}{
		{"Original", result.Original},
		{"Pre-refi w/ extras", result.PreRefinance},
		{"Post-refi std", result.PostRefinanceStd},
		{"Post-refi + extra", result.PostRefinanceExtra},
	}
	for _, s := range series {
		writeSeries(pdf, s.name, s.schedule)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSeries(pdf *fpdf.Fpdf, name string, schedule domain.Schedule) {
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	last, ok := schedule.Last()
	if !ok {
		pdf.CellFormat(0, 6, "(no payments in this phase)", "", 1, "L", false, 0, "")
		return
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Paid off at month %d; cumulative interest $%.2f, cumulative payments $%.2f",
		last.Month, last.CumulativeInterest, last.CumulativePayment), "", 1, "L", false, 0, "")

	headers := []string{"Month", "Balance", "Cum. Interest", "Cum. Payment"}
	widths := []float64{25, 50, 50, 50}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, rec := range yearlyMilestones(schedule) {
		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", rec.Month), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%.2f", rec.Balance), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%.2f", rec.CumulativeInterest), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", rec.CumulativePayment), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}

// yearlyMilestones keeps every 12th record plus the final one, enough for a
// readable table without printing hundreds of rows.
func yearlyMilestones(schedule domain.Schedule) []domain.MonthRecord {
	milestones := make([]domain.MonthRecord, 0, len(schedule)/12+1)
	for i, rec := range schedule {
		if (i+1)%12 == 0 || i == len(schedule)-1 {
			milestones = append(milestones, rec)
		}
	}
	return milestones
}
