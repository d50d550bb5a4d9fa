package summary

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary = "summary"
	sheetDays    = "days"
)

func (d Day) dateString() string {
	if d.Date == nil {
		return ""
	}

	return d.Date.String()
}

// XLSX renders the summary as a workbook with one sheet for the totals and
// one for the days.
func XLSX(s Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetDays); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(sheetSummary, "A1", "Itinerary budget")
	_ = f.SetCellValue(sheetSummary, "A3", "Itinerary")
	_ = f.SetCellValue(sheetSummary, "B3", s.ItineraryID.String())
	_ = f.SetCellValue(sheetSummary, "A4", "Total budget")
	_ = f.SetCellValue(sheetSummary, "B4", s.TotalBudget.InexactFloat64())
	_ = f.SetCellValue(sheetSummary, "A5", "Total spent")
	_ = f.SetCellValue(sheetSummary, "B5", s.TotalSpent.InexactFloat64())
	_ = f.SetCellValue(sheetSummary, "A6", "Total remaining")
	_ = f.SetCellValue(sheetSummary, "B6", s.TotalRemaining.InexactFloat64())

	for i, header := range []string{"Day", "Date", "Budget", "Spent", "Remaining"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetDays, cell, header)
	}

	for i, d := range s.Days {
		row := i + 2
		_ = f.SetCellValue(sheetDays, fmt.Sprintf("A%d", row), d.DayIndex)
		_ = f.SetCellValue(sheetDays, fmt.Sprintf("B%d", row), d.dateString())
		_ = f.SetCellValue(sheetDays, fmt.Sprintf("C%d", row), d.DailyBudget.InexactFloat64())
		_ = f.SetCellValue(sheetDays, fmt.Sprintf("D%d", row), d.Spent.InexactFloat64())
		_ = f.SetCellValue(sheetDays, fmt.Sprintf("E%d", row), d.Remaining.InexactFloat64())
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// PDF renders the summary as a single page report.
func PDF(s Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Itinerary budget")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Itinerary: %s", s.ItineraryID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total budget: %s", s.TotalBudget.StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total spent: %s", s.TotalSpent.StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total remaining: %s", s.TotalRemaining.StringFixed(2)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(20, 6, "Day", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Budget", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Spent", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Remaining", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, d := range s.Days {
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", d.DayIndex), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, d.dateString(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, d.DailyBudget.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, d.Spent.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, d.Remaining.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
