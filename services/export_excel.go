package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BillingRegisterRow is one saved bill in the register export.
type BillingRegisterRow struct {
	BillNumber   string
	IssueDate    string
	CustomerName string
	Place        string
	TaxableValue float64
	CGSTAmount   float64
	SGSTAmount   float64
	IGSTAmount   float64
	NetAmount    float64
}

// BillingRegisterData holds everything the register export needs.
type BillingRegisterData struct {
	CompanyName string
	FromDate    string
	ToDate      string
	Rows        []BillingRegisterRow
}

// GenerateBillingRegisterExcel creates the billings register as an Excel
// workbook and returns the file contents.
func GenerateBillingRegisterExcel(data BillingRegisterData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Billings"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through I).
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	lastCol := columns[len(columns)-1] // "I"

	widths := []float64{14, 12, 32, 18, 16, 12, 12, 12, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.CompanyName)+" - Billings Register")
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if data.FromDate != "" || data.ToDate != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge period: %w", err)
		}
		f.SetCellValue(sheetName, "A2", fmt.Sprintf("Period: %s to %s", data.FromDate, data.ToDate))
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge count: %w", err)
	}
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("Bills: %d", len(data.Rows)))
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: Column Headers ───────────────────────────────────────────

	headers := []string{"Bill No", "Date", "Customer", "Place", "Taxable Value", "CGST", "SGST", "IGST", "Net Amount"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s5", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// ── Data Rows (starting row 6) ──────────────────────────────────────

	var totalTaxable, totalNet float64
	row := 6
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(r.BillNumber))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.IssueDate))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.CustomerName))
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.Place))
		f.SetCellValue(sheetName, "E"+rowStr, FormatINR(r.TaxableValue))
		f.SetCellValue(sheetName, "F"+rowStr, FormatINR(r.CGSTAmount))
		f.SetCellValue(sheetName, "G"+rowStr, FormatINR(r.SGSTAmount))
		f.SetCellValue(sheetName, "H"+rowStr, FormatINR(r.IGSTAmount))
		f.SetCellValue(sheetName, "I"+rowStr, FormatINR(r.NetAmount))

		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, rowStyle)

		totalTaxable += r.TaxableValue
		totalNet += r.NetAmount
		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++

	summaryRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "D"+summaryRow, "Total Taxable:")
	f.SetCellStyle(sheetName, "D"+summaryRow, "D"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "E"+summaryRow, FormatINR(totalTaxable))
	f.SetCellStyle(sheetName, "E"+summaryRow, "E"+summaryRow, summaryValueStyle)
	row++

	summaryRow = fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "D"+summaryRow, "Total Net:")
	f.SetCellStyle(sheetName, "D"+summaryRow, "D"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "I"+summaryRow, FormatINR(totalNet))
	f.SetCellStyle(sheetName, "I"+summaryRow, "I"+summaryRow, summaryValueStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
