package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateBillingRegisterExcel(t *testing.T) {
	data := BillingRegisterData{
		CompanyName: "Nisha Traders",
		FromDate:    "01/01/2026",
		ToDate:      "31/01/2026",
		Rows: []BillingRegisterRow{
			{BillNumber: "NT-001", IssueDate: "05/01/2026", CustomerName: "Murugan Stores", Place: "Madurai", TaxableValue: 220, CGSTAmount: 19.8, SGSTAmount: 19.8, NetAmount: 260},
			{BillNumber: "NT-002", IssueDate: "12/01/2026", CustomerName: "Kerala Crackers Mart", Place: "Kerala", TaxableValue: 1000, IGSTAmount: 180, NetAmount: 1180},
		},
	}

	result, err := GenerateBillingRegisterExcel(data)
	if err != nil {
		t.Fatalf("GenerateBillingRegisterExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateBillingRegisterExcel() returned empty bytes")
	}

	// Verify it's a valid Excel file
	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Billings" {
		t.Errorf("expected sheet name 'Billings', got %v", sheets)
	}

	title, _ := f.GetCellValue(sheets[0], "A1")
	if title != "Nisha Traders - Billings Register" {
		t.Errorf("unexpected title cell %q", title)
	}

	billNo, _ := f.GetCellValue(sheets[0], "A6")
	if billNo != "NT-001" {
		t.Errorf("expected first data row bill no NT-001, got %q", billNo)
	}

	net, _ := f.GetCellValue(sheets[0], "I7")
	if net != "₹1,180.00" {
		t.Errorf("expected formatted net ₹1,180.00, got %q", net)
	}
}

func TestGenerateBillingRegisterExcel_Empty(t *testing.T) {
	result, err := GenerateBillingRegisterExcel(BillingRegisterData{CompanyName: "Nisha Traders"})
	if err != nil {
		t.Fatalf("GenerateBillingRegisterExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateBillingRegisterExcel() returned empty bytes")
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain text", "Murugan Stores", "Murugan Stores"},
		{"formula equals", "=SUM(A1)", "'=SUM(A1)"},
		{"formula plus", "+A1", "'+A1"},
		{"formula at", "@cmd", "'@cmd"},
		{"leading dash", "-discount", "'-discount"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExcelCell(tt.input)
			if got != tt.expect {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}
