package services

import (
	"math"
	"testing"
)

func TestCartItemAmount(t *testing.T) {
	tests := []struct {
		name   string
		rate   float64
		cases  int
		expect float64
	}{
		{"single case", 100, 1, 100},
		{"multiple cases", 250.50, 4, 1002},
		{"zero cases", 500, 0, 0},
		{"decimal rate", 99.99, 3, 299.97},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := CartItem{RatePerBox: tt.rate, Cases: tt.cases}
			got := item.Amount()
			if math.Abs(got-tt.expect) > 1e-9 {
				t.Errorf("Amount() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestCartSubtotal(t *testing.T) {
	cart := []CartItem{
		{RatePerBox: 100, Cases: 2},
		{RatePerBox: 50, Cases: 3},
	}
	if got := CartSubtotal(cart); got != 350 {
		t.Errorf("CartSubtotal = %v, want 350", got)
	}
	if got := CartSubtotal(nil); got != 0 {
		t.Errorf("CartSubtotal(nil) = %v, want 0", got)
	}
}

func TestTotalCases(t *testing.T) {
	cart := []CartItem{
		{Cases: 2},
		{Cases: 5},
		{Cases: 1},
	}
	if got := TotalCases(cart); got != 8 {
		t.Errorf("TotalCases = %v, want 8", got)
	}
}

func TestParseAmountOrZero(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect float64
	}{
		{"blank", "", 0},
		{"whitespace", "   ", 0},
		{"integer", "500", 500},
		{"decimal", "123.45", 123.45},
		{"padded", " 42 ", 42},
		{"garbage", "abc", 0},
		{"partial number", "12x", 0},
		{"negative", "-10", -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmountOrZero(tt.input)
			if got != tt.expect {
				t.Errorf("ParseAmountOrZero(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestComputeTax_Intrastate(t *testing.T) {
	// Rate 100 x 2 cases, 10% packing, no extra: subtotal 200, packing 20,
	// GST base 220, CGST and SGST 19.80 each, net rounds to 260.
	cart := []CartItem{{ProductName: "Flower Pots Big", RatePerBox: 100, Cases: 2}}
	got := ComputeTax(cart, TaxContext{PackingPercent: 10})

	if got.Subtotal != 200 {
		t.Errorf("Subtotal = %v, want 200", got.Subtotal)
	}
	if got.PackingAmount != 20 {
		t.Errorf("PackingAmount = %v, want 20", got.PackingAmount)
	}
	if got.TaxableValue != 220 {
		t.Errorf("TaxableValue = %v, want 220", got.TaxableValue)
	}
	if math.Abs(got.CGSTAmount-19.8) > 1e-9 {
		t.Errorf("CGSTAmount = %v, want 19.8", got.CGSTAmount)
	}
	if math.Abs(got.SGSTAmount-19.8) > 1e-9 {
		t.Errorf("SGSTAmount = %v, want 19.8", got.SGSTAmount)
	}
	if got.IGSTAmount != 0 {
		t.Errorf("IGSTAmount = %v, want 0", got.IGSTAmount)
	}
	if got.NetAmount != 260 {
		t.Errorf("NetAmount = %v, want 260", got.NetAmount)
	}
}

func TestComputeTax_Interstate(t *testing.T) {
	cart := []CartItem{{RatePerBox: 100, Cases: 2}}
	got := ComputeTax(cart, TaxContext{PackingPercent: 10, IsInterstate: true})

	if got.CGSTAmount != 0 || got.SGSTAmount != 0 {
		t.Errorf("CGST/SGST = %v/%v, want 0/0 on interstate", got.CGSTAmount, got.SGSTAmount)
	}
	if math.Abs(got.IGSTAmount-39.6) > 1e-9 {
		t.Errorf("IGSTAmount = %v, want 39.6", got.IGSTAmount)
	}
	// Same net either way: 18% split or whole.
	if got.NetAmount != 260 {
		t.Errorf("NetAmount = %v, want 260", got.NetAmount)
	}
}

func TestComputeTax_ExtraTaxableBypassesGST(t *testing.T) {
	cart := []CartItem{{RatePerBox: 100, Cases: 1}}
	got := ComputeTax(cart, TaxContext{ExtraTaxable: "50"})

	if got.ExtraAmount != 50 {
		t.Errorf("ExtraAmount = %v, want 50", got.ExtraAmount)
	}
	if got.TaxableValue != 150 {
		t.Errorf("TaxableValue = %v, want 150", got.TaxableValue)
	}
	// GST is computed on 100, not 150.
	if math.Abs(got.CGSTAmount-9) > 1e-9 {
		t.Errorf("CGSTAmount = %v, want 9", got.CGSTAmount)
	}
	if got.NetAmount != 168 {
		t.Errorf("NetAmount = %v, want 168", got.NetAmount)
	}
}

func TestComputeTax_MalformedExtraIsZero(t *testing.T) {
	cart := []CartItem{{RatePerBox: 100, Cases: 1}}
	got := ComputeTax(cart, TaxContext{ExtraTaxable: "n/a"})

	if got.ExtraAmount != 0 {
		t.Errorf("ExtraAmount = %v, want 0", got.ExtraAmount)
	}
	if got.TaxableValue != 100 {
		t.Errorf("TaxableValue = %v, want 100", got.TaxableValue)
	}
}

func TestComputeTax_EmptyCart(t *testing.T) {
	got := ComputeTax(nil, TaxContext{PackingPercent: 10, ExtraTaxable: "25"})

	if got.Subtotal != 0 || got.PackingAmount != 0 {
		t.Errorf("empty cart should have zero subtotal/packing, got %v/%v", got.Subtotal, got.PackingAmount)
	}
	if got.TaxableValue != 25 {
		t.Errorf("TaxableValue = %v, want 25", got.TaxableValue)
	}
	if got.NetAmount != 25 {
		t.Errorf("NetAmount = %v, want 25", got.NetAmount)
	}
}

func TestComputeTax_NetRoundsHalfUp(t *testing.T) {
	// Subtotal 101, no packing: GST base 101, CGST+SGST = 18.18,
	// 119.18 rounds down to 119.
	cart := []CartItem{{RatePerBox: 101, Cases: 1}}
	got := ComputeTax(cart, TaxContext{})
	if got.NetAmount != 119 {
		t.Errorf("NetAmount = %v, want 119", got.NetAmount)
	}

	// Subtotal 150: taxes 27, net exactly 177.
	cart = []CartItem{{RatePerBox: 75, Cases: 2}}
	got = ComputeTax(cart, TaxContext{})
	if got.NetAmount != 177 {
		t.Errorf("NetAmount = %v, want 177", got.NetAmount)
	}
}

func TestParseCasesOrOne(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect int
	}{
		{"blank defaults to one", "", 1},
		{"zero clamps to one", "0", 1},
		{"negative clamps to one", "-5", 1},
		{"valid count", "7", 7},
		{"decimal truncates", "3.9", 3},
		{"garbage defaults to one", "many", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCasesOrOne(tt.input)
			if got != tt.expect {
				t.Errorf("ParseCasesOrOne(%q) = %d, want %d", tt.input, got, tt.expect)
			}
		})
	}
}
