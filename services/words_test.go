package services

import (
	"errors"
	"testing"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		expect string
	}{
		{"zero", 0, "Zero Rupees Only"},
		{"units", 7, "Seven Only"},
		{"teens", 14, "Fourteen Only"},
		{"tens", 60, "Sixty Only"},
		{"tens with units", 42, "Forty Two Only"},
		{"exact hundred", 100, "One Hundred Only"},
		{"hundred with tens", 260, "Two Hundred and Sixty Only"},
		{"hundred with units", 105, "One Hundred and Five Only"},
		{"exact thousand", 1000, "One Thousand Only"},
		{"thousand group of two digits", 25000, "Twenty Five Thousand Only"},
		{"lakh and thousand", 150000, "One Lakh Fifty Thousand Only"},
		{"full decomposition", 1234567, "Twelve Lakh Thirty Four Thousand Five Hundred and Sixty Seven Only"},
		{"crore", 10000000, "One Crore Only"},
		{"two digit crore", 120000000, "Twelve Crore Only"},
		{"everything", 123456789, "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred and Eighty Nine Only"},
		{"max wordable", 999999999, "Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine Only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AmountInWords(tt.amount)
			if err != nil {
				t.Fatalf("AmountInWords(%d) error: %v", tt.amount, err)
			}
			if got != tt.expect {
				t.Errorf("AmountInWords(%d) = %q, want %q", tt.amount, got, tt.expect)
			}
		})
	}
}

func TestAmountInWords_Overflow(t *testing.T) {
	_, err := AmountInWords(1_000_000_000)
	if !errors.Is(err, ErrAmountOverflow) {
		t.Errorf("expected ErrAmountOverflow for ten digit amount, got %v", err)
	}
}

func TestAmountInWords_Negative(t *testing.T) {
	_, err := AmountInWords(-1)
	if !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestAmountInWords_NoAndWithoutTensGroup(t *testing.T) {
	// "and" only precedes the tens-and-units group; amounts ending in 00
	// never carry it.
	got, err := AmountInWords(1500)
	if err != nil {
		t.Fatal(err)
	}
	if got != "One Thousand Five Hundred Only" {
		t.Errorf("AmountInWords(1500) = %q, want %q", got, "One Thousand Five Hundred Only")
	}
}
