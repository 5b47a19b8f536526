package services

import (
	"fmt"
	"strings"
)

// FormatINR formats an amount into Indian Rupee notation with the rupee
// symbol: after the rightmost 3 digits, digits group in pairs
// (e.g., ₹1,23,45,678.90). Always two decimal places.
func FormatINR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := "₹" + applyIndianGrouping(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatAmount renders a bare two-decimal amount, the way figures appear in
// invoice table cells where the currency is implied by the document.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}
