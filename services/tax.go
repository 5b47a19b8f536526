// Package services provides the invoice computation engine: GST tax math,
// bill numbering, amount-in-words rendering and document generation.
package services

import (
	"math"
	"strconv"
	"strings"
)

// GST rates for the fireworks trade (fixed jurisdiction schedule, not
// configurable): intrastate sales carry CGST+SGST at 9% each, interstate
// sales carry IGST at 18%.
const (
	CGSTRate = 0.09
	SGSTRate = 0.09
	IGSTRate = 0.18
)

// HomeStateCode is the seller's GST state code (Tamil Nadu). A customer in
// any other state makes the sale interstate.
const HomeStateCode = "33"

// CartItem is one invoice line: a product sold by the case.
type CartItem struct {
	ItemID      string
	ProductName string
	HSNCode     string
	RatePerBox  float64
	Cases       int
}

// Amount returns the line total.
func (i CartItem) Amount() float64 {
	return float64(i.Cases) * i.RatePerBox
}

// TaxContext carries the operator-controlled inputs that shape the tax
// computation for the invoice being composed.
type TaxContext struct {
	PackingPercent float64
	// ExtraTaxable is the raw operator input; parsing is deferred to
	// ParseAmountOrZero so the leniency policy stays in one place.
	ExtraTaxable string
	IsInterstate bool
}

// TaxResult is a pure projection of the cart and tax context. It is never
// stored independently; every read recomputes it.
type TaxResult struct {
	Subtotal      float64
	PackingAmount float64
	ExtraAmount   float64
	TaxableValue  float64
	CGSTAmount    float64
	SGSTAmount    float64
	IGSTAmount    float64
	NetAmount     float64
}

// CartSubtotal sums the line totals in cart order.
func CartSubtotal(cart []CartItem) float64 {
	var sum float64
	for _, item := range cart {
		sum += item.Amount()
	}
	return sum
}

// TotalCases sums the case counts across the cart.
func TotalCases(cart []CartItem) int {
	var total int
	for _, item := range cart {
		total += item.Cases
	}
	return total
}

// ParseAmountOrZero parses a decimal amount, treating blank or malformed
// input as zero. Silently defaulting bad input is a deliberate leniency
// policy inherited from the billing desk's data entry flow, so it lives here
// under its own name instead of hiding inside ComputeTax.
func ParseAmountOrZero(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return v
}

// ComputeTax derives the full tax breakdown from the cart and context.
// Packing is charged as a percentage of the subtotal and taxed with it; the
// extra taxable amount is added after GST is computed. Only the net amount is
// rounded (half-up to the nearest rupee); every other field keeps full
// precision for the display layer to format.
func ComputeTax(cart []CartItem, ctx TaxContext) TaxResult {
	subtotal := CartSubtotal(cart)
	packing := subtotal * (ctx.PackingPercent / 100)
	gstBase := subtotal + packing
	extra := ParseAmountOrZero(ctx.ExtraTaxable)

	var cgst, sgst, igst float64
	if ctx.IsInterstate {
		igst = gstBase * IGSTRate
	} else {
		cgst = gstBase * CGSTRate
		sgst = gstBase * SGSTRate
	}

	taxable := gstBase + extra

	return TaxResult{
		Subtotal:      subtotal,
		PackingAmount: packing,
		ExtraAmount:   extra,
		TaxableValue:  taxable,
		CGSTAmount:    cgst,
		SGSTAmount:    sgst,
		IGSTAmount:    igst,
		NetAmount:     math.Round(taxable + cgst + sgst + igst),
	}
}
