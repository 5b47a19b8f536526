package services

import (
	"errors"
	"strings"
)

// maxWordableAmount is the largest amount expressible with the five-group
// crore/lakh/thousand/hundred/tens decomposition (nine digits).
const maxWordableAmount = 999_999_999

// ErrAmountOverflow is returned for amounts of ten or more digits rather
// than producing wrong words.
var ErrAmountOverflow = errors.New("amount too large to express in words")

// ErrNegativeAmount is returned for negative input; invoices never carry a
// negative net amount.
var ErrNegativeAmount = errors.New("negative amount cannot be expressed in words")

// AmountInWords renders a rupee amount using the Indian grouping system
// (crore, lakh, thousand, hundred). The tens-and-units group is preceded by
// "and" when a higher group already produced output, and the result always
// ends in "Only":
//
//	260     -> "Two Hundred and Sixty Only"
//	150000  -> "One Lakh Fifty Thousand Only"
//	0       -> "Zero Rupees Only"
func AmountInWords(amount int64) (string, error) {
	if amount < 0 {
		return "", ErrNegativeAmount
	}
	if amount > maxWordableAmount {
		return "", ErrAmountOverflow
	}
	if amount == 0 {
		return "Zero Rupees Only", nil
	}

	crore := amount / 10_000_000
	lakh := (amount / 100_000) % 100
	thousand := (amount / 1_000) % 100
	hundred := (amount / 100) % 10
	tens := amount % 100

	var parts []string
	if crore > 0 {
		parts = append(parts, wordsUnder100(crore)+" Crore")
	}
	if lakh > 0 {
		parts = append(parts, wordsUnder100(lakh)+" Lakh")
	}
	if thousand > 0 {
		parts = append(parts, wordsUnder100(thousand)+" Thousand")
	}
	if hundred > 0 {
		parts = append(parts, oneWords[hundred]+" Hundred")
	}
	if tens > 0 {
		w := wordsUnder100(tens)
		if len(parts) > 0 {
			w = "and " + w
		}
		parts = append(parts, w)
	}

	return strings.Join(parts, " ") + " Only", nil
}

func wordsUnder100(n int64) string {
	if n < 20 {
		return oneWords[n]
	}
	result := tenWords[n/10]
	if n%10 != 0 {
		result += " " + oneWords[n%10]
	}
	return result
}

var oneWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tenWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
