package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pocketbase/pocketbase"
)

// BillNumberState tracks the tri-state relationship between the
// server-suggested next bill number and an operator-supplied override.
// The zero value is valid (nothing suggested, nothing typed).
type BillNumberState struct {
	Suggested string
	Manual    string
}

// Effective returns the number a generated invoice will carry: the manual
// override when one is set, the suggestion otherwise.
func (s BillNumberState) Effective() string {
	if strings.TrimSpace(s.Manual) != "" {
		return s.Manual
	}
	return s.Suggested
}

// IsOverride reports whether the operator typed a number different from the
// suggestion. Typing the suggestion verbatim still counts as the suggested
// display state.
func (s BillNumberState) IsOverride() bool {
	return strings.TrimSpace(s.Manual) != "" && s.Manual != s.Suggested
}

// SetManual records an operator edit, normalized to trimmed uppercase.
// Clearing the field always reverts the effective number to the suggestion.
func (s BillNumberState) SetManual(raw string) BillNumberState {
	s.Manual = strings.ToUpper(strings.TrimSpace(raw))
	return s
}

// ApplySuggestion installs a fresh server suggestion and resets any manual
// override, as happens on every company change.
func (s BillNumberState) ApplySuggestion(suggested string) BillNumberState {
	s.Suggested = suggested
	s.Manual = ""
	return s
}

// AdoptStored installs the authoritative number returned by the store after
// a successful save. Both sides reset so a subsequent edit starts from a
// consistent state.
func (s BillNumberState) AdoptStored(authoritative string) BillNumberState {
	s.Suggested = authoritative
	s.Manual = ""
	return s
}

// CompanyPrefix derives the bill-number namespace from a company name: the
// first letter of each of the first two words, uppercased.
// "Nisha Traders" -> "NT".
func CompanyPrefix(companyName string) string {
	var prefix strings.Builder
	for i, word := range strings.Fields(companyName) {
		if i == 2 {
			break
		}
		r, _ := utf8.DecodeRuneInString(word)
		prefix.WriteString(strings.ToUpper(string(r)))
	}
	return prefix.String()
}

// FallbackBillNumber is the number suggested when the stored sequence cannot
// be consulted.
func FallbackBillNumber(prefix string) string {
	return formatBillNumber(prefix, 1)
}

// formatBillNumber constructs "<prefix>-NNN" with a 3-digit zero padded
// sequence.
func formatBillNumber(prefix string, sequence int) string {
	return fmt.Sprintf("%s-%03d", prefix, sequence)
}

// NextBillNumber suggests the next bill number for a company prefix by
// scanning saved bookings for the highest sequence already issued. Any store
// failure falls back to "<prefix>-001" so the billing page keeps working.
func NextBillNumber(app *pocketbase.PocketBase, prefix string) string {
	bookings, err := app.FindRecordsByFilter(
		"bookings",
		"status = 'saved' && bill_no ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "-%"},
	)
	if err != nil {
		log.Printf("billnumber: could not query bookings for prefix %s: %v", prefix, err)
		return FallbackBillNumber(prefix)
	}

	maxSeq := 0
	for _, b := range bookings {
		if seq, ok := parseSequence(b.GetString("bill_no"), prefix); ok && seq > maxSeq {
			maxSeq = seq
		}
	}
	return formatBillNumber(prefix, maxSeq+1)
}

// ResolveBillNumber decides the authoritative number at save time. The
// requested number wins unless it is blank or a saved booking already holds
// it, in which case the next free sequence number is allocated instead. The
// caller displays whatever comes back without re-negotiating.
func ResolveBillNumber(app *pocketbase.PocketBase, requested, prefix string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return NextBillNumber(app, prefix)
	}

	taken, err := app.FindRecordsByFilter(
		"bookings",
		"status = 'saved' && bill_no = {:billNo}",
		"",
		1,
		0,
		map[string]any{"billNo": requested},
	)
	if err != nil {
		log.Printf("billnumber: could not check bill number %s: %v", requested, err)
		return requested
	}
	if len(taken) > 0 {
		return NextBillNumber(app, prefix)
	}
	return requested
}

// parseSequence extracts the numeric suffix from "<prefix>-NNN" bill
// numbers; manual numbers in other formats are ignored by the sequence.
func parseSequence(billNo, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(billNo, prefix+"-")
	if !ok {
		return 0, false
	}
	seq, err := strconv.Atoi(rest)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}
