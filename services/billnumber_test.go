package services

import (
	"testing"

	"billingdesk/testhelpers"
)

func TestCompanyPrefix(t *testing.T) {
	tests := []struct {
		name    string
		company string
		expect  string
	}{
		{"two words", "Nisha Traders", "NT"},
		{"already uppercase", "NISHA TRADERS", "NT"},
		{"single word", "Standard", "S"},
		{"three words uses first two", "Sri Kaliswari Fireworks", "SK"},
		{"extra spacing", "  Anil   Fireworks  ", "AF"},
		{"multi-byte initials", "Öztürk Şirketi", "ÖŞ"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompanyPrefix(tt.company)
			if got != tt.expect {
				t.Errorf("CompanyPrefix(%q) = %q, want %q", tt.company, got, tt.expect)
			}
		})
	}
}

func TestFallbackBillNumber(t *testing.T) {
	if got := FallbackBillNumber("NT"); got != "NT-001" {
		t.Errorf("FallbackBillNumber = %q, want NT-001", got)
	}
}

func TestBillNumberState_Effective(t *testing.T) {
	s := BillNumberState{Suggested: "NT-005"}
	if got := s.Effective(); got != "NT-005" {
		t.Errorf("Effective() = %q, want suggestion NT-005", got)
	}

	s = s.SetManual("nt-101")
	if got := s.Effective(); got != "NT-101" {
		t.Errorf("Effective() after manual edit = %q, want NT-101", got)
	}
	if !s.IsOverride() {
		t.Error("IsOverride() = false after a differing manual edit")
	}

	// Clearing the field reverts to the suggestion.
	s = s.SetManual("")
	if got := s.Effective(); got != "NT-005" {
		t.Errorf("Effective() after clearing = %q, want NT-005", got)
	}
	if s.IsOverride() {
		t.Error("IsOverride() = true with no manual value")
	}
}

func TestBillNumberState_TypingSuggestionIsNotOverride(t *testing.T) {
	s := BillNumberState{Suggested: "NT-005"}
	s = s.SetManual("NT-005")
	if s.IsOverride() {
		t.Error("typing the suggestion verbatim must not count as an override")
	}
}

func TestBillNumberState_ApplySuggestionResetsManual(t *testing.T) {
	s := BillNumberState{Suggested: "NT-005"}
	s = s.SetManual("NT-200")
	s = s.ApplySuggestion("SK-001")
	if s.Manual != "" {
		t.Errorf("Manual = %q after company change, want cleared", s.Manual)
	}
	if got := s.Effective(); got != "SK-001" {
		t.Errorf("Effective() = %q, want SK-001", got)
	}
}

func TestBillNumberState_AdoptStored(t *testing.T) {
	s := BillNumberState{Suggested: "NT-005", Manual: "NT-004"}
	s = s.AdoptStored("NT-006")
	if s.Suggested != "NT-006" || s.Manual != "" {
		t.Errorf("AdoptStored left state (%q, %q), want (NT-006, \"\")", s.Suggested, s.Manual)
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		name      string
		billNo    string
		prefix    string
		expectSeq int
		expectOK  bool
	}{
		{"standard", "NT-007", "NT", 7, true},
		{"large sequence", "NT-1234", "NT", 1234, true},
		{"wrong prefix", "SK-007", "NT", 0, false},
		{"no separator", "NT007", "NT", 0, false},
		{"non numeric suffix", "NT-ABC", "NT", 0, false},
		{"empty", "", "NT", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, ok := parseSequence(tt.billNo, tt.prefix)
			if seq != tt.expectSeq || ok != tt.expectOK {
				t.Errorf("parseSequence(%q, %q) = (%d, %v), want (%d, %v)",
					tt.billNo, tt.prefix, seq, ok, tt.expectSeq, tt.expectOK)
			}
		})
	}
}

func TestNextBillNumber_EmptyStore(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if got := NextBillNumber(app, "NT"); got != "NT-001" {
		t.Errorf("NextBillNumber on empty store = %q, want NT-001", got)
	}
}

func TestNextBillNumber_SkipsDraftsAndOtherPrefixes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")

	testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-003")
	testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-007")
	testhelpers.CreateTestSavedBooking(t, app, company.Id, "SK-050")

	// Drafts never consume sequence numbers.
	draft := testhelpers.CreateTestBooking(t, app, company.Id, "draft")
	draft.Set("bill_no", "NT-099")
	if err := app.Save(draft); err != nil {
		t.Fatalf("failed to update draft: %v", err)
	}

	if got := NextBillNumber(app, "NT"); got != "NT-008" {
		t.Errorf("NextBillNumber = %q, want NT-008", got)
	}
}

func TestNextBillNumber_IgnoresManualFormats(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")

	testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-002")
	testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-SPECIAL")

	if got := NextBillNumber(app, "NT"); got != "NT-003" {
		t.Errorf("NextBillNumber = %q, want NT-003", got)
	}
}

func TestResolveBillNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-001")

	t.Run("blank allocates next", func(t *testing.T) {
		if got := ResolveBillNumber(app, "", "NT"); got != "NT-002" {
			t.Errorf("ResolveBillNumber = %q, want NT-002", got)
		}
	})

	t.Run("free number wins", func(t *testing.T) {
		if got := ResolveBillNumber(app, "NT-050", "NT"); got != "NT-050" {
			t.Errorf("ResolveBillNumber = %q, want NT-050", got)
		}
	})

	t.Run("taken number falls to next free", func(t *testing.T) {
		if got := ResolveBillNumber(app, "NT-001", "NT"); got != "NT-002" {
			t.Errorf("ResolveBillNumber = %q, want NT-002", got)
		}
	})

	t.Run("manual format survives when free", func(t *testing.T) {
		if got := ResolveBillNumber(app, "NT-SPECIAL", "NT"); got != "NT-SPECIAL" {
			t.Errorf("ResolveBillNumber = %q, want NT-SPECIAL", got)
		}
	})
}
