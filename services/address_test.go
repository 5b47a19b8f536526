package services

import "testing"

func TestSplitAddressLines_KilMarker(t *testing.T) {
	line1, line2 := SplitAddressLines("3/1474-B Paraipatti, Kil Thayilapatti, Sivakasi - 626123")
	if line1 != "3/1474-B Paraipatti" {
		t.Errorf("line1 = %q, want %q", line1, "3/1474-B Paraipatti")
	}
	if line2 != "Kil Thayilapatti, Sivakasi - 626123" {
		t.Errorf("line2 = %q, want %q", line2, "Kil Thayilapatti, Sivakasi - 626123")
	}
}

func TestSplitAddressLines_KilCaseInsensitive(t *testing.T) {
	line1, line2 := SplitAddressLines("Main Road, KIL Vaikal, Madurai")
	if line1 != "Main Road" {
		t.Errorf("line1 = %q, want %q", line1, "Main Road")
	}
	if line2 != "KIL Vaikal, Madurai" {
		t.Errorf("line2 = %q, want %q", line2, "KIL Vaikal, Madurai")
	}
}

func TestSplitAddressLines_KilInsideWordIgnored(t *testing.T) {
	// "Kilakarai" must not trigger the marker split.
	line1, line2 := SplitAddressLines("12 North St, Kilakarai, Ramanathapuram, Tamil Nadu")
	if line1 != "12 North St, Kilakarai" {
		t.Errorf("line1 = %q, want %q", line1, "12 North St, Kilakarai")
	}
	if line2 != "Ramanathapuram, Tamil Nadu" {
		t.Errorf("line2 = %q, want %q", line2, "Ramanathapuram, Tamil Nadu")
	}
}

func TestSplitAddressLines_CommaHalving(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		expect1 string
		expect2 string
	}{
		{"four segments", "A, B, C, D", "A, B", "C, D"},
		{"three segments rounds up", "A, B, C", "A, B", "C"},
		{"two segments stay on one line", "A, B", "A, B", ""},
		{"single segment", "Sivakasi", "Sivakasi", ""},
		{"empty", "", "", ""},
		{"whitespace only", "   ", "", ""},
		{"blank segments dropped", "A, , B,, C, D", "A, B", "C, D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line1, line2 := SplitAddressLines(tt.input)
			if line1 != tt.expect1 || line2 != tt.expect2 {
				t.Errorf("SplitAddressLines(%q) = (%q, %q), want (%q, %q)",
					tt.input, line1, line2, tt.expect1, tt.expect2)
			}
		})
	}
}
