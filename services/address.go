package services

import (
	"regexp"
	"strings"
)

// kilMarker matches the standalone word "Kil", a prefix common in local
// place names (Kil Thayilapatti, Kil Vaikal, ...). When present, the invoice
// header splits the address right before it so the place name starts line
// two. The heuristic is deliberate and must not be "improved".
var kilMarker = regexp.MustCompile(`(?i)\bKil\b`)

// SplitAddressLines splits a free-text address into the two lines the
// invoice header has room for. If the "Kil" marker is found the split happens
// at the marker (trailing commas trimmed from line one); otherwise the
// comma-separated segments are halved, first half rounding up.
func SplitAddressLines(addr string) (string, string) {
	a := strings.TrimSpace(addr)
	if a == "" {
		return "", ""
	}

	if loc := kilMarker.FindStringIndex(a); loc != nil {
		line1 := strings.TrimRight(strings.TrimSpace(a[:loc[0]]), ",")
		line2 := strings.TrimSpace(a[loc[0]:])
		return line1, line2
	}

	var parts []string
	for _, p := range strings.Split(a, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) <= 2 {
		return strings.Join(parts, ", "), ""
	}
	half := (len(parts) + 1) / 2
	return strings.Join(parts[:half], ", "), strings.Join(parts[half:], ", ")
}
