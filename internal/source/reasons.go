package source

import "strings"

// ReasonUnspecified is the label for blank or unmapped reason codes.
const ReasonUnspecified = "Unspecified"

// reasonLabels maps change-order reason codes to display labels.
// Exports sometimes carry the code as a float string ("2.0"); codes are
// normalized before lookup.
var reasonLabels = map[string]string{
	"0": "Scope Change",
	"1": "Client Request",
	"2": "Unforeseen Conditions",
	"3": "Design Revision",
}

// MapReason resolves a raw co_reason value to its display label.
// Already-labeled values pass through unchanged; blanks and unknown
// codes become ReasonUnspecified.
func MapReason(raw string) string {
	code := strings.TrimSpace(raw)
	if code == "" {
		return ReasonUnspecified
	}

	code = strings.TrimSuffix(code, ".0")
	if label, ok := reasonLabels[code]; ok {
		return label
	}

	// A non-numeric value may already be a label from a hand-edited export.
	for _, label := range reasonLabels {
		if strings.EqualFold(code, label) {
			return label
		}
	}

	return ReasonUnspecified
}
