package verdict

import (
	"strings"

	"NetShield/internal/domain"
)

// ParseClaim recognizes the two-line Claim:/Evidence: extractor output.
// Matching is loose: prefixes are case-insensitive, the claim may run
// over several lines until the Evidence: marker, and a response without
// the expected shape is kept verbatim in Raw so the validator still sees
// the full text.
func ParseClaim(raw string) domain.ExtractedClaim {
	out := domain.ExtractedClaim{Raw: strings.TrimSpace(raw)}

	var claim, evidence []string
	section := ""
	for _, line := range strings.Split(out.Raw, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case hasFold(trimmed, "Claim:"):
			section = "claim"
			trimmed = strings.TrimSpace(trimmed[len("Claim:"):])
			if trimmed != "" {
				claim = append(claim, trimmed)
			}
		case hasFold(trimmed, "Evidence:"):
			section = "evidence"
			trimmed = strings.TrimSpace(trimmed[len("Evidence:"):])
			if trimmed != "" {
				evidence = append(evidence, trimmed)
			}
		case section == "claim" && trimmed != "":
			claim = append(claim, trimmed)
		case section == "evidence" && trimmed != "":
			evidence = append(evidence, trimmed)
		}
	}

	out.Claim = strings.Join(claim, " ")
	out.Evidence = strings.Join(evidence, " ")
	return out
}

func hasFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
