// Package verdict implements the deterministic policy layer of the
// verification pipeline: word-count gates, judgment-text parsing, the
// six-rule precedence, and the sensitive-topic upgrade. Everything here
// is pure and runs without a network call.
package verdict

import (
	"strings"

	"NetShield/internal/domain"
)

// Minimum thresholds for meaningful content. Inputs below either bound
// force Yellow before the judgment model is consulted.
const (
	MinClaimWords = 5
	MinNewsWords  = 15
)

// Reason tags attached to verdicts. The report itself carries only the
// status; reasons feed the audit store and logs.
const (
	ReasonInsufficientData   = "insufficient-data"
	ReasonIrrelevantContext  = "irrelevant-context"
	ReasonMajorContradiction = "major-contradiction"
	ReasonContentAbuse       = "content-abuse-or-misleading-tags"
	ReasonHighUnverifiedRisk = "high-unverified-risk"
	ReasonThematicMatch      = "thematic-match-not-contradicted"
	ReasonAmbiguousOutput    = "ambiguous-output"
	ReasonNoContent          = "no-content"
	ReasonNewsContextMissing = "news-context-missing"
	ReasonModuleError        = "module-error"
	ReasonPipelineError      = "pipeline-error"
)

// Signals are the labeled judgments the fuzzy model (or a test) supplies
// to the rule engine.
type Signals struct {
	ClaimWords   int
	NewsWords    int
	Irrelevant   bool
	Contradicted bool
	ContentAbuse bool
	Sensitive    bool
}

// WordCount counts whitespace-separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// DataGate applies the data-sufficiency rule. It returns a forced Yellow
// verdict when either input is below its threshold, nil otherwise.
func DataGate(claim, newsSummary string) *domain.Verdict {
	if WordCount(claim) < MinClaimWords || WordCount(newsSummary) < MinNewsWords {
		return &domain.Verdict{Status: domain.StatusYellow, Reason: ReasonInsufficientData}
	}
	return nil
}

// ApplyRules resolves signals into a verdict using the policy precedence,
// first match wins:
//
//  1. data-sufficiency gate -> Yellow
//  2. irrelevant context -> Yellow (upgraded to Red by rule 5 when the
//     claim is sensitive)
//  3. major contradiction -> Red
//  4. content abuse -> Red
//  5. (folded into 2)
//  6. default -> Green
func ApplyRules(sig Signals) domain.Verdict {
	if sig.ClaimWords < MinClaimWords || sig.NewsWords < MinNewsWords {
		return domain.Verdict{Status: domain.StatusYellow, Reason: ReasonInsufficientData}
	}
	if sig.Irrelevant {
		if sig.Sensitive {
			return domain.Verdict{Status: domain.StatusRed, Reason: ReasonHighUnverifiedRisk}
		}
		return domain.Verdict{Status: domain.StatusYellow, Reason: ReasonIrrelevantContext}
	}
	if sig.Contradicted {
		return domain.Verdict{Status: domain.StatusRed, Reason: ReasonMajorContradiction}
	}
	if sig.ContentAbuse {
		return domain.Verdict{Status: domain.StatusRed, Reason: ReasonContentAbuse}
	}
	return domain.Verdict{Status: domain.StatusGreen, Reason: ReasonThematicMatch}
}

// Parse maps raw judgment text of the shape "STATUS (Reason)" to a
// verdict. Matching is case-insensitive substring search in priority
// order RED, YELLOW, GREEN; the order matters because a reason string may
// mention another color. Text matching none of the three resolves to
// Yellow, the ambiguous-output policy.
func Parse(raw string) domain.Verdict {
	upper := strings.ToUpper(raw)
	reason := extractReason(raw)

	switch {
	case strings.Contains(upper, "RED"):
		return domain.Verdict{Status: domain.StatusRed, Reason: reason}
	case strings.Contains(upper, "YELLOW"):
		return domain.Verdict{Status: domain.StatusYellow, Reason: reason}
	case strings.Contains(upper, "GREEN"):
		return domain.Verdict{Status: domain.StatusGreen, Reason: reason}
	default:
		return domain.Verdict{Status: domain.StatusYellow, Reason: ReasonAmbiguousOutput}
	}
}

func extractReason(raw string) string {
	open := strings.Index(raw, "(")
	if open < 0 {
		return strings.TrimSpace(raw)
	}
	end := strings.Index(raw[open:], ")")
	if end < 0 {
		return strings.TrimSpace(raw[open+1:])
	}
	return strings.TrimSpace(raw[open+1 : open+end])
}

// Upgrade applies the high-risk-topic rule on top of a parsed judgment:
// a Yellow-by-relevance outcome for a sensitive claim escalates to Red.
// It never touches Green, Red, or the insufficient-data Yellow (the gate
// returns before the judge is ever consulted).
func Upgrade(v domain.Verdict, claim string) domain.Verdict {
	if v.Status != domain.StatusYellow {
		return v
	}
	if !relevanceReason(v.Reason) {
		return v
	}
	if !SensitiveTopic(claim) {
		return v
	}
	return domain.Verdict{Status: domain.StatusRed, Reason: ReasonHighUnverifiedRisk}
}

// relevanceReason recognizes the rule-2 vocabulary in a parsed reason.
func relevanceReason(reason string) bool {
	lower := strings.ToLower(reason)
	for _, marker := range []string{"irrelevan", "unverif", "unrelated", "generally related"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// sensitiveTerms enumerate the claim categories eligible for the
// high-risk upgrade: named political processes, specific health claims,
// and quantitative risk figures.
var sensitiveTerms = []string{
	// political
	"election", "referendum", "vote", "voting", "parliament", "minister",
	"president", "protest", "coup",
	// health
	"vaccine", "vaccination", "virus", "outbreak", "pandemic", "cancer",
	"cure", "disease", "covid", "medicine",
	// quantitative risk figures
	"aqi", "death toll", "deaths", "casualties", "fatalit", "mortality",
}

// SensitiveTopic reports whether the claim touches a category that the
// policy treats as high impact.
func SensitiveTopic(claim string) bool {
	lower := strings.ToLower(claim)
	for _, term := range sensitiveTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
