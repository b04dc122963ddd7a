package domain

import "time"

// SubscriberCountUnknown marks rows whose subscriber column was missing or unparseable.
const SubscriberCountUnknown int64 = -1

// VideoRecord is an immutable input row describing one fetched video.
// It is produced by the upstream metadata extractor and consumed read-only.
type VideoRecord struct {
	Title              string
	Description        string
	ChannelTitle       string
	ChannelDescription string
	URL                string
	SubscriberCount    int64
	Transcript         string
}

// HasContent reports whether the record carries any text worth analyzing.
func (v VideoRecord) HasContent() bool {
	return v.Title != "" || v.Description != "" || v.Transcript != ""
}

// ExtractedClaim is the parsed two-line extractor output. When the LLM
// deviates from the Claim:/Evidence: shape, Raw keeps the full response
// so nothing is silently dropped.
type ExtractedClaim struct {
	Claim    string
	Evidence string
	Raw      string
}

// Parsed reports whether the Claim:/Evidence: shape was recognized.
func (c ExtractedClaim) Parsed() bool {
	return c.Claim != ""
}

// Text rebuilds the normalized two-line form for the validator, or
// returns the raw extractor output when the shape could not be
// recognized.
func (c ExtractedClaim) Text() string {
	if !c.Parsed() {
		return c.Raw
	}
	if c.Evidence == "" {
		return "Claim: " + c.Claim
	}
	return "Claim: " + c.Claim + "\nEvidence: " + c.Evidence
}

// NewsSnippet is one retrieved piece of news coverage, opaque text in
// provider relevance order.
type NewsSnippet struct {
	Text string
}

// Status is the terminal misinformation-risk label for a video.
type Status string

const (
	StatusGreen  Status = "Green"
	StatusYellow Status = "Yellow"
	StatusRed    Status = "Red"
)

// Verdict pairs a status with a machine-parseable reason tag.
type Verdict struct {
	Status Status
	Reason string
}

// ReportRow is one line of the batch report.
type ReportRow struct {
	VideoTitle string
	VideoURL   string
	Status     Status
}

// BatchReport holds one row per input video, in input order.
type BatchReport []ReportRow

// Count returns how many rows carry the given status.
func (r BatchReport) Count(status Status) int {
	n := 0
	for _, row := range r {
		if row.Status == status {
			n++
		}
	}
	return n
}

// VerdictRecord is the persisted audit snapshot of one terminal verdict.
type VerdictRecord struct {
	VideoURL    string
	VideoTitle  string
	Claim       string
	NewsSummary string
	Status      Status
	Reason      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
