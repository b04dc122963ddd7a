package ports

import (
	"context"
	"time"

	"NetShield/internal/domain"
)

// BatchSource loads the tabular batch of video records to verify.
type BatchSource interface {
	LoadBatch(ctx context.Context) ([]domain.VideoRecord, error)
}

// ClaimExtractor pulls the single most specific factual claim out of
// sparse video metadata, as raw Claim:/Evidence: shaped text.
type ClaimExtractor interface {
	ExtractClaim(ctx context.Context, metadata string) (string, error)
}

// Summarizer condenses arbitrary text into a short factual summary.
// Short or junk input must never be flagged as irrelevant.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// NewsSource retrieves up to limit news snippets for a query, in
// provider relevance order. Upstream failures surface as an empty slice
// so the pipeline can apply fallback logic uniformly.
type NewsSource interface {
	Search(ctx context.Context, query string, limit int) ([]domain.NewsSnippet, error)
}

// QueryNormalizer translates or normalizes a video title into a concise
// search query.
type QueryNormalizer interface {
	NormalizeQuery(ctx context.Context, title string) (string, error)
}

// Judge compares a claim against a news summary and returns raw
// "STATUS (Reason)" shaped text.
type Judge interface {
	Judge(ctx context.Context, claim, newsSummary string) (string, error)
}

// VerdictRepository persists terminal verdicts for audit and history.
type VerdictRepository interface {
	SaveVerdict(ctx context.Context, rec domain.VerdictRecord) error
	RecentVerdicts(ctx context.Context, limit int) ([]domain.VerdictRecord, error)
}

// ReportSink writes the finished batch report as a persisted artifact.
type ReportSink interface {
	WriteReport(ctx context.Context, report domain.BatchReport) error
}

// Notifier delivers a finished-batch digest to an outbound channel.
type Notifier interface {
	PublishReport(ctx context.Context, report domain.BatchReport) error
}

// Scheduler controls when batch runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
