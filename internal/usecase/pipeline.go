package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"NetShield/internal/domain"
	"NetShield/internal/ports"
	"NetShield/internal/verdict"
)

const (
	defaultNewsLimit   = 5
	defaultCallTimeout = 60 * time.Second
)

// PipelineDeps wires all driven adapters into the verification pipeline.
type PipelineDeps struct {
	Extractor   ports.ClaimExtractor
	Summarizer  ports.Summarizer
	News        ports.NewsSource
	Normalizer  ports.QueryNormalizer
	Validator   *Validator
	Repository  ports.VerdictRepository
	Logger      *slog.Logger
	NewsLimit   int
	CallTimeout time.Duration
}

// Pipeline drives each video through claim extraction, contextual news
// retrieval with a single raw-title fallback, news summarization, and
// rule-augmented validation, folding the outcomes into a batch report.
type Pipeline struct {
	extractor   ports.ClaimExtractor
	summarizer  ports.Summarizer
	news        ports.NewsSource
	normalizer  ports.QueryNormalizer
	validator   *Validator
	repository  ports.VerdictRepository
	logger      *slog.Logger
	newsLimit   int
	callTimeout time.Duration
}

// outcome carries a terminal verdict together with the intermediate
// artifacts worth persisting for audit.
type outcome struct {
	verdict     domain.Verdict
	claim       string
	newsSummary string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.NewsLimit <= 0 {
		deps.NewsLimit = defaultNewsLimit
	}
	if deps.CallTimeout <= 0 {
		deps.CallTimeout = defaultCallTimeout
	}
	return &Pipeline{
		extractor:   deps.Extractor,
		summarizer:  deps.Summarizer,
		news:        deps.News,
		normalizer:  deps.Normalizer,
		validator:   deps.Validator,
		repository:  deps.Repository,
		logger:      deps.Logger,
		newsLimit:   deps.NewsLimit,
		callTimeout: deps.CallTimeout,
	}
}

// Run verifies every record sequentially and returns one report row per
// input record, in input order. Per-video failures degrade to Yellow
// rows; nothing inside the loop aborts the batch.
func (p *Pipeline) Run(ctx context.Context, records []domain.VideoRecord) domain.BatchReport {
	report := make(domain.BatchReport, 0, len(records))

	for i, rec := range records {
		out := p.verifyVideo(ctx, rec)

		report = append(report, domain.ReportRow{
			VideoTitle: rec.Title,
			VideoURL:   rec.URL,
			Status:     out.verdict.Status,
		})

		p.persist(ctx, rec, out)
		p.info("video verified",
			"index", i+1,
			"total", len(records),
			"title", rec.Title,
			"status", out.verdict.Status,
			"reason", out.verdict.Reason)
	}

	return report
}

// verifyVideo walks one record through the per-video state machine. A
// panic escaping any step becomes a Yellow pipeline-error row so the
// report length invariant holds unconditionally.
func (p *Pipeline) verifyVideo(ctx context.Context, rec domain.VideoRecord) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			p.warn("video processing panicked", "title", rec.Title, "panic", fmt.Sprint(r))
			out = outcome{verdict: domain.Verdict{Status: domain.StatusYellow, Reason: verdict.ReasonPipelineError}}
		}
	}()

	// ContentCheck: the only state allowed to terminate without
	// consulting any collaborator.
	if !rec.HasContent() {
		return outcome{verdict: domain.Verdict{Status: domain.StatusYellow, Reason: verdict.ReasonNoContent}}
	}

	claim := p.extractClaim(ctx, rec)

	snippets := p.searchNews(ctx, rec.Title)
	if len(snippets) == 0 {
		return outcome{
			verdict: domain.Verdict{Status: domain.StatusYellow, Reason: verdict.ReasonNewsContextMissing},
			claim:   claim.Text(),
		}
	}

	newsSummary, err := p.summarizeNews(ctx, snippets)
	if err != nil {
		p.warn("news summarization failed", "title", rec.Title, "error", err)
		return outcome{
			verdict: domain.Verdict{Status: domain.StatusYellow, Reason: verdict.ReasonModuleError},
			claim:   claim.Text(),
		}
	}

	v := p.validator.Validate(ctx, claim.Text(), newsSummary)
	return outcome{verdict: v, claim: claim.Text(), newsSummary: newsSummary}
}

// extractClaim issues the single extraction request. A failed call is
// treated as an empty claim; the validator's data gate then routes the
// video to Yellow without special-casing here.
func (p *Pipeline) extractClaim(ctx context.Context, rec domain.VideoRecord) domain.ExtractedClaim {
	if p.extractor == nil {
		return domain.ExtractedClaim{}
	}

	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	raw, err := p.extractor.ExtractClaim(callCtx, metadataText(rec))
	if err != nil {
		p.warn("claim extraction failed", "title", rec.Title, "error", err)
		return domain.ExtractedClaim{}
	}
	return verdict.ParseClaim(raw)
}

// searchNews derives the initial query from the title, tries the
// provider once, and retries exactly once with the raw title as a
// broader query. At most two provider calls are made per video.
func (p *Pipeline) searchNews(ctx context.Context, title string) []domain.NewsSnippet {
	if p.news == nil {
		return nil
	}

	query := p.normalizeQuery(ctx, title)
	snippets := p.searchOnce(ctx, query)
	if len(snippets) == 0 && query != title {
		p.debug("query fallback, retrying with raw title", "query", query, "title", title)
		snippets = p.searchOnce(ctx, title)
	}
	return snippets
}

func (p *Pipeline) searchOnce(ctx context.Context, query string) []domain.NewsSnippet {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	snippets, err := p.news.Search(callCtx, query, p.newsLimit)
	if err != nil {
		p.warn("news search failed", "query", query, "error", err)
		return nil
	}
	return snippets
}

func (p *Pipeline) normalizeQuery(ctx context.Context, title string) string {
	if p.normalizer == nil {
		return title
	}

	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	query, err := p.normalizer.NormalizeQuery(callCtx, title)
	if err != nil || strings.TrimSpace(query) == "" {
		return title
	}
	return query
}

// summarizeNews condenses the retrieved snippets, preserving the
// provider's relevance order in the summarizer input.
func (p *Pipeline) summarizeNews(ctx context.Context, snippets []domain.NewsSnippet) (string, error) {
	parts := make([]string, 0, len(snippets))
	for _, s := range snippets {
		parts = append(parts, s.Text)
	}
	joined := strings.Join(parts, "\n\n")

	if p.summarizer == nil {
		return joined, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	return p.summarizer.Summarize(callCtx, joined)
}

func (p *Pipeline) persist(ctx context.Context, rec domain.VideoRecord, out outcome) {
	if p.repository == nil {
		return
	}

	err := p.repository.SaveVerdict(ctx, domain.VerdictRecord{
		VideoURL:    rec.URL,
		VideoTitle:  rec.Title,
		Claim:       out.claim,
		NewsSummary: out.newsSummary,
		Status:      out.verdict.Status,
		Reason:      out.verdict.Reason,
	})
	if err != nil {
		p.warn("persist verdict failed", "url", rec.URL, "error", err)
	}
}

// metadataText assembles the extraction input from title, description
// and, when the batch provides one, the transcript. Channel details and
// subscriber counts stay out of the prompt.
func metadataText(rec domain.VideoRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Video Title: %s\n", rec.Title)
	fmt.Fprintf(&b, "Video Description: %s\n", rec.Description)
	if rec.Transcript != "" {
		fmt.Fprintf(&b, "Transcript: %s\n", rec.Transcript)
	}
	return b.String()
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
