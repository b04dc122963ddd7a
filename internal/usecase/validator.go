package usecase

import (
	"context"
	"log/slog"
	"strings"

	"NetShield/internal/domain"
	"NetShield/internal/ports"
	"NetShield/internal/verdict"
)

// Validator layers the deterministic policy rules over the fuzzy LLM
// judgment. The data-sufficiency gate and the high-risk-topic upgrade
// run in code; the judge model decides contradiction, relevance, and
// content abuse in between.
type Validator struct {
	judge  ports.Judge
	logger *slog.Logger
}

// NewValidator wires the judgment capability.
func NewValidator(judge ports.Judge, logger *slog.Logger) *Validator {
	return &Validator{judge: judge, logger: logger}
}

// Validate resolves a claim against a news summary into a verdict. It
// never returns an error: an unavailable or failing judge downgrades the
// outcome to Yellow module-error so a batch is never aborted by one video.
func (v *Validator) Validate(ctx context.Context, claim, newsSummary string) domain.Verdict {
	if gate := verdict.DataGate(claim, newsSummary); gate != nil {
		v.debug("data gate fired",
			"claim_words", verdict.WordCount(claim),
			"news_words", verdict.WordCount(newsSummary))
		return *gate
	}

	if v.judge == nil {
		return domain.Verdict{Status: domain.StatusYellow, Reason: verdict.ReasonModuleError}
	}

	raw, err := v.judge.Judge(ctx, claim, newsSummary)
	if err != nil {
		v.warn("judge call failed", "error", err)
		return domain.Verdict{Status: domain.StatusYellow, Reason: verdict.ReasonModuleError}
	}

	out := verdict.Parse(strings.TrimSpace(raw))
	return verdict.Upgrade(out, claim)
}

func (v *Validator) debug(msg string, args ...any) {
	if v.logger != nil {
		v.logger.Debug(msg, args...)
	}
}

func (v *Validator) warn(msg string, args ...any) {
	if v.logger != nil {
		v.logger.Warn(msg, args...)
	}
}
