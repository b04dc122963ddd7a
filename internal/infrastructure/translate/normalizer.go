package translate

import (
	"context"
	"fmt"
	"strings"

	"NetShield/internal/ports"
)

// Completer is the raw prompt-in/text-out capability the normalizer
// builds on.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Normalizer turns a video title into a concise English news-search
// query. Without a completer it degrades to whitespace cleanup, which
// matches the raw-title fallback the pipeline applies anyway.
type Normalizer struct {
	completer Completer
}

var _ ports.QueryNormalizer = (*Normalizer)(nil)

// NewNormalizer wires the completion capability; nil is allowed.
func NewNormalizer(completer Completer) *Normalizer {
	return &Normalizer{completer: completer}
}

// NormalizeQuery translates and condenses the title. Errors propagate so
// the caller can fall back to the raw title.
func (n *Normalizer) NormalizeQuery(ctx context.Context, title string) (string, error) {
	cleaned := strings.Join(strings.Fields(title), " ")
	if n.completer == nil {
		return cleaned, nil
	}

	prompt := "Translate the following YouTube video title to English if it is in another language, then rewrite it as a short news search query of at most eight words. Respond with the query only, no quotes and no explanation.\n\nTitle: " + cleaned

	out, err := n.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("normalize query: %w", err)
	}

	query := firstLine(out)
	query = strings.Trim(query, "\"'` ")
	if query == "" {
		return cleaned, nil
	}
	return query, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
