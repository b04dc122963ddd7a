package translate

import (
	"context"
	"errors"
	"testing"
)

type stubCompleter struct {
	resp string
	err  error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.resp, s.err
}

func TestNormalizeQueryStripsDecoration(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(&stubCompleter{resp: "\"dam water release advisory\"\nextra line"})

	q, err := n.NormalizeQuery(context.Background(), "BREAKING!! Dam releases water")
	if err != nil {
		t.Fatalf("NormalizeQuery error: %v", err)
	}
	if q != "dam water release advisory" {
		t.Fatalf("unexpected query: %q", q)
	}
}

func TestNormalizeQueryPassthroughWithoutCompleter(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil)

	q, err := n.NormalizeQuery(context.Background(), "  spaced   out  title ")
	if err != nil {
		t.Fatalf("NormalizeQuery error: %v", err)
	}
	if q != "spaced out title" {
		t.Fatalf("unexpected query: %q", q)
	}
}

func TestNormalizeQueryPropagatesError(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(&stubCompleter{err: errors.New("rate limited")})

	if _, err := n.NormalizeQuery(context.Background(), "title"); err == nil {
		t.Fatalf("expected error to propagate for caller fallback")
	}
}

func TestNormalizeQueryEmptyCompletionFallsBack(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(&stubCompleter{resp: "   "})

	q, err := n.NormalizeQuery(context.Background(), "original title")
	if err != nil {
		t.Fatalf("NormalizeQuery error: %v", err)
	}
	if q != "original title" {
		t.Fatalf("expected cleaned title fallback, got %q", q)
	}
}
