package storage

import (
	"context"
	"path/filepath"
	"testing"

	"NetShield/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "verdicts.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewSQLiteRepository(db)
}

func TestSaveAndListVerdicts(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()

	recs := []domain.VerdictRecord{
		{VideoURL: "u1", VideoTitle: "one", Status: domain.StatusGreen, Reason: "thematic-match-not-contradicted"},
		{VideoURL: "u2", VideoTitle: "two", Status: domain.StatusRed, Reason: "major-contradiction", Claim: "c", NewsSummary: "n"},
	}
	for _, rec := range recs {
		if err := repo.SaveVerdict(ctx, rec); err != nil {
			t.Fatalf("SaveVerdict: %v", err)
		}
	}

	got, err := repo.RecentVerdicts(ctx, 10)
	if err != nil {
		t.Fatalf("RecentVerdicts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 verdicts, got %d", len(got))
	}
}

func TestSaveVerdictUpserts(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()

	first := domain.VerdictRecord{VideoURL: "u1", VideoTitle: "one", Status: domain.StatusYellow, Reason: "news-context-missing"}
	if err := repo.SaveVerdict(ctx, first); err != nil {
		t.Fatalf("SaveVerdict: %v", err)
	}

	second := first
	second.Status = domain.StatusGreen
	second.Reason = "thematic-match-not-contradicted"
	if err := repo.SaveVerdict(ctx, second); err != nil {
		t.Fatalf("SaveVerdict upsert: %v", err)
	}

	got, err := repo.RecentVerdicts(ctx, 10)
	if err != nil {
		t.Fatalf("RecentVerdicts: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("re-running a video must not duplicate history, got %d rows", len(got))
	}
	if got[0].Status != domain.StatusGreen {
		t.Fatalf("expected refreshed status, got %s", got[0].Status)
	}
}

func TestNilRepositoryIsSafe(t *testing.T) {
	t.Parallel()

	repo := NewSQLiteRepository(nil)
	if err := repo.SaveVerdict(context.Background(), domain.VerdictRecord{}); err != nil {
		t.Fatalf("nil db SaveVerdict must be a no-op, got %v", err)
	}
	if _, err := repo.RecentVerdicts(context.Background(), 5); err != nil {
		t.Fatalf("nil db RecentVerdicts must be a no-op, got %v", err)
	}
}
