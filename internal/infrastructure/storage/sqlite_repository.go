package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"NetShield/internal/domain"
	"NetShield/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS verdicts (
	video_url    TEXT PRIMARY KEY,
	video_title  TEXT NOT NULL,
	claim        TEXT,
	news_summary TEXT,
	status       TEXT NOT NULL,
	reason       TEXT,
	created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteRepository persists terminal verdicts for audit and history.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.VerdictRepository = (*SQLiteRepository)(nil)

// Open creates (if needed) and migrates the verdict database.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate verdicts: %w", err)
	}
	return db, nil
}

// NewSQLiteRepository wires a sql.DB implementation.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// SaveVerdict upserts the verdict snapshot keyed by video URL, so a
// re-run of the same batch refreshes history instead of duplicating it.
func (r *SQLiteRepository) SaveVerdict(ctx context.Context, rec domain.VerdictRecord) error {
	if r.db == nil {
		return nil
	}

	query, args, err := sq.Insert("verdicts").
		Columns("video_url", "video_title", "claim", "news_summary", "status", "reason").
		Values(rec.VideoURL, rec.VideoTitle, rec.Claim, rec.NewsSummary, string(rec.Status), rec.Reason).
		Suffix(`ON CONFLICT(video_url) DO UPDATE SET
			video_title = excluded.video_title,
			claim = excluded.claim,
			news_summary = excluded.news_summary,
			status = excluded.status,
			reason = excluded.reason,
			updated_at = CURRENT_TIMESTAMP`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert verdict: %w", err)
	}
	return nil
}

// RecentVerdicts returns the latest verdicts, most recently updated first.
func (r *SQLiteRepository) RecentVerdicts(ctx context.Context, limit int) ([]domain.VerdictRecord, error) {
	if r.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	query, args, err := sq.Select("video_url", "video_title", "claim", "news_summary", "status", "reason", "created_at", "updated_at").
		From("verdicts").
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	var records []domain.VerdictRecord
	for rows.Next() {
		var rec domain.VerdictRecord
		var status, createdAt, updatedAt string
		if err := rows.Scan(&rec.VideoURL, &rec.VideoTitle, &rec.Claim, &rec.NewsSummary, &status, &rec.Reason, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		rec.Status = domain.Status(status)
		rec.CreatedAt = parseTimestamp(createdAt)
		rec.UpdatedAt = parseTimestamp(updatedAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return records, nil
}

// parseTimestamp handles the textual forms SQLite hands back for
// CURRENT_TIMESTAMP columns.
func parseTimestamp(raw string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, time.RFC3339Nano} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
