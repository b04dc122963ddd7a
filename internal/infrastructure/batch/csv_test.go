package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"NetShield/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestCSVSourceLoadBatch(t *testing.T) {
	t.Parallel()

	content := "Video Title,Video URL,Description,Channel Title,Channel Description,Subscriber Count\n" +
		"Dam releases water,https://youtu.be/a,Official bulletin,NewsChan,Regional news,\"12,500\"\n" +
		"Second video,https://youtu.be/b,,Chan2,,not-a-number\n"

	path := writeFile(t, t.TempDir(), "video_data.csv", content)
	src := NewCSVSource(path)

	records, err := src.LoadBatch(context.Background())
	if err != nil {
		t.Fatalf("LoadBatch error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first := records[0]
	if first.Title != "Dam releases water" || first.URL != "https://youtu.be/a" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.SubscriberCount != 12500 {
		t.Fatalf("expected 12500 subscribers, got %d", first.SubscriberCount)
	}
	if records[1].SubscriberCount != domain.SubscriberCountUnknown {
		t.Fatalf("unparseable count must map to unknown, got %d", records[1].SubscriberCount)
	}
}

func TestCSVSourceTolerantHeaders(t *testing.T) {
	t.Parallel()

	content := "video_title,VIDEO URL,transcript\n" +
		"Tolerant title,https://youtu.be/c,spoken words here\n"

	path := writeFile(t, t.TempDir(), "video_data.csv", content)
	src := NewCSVSource(path)

	records, err := src.LoadBatch(context.Background())
	if err != nil {
		t.Fatalf("LoadBatch error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Title != "Tolerant title" || rec.URL != "https://youtu.be/c" {
		t.Fatalf("header tolerance failed: %+v", rec)
	}
	if rec.Transcript != "spoken words here" {
		t.Fatalf("transcript column not honored: %+v", rec)
	}
	if rec.Description != "" || rec.ChannelTitle != "" {
		t.Fatalf("missing columns must default to empty: %+v", rec)
	}
	if rec.SubscriberCount != domain.SubscriberCountUnknown {
		t.Fatalf("missing subscriber column must map to unknown")
	}
}

func TestCSVSourceMissingFileIsFatal(t *testing.T) {
	t.Parallel()

	src := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := src.LoadBatch(context.Background()); err == nil {
		t.Fatalf("expected error for missing batch file")
	}
}

func TestReportRoundTrip(t *testing.T) {
	t.Parallel()

	report := domain.BatchReport{
		{VideoTitle: "one", VideoURL: "u1", Status: domain.StatusGreen},
		{VideoTitle: "two, with comma", VideoURL: "u2", Status: domain.StatusYellow},
		{VideoTitle: "three", VideoURL: "u3", Status: domain.StatusRed},
	}

	path := filepath.Join(t.TempDir(), "Accountreport.csv")
	writer := NewCSVReportWriter(path)
	if err := writer.WriteReport(context.Background(), report); err != nil {
		t.Fatalf("WriteReport error: %v", err)
	}

	loaded, err := LoadReport(path)
	if err != nil {
		t.Fatalf("LoadReport error: %v", err)
	}
	if len(loaded) != len(report) {
		t.Fatalf("expected %d rows, got %d", len(report), len(loaded))
	}
	for i := range report {
		if loaded[i] != report[i] {
			t.Fatalf("row %d mismatch: %+v != %+v", i, loaded[i], report[i])
		}
	}
}
