// Package batch implements the tabular input/output boundary: the video
// batch comes in as CSV and the finished report goes back out as CSV.
package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"NetShield/internal/domain"
	"NetShield/internal/ports"
)

// Report column headers, kept stable so persisted reports reload into
// the same three-column shape.
var reportHeader = []string{"Video Title", "Video Link", "Status"}

// CSVSource loads video records from a CSV file. Header matching is
// case- and presence-tolerant; missing optional columns default to the
// empty string.
type CSVSource struct {
	path string
}

var _ ports.BatchSource = (*CSVSource)(nil)

// NewCSVSource points the loader at the batch file.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// LoadBatch reads every row into a VideoRecord. A missing or unreadable
// file is the one batch-fatal condition in the system.
func (s *CSVSource) LoadBatch(ctx context.Context) ([]domain.VideoRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open batch %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read batch %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := columnIndex(rows[0])
	records := make([]domain.VideoRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, domain.VideoRecord{
			Title:              field(row, idx, "videotitle"),
			Description:        field(row, idx, "description"),
			ChannelTitle:       field(row, idx, "channeltitle"),
			ChannelDescription: field(row, idx, "channeldescription"),
			URL:                field(row, idx, "videourl"),
			SubscriberCount:    parseSubscribers(field(row, idx, "subscribercount")),
			Transcript:         field(row, idx, "transcript"),
		})
	}

	return records, nil
}

// columnIndex canonicalizes headers to lowercase letters only, so
// "Video Title", "video_title" and "VideoTitle" all resolve the same.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[canonical(name)] = i
	}
	return idx
}

func canonical(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func field(row []string, idx map[string]int, key string) string {
	i, ok := idx[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseSubscribers(raw string) int64 {
	if raw == "" {
		return domain.SubscriberCountUnknown
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(raw, ",", ""), 10, 64)
	if err != nil {
		return domain.SubscriberCountUnknown
	}
	return n
}

// CSVReportWriter persists the batch report.
type CSVReportWriter struct {
	path string
}

var _ ports.ReportSink = (*CSVReportWriter)(nil)

// NewCSVReportWriter points the writer at the report file.
func NewCSVReportWriter(path string) *CSVReportWriter {
	return &CSVReportWriter{path: path}
}

// WriteReport writes the three-column report, replacing any previous run.
func (w *CSVReportWriter) WriteReport(ctx context.Context, report domain.BatchReport) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", w.path, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(reportHeader); err != nil {
		_ = f.Close()
		return fmt.Errorf("write report header: %w", err)
	}
	for _, row := range report {
		if err := writer.Write([]string{row.VideoTitle, row.VideoURL, string(row.Status)}); err != nil {
			_ = f.Close()
			return fmt.Errorf("write report row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush report: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}

// LoadReport reads a persisted report back into its three-column shape.
func LoadReport(path string) (domain.BatchReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	report := make(domain.BatchReport, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		report = append(report, domain.ReportRow{
			VideoTitle: row[0],
			VideoURL:   row[1],
			Status:     domain.Status(row[2]),
		})
	}

	return report, nil
}
