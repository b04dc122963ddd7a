package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"NetShield/internal/domain"
	"NetShield/internal/ports"
)

// BatchRunner executes one full verification run: load the batch, verify
// every video, persist the report, and optionally notify.
type BatchRunner struct {
	source   ports.BatchSource
	pipeline *Pipeline
	sink     ports.ReportSink
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewBatchRunner wires the batch boundary around the pipeline.
func NewBatchRunner(source ports.BatchSource, pipeline *Pipeline, sink ports.ReportSink, notifier ports.Notifier, logger *slog.Logger) *BatchRunner {
	return &BatchRunner{
		source:   source,
		pipeline: pipeline,
		sink:     sink,
		notifier: notifier,
		logger:   logger,
	}
}

// RunOnce performs a single batch run. Failing to load the input batch
// is the only fatal error; everything downstream degrades per video.
func (r *BatchRunner) RunOnce(ctx context.Context) (domain.BatchReport, error) {
	if r.source == nil || r.pipeline == nil {
		return nil, fmt.Errorf("batch runner misconfigured")
	}

	records, err := r.source.LoadBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	if len(records) == 0 {
		r.log("no video records to process")
		return domain.BatchReport{}, nil
	}

	r.log("batch loaded", "videos", len(records))
	report := r.pipeline.Run(ctx, records)

	if r.sink != nil {
		if err := r.sink.WriteReport(ctx, report); err != nil {
			return report, fmt.Errorf("write report: %w", err)
		}
	}

	if r.notifier != nil {
		if err := r.notifier.PublishReport(ctx, report); err != nil {
			r.log("publish report failed", "error", err)
		}
	}

	r.log("batch complete",
		"videos", len(report),
		"green", report.Count(domain.StatusGreen),
		"yellow", report.Count(domain.StatusYellow),
		"red", report.Count(domain.StatusRed))

	return report, nil
}

func (r *BatchRunner) log(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}
