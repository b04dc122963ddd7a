package usecase

import (
	"context"
	"time"

	"NetShield/internal/ports"
)

// Scheduler wires the interval driver with recurring batch runs.
type Scheduler struct {
	driver ports.Scheduler
	runner *BatchRunner
}

// NewScheduler returns a helper to start/stop recurring runs.
func NewScheduler(driver ports.Scheduler, runner *BatchRunner) *Scheduler {
	return &Scheduler{driver: driver, runner: runner}
}

// Start registers the batch runner with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.runner == nil {
		return nil
	}

	job := func(time.Time) {
		_, _ = s.runner.RunOnce(ctx)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
