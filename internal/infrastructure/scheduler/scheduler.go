// Package scheduler fires the standup reminder scan on a cron schedule.
// The schedule expression and timezone come from configuration; the job
// itself is injected so the scheduler stays free of domain knowledge.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dailysync/core/internal/infrastructure/logger"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context)

// Scheduler wraps a cron runner with a single recurring job.
type Scheduler struct {
	cron   *cron.Cron
	logger *logger.Logger
}

// New creates a scheduler that runs job on the given cron expression,
// evaluated in loc.
func New(schedule string, loc *time.Location, job Job, logger *logger.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))

	_, err := c.AddFunc(schedule, func() {
		job(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start begins firing the schedule in a background goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Infow("Scheduler started")
}

// Stop stops the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Infow("Scheduler stopped")
}
