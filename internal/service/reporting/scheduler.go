package reporting

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the nightly snapshot sweep on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	svc    *Service
	logger *slog.Logger
}

// NewScheduler creates a scheduler that invokes SnapshotAll on the given cron
// expression (standard five-field syntax).
func NewScheduler(svc *Service, schedule string, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		svc:    svc,
		logger: logger.With("component", "report_scheduler"),
	}

	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.svc.SnapshotAll(context.Background()); err != nil {
			s.logger.Warn("scheduled snapshot sweep failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("snapshot sweep scheduled", "schedule", schedule)
	return s, nil
}

// Start begins the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("report scheduler started")
}

// Stop gracefully stops the cron loop.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("report scheduler stopped")
}
