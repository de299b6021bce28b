package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderRunner sends reminders for undecided alterations.
type ReminderRunner interface {
	RemindPending(ctx context.Context) (int, error)
}

// Scheduler runs periodic alteration housekeeping on a cron clock in UTC.
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	timeout time.Duration
}

// New creates a scheduler. Cron specs include a seconds field.
func New(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger:  logger,
		timeout: 5 * time.Minute,
	}
}

// RegisterReminders schedules pending alteration reminders. An empty spec leaves them disabled.
func (s *Scheduler) RegisterReminders(spec string, runner ReminderRunner) error {
	if spec == "" || runner == nil {
		s.logger.Info("alteration reminders disabled")
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() { s.runReminders(runner) })
	if err != nil {
		return err
	}
	s.logger.Info("alteration reminders scheduled", zap.String("spec", spec))
	return nil
}

func (s *Scheduler) runReminders(runner ReminderRunner) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	sent, err := runner.RemindPending(ctx)
	if err != nil {
		s.logger.Error("alteration reminder run failed", zap.Error(err))
		return
	}
	s.logger.Debug("alteration reminder run finished", zap.Int("sent", sent))
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", s.Entries()))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
