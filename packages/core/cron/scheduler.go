package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const auditTimeout = time.Minute

// Auditor checks the score ledger and reports how many players drifted.
type Auditor interface {
	RunAudit(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron     *cron.Cron
	auditor  Auditor
	schedule string
	logger   *zap.SugaredLogger
}

// NewScheduler runs auditor on schedule, a six-field cron expression with
// seconds. An empty schedule leaves the scheduler idle.
func NewScheduler(auditor Auditor, schedule string, logger *zap.SugaredLogger) *Scheduler {
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cronLogger{logger}))

	return &Scheduler{
		cron:     c,
		auditor:  auditor,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("ledger audit schedule empty, scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runAudit); err != nil {
		s.logger.Errorw("failed to schedule ledger audit", "schedule", s.schedule, "error", err)
		return err
	}

	s.cron.Start()
	s.logger.Infow("cron scheduler started", "audit_schedule", s.schedule)
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("cron scheduler stopped")
}

func (s *Scheduler) runAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	// RunAudit logs its own findings and failures.
	_, _ = s.auditor.RunAudit(ctx)
}

// RunNow triggers the ledger audit synchronously.
func (s *Scheduler) RunNow() {
	s.logger.Info("manually triggering ledger audit")
	s.runAudit()
}

// cronLogger routes cron's own messages through zap.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
