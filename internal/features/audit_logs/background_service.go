package audit_logs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const cleanupSchedule = "@hourly"

type AuditLogBackgroundService struct {
	auditLogService *AuditLogService
	retention       time.Duration
	logger          *slog.Logger
}

// Run removes expired audit logs once and then on every cleanup tick until
// ctx is cancelled.
func (s *AuditLogBackgroundService) Run(ctx context.Context) {
	if s.retention <= 0 {
		s.logger.Info("Audit log retention is disabled")
		return
	}

	cronLog := newCronLogger(s.logger)
	dispatcher := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog)),
	)

	_, err := dispatcher.AddFunc(cleanupSchedule, s.cleanOldAuditLogs)
	if err != nil {
		s.logger.Error("Failed to schedule audit log cleanup", "error", err)
		return
	}

	s.cleanOldAuditLogs()

	dispatcher.Start()
	s.logger.Info(
		"Audit log cleanup scheduled",
		"schedule", cleanupSchedule,
		"retention", s.retention,
	)

	<-ctx.Done()

	<-dispatcher.Stop().Done()
	s.logger.Info("Audit log cleanup stopped")
}

func (s *AuditLogBackgroundService) cleanOldAuditLogs() {
	s.auditLogService.CleanOldAuditLogs(s.retention)
}

// cronLogger routes scheduler output to slog. Scheduler chatter goes to
// debug level; recovered job panics are logged as errors.
type cronLogger struct {
	logger *slog.Logger
}

func newCronLogger(logger *slog.Logger) cron.Logger {
	return &cronLogger{logger}
}

func (l *cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
