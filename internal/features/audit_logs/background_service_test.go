package audit_logs

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"workspaces-backend/internal/util/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
)

func Test_BackgroundService_CleansOnStartAndStopsOnCancel(t *testing.T) {
	repository := NewAuditLogRepository()
	service := NewAuditLogService(repository, logger.GetLogger())
	workspaceID := uuid.New()

	repository.Create(&AuditLog{
		ID:          uuid.New(),
		WorkspaceID: &workspaceID,
		Message:     "expired",
		CreatedAt:   time.Now().UTC().Add(-72 * time.Hour),
	})

	backgroundService := &AuditLogBackgroundService{service, 24 * time.Hour, logger.GetLogger()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		backgroundService.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return repository.Count() == 0 }, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("background service did not stop")
	}
}

func Test_BackgroundService_WhenRetentionDisabled_ReturnsImmediately(t *testing.T) {
	repository := NewAuditLogRepository()
	service := NewAuditLogService(repository, logger.GetLogger())
	service.WriteAuditLog("kept", nil, nil)

	backgroundService := &AuditLogBackgroundService{service, 0, logger.GetLogger()}
	backgroundService.Run(context.Background())

	assert.Equal(t, 1, repository.Count())
}

func Test_CronLogger_WhenJobPanics_LogsThroughSlog(t *testing.T) {
	var buffer bytes.Buffer
	slogLogger := slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))

	job := cron.NewChain(cron.Recover(newCronLogger(slogLogger))).
		Then(cron.FuncJob(func() { panic("cleanup exploded") }))

	assert.NotPanics(t, job.Run)

	output := buffer.String()
	assert.Contains(t, output, "level=ERROR")
	assert.Contains(t, output, "msg=panic")
	assert.Contains(t, output, "cleanup exploded")
}

func Test_CronLogger_InfoIsLoggedAtDebugLevel(t *testing.T) {
	var buffer bytes.Buffer
	slogLogger := slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelInfo}))

	newCronLogger(slogLogger).Info("wake", "now", time.Now())
	assert.Empty(t, buffer.String())

	buffer.Reset()
	debugLogger := slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	newCronLogger(debugLogger).Info("wake", "now", time.Now())
	assert.Contains(t, buffer.String(), "level=DEBUG")
	assert.Contains(t, buffer.String(), "msg=wake")
}
