package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	loggerInstance *slog.Logger
	once           sync.Once
)

// GetLogger returns the process-wide structured logger. LOG_LEVEL is read
// directly from the environment because config itself logs through here.
func GetLogger() *slog.Logger {
	once.Do(func() {
		loggerInstance = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(os.Getenv("LOG_LEVEL")),
		}))
	})

	return loggerInstance
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
