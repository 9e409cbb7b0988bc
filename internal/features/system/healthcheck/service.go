package system_healthcheck

import (
	"context"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v4/mem"
)

const statusOK = "ok"

type WorkspaceCounter interface {
	CountWorkspaces() (active int, total int)
}

type HealthcheckService struct {
	workspaceCounter WorkspaceCounter
	startedAt        time.Time
	logger           *slog.Logger
}

func NewHealthcheckService(
	workspaceCounter WorkspaceCounter,
	startedAt time.Time,
	logger *slog.Logger,
) *HealthcheckService {
	return &HealthcheckService{workspaceCounter, startedAt, logger}
}

// GetHealth never fails: missing memory stats only drop the memory section.
func (s *HealthcheckService) GetHealth(ctx context.Context) *HealthcheckResponseDTO {
	active, total := s.workspaceCounter.CountWorkspaces()

	response := &HealthcheckResponseDTO{
		Status:           statusOK,
		UptimeSeconds:    int64(time.Since(s.startedAt).Seconds()),
		ActiveWorkspaces: active,
		TotalWorkspaces:  total,
	}

	memory, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		s.logger.Warn("Failed to read memory stats", "error", err)
		return response
	}

	response.Memory = &MemoryStatsDTO{
		TotalBytes:     memory.Total,
		AvailableBytes: memory.Available,
		UsedPercent:    memory.UsedPercent,
	}

	return response
}
