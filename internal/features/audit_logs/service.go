package audit_logs

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	defaultAuditLogsLimit = 100
	maxAuditLogsLimit     = 1000
)

var ErrInvalidAuditLogsRequest = errors.New("invalid audit logs request")

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
	logger             *slog.Logger
}

func NewAuditLogService(
	auditLogRepository *AuditLogRepository,
	logger *slog.Logger,
) *AuditLogService {
	return &AuditLogService{auditLogRepository, logger}
}

func (s *AuditLogService) WriteAuditLog(
	message string,
	userID *uuid.UUID,
	workspaceID *uuid.UUID,
) {
	auditLog := &AuditLog{
		ID:          uuid.New(),
		UserID:      userID,
		WorkspaceID: workspaceID,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}

	s.auditLogRepository.Create(auditLog)

	s.logger.Debug(
		"Audit log written",
		"auditLogId", auditLog.ID,
		"workspaceId", workspaceID,
		"message", message,
	)
}

func (s *AuditLogService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if request == nil {
		request = &GetAuditLogsRequest{}
	}

	if request.Offset < 0 || request.Limit < 0 {
		return nil, ErrInvalidAuditLogsRequest
	}

	limit := request.Limit
	if limit == 0 {
		limit = defaultAuditLogsLimit
	}
	limit = min(limit, maxAuditLogsLimit)

	auditLogs, total := s.auditLogRepository.GetByWorkspace(
		workspaceID,
		limit,
		request.Offset,
		request.BeforeDate,
	)

	dtos := make([]*AuditLogDTO, 0, len(auditLogs))
	for _, auditLog := range auditLogs {
		dtos = append(dtos, &AuditLogDTO{
			ID:          auditLog.ID,
			UserID:      auditLog.UserID,
			WorkspaceID: auditLog.WorkspaceID,
			Message:     auditLog.Message,
			CreatedAt:   auditLog.CreatedAt,
		})
	}

	return &GetAuditLogsResponse{
		AuditLogs: dtos,
		Total:     total,
		Limit:     limit,
		Offset:    request.Offset,
	}, nil
}

func (s *AuditLogService) CleanOldAuditLogs(retention time.Duration) int {
	threshold := time.Now().UTC().Add(-retention)

	removed := s.auditLogRepository.DeleteOlderThan(threshold)
	if removed > 0 {
		s.logger.Info(
			"Removed old audit logs",
			"count", removed,
			"olderThan", threshold,
		)
	}

	return removed
}
