package workspaces_interfaces

import (
	"workspaces-backend/internal/features/audit_logs"

	"github.com/google/uuid"
)

type AuditLogService interface {
	WriteAuditLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID)

	GetWorkspaceAuditLogs(
		workspaceID uuid.UUID,
		request *audit_logs.GetAuditLogsRequest,
	) (*audit_logs.GetAuditLogsResponse, error)
}
