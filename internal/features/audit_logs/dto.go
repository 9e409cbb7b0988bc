package audit_logs

import (
	"time"

	"github.com/google/uuid"
)

type GetAuditLogsRequest struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"beforeDate" json:"beforeDate"`
}

type GetAuditLogsResponse struct {
	AuditLogs []*AuditLogDTO `json:"auditLogs"`
	Total     int64          `json:"total"`
	Limit     int            `json:"limit"`
	Offset    int            `json:"offset"`
}

type AuditLogDTO struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"userId"`
	WorkspaceID *uuid.UUID `json:"workspaceId"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"createdAt"`
}
