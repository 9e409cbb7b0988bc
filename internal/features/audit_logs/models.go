package audit_logs

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"userId"`
	WorkspaceID *uuid.UUID `json:"workspaceId"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"createdAt"`
}
