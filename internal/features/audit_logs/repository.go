package audit_logs

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditLogRepository keeps logs in insertion order for the process lifetime.
type AuditLogRepository struct {
	mu   sync.RWMutex
	logs []*AuditLog
}

func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

func (r *AuditLogRepository) Create(auditLog *AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logCopy := *auditLog
	r.logs = append(r.logs, &logCopy)
}

// GetByWorkspace returns the workspace logs newest first together with the
// number of logs matching the filter before paging.
func (r *AuditLogRepository) GetByWorkspace(
	workspaceID uuid.UUID,
	limit int,
	offset int,
	beforeDate *time.Time,
) ([]*AuditLog, int64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*AuditLog, 0)
	for i := len(r.logs) - 1; i >= 0; i-- {
		log := r.logs[i]

		if log.WorkspaceID == nil || *log.WorkspaceID != workspaceID {
			continue
		}
		if beforeDate != nil && !log.CreatedAt.Before(*beforeDate) {
			continue
		}

		matched = append(matched, log)
	}

	total := int64(len(matched))

	if offset >= len(matched) {
		return []*AuditLog{}, total
	}

	end := min(offset+limit, len(matched))

	result := make([]*AuditLog, 0, end-offset)
	for _, log := range matched[offset:end] {
		logCopy := *log
		result = append(result, &logCopy)
	}

	return result, total
}

// DeleteOlderThan drops logs created before the threshold and returns how
// many were removed.
func (r *AuditLogRepository) DeleteOlderThan(threshold time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.logs[:0]
	for _, log := range r.logs {
		if !log.CreatedAt.Before(threshold) {
			kept = append(kept, log)
		}
	}

	removed := len(r.logs) - len(kept)

	for i := len(kept); i < len(r.logs); i++ {
		r.logs[i] = nil
	}
	r.logs = kept

	return removed
}

func (r *AuditLogRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.logs)
}
