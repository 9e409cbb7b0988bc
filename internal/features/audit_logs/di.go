package audit_logs

import (
	"time"

	"workspaces-backend/internal/config"
	"workspaces-backend/internal/util/logger"
)

var auditLogRepository = NewAuditLogRepository()
var auditLogService = NewAuditLogService(auditLogRepository, logger.GetLogger())
var auditLogBackgroundService = &AuditLogBackgroundService{
	auditLogService,
	time.Duration(config.GetEnv().AuditLogRetentionDays) * 24 * time.Hour,
	logger.GetLogger(),
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

func GetAuditLogBackgroundService() *AuditLogBackgroundService {
	return auditLogBackgroundService
}
