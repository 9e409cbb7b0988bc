package workspaces_services

import (
	"workspaces-backend/internal/features/audit_logs"
	"workspaces-backend/internal/features/images"
	workspaces_repositories "workspaces-backend/internal/features/workspaces/repositories"
	"workspaces-backend/internal/util/logger"
)

var workspaceRepository = workspaces_repositories.NewWorkspaceRepository()

var workspaceService = NewWorkspaceService(
	workspaceRepository,
	images.GetImageHost(),
	audit_logs.GetAuditLogService(),
	logger.GetLogger(),
)

var membershipService = NewMembershipService(
	workspaceRepository,
	audit_logs.GetAuditLogService(),
	logger.GetLogger(),
)

func GetWorkspaceRepository() *workspaces_repositories.WorkspaceRepository {
	return workspaceRepository
}

func GetWorkspaceService() *WorkspaceService {
	return workspaceService
}

func GetMembershipService() *MembershipService {
	return membershipService
}
