package workspaces_services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	users_models "workspaces-backend/internal/features/users/models"
	workspaces_dto "workspaces-backend/internal/features/workspaces/dto"
	workspaces_enums "workspaces-backend/internal/features/workspaces/enums"
	workspaces_interfaces "workspaces-backend/internal/features/workspaces/interfaces"
	workspaces_models "workspaces-backend/internal/features/workspaces/models"
	workspaces_repositories "workspaces-backend/internal/features/workspaces/repositories"

	"github.com/google/uuid"
)

// MembershipService edits the member list of a workspace. Edits are applied
// to the stored record under the store lock, so they never rewrite fields
// changed concurrently by other workflows. The owner entry is never touched:
// ownership cannot be transferred because ownerId is immutable.
type MembershipService struct {
	workspaceRepository *workspaces_repositories.WorkspaceRepository
	auditLogService     workspaces_interfaces.AuditLogService
	logger              *slog.Logger
}

func NewMembershipService(
	workspaceRepository *workspaces_repositories.WorkspaceRepository,
	auditLogService workspaces_interfaces.AuditLogService,
	logger *slog.Logger,
) *MembershipService {
	return &MembershipService{workspaceRepository, auditLogService, logger}
}

func (s *MembershipService) GetMembers(
	workspaceID uuid.UUID,
) (*workspaces_dto.GetMembersResponseDTO, error) {
	workspace, err := s.getActiveWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	return &workspaces_dto.GetMembersResponseDTO{
		Members: toMemberResponses(workspace.Members),
	}, nil
}

func (s *MembershipService) AddMember(
	workspaceID uuid.UUID,
	request *workspaces_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) (*workspaces_dto.WorkspaceMemberResponseDTO, error) {
	if err := validateAssignableRole(request.Role); err != nil {
		return nil, err
	}

	if request.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	userName := strings.TrimSpace(request.UserName)
	if userName == "" {
		userName = (&users_models.User{ID: request.UserID}).GetDisplayName()
	}

	now := time.Now().UTC()
	member := &workspaces_models.WorkspaceMember{
		UserID:   request.UserID,
		UserName: userName,
		Role:     request.Role,
		JoinedAt: now,
	}

	err := s.mutateMembers(workspaceID, addedBy, func(workspace *workspaces_models.Workspace) error {
		if workspace.HasMember(request.UserID) {
			return fmt.Errorf("%w: user is already a member of this workspace", ErrConflict)
		}

		workspace.Members = append(workspace.Members, member)
		workspace.Touch(now)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User added to workspace: %s as %s", userName, request.Role),
		&addedBy.ID,
		&workspaceID,
	)

	response := toMemberResponse(member)
	return &response, nil
}

func (s *MembershipService) ChangeMemberRole(
	workspaceID uuid.UUID,
	memberUserID uuid.UUID,
	request *workspaces_dto.ChangeMemberRoleRequestDTO,
	changedBy *users_models.User,
) error {
	if err := validateAssignableRole(request.Role); err != nil {
		return err
	}

	var memberName string
	var previousRole workspaces_enums.WorkspaceRole

	err := s.mutateMembers(workspaceID, changedBy, func(workspace *workspaces_models.Workspace) error {
		if memberUserID == changedBy.ID {
			return fmt.Errorf("%w: cannot change your own role", ErrValidation)
		}

		member := workspace.FindMember(memberUserID)
		if member == nil {
			return fmt.Errorf("%w: user is not a member of this workspace", ErrNotFound)
		}

		if member.UserID == workspace.OwnerID || member.Role.IsOwner() {
			return fmt.Errorf("%w: cannot change owner role", ErrForbidden)
		}

		memberName = member.UserName
		previousRole = member.Role
		member.Role = request.Role
		workspace.Touch(time.Now().UTC())

		return nil
	})
	if err != nil {
		return err
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf(
			"Member role changed: %s from %s to %s",
			memberName,
			previousRole,
			request.Role,
		),
		&changedBy.ID,
		&workspaceID,
	)

	return nil
}

func (s *MembershipService) RemoveMember(
	workspaceID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	var memberName string

	err := s.mutateMembers(workspaceID, removedBy, func(workspace *workspaces_models.Workspace) error {
		member := workspace.FindMember(memberUserID)
		if member == nil {
			return fmt.Errorf("%w: user is not a member of this workspace", ErrNotFound)
		}

		if member.UserID == workspace.OwnerID || member.Role.IsOwner() {
			return fmt.Errorf("%w: cannot remove workspace owner", ErrForbidden)
		}

		memberName = member.UserName
		workspace.RemoveMember(memberUserID)
		workspace.Touch(time.Now().UTC())

		return nil
	})
	if err != nil {
		return err
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Member removed from workspace: %s", memberName),
		&removedBy.ID,
		&workspaceID,
	)

	return nil
}

// mutateMembers applies change to the latest stored workspace once the caller
// is confirmed to hold the owner role in it. Only the member list and
// updatedAt are expected to change.
func (s *MembershipService) mutateMembers(
	workspaceID uuid.UUID,
	user *users_models.User,
	change func(workspace *workspaces_models.Workspace) error,
) error {
	_, err := s.workspaceRepository.MutateWorkspace(
		workspaceID,
		func(workspace *workspaces_models.Workspace) error {
			if !workspace.GetMemberRole(user.ID).IsOwner() {
				return fmt.Errorf(
					"%w: only the workspace owner can manage members",
					ErrForbidden,
				)
			}

			return change(workspace)
		},
	)
	if err != nil {
		if errors.Is(err, workspaces_repositories.ErrWorkspaceNotFound) {
			return fmt.Errorf("%w: workspace %s", ErrNotFound, workspaceID)
		}
		return err
	}

	s.logger.Debug("Workspace members updated", "workspaceId", workspaceID)

	return nil
}

func (s *MembershipService) getActiveWorkspace(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		if errors.Is(err, workspaces_repositories.ErrWorkspaceNotFound) {
			return nil, fmt.Errorf("%w: workspace %s", ErrNotFound, workspaceID)
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return workspace, nil
}

func validateAssignableRole(role workspaces_enums.WorkspaceRole) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	if role.IsOwner() {
		return fmt.Errorf("%w: the owner role cannot be assigned", ErrValidation)
	}

	return nil
}
