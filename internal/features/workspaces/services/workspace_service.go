package workspaces_services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"workspaces-backend/internal/features/audit_logs"
	"workspaces-backend/internal/features/images"
	images_models "workspaces-backend/internal/features/images/models"
	users_models "workspaces-backend/internal/features/users/models"
	workspaces_dto "workspaces-backend/internal/features/workspaces/dto"
	workspaces_enums "workspaces-backend/internal/features/workspaces/enums"
	workspaces_interfaces "workspaces-backend/internal/features/workspaces/interfaces"
	workspaces_models "workspaces-backend/internal/features/workspaces/models"
	workspaces_repositories "workspaces-backend/internal/features/workspaces/repositories"

	"github.com/google/uuid"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
	maxThemeLength       = 50

	imageCleanupTimeout = 30 * time.Second
)

type WorkspaceService struct {
	workspaceRepository *workspaces_repositories.WorkspaceRepository
	imageHost           images.ImageHost
	auditLogService     workspaces_interfaces.AuditLogService
	logger              *slog.Logger
}

func NewWorkspaceService(
	workspaceRepository *workspaces_repositories.WorkspaceRepository,
	imageHost images.ImageHost,
	auditLogService workspaces_interfaces.AuditLogService,
	logger *slog.Logger,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepository,
		imageHost,
		auditLogService,
		logger,
	}
}

// CreateWorkspace uploads the image and then stores the workspace with the
// owner as its only member. When the store rejects the record the uploaded
// image is removed again.
func (s *WorkspaceService) CreateWorkspace(
	ctx context.Context,
	request *workspaces_dto.CreateWorkspaceRequestDTO,
	image *workspaces_dto.ImageUpload,
	owner *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	if image == nil {
		return nil, fmt.Errorf("%w: an image is required to create a workspace", ErrValidation)
	}

	name, err := normalizeField("name", request.Name, maxNameLength)
	if err != nil {
		return nil, err
	}
	description, err := normalizeField("description", request.Description, maxDescriptionLength)
	if err != nil {
		return nil, err
	}
	theme, err := normalizeField("theme", request.Theme, maxThemeLength)
	if err != nil {
		return nil, err
	}

	if s.workspaceRepository.ExistsWithName(name, nil) {
		return nil, fmt.Errorf("%w: a workspace named %q already exists", ErrConflict, name)
	}

	uploadResult, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	workspace := &workspaces_models.Workspace{
		ID:            uuid.New(),
		Name:          name,
		Description:   description,
		Theme:         theme,
		ImageURL:      uploadResult.SecureURL,
		ImagePublicID: uploadResult.PublicID,
		OwnerID:       owner.ID,
		IsActive:      true,
		CreatedAt:     now,
		Members: []*workspaces_models.WorkspaceMember{
			{
				UserID:   owner.ID,
				UserName: owner.GetDisplayName(),
				Role:     workspaces_enums.WorkspaceRoleOwner,
				JoinedAt: now,
			},
		},
	}

	created, err := s.workspaceRepository.CreateWorkspaceIfNameFree(workspace)
	if err != nil {
		s.deleteImageBestEffort(ctx, uploadResult.PublicID, "workspace was not created")

		if errors.Is(err, workspaces_repositories.ErrWorkspaceNameTaken) {
			return nil, fmt.Errorf("%w: a workspace named %q already exists", ErrConflict, name)
		}
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	s.logger.Info(
		"Workspace created",
		"workspaceId", created.ID,
		"ownerId", owner.ID,
		"publicId", created.ImagePublicID,
	)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace created: %s", created.Name),
		&owner.ID,
		&created.ID,
	)

	return toWorkspaceResponse(created, owner.ID), nil
}

func (s *WorkspaceService) GetWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	workspace, err := s.getActiveWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	return toWorkspaceResponse(workspace, user.ID), nil
}

// GetMemberWorkspaces lists the active workspaces userID belongs to with
// that user's role and join time in each.
func (s *WorkspaceService) GetMemberWorkspaces(
	userID uuid.UUID,
) (*workspaces_dto.ListWorkspacesResponseDTO, error) {
	workspaces, err := s.workspaceRepository.GetWorkspacesByMember(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user workspaces: %w", err)
	}

	items := make([]workspaces_dto.WorkspaceListItemResponseDTO, 0, len(workspaces))
	for _, workspace := range workspaces {
		items = append(items, toListItem(workspace, userID))
	}

	return &workspaces_dto.ListWorkspacesResponseDTO{Workspaces: items}, nil
}

// UpdateWorkspace applies the supplied fields. A new image is uploaded before
// the record is committed and the previous image is deleted only after the
// commit succeeded, so a failed upload leaves the workspace and its image as
// they were. The commit touches only the updated fields of the latest stored
// record, and it fails with ErrConflict when another update replaced the
// image in the meantime.
func (s *WorkspaceService) UpdateWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	request *workspaces_dto.UpdateWorkspaceRequestDTO,
	image *workspaces_dto.ImageUpload,
	user *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	workspace, err := s.getActiveWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	if !workspace.GetMemberRole(user.ID).IsOwner() {
		return nil, fmt.Errorf("%w: only the workspace owner can update it", ErrForbidden)
	}

	name, err := normalizeOptionalField("name", request.Name, maxNameLength)
	if err != nil {
		return nil, err
	}
	description, err := normalizeOptionalField("description", request.Description, maxDescriptionLength)
	if err != nil {
		return nil, err
	}
	theme, err := normalizeOptionalField("theme", request.Theme, maxThemeLength)
	if err != nil {
		return nil, err
	}

	if name != nil && s.workspaceRepository.ExistsWithName(*name, &workspaceID) {
		return nil, fmt.Errorf("%w: a workspace named %q already exists", ErrConflict, *name)
	}

	previousPublicID := workspace.ImagePublicID
	var uploadResult *images_models.UploadResult

	if image != nil {
		uploadResult, err = s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.workspaceRepository.MutateWorkspace(
		workspaceID,
		func(stored *workspaces_models.Workspace) error {
			if !stored.GetMemberRole(user.ID).IsOwner() {
				return fmt.Errorf("%w: only the workspace owner can update it", ErrForbidden)
			}

			if uploadResult != nil {
				if stored.ImagePublicID != previousPublicID {
					return fmt.Errorf(
						"%w: the workspace image was replaced by another update",
						ErrConflict,
					)
				}

				stored.ImageURL = uploadResult.SecureURL
				stored.ImagePublicID = uploadResult.PublicID
			}

			if name != nil {
				stored.Name = *name
			}
			if description != nil {
				stored.Description = *description
			}
			if theme != nil {
				stored.Theme = *theme
			}
			stored.Touch(time.Now().UTC())

			return nil
		},
	)
	if err != nil {
		newPublicID := ""
		if uploadResult != nil {
			newPublicID = uploadResult.PublicID
			s.logger.Warn(
				"Workspace update was not committed, discarding uploaded image",
				"workspaceId", workspaceID,
				"publicId", newPublicID,
				"error", err,
			)
		}
		s.deleteImageBestEffort(ctx, newPublicID, "workspace update was not committed")

		switch {
		case errors.Is(err, workspaces_repositories.ErrWorkspaceNameTaken):
			return nil, fmt.Errorf("%w: a workspace named %q already exists", ErrConflict, *name)
		case errors.Is(err, workspaces_repositories.ErrWorkspaceNotFound):
			return nil, fmt.Errorf("%w: workspace %s", ErrNotFound, workspaceID)
		case errors.Is(err, ErrForbidden), errors.Is(err, ErrConflict):
			return nil, err
		default:
			return nil, fmt.Errorf("failed to update workspace: %w", err)
		}
	}

	if uploadResult != nil {
		s.deleteImageBestEffort(ctx, previousPublicID, "image was replaced")
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace updated: %s", updated.Name),
		&user.ID,
		&workspaceID,
	)

	return toWorkspaceResponse(updated, user.ID), nil
}

// DeleteWorkspace soft-deletes the workspace. Only the user recorded as
// ownerId may do it; the image stays with the retained record.
func (s *WorkspaceService) DeleteWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) error {
	workspace, err := s.getActiveWorkspace(workspaceID)
	if err != nil {
		return err
	}

	if workspace.OwnerID != user.ID {
		return fmt.Errorf("%w: only the workspace owner can delete it", ErrForbidden)
	}

	s.workspaceRepository.SoftDeleteWorkspace(workspaceID)

	s.logger.Info("Workspace deleted", "workspaceId", workspaceID, "userId", user.ID)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace deleted: %s", workspace.Name),
		&user.ID,
		&workspaceID,
	)

	return nil
}

func (s *WorkspaceService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	user *users_models.User,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	workspace, err := s.getActiveWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	if !workspace.HasMember(user.ID) {
		return nil, fmt.Errorf("%w: only workspace members can view audit logs", ErrForbidden)
	}

	response, err := s.auditLogService.GetWorkspaceAuditLogs(workspaceID, request)
	if err != nil {
		if errors.Is(err, audit_logs.ErrInvalidAuditLogsRequest) {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}

	return response, nil
}

func (s *WorkspaceService) getActiveWorkspace(
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

func (s *WorkspaceService) uploadImage(
	ctx context.Context,
	image *workspaces_dto.ImageUpload,
) (*images_models.UploadResult, error) {
	result, err := s.imageHost.Upload(ctx, image.Content, image.Size, image.FileName)
	if err != nil {
		if errors.Is(err, images_models.ErrInvalidImage) {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}

		s.logger.Error("Failed to upload workspace image", "fileName", image.FileName, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	return result, nil
}

// deleteImageBestEffort never fails the caller. The delete runs detached from
// ctx so a cancelled request still cleans up; failures are logged with the
// public id for manual reconciliation.
func (s *WorkspaceService) deleteImageBestEffort(
	ctx context.Context,
	publicID string,
	reason string,
) {
	if publicID == "" {
		return
	}

	deleteCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), imageCleanupTimeout)
	defer cancel()

	if err := s.imageHost.Delete(deleteCtx, publicID); err != nil {
		s.logger.Error(
			"Failed to delete workspace image, asset may be orphaned",
			"publicId", publicID,
			"reason", reason,
			"error", fmt.Errorf("%w: %w", ErrDelete, err),
		)
		return
	}

	s.logger.Debug("Deleted workspace image", "publicId", publicID, "reason", reason)
}

func normalizeField(field string, value string, maxLength int) (string, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrValidation, field)
	}

	if utf8.RuneCountInString(value) > maxLength {
		return "", fmt.Errorf(
			"%w: %s must be at most %d characters",
			ErrValidation,
			field,
			maxLength,
		)
	}

	return value, nil
}

func normalizeOptionalField(field string, value *string, maxLength int) (*string, error) {
	if value == nil {
		return nil, nil
	}

	normalized, err := normalizeField(field, *value, maxLength)
	if err != nil {
		return nil, err
	}

	return &normalized, nil
}
