package workspaces_services

import (
	workspaces_dto "workspaces-backend/internal/features/workspaces/dto"
	workspaces_models "workspaces-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

func toWorkspaceResponse(
	workspace *workspaces_models.Workspace,
	requesterID uuid.UUID,
) *workspaces_dto.WorkspaceResponseDTO {
	return &workspaces_dto.WorkspaceResponseDTO{
		ID:          workspace.ID,
		Name:        workspace.Name,
		Description: workspace.Description,
		Theme:       workspace.Theme,
		ImageURL:    workspace.ImageURL,
		OwnerID:     workspace.OwnerID,
		CreatedAt:   workspace.CreatedAt,
		UpdatedAt:   workspace.UpdatedAt,
		Role:        workspace.GetMemberRole(requesterID),
		Members:     toMemberResponses(workspace.Members),
	}
}

// toListItem takes role and joinedAt from the member entry of userID and
// falls back to zero values when the entry is missing.
func toListItem(
	workspace *workspaces_models.Workspace,
	userID uuid.UUID,
) workspaces_dto.WorkspaceListItemResponseDTO {
	item := workspaces_dto.WorkspaceListItemResponseDTO{
		ID:       workspace.ID,
		Name:     workspace.Name,
		ImageURL: workspace.ImageURL,
	}

	if member := workspace.FindMember(userID); member != nil {
		item.Role = member.Role
		item.JoinedAt = member.JoinedAt
	}

	return item
}

func toMemberResponse(member *workspaces_models.WorkspaceMember) workspaces_dto.WorkspaceMemberResponseDTO {
	return workspaces_dto.WorkspaceMemberResponseDTO{
		UserID:   member.UserID,
		UserName: member.UserName,
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

func toMemberResponses(
	members []*workspaces_models.WorkspaceMember,
) []workspaces_dto.WorkspaceMemberResponseDTO {
	responses := make([]workspaces_dto.WorkspaceMemberResponseDTO, 0, len(members))
	for _, member := range members {
		responses = append(responses, toMemberResponse(member))
	}

	return responses
}
