package workspaces_dto

import (
	"io"
	"time"

	workspaces_enums "workspaces-backend/internal/features/workspaces/enums"

	"github.com/google/uuid"
)

// Workspace DTOs
type CreateWorkspaceRequestDTO struct {
	Name        string `form:"name"        json:"name"        binding:"required,min=1,max=100"`
	Description string `form:"description" json:"description" binding:"required,min=1,max=500"`
	Theme       string `form:"theme"       json:"theme"       binding:"required,min=1,max=50"`
}

// UpdateWorkspaceRequestDTO leaves nil fields unchanged.
type UpdateWorkspaceRequestDTO struct {
	Name        *string `form:"name"        json:"name"        binding:"omitempty,min=1,max=100"`
	Description *string `form:"description" json:"description" binding:"omitempty,min=1,max=500"`
	Theme       *string `form:"theme"       json:"theme"       binding:"omitempty,min=1,max=50"`
}

// ImageUpload is the image attached to a create or update request.
type ImageUpload struct {
	Content  io.Reader
	FileName string
	Size     int64
}

type WorkspaceResponseDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Theme       string     `json:"theme"`
	ImageURL    string     `json:"imageUrl"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`

	// Role of the requesting user, empty when they are not a member
	Role    workspaces_enums.WorkspaceRole `json:"role"`
	Members []WorkspaceMemberResponseDTO   `json:"members"`
}

type WorkspaceListItemResponseDTO struct {
	ID       uuid.UUID                      `json:"id"`
	Name     string                         `json:"name"`
	ImageURL string                         `json:"imageUrl"`
	Role     workspaces_enums.WorkspaceRole `json:"role"`
	JoinedAt time.Time                      `json:"joinedAt"`
}

type ListWorkspacesResponseDTO struct {
	Workspaces []WorkspaceListItemResponseDTO `json:"workspaces"`
}

// Membership DTOs
type AddMemberRequestDTO struct {
	UserID   uuid.UUID                      `json:"userId"   binding:"required"`
	UserName string                         `json:"userName" binding:"max=100"`
	Role     workspaces_enums.WorkspaceRole `json:"role"     binding:"required"`
}

type ChangeMemberRoleRequestDTO struct {
	Role workspaces_enums.WorkspaceRole `json:"role" binding:"required"`
}

type WorkspaceMemberResponseDTO struct {
	UserID   uuid.UUID                      `json:"userId"`
	UserName string                         `json:"userName"`
	Role     workspaces_enums.WorkspaceRole `json:"role"`
	JoinedAt time.Time                      `json:"joinedAt"`
}

type GetMembersResponseDTO struct {
	Members []WorkspaceMemberResponseDTO `json:"members"`
}
