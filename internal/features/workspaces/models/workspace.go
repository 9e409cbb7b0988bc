package workspaces_models

import (
	"time"

	workspaces_enums "workspaces-backend/internal/features/workspaces/enums"

	"github.com/google/uuid"
)

type Workspace struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Theme         string             `json:"theme"`
	ImageURL      string             `json:"imageUrl"`
	ImagePublicID string             `json:"imagePublicId"`
	OwnerID       uuid.UUID          `json:"ownerId"`
	IsActive      bool               `json:"isActive"`
	Members       []*WorkspaceMember `json:"members"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty"`
}

type WorkspaceMember struct {
	UserID   uuid.UUID                      `json:"userId"`
	UserName string                         `json:"userName"`
	Role     workspaces_enums.WorkspaceRole `json:"role"`
	JoinedAt time.Time                      `json:"joinedAt"`
}

// Clone returns a deep copy so stored records never share memory with callers.
func (w *Workspace) Clone() *Workspace {
	if w == nil {
		return nil
	}

	clone := *w

	if w.UpdatedAt != nil {
		updatedAt := *w.UpdatedAt
		clone.UpdatedAt = &updatedAt
	}

	clone.Members = make([]*WorkspaceMember, 0, len(w.Members))
	for _, member := range w.Members {
		if member == nil {
			continue
		}
		memberCopy := *member
		clone.Members = append(clone.Members, &memberCopy)
	}

	return &clone
}

func (w *Workspace) FindMember(userID uuid.UUID) *WorkspaceMember {
	for _, member := range w.Members {
		if member != nil && member.UserID == userID {
			return member
		}
	}

	return nil
}

func (w *Workspace) HasMember(userID uuid.UUID) bool {
	return w.FindMember(userID) != nil
}

// GetMemberRole returns an empty role for non-members.
func (w *Workspace) GetMemberRole(userID uuid.UUID) workspaces_enums.WorkspaceRole {
	if member := w.FindMember(userID); member != nil {
		return member.Role
	}

	return ""
}

func (w *Workspace) RemoveMember(userID uuid.UUID) bool {
	for i, member := range w.Members {
		if member != nil && member.UserID == userID {
			w.Members = append(w.Members[:i], w.Members[i+1:]...)
			return true
		}
	}

	return false
}

func (w *Workspace) Touch(now time.Time) {
	w.UpdatedAt = &now
}
