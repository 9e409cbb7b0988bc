package workspaces_models

import (
	"testing"
	"time"

	workspaces_enums "workspaces-backend/internal/features/workspaces/enums"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Clone_DoesNotShareMembersOrTimestamps(t *testing.T) {
	ownerID := uuid.New()
	updatedAt := time.Now().UTC()
	original := &Workspace{
		ID:        uuid.New(),
		Name:      "Alpha",
		OwnerID:   ownerID,
		IsActive:  true,
		UpdatedAt: &updatedAt,
		Members: []*WorkspaceMember{
			{UserID: ownerID, UserName: "Owner", Role: workspaces_enums.WorkspaceRoleOwner},
		},
	}

	clone := original.Clone()
	clone.Members[0].Role = workspaces_enums.WorkspaceRoleViewer
	clone.Members = append(clone.Members, &WorkspaceMember{UserID: uuid.New()})
	*clone.UpdatedAt = updatedAt.Add(time.Hour)

	assert.Equal(t, workspaces_enums.WorkspaceRoleOwner, original.Members[0].Role)
	assert.Len(t, original.Members, 1)
	assert.Equal(t, updatedAt, *original.UpdatedAt)
}

func Test_Clone_OfNil_ReturnsNil(t *testing.T) {
	var workspace *Workspace
	assert.Nil(t, workspace.Clone())
}

func Test_MemberLookups(t *testing.T) {
	ownerID, editorID, strangerID := uuid.New(), uuid.New(), uuid.New()
	workspace := &Workspace{
		Members: []*WorkspaceMember{
			{UserID: ownerID, Role: workspaces_enums.WorkspaceRoleOwner},
			{UserID: editorID, Role: workspaces_enums.WorkspaceRoleEditor},
		},
	}

	assert.True(t, workspace.HasMember(editorID))
	assert.False(t, workspace.HasMember(strangerID))
	assert.Equal(t, workspaces_enums.WorkspaceRoleOwner, workspace.GetMemberRole(ownerID))
	assert.Equal(t, workspaces_enums.WorkspaceRole(""), workspace.GetMemberRole(strangerID))

	require.True(t, workspace.RemoveMember(editorID))
	assert.False(t, workspace.HasMember(editorID))
	assert.False(t, workspace.RemoveMember(editorID))
}
