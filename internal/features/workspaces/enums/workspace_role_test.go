package workspaces_enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_WorkspaceRole_IsValid(t *testing.T) {
	assert.True(t, WorkspaceRoleOwner.IsValid())
	assert.True(t, WorkspaceRoleEditor.IsValid())
	assert.True(t, WorkspaceRoleViewer.IsValid())
	assert.False(t, WorkspaceRole("owner").IsValid())
	assert.False(t, WorkspaceRole("").IsValid())
}

func Test_WorkspaceRole_OnlyOwnerIsOwner(t *testing.T) {
	assert.True(t, WorkspaceRoleOwner.IsOwner())
	assert.False(t, WorkspaceRoleEditor.IsOwner())
	assert.False(t, WorkspaceRole("Propietario").IsOwner())
}
