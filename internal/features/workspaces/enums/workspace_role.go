package workspaces_enums

type WorkspaceRole string

const (
	WorkspaceRoleOwner  WorkspaceRole = "Owner"
	WorkspaceRoleEditor WorkspaceRole = "Editor"
	WorkspaceRoleViewer WorkspaceRole = "Viewer"
)

// IsValid validates the WorkspaceRole
func (r WorkspaceRole) IsValid() bool {
	switch r {
	case WorkspaceRoleOwner, WorkspaceRoleEditor, WorkspaceRoleViewer:
		return true
	default:
		return false
	}
}

func (r WorkspaceRole) IsOwner() bool {
	return r == WorkspaceRoleOwner
}
