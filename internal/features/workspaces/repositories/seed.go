package workspaces_repositories

import (
	"time"

	workspaces_enums "workspaces-backend/internal/features/workspaces/enums"
	workspaces_models "workspaces-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

// DemoUserID owns the first demo workspace and edits the second one. Use
// it with -issue-token to get a token that sees both.
var DemoUserID = uuid.MustParse("d084f70c-238d-44a3-a7d0-1a7795325c34")

func GetDemoWorkspaces(now time.Time) []*workspaces_models.Workspace {
	legalOwnerID := uuid.New()

	return []*workspaces_models.Workspace{
		{
			ID:            uuid.New(),
			Name:          "Project Alpha",
			Description:   "Space for the MVP development",
			Theme:         "Technology",
			ImageURL:      "http://example.com/alpha.png",
			ImagePublicID: "alpha_public_id",
			OwnerID:       DemoUserID,
			IsActive:      true,
			CreatedAt:     now,
			Members: []*workspaces_models.WorkspaceMember{
				{
					UserID:   DemoUserID,
					UserName: "Demo Owner",
					Role:     workspaces_enums.WorkspaceRoleOwner,
					JoinedAt: now,
				},
			},
		},
		{
			ID:            uuid.New(),
			Name:          "Internal Docs",
			Description:   "Legal and HR files",
			Theme:         "Legal",
			ImageURL:      "http://example.com/docs.png",
			ImagePublicID: "docs_public_id",
			OwnerID:       legalOwnerID,
			IsActive:      true,
			CreatedAt:     now,
			Members: []*workspaces_models.WorkspaceMember{
				{
					UserID:   legalOwnerID,
					UserName: "Legal Admin",
					Role:     workspaces_enums.WorkspaceRoleOwner,
					JoinedAt: now,
				},
				{
					UserID:   DemoUserID,
					UserName: "Demo Owner",
					Role:     workspaces_enums.WorkspaceRoleEditor,
					JoinedAt: now,
				},
			},
		},
	}
}
