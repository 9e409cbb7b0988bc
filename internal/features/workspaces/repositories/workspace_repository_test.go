package workspaces_repositories

import (
	"errors"
	"sync"
	"testing"
	"time"

	workspaces_enums "workspaces-backend/internal/features/workspaces/enums"
	workspaces_models "workspaces-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateWorkspace_WhenIDIsNil_AssignsFreshID(t *testing.T) {
	repository := NewWorkspaceRepository()
	workspace := newTestWorkspace("Alpha", uuid.New())
	workspace.ID = uuid.Nil

	created, err := repository.CreateWorkspace(workspace)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, repository.ExistsByID(created.ID))
	assert.False(t, created.CreatedAt.IsZero())
}

func Test_CreateWorkspace_WhenIDAlreadyPresent_ReturnsAlreadyExists(t *testing.T) {
	repository := NewWorkspaceRepository()
	workspace := newTestWorkspace("Alpha", uuid.New())

	_, err := repository.CreateWorkspace(workspace)
	require.NoError(t, err)

	duplicate := newTestWorkspace("Beta", uuid.New())
	duplicate.ID = workspace.ID

	_, err = repository.CreateWorkspace(duplicate)
	assert.ErrorIs(t, err, ErrWorkspaceAlreadyExists)

	stored, err := repository.GetWorkspaceByID(workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", stored.Name)
}

func Test_CreateWorkspace_DoesNotCheckNames(t *testing.T) {
	repository := NewWorkspaceRepository()

	_, err := repository.CreateWorkspace(newTestWorkspace("Alpha", uuid.New()))
	require.NoError(t, err)
	_, err = repository.CreateWorkspace(newTestWorkspace("alpha", uuid.New()))
	require.NoError(t, err)

	active, total := repository.CountWorkspaces()
	assert.Equal(t, 2, active)
	assert.Equal(t, 2, total)
}

func Test_CreateWorkspaceIfNameFree_WhenNameTakenCaseInsensitive_ReturnsNameTaken(t *testing.T) {
	repository := NewWorkspaceRepository()

	_, err := repository.CreateWorkspaceIfNameFree(newTestWorkspace("Alpha", uuid.New()))
	require.NoError(t, err)

	_, err = repository.CreateWorkspaceIfNameFree(newTestWorkspace("ALPHA", uuid.New()))
	assert.ErrorIs(t, err, ErrWorkspaceNameTaken)

	_, total := repository.CountWorkspaces()
	assert.Equal(t, 1, total)
}

func Test_CreateWorkspaceIfNameFree_WhenCalledConcurrently_ExactlyOneSucceeds(t *testing.T) {
	repository := NewWorkspaceRepository()

	const callers = 50

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := repository.CreateWorkspaceIfNameFree(newTestWorkspace("Race", uuid.New()))

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, ErrWorkspaceNameTaken) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, conflicts)
}

func Test_ExistsWithName_TracksActiveWorkspacesUntilSoftDelete(t *testing.T) {
	repository := NewWorkspaceRepository()
	names := []string{"Alpha", "Beta", "Gamma"}

	created := make([]*workspaces_models.Workspace, 0, len(names))
	for _, name := range names {
		workspace, err := repository.CreateWorkspace(newTestWorkspace(name, uuid.New()))
		require.NoError(t, err)
		created = append(created, workspace)

		for _, previous := range created {
			assert.True(t, repository.ExistsWithName(previous.Name, nil))
		}
	}

	repository.SoftDeleteWorkspace(created[1].ID)

	assert.True(t, repository.ExistsWithName("alpha", nil))
	assert.False(t, repository.ExistsWithName("beta", nil))
	assert.True(t, repository.ExistsWithName("GAMMA", nil))
}

func Test_ExistsWithName_WithExclusion(t *testing.T) {
	repository := NewWorkspaceRepository()

	workspace, err := repository.CreateWorkspace(newTestWorkspace("Alpha", uuid.New()))
	require.NoError(t, err)

	otherID := uuid.New()

	tests := []struct {
		name      string
		query     string
		excludeID *uuid.UUID
		expected  bool
	}{
		{name: "no exclusion", query: "Alpha", excludeID: nil, expected: true},
		{name: "excluding self", query: "alpha", excludeID: &workspace.ID, expected: false},
		{name: "excluding other", query: "alpha", excludeID: &otherID, expected: true},
		{name: "different name", query: "Beta", excludeID: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, repository.ExistsWithName(tt.query, tt.excludeID))
		})
	}
}

func Test_SoftDeleteWorkspace_HidesRecordButRetainsIt(t *testing.T) {
	repository := NewWorkspaceRepository()

	workspace, err := repository.CreateWorkspace(newTestWorkspace("Alpha", uuid.New()))
	require.NoError(t, err)

	repository.SoftDeleteWorkspace(workspace.ID)

	_, err = repository.GetWorkspaceByID(workspace.ID)
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
	assert.False(t, repository.ExistsByID(workspace.ID))
	assert.False(t, repository.ExistsWithName("Alpha", nil))

	raw, ok := repository.GetRawWorkspaceByID(workspace.ID)
	require.True(t, ok)
	assert.False(t, raw.IsActive)
	assert.Equal(t, "Alpha", raw.Name)

	active, total := repository.CountWorkspaces()
	assert.Equal(t, 0, active)
	assert.Equal(t, 1, total)
}

func Test_SoftDeleteWorkspace_IsIdempotent(t *testing.T) {
	repository := NewWorkspaceRepository()

	workspace, err := repository.CreateWorkspace(newTestWorkspace("Alpha", uuid.New()))
	require.NoError(t, err)

	repository.SoftDeleteWorkspace(workspace.ID)
	afterFirst, _ := repository.GetRawWorkspaceByID(workspace.ID)

	repository.SoftDeleteWorkspace(workspace.ID)
	afterSecond, _ := repository.GetRawWorkspaceByID(workspace.ID)

	assert.Equal(t, afterFirst, afterSecond)

	// unknown id is a no-op
	repository.SoftDeleteWorkspace(uuid.New())
}

func Test_SoftDeleteWorkspace_NameBecomesReusable(t *testing.T) {
	repository := NewWorkspaceRepository()

	first, err := repository.CreateWorkspaceIfNameFree(newTestWorkspace("Alpha", uuid.New()))
	require.NoError(t, err)

	repository.SoftDeleteWorkspace(first.ID)

	second, err := repository.CreateWorkspaceIfNameFree(newTestWorkspace("alpha", uuid.New()))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func Test_GetWorkspaceByID_ReturnsDetachedCopy(t *testing.T) {
	repository := NewWorkspaceRepository()

	workspace, err := repository.CreateWorkspace(newTestWorkspace("Alpha", uuid.New()))
	require.NoError(t, err)

	loaded, err := repository.GetWorkspaceByID(workspace.ID)
	require.NoError(t, err)

	loaded.Name = "Mutated"
	loaded.Members[0].Role = workspaces_enums.WorkspaceRoleViewer

	reloaded, err := repository.GetWorkspaceByID(workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", reloaded.Name)
	assert.Equal(t, workspaces_enums.WorkspaceRoleOwner, reloaded.Members[0].Role)
	assert.True(t, repository.ExistsWithName("Alpha", nil))
	assert.False(t, repository.ExistsWithName("Mutated", nil))
}

func Test_GetWorkspacesByMember_ReturnsActiveMembershipsSortedByName(t *testing.T) {
	repository := NewWorkspaceRepository()
	userID := uuid.New()
	otherID := uuid.New()

	owned, err := repository.CreateWorkspace(newTestWorkspace("Zeta", userID))
	require.NoError(t, err)

	shared := newTestWorkspace("alpha", otherID)
	shared.Members = append(shared.Members, &workspaces_models.WorkspaceMember{
		UserID:   userID,
		UserName: "Member",
		Role:     workspaces_enums.WorkspaceRoleEditor,
		JoinedAt: time.Now().UTC(),
	})
	_, err = repository.CreateWorkspace(shared)
	require.NoError(t, err)

	_, err = repository.CreateWorkspace(newTestWorkspace("Foreign", otherID))
	require.NoError(t, err)

	deleted, err := repository.CreateWorkspace(newTestWorkspace("Beta", userID))
	require.NoError(t, err)
	repository.SoftDeleteWorkspace(deleted.ID)

	workspaces, err := repository.GetWorkspacesByMember(userID)
	require.NoError(t, err)
	require.Len(t, workspaces, 2)

	assert.Equal(t, "alpha", workspaces[0].Name)
	assert.Equal(t, owned.ID, workspaces[1].ID)

	none, err := repository.GetWorkspacesByMember(uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func Test_UpdateWorkspace_WhenAbsentOrInactive_ReturnsNotFound(t *testing.T) {
	repository := NewWorkspaceRepository()

	_, err := repository.UpdateWorkspace(newTestWorkspace("Ghost", uuid.New()))
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)

	workspace, err := repository.CreateWorkspace(newTestWorkspace("Alpha", uuid.New()))
	require.NoError(t, err)
	repository.SoftDeleteWorkspace(workspace.ID)

	workspace.Description = "changed"
	_, err = repository.UpdateWorkspace(workspace)
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)

	raw, _ := repository.GetRawWorkspaceByID(workspace.ID)
	assert.False(t, raw.IsActive)
	assert.NotEqual(t, "changed", raw.Description)
}

func Test_UpdateWorkspace_ReindexesNameAndKeepsImmutableFields(t *testing.T) {
	repository := NewWorkspaceRepository()
	ownerID := uuid.New()

	workspace, err := repository.CreateWorkspace(newTestWorkspace("Alpha", ownerID))
	require.NoError(t, err)

	changed := workspace.Clone()
	changed.Name = "Beta"
	changed.OwnerID = uuid.New()
	changed.IsActive = false
	changed.Touch(time.Now().UTC())

	updated, err := repository.UpdateWorkspace(changed)
	require.NoError(t, err)

	assert.Equal(t, "Beta", updated.Name)
	assert.Equal(t, ownerID, updated.OwnerID)
	assert.True(t, updated.IsActive)
	assert.Equal(t, workspace.CreatedAt, updated.CreatedAt)
	assert.NotNil(t, updated.UpdatedAt)

	assert.False(t, repository.ExistsWithName("Alpha", nil))
	assert.True(t, repository.ExistsWithName("beta", nil))
}

func Test_MutateWorkspace_WhenRenamingToOwnNameInOtherCase_Succeeds(t *testing.T) {
	repository := NewWorkspaceRepository()

	_, err := repository.CreateWorkspace(newTestWorkspace("Alpha", uuid.New()))
	require.NoError(t, err)
	beta, err := repository.CreateWorkspace(newTestWorkspace("Beta", uuid.New()))
	require.NoError(t, err)

	updated, err := repository.MutateWorkspace(beta.ID, func(stored *workspaces_models.Workspace) error {
		stored.Name = "BETA"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "BETA", updated.Name)
	assert.True(t, repository.ExistsWithName("beta", nil))
}

func Test_MutateWorkspace_AfterConcurrentRename_KeepsLatestName(t *testing.T) {
	repository := NewWorkspaceRepository()
	ownerID := uuid.New()
	memberID := uuid.New()

	workspace, err := repository.CreateWorkspace(newTestWorkspace("Alpha", ownerID))
	require.NoError(t, err)

	// a membership edit loaded this copy before the rename below
	staleCopy, err := repository.GetWorkspaceByID(workspace.ID)
	require.NoError(t, err)

	_, err = repository.MutateWorkspace(workspace.ID, func(stored *workspaces_models.Workspace) error {
		stored.Name = "Beta"
		return nil
	})
	require.NoError(t, err)

	_, err = repository.CreateWorkspaceIfNameFree(newTestWorkspace("alpha", uuid.New()))
	require.NoError(t, err)

	updated, err := repository.MutateWorkspace(
		workspace.ID,
		func(stored *workspaces_models.Workspace) error {
			stored.Members = append(stored.Members, &workspaces_models.WorkspaceMember{
				UserID:   memberID,
				UserName: "Member",
				Role:     workspaces_enums.WorkspaceRoleViewer,
				JoinedAt: time.Now().UTC(),
			})
			return nil
		},
	)
	require.NoError(t, err)

	assert.Equal(t, "Alpha", staleCopy.Name)
	assert.Equal(t, "Beta", updated.Name)
	assert.True(t, updated.HasMember(memberID))

	holders, err := repository.GetWorkspacesByMember(ownerID)
	require.NoError(t, err)
	require.Len(t, holders, 1)
	assert.Equal(t, "Beta", holders[0].Name)

	assert.True(t, repository.ExistsWithName("alpha", &workspace.ID))
	assert.True(t, repository.ExistsWithName("beta", nil))
	assert.False(t, repository.ExistsWithName("beta", &workspace.ID))
}

func Test_MutateWorkspace_RejectsInvalidChanges(t *testing.T) {
	errRejected := errors.New("rejected")

	tests := []struct {
		name          string
		deleted       bool
		mutate        func(workspace *workspaces_models.Workspace) error
		expectedError error
	}{
		{
			name: "rename to a name held by another workspace",
			mutate: func(workspace *workspaces_models.Workspace) error {
				workspace.Name = "GAMMA"
				workspace.Description = "changed"
				return nil
			},
			expectedError: ErrWorkspaceNameTaken,
		},
		{
			name: "mutate returns an error",
			mutate: func(workspace *workspaces_models.Workspace) error {
				workspace.Description = "changed"
				return errRejected
			},
			expectedError: errRejected,
		},
		{
			name:    "soft-deleted workspace",
			deleted: true,
			mutate: func(workspace *workspaces_models.Workspace) error {
				workspace.Description = "changed"
				return nil
			},
			expectedError: ErrWorkspaceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := NewWorkspaceRepository()

			workspace, err := repository.CreateWorkspace(newTestWorkspace("Alpha", uuid.New()))
			require.NoError(t, err)
			_, err = repository.CreateWorkspace(newTestWorkspace("Gamma", uuid.New()))
			require.NoError(t, err)

			if tt.deleted {
				repository.SoftDeleteWorkspace(workspace.ID)
			}

			_, err = repository.MutateWorkspace(workspace.ID, tt.mutate)
			assert.ErrorIs(t, err, tt.expectedError)

			raw, ok := repository.GetRawWorkspaceByID(workspace.ID)
			require.True(t, ok)
			assert.Equal(t, "Alpha", raw.Name)
			assert.Equal(t, "Test description", raw.Description)
		})
	}
}

func Test_MutateWorkspace_WhenAbsent_ReturnsNotFound(t *testing.T) {
	repository := NewWorkspaceRepository()
	called := false

	_, err := repository.MutateWorkspace(uuid.New(), func(_ *workspaces_models.Workspace) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
	assert.False(t, called)
}

func Test_MutateWorkspace_KeepsImmutableFieldsAndReindexesName(t *testing.T) {
	repository := NewWorkspaceRepository()
	ownerID := uuid.New()

	workspace, err := repository.CreateWorkspace(newTestWorkspace("Alpha", ownerID))
	require.NoError(t, err)

	updated, err := repository.MutateWorkspace(
		workspace.ID,
		func(stored *workspaces_models.Workspace) error {
			stored.ID = uuid.New()
			stored.OwnerID = uuid.New()
			stored.IsActive = false
			stored.Name = "Beta"
			return nil
		},
	)
	require.NoError(t, err)

	assert.Equal(t, workspace.ID, updated.ID)
	assert.Equal(t, ownerID, updated.OwnerID)
	assert.Equal(t, workspace.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.IsActive)
	assert.Equal(t, "Beta", updated.Name)

	assert.False(t, repository.ExistsWithName("alpha", nil))
	assert.True(t, repository.ExistsWithName("beta", nil))

	_, total := repository.CountWorkspaces()
	assert.Equal(t, 1, total)
}

func Test_SeedWorkspaces_InsertsDemoData(t *testing.T) {
	repository := NewWorkspaceRepository()

	err := repository.SeedWorkspaces(GetDemoWorkspaces(time.Now().UTC())...)
	require.NoError(t, err)

	workspaces, err := repository.GetWorkspacesByMember(DemoUserID)
	require.NoError(t, err)
	require.Len(t, workspaces, 2)

	for _, workspace := range workspaces {
		owner := workspace.FindMember(workspace.OwnerID)
		require.NotNil(t, owner)
		assert.Equal(t, workspaces_enums.WorkspaceRoleOwner, owner.Role)
	}
}

func Test_SeedWorkspaces_WhenIDCollides_ReturnsError(t *testing.T) {
	repository := NewWorkspaceRepository()
	workspace := newTestWorkspace("Alpha", uuid.New())

	err := repository.SeedWorkspaces(workspace, workspace)
	assert.ErrorIs(t, err, ErrWorkspaceAlreadyExists)
}

func newTestWorkspace(name string, ownerID uuid.UUID) *workspaces_models.Workspace {
	now := time.Now().UTC()

	return &workspaces_models.Workspace{
		ID:            uuid.New(),
		Name:          name,
		Description:   "Test description",
		Theme:         "Test theme",
		ImageURL:      "http://example.com/" + name + ".png",
		ImagePublicID: "workspaces/" + name,
		OwnerID:       ownerID,
		IsActive:      true,
		CreatedAt:     now,
		Members: []*workspaces_models.WorkspaceMember{
			{
				UserID:   ownerID,
				UserName: "Owner",
				Role:     workspaces_enums.WorkspaceRoleOwner,
				JoinedAt: now,
			},
		},
	}
}
