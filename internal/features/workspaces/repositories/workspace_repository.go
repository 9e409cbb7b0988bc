package workspaces_repositories

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	workspaces_models "workspaces-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

var (
	ErrWorkspaceNotFound      = errors.New("workspace not found")
	ErrWorkspaceAlreadyExists = errors.New("workspace with this id already exists")
	ErrWorkspaceNameTaken     = errors.New("workspace name is already taken")
)

// WorkspaceRepository is the process-lifetime workspace store. Every record
// is copied on the way in and out; the only way to change stored state is
// through the repository methods.
type WorkspaceRepository struct {
	mu sync.RWMutex

	workspaces map[uuid.UUID]*workspaces_models.Workspace
	// lower-cased name -> ids of active workspaces holding it
	activeNames map[string]map[uuid.UUID]struct{}
}

func NewWorkspaceRepository() *WorkspaceRepository {
	return &WorkspaceRepository{
		workspaces:  make(map[uuid.UUID]*workspaces_models.Workspace),
		activeNames: make(map[string]map[uuid.UUID]struct{}),
	}
}

// CreateWorkspace inserts the record without looking at its name.
func (r *WorkspaceRepository) CreateWorkspace(
	workspace *workspaces_models.Workspace,
) (*workspaces_models.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertLocked(workspace)
}

// CreateWorkspaceIfNameFree checks the name and inserts under one lock, so two
// concurrent creators cannot both claim the same active name.
func (r *WorkspaceRepository) CreateWorkspaceIfNameFree(
	workspace *workspaces_models.Workspace,
) (*workspaces_models.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if workspace.IsActive && r.nameTakenLocked(workspace.Name, nil) {
		return nil, ErrWorkspaceNameTaken
	}

	return r.insertLocked(workspace)
}

func (r *WorkspaceRepository) GetWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workspace, ok := r.workspaces[workspaceID]
	if !ok || !workspace.IsActive {
		return nil, ErrWorkspaceNotFound
	}

	return workspace.Clone(), nil
}

// GetWorkspacesByMember returns active workspaces that list userID as a
// member, sorted by name for stable output.
func (r *WorkspaceRepository) GetWorkspacesByMember(
	userID uuid.UUID,
) ([]*workspaces_models.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*workspaces_models.Workspace, 0)
	for _, workspace := range r.workspaces {
		if workspace.IsActive && workspace.HasMember(userID) {
			result = append(result, workspace.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		left, right := normalizeName(result[i].Name), normalizeName(result[j].Name)
		if left != right {
			return left < right
		}
		return result[i].ID.String() < result[j].ID.String()
	})

	return result, nil
}

// UpdateWorkspace replaces the whole record stored under workspace.ID. It is
// a strict update: absent or soft-deleted ids yield ErrWorkspaceNotFound.
// OwnerID, CreatedAt and IsActive are kept from the stored record.
func (r *WorkspaceRepository) UpdateWorkspace(
	workspace *workspaces_models.Workspace,
) (*workspaces_models.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.replaceLocked(workspace)
}

// MutateWorkspace runs mutate on a copy of the active record and stores the
// result, all under the write lock, so the change applies to the latest
// state instead of a copy loaded earlier. An error from mutate is returned
// unchanged and nothing is stored. A changed name must be free.
func (r *WorkspaceRepository) MutateWorkspace(
	workspaceID uuid.UUID,
	mutate func(workspace *workspaces_models.Workspace) error,
) (*workspaces_models.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.workspaces[workspaceID]
	if !ok || !existing.IsActive {
		return nil, ErrWorkspaceNotFound
	}

	record := existing.Clone()
	if err := mutate(record); err != nil {
		return nil, err
	}
	record.ID = existing.ID

	if normalizeName(record.Name) != normalizeName(existing.Name) &&
		r.nameTakenLocked(record.Name, &workspaceID) {
		return nil, ErrWorkspaceNameTaken
	}

	return r.replaceLocked(record)
}

// SoftDeleteWorkspace marks the workspace inactive. Absent or already
// inactive ids are ignored.
func (r *WorkspaceRepository) SoftDeleteWorkspace(workspaceID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	workspace, ok := r.workspaces[workspaceID]
	if !ok || !workspace.IsActive {
		return
	}

	workspace.IsActive = false
	r.unindexLocked(workspace.Name, workspace.ID)
}

// ExistsWithName reports whether an active workspace other than excludeID
// has the name, compared case-insensitively.
func (r *WorkspaceRepository) ExistsWithName(name string, excludeID *uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.nameTakenLocked(name, excludeID)
}

func (r *WorkspaceRepository) ExistsByID(workspaceID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workspace, ok := r.workspaces[workspaceID]
	return ok && workspace.IsActive
}

// GetRawWorkspaceByID ignores the active flag.
func (r *WorkspaceRepository) GetRawWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workspace, ok := r.workspaces[workspaceID]
	if !ok {
		return nil, false
	}

	return workspace.Clone(), true
}

func (r *WorkspaceRepository) CountWorkspaces() (active int, total int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, workspace := range r.workspaces {
		if workspace.IsActive {
			active++
		}
	}

	return active, len(r.workspaces)
}

func (r *WorkspaceRepository) insertLocked(
	workspace *workspaces_models.Workspace,
) (*workspaces_models.Workspace, error) {
	record := workspace.Clone()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if _, exists := r.workspaces[record.ID]; exists {
		return nil, ErrWorkspaceAlreadyExists
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	r.workspaces[record.ID] = record
	if record.IsActive {
		r.indexLocked(record.Name, record.ID)
	}

	return record.Clone(), nil
}

func (r *WorkspaceRepository) replaceLocked(
	workspace *workspaces_models.Workspace,
) (*workspaces_models.Workspace, error) {
	existing, ok := r.workspaces[workspace.ID]
	if !ok || !existing.IsActive {
		return nil, ErrWorkspaceNotFound
	}

	record := workspace.Clone()
	record.OwnerID = existing.OwnerID
	record.CreatedAt = existing.CreatedAt
	record.IsActive = existing.IsActive

	r.unindexLocked(existing.Name, existing.ID)
	r.indexLocked(record.Name, record.ID)
	r.workspaces[record.ID] = record

	return record.Clone(), nil
}

func (r *WorkspaceRepository) nameTakenLocked(name string, excludeID *uuid.UUID) bool {
	for id := range r.activeNames[normalizeName(name)] {
		if excludeID == nil || id != *excludeID {
			return true
		}
	}

	return false
}

func (r *WorkspaceRepository) indexLocked(name string, workspaceID uuid.UUID) {
	key := normalizeName(name)

	ids, ok := r.activeNames[key]
	if !ok {
		ids = make(map[uuid.UUID]struct{})
		r.activeNames[key] = ids
	}

	ids[workspaceID] = struct{}{}
}

func (r *WorkspaceRepository) unindexLocked(name string, workspaceID uuid.UUID) {
	key := normalizeName(name)

	ids, ok := r.activeNames[key]
	if !ok {
		return
	}

	delete(ids, workspaceID)
	if len(ids) == 0 {
		delete(r.activeNames, key)
	}
}

func normalizeName(name string) string {
	return strings.ToLower(name)
}

// SeedWorkspaces inserts every workspace under one lock and stops at the
// first id collision.
func (r *WorkspaceRepository) SeedWorkspaces(workspaces ...*workspaces_models.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, workspace := range workspaces {
		if _, err := r.insertLocked(workspace); err != nil {
			return fmt.Errorf("failed to seed workspace %q: %w", workspace.Name, err)
		}
	}

	return nil
}
