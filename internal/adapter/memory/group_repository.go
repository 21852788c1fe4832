package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// GroupRepository applies add/remove as last-write-wins, like the MySQL store.
type GroupRepository struct {
	mu     sync.RWMutex
	order  []string
	groups map[string]domain.TaskGroup
	now    func() time.Time
}

var _ ports.GroupRepository = (*GroupRepository)(nil)

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{
		groups: make(map[string]domain.TaskGroup),
		now:    time.Now,
	}
}

func (r *GroupRepository) Create(_ context.Context, input domain.CreateGroupInput) (domain.TaskGroup, error) {
	if err := domain.ValidateEntries(input.Users); err != nil {
		return domain.TaskGroup{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	group := domain.TaskGroup{
		ID:        uuid.NewString(),
		CreatedBy: input.CreatedBy,
		Users:     append([]domain.GroupEntry(nil), input.Users...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.groups[group.ID] = group
	r.order = append(r.order, group.ID)
	return group.Clone(), nil
}

func (r *GroupRepository) Get(_ context.Context, id string) (domain.TaskGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, ok := r.groups[id]
	if !ok {
		return domain.TaskGroup{}, domain.ErrGroupNotFound
	}
	return group.Clone(), nil
}

func (r *GroupRepository) GetByTaskID(_ context.Context, taskID string) (domain.TaskGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		group := r.groups[id]
		if _, ok := group.EntryForTask(taskID); ok {
			return group.Clone(), nil
		}
	}
	return domain.TaskGroup{}, domain.ErrGroupNotFound
}

func (r *GroupRepository) List(_ context.Context) ([]domain.TaskGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make([]domain.TaskGroup, 0, len(r.order))
	for _, id := range r.order {
		groups = append(groups, r.groups[id].Clone())
	}
	return groups, nil
}

func (r *GroupRepository) AddUser(_ context.Context, groupID string, entry domain.GroupEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[groupID]
	if !ok {
		return domain.ErrGroupNotFound
	}
	users := append(append([]domain.GroupEntry(nil), group.Users...), entry)
	if err := domain.ValidateEntries(users); err != nil {
		return err
	}
	group.Users = users
	group.UpdatedAt = r.now().UTC()
	r.groups[groupID] = group
	return nil
}

func (r *GroupRepository) RemoveUser(_ context.Context, groupID string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[groupID]
	if !ok {
		return domain.ErrGroupNotFound
	}
	users := make([]domain.GroupEntry, 0, len(group.Users))
	removed := false
	for _, entry := range group.Users {
		if entry.UserID == userID {
			removed = true
			continue
		}
		users = append(users, entry)
	}
	if !removed {
		return domain.ErrGroupEntryNotFound
	}
	group.Users = users
	group.UpdatedAt = r.now().UTC()
	r.groups[groupID] = group
	return nil
}
