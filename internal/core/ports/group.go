package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

// GroupRepository is the remote group service.
// GetByTaskID returns domain.ErrGroupNotFound when no group references the task.
type GroupRepository interface {
	Create(ctx context.Context, input domain.CreateGroupInput) (domain.TaskGroup, error)
	Get(ctx context.Context, id string) (domain.TaskGroup, error)
	GetByTaskID(ctx context.Context, taskID string) (domain.TaskGroup, error)
	List(ctx context.Context) ([]domain.TaskGroup, error)
	AddUser(ctx context.Context, groupID string, entry domain.GroupEntry) error
	RemoveUser(ctx context.Context, groupID string, userID string) error
}

type GroupService interface {
	CreateGroup(ctx context.Context, input domain.CreateGroupInput) (domain.TaskGroup, error)
	GetGroup(ctx context.Context, id string) (domain.TaskGroup, error)
	ListGroups(ctx context.Context) ([]domain.TaskGroup, error)
	GetGroupByTaskID(ctx context.Context, taskID string) (domain.TaskGroup, error)
	AddUser(ctx context.Context, groupID string, entry domain.GroupEntry) error
	RemoveUser(ctx context.Context, groupID string, userID string) error
}
