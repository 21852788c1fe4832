package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

// TaskRepository is the remote task service: it stores individual task records.
type TaskRepository interface {
	Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	Get(ctx context.Context, id string) (domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
