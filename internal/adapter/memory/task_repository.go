package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// TaskRepository keeps task records in insertion order.
type TaskRepository struct {
	mu    sync.RWMutex
	order []string
	tasks map[string]domain.Task
	now   func() time.Time
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[string]domain.Task),
		now:   time.Now,
	}
}

func (r *TaskRepository) Create(_ context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	fields := input.TaskFields
	task := domain.Task{
		ID:             uuid.NewString(),
		Title:          fields.Title,
		Description:    fields.Description,
		AssigneeName:   input.AssigneeName,
		AssigneeUserID: input.AssigneeUserID,
		Priority:       fields.Priority,
		Status:         fields.Status,
		DueDate:        fields.DueDate,
		Tags:           domain.NormalizeTags(fields.Tags),
		Attachments:    append([]domain.Attachment(nil), fields.Attachments...),
		CreatedBy:      input.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	task = task.Clone()

	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	return task.Clone(), nil
}

func (r *TaskRepository) Get(_ context.Context, id string) (domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task.Clone(), nil
}

func (r *TaskRepository) List(_ context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(r.order))
	for _, id := range r.order {
		task := r.tasks[id]
		if filter.UserID != "" && task.AssigneeUserID != filter.UserID {
			continue
		}
		tasks = append(tasks, task.Clone())
	}
	return tasks, nil
}

func (r *TaskRepository) Update(_ context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	task = input.Apply(task)
	task.UpdatedAt = r.now().UTC()
	r.tasks[id] = task
	return task.Clone(), nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
