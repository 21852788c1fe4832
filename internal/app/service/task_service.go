package service

import (
	"context"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository}
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	if input.Status == "" {
		input.Status = domain.TaskStatusAssigned
	}
	if input.Priority == "" {
		input.Priority = domain.TaskPriorityMedium
	}
	input.Tags = domain.NormalizeTags(input.Tags)
	return s.taskRepository.Create(ctx, input)
}

func (s *TaskService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return s.taskRepository.Get(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	return s.taskRepository.List(ctx, filter)
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	if input.Empty() {
		return domain.Task{}, domain.ErrEmptyUpdate
	}
	return s.taskRepository.Update(ctx, id, input)
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.taskRepository.Delete(ctx, id)
}

var _ ports.TaskService = (*TaskService)(nil)
