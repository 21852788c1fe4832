package remote

import (
	"context"
	"net/http"
	"net/url"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type TaskRepository struct {
	client *Client
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(client *Client) *TaskRepository {
	return &TaskRepository{client: client}
}

func (r *TaskRepository) Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	var item dto.TaskItem
	err := r.client.do(ctx, request{
		op:     "create task",
		method: http.MethodPost,
		path:   "/api/tasks",
		user:   input.CreatedBy,
		body: dto.CreateTaskRequest{
			TaskFieldsRequest: mapper.ToTaskFieldsRequest(input.TaskFields),
			AssigneeName:      input.AssigneeName,
			AssigneeUserID:    input.AssigneeUserID,
		},
		out: &item,
	})
	if err != nil {
		return domain.Task{}, err
	}
	return mapper.FromTaskItem(item)
}

func (r *TaskRepository) Get(ctx context.Context, id string) (domain.Task, error) {
	var item dto.TaskItem
	err := r.client.do(ctx, request{
		op:     "get task",
		method: http.MethodGet,
		path:   "/api/tasks/" + url.PathEscape(id),
		out:    &item,
	})
	if err != nil {
		return domain.Task{}, err
	}
	return mapper.FromTaskItem(item)
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	path := "/api/tasks"
	if filter.UserID != "" {
		path += "?" + url.Values{"user_id": {filter.UserID}}.Encode()
	}

	var items []dto.TaskItem
	err := r.client.do(ctx, request{
		op:     "list tasks",
		method: http.MethodGet,
		path:   path,
		out:    &items,
	})
	if err != nil {
		return nil, err
	}
	return mapper.FromTaskItems(items)
}

func (r *TaskRepository) Update(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	var item dto.TaskItem
	err := r.client.do(ctx, request{
		op:     "update task",
		method: http.MethodPatch,
		path:   "/api/tasks/" + url.PathEscape(id),
		body:   mapper.ToUpdateTaskPayload(input),
		out:    &item,
	})
	if err != nil {
		return domain.Task{}, err
	}
	return mapper.FromTaskItem(item)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, request{
		op:     "delete task",
		method: http.MethodDelete,
		path:   "/api/tasks/" + url.PathEscape(id),
	})
}
