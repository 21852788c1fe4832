package tests

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskboard/internal/core/domain"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type assignmentServiceMock struct {
	mock.Mock
}

func (m *assignmentServiceMock) Create(ctx context.Context, input domain.AssignmentInput) (domain.AssignmentResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.AssignmentResult), args.Error(1)
}

func (m *assignmentServiceMock) Open(ctx context.Context, taskID, actor string) (domain.EditSession, error) {
	args := m.Called(ctx, taskID, actor)
	return args.Get(0).(domain.EditSession), args.Error(1)
}

func (m *assignmentServiceMock) Update(ctx context.Context, session domain.EditSession, input domain.UpdateTaskInput, selection []domain.Assignee) (domain.AssignmentResult, error) {
	args := m.Called(ctx, session, input, selection)
	return args.Get(0).(domain.AssignmentResult), args.Error(1)
}

func (m *assignmentServiceMock) RemoveAssignee(ctx context.Context, session domain.EditSession, userID string) (domain.AssignmentResult, error) {
	args := m.Called(ctx, session, userID)
	return args.Get(0).(domain.AssignmentResult), args.Error(1)
}
