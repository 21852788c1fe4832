package board_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"taskboard/internal/adapter/memory"
	"taskboard/internal/core/domain"
)

var errConfirmFailed = errors.New("confirm call failed")

// remoteTasks wraps the in-memory store so tests can fail or block updates.
type remoteTasks struct {
	*memory.TaskRepository

	mu        sync.Mutex
	updateErr error
	updates   []domain.UpdateTaskInput
	block     chan struct{}
	entered   chan struct{}
}

func (r *remoteTasks) Update(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	r.mu.Lock()
	r.updates = append(r.updates, input)
	err := r.updateErr
	block, entered := r.block, r.entered
	r.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if block != nil {
		<-block
	}
	if err != nil {
		return domain.Task{}, err
	}
	return r.TaskRepository.Update(ctx, id, input)
}

func (r *remoteTasks) updateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updates)
}

func seedTasks(t *testing.T) (*remoteTasks, []domain.Task) {
	t.Helper()
	ctx := context.Background()
	repo := &remoteTasks{TaskRepository: memory.NewTaskRepository()}

	inputs := []domain.CreateTaskInput{
		{TaskFields: domain.TaskFields{Title: "Collect rent", Status: domain.TaskStatusAssigned, Tags: []string{"finance"}}, AssigneeUserID: "u1", AssigneeName: "Asha"},
		{TaskFields: domain.TaskFields{Title: "Fix gate", Status: domain.TaskStatusInProgress}, AssigneeUserID: "u1", AssigneeName: "Asha"},
		{TaskFields: domain.TaskFields{Title: "Show flat 12", Status: domain.TaskStatusAssigned}, AssigneeUserID: "u2", AssigneeName: "Ben"},
	}
	tasks := make([]domain.Task, 0, len(inputs))
	for _, input := range inputs {
		task, err := repo.Create(ctx, input)
		require.NoError(t, err)
		tasks = append(tasks, task)
	}
	return repo, tasks
}
