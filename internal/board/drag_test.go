package board_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"taskboard/internal/board"
	"taskboard/internal/core/domain"
	"taskboard/internal/metrics"
)

func newDragFixture(t *testing.T) (*remoteTasks, []domain.Task, *board.Store, *board.DragController, *[]board.Notification) {
	t.Helper()
	repo, tasks := seedTasks(t)
	store := board.NewStore(repo)
	require.NoError(t, store.Load(context.Background(), ""))

	var notified []board.Notification
	controller := board.NewDragController(store, repo, board.NotifierFunc(func(n board.Notification) {
		notified = append(notified, n)
	}))
	return repo, tasks, store, controller, &notified
}

func TestDragController_CommitsOptimisticMove(t *testing.T) {
	repo, tasks, store, controller, notified := newDragFixture(t)
	ctx := context.Background()

	require.NoError(t, controller.Start(tasks[0].ID))
	require.Equal(t, board.DragDragging, controller.State())
	dragged, ok := controller.Dragged()
	require.True(t, ok)
	require.Equal(t, tasks[0].ID, dragged.ID)

	require.NoError(t, controller.Drop(ctx, domain.TaskStatusInProgress))
	require.Equal(t, board.DragIdle, controller.State())
	require.Empty(t, *notified)

	moved, _ := store.Task(tasks[0].ID)
	require.Equal(t, domain.TaskStatusInProgress, moved.Status)

	remote, err := repo.Get(ctx, tasks[0].ID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusInProgress, remote.Status)

	require.Len(t, repo.updates, 1)
	require.NotNil(t, repo.updates[0].Status)
	require.Nil(t, repo.updates[0].Title)
	require.False(t, repo.updates[0].TagsSet)
}

func TestDragController_RollsBackOnRemoteFailure(t *testing.T) {
	repo, tasks, store, controller, notified := newDragFixture(t)
	ctx := context.Background()
	repo.updateErr = errConfirmFailed
	before := store.Tasks()

	require.NoError(t, controller.Start(tasks[0].ID))
	err := controller.Drop(ctx, domain.TaskStatusInProgress)
	require.ErrorIs(t, err, errConfirmFailed)

	require.Equal(t, before, store.Tasks())
	task, _ := store.Task(tasks[0].ID)
	require.Equal(t, domain.TaskStatusAssigned, task.Status)
	require.Equal(t, board.DragIdle, controller.State())

	require.Len(t, *notified, 1)
	require.Equal(t, "move_task", (*notified)[0].Operation)
	require.Equal(t, tasks[0].ID, (*notified)[0].TaskID)
	require.ErrorIs(t, (*notified)[0].Err, errConfirmFailed)
}

func TestDragController_RollbackRestoresListCapturedAtDrop(t *testing.T) {
	repo, tasks, store, controller, _ := newDragFixture(t)
	ctx := context.Background()
	repo.updateErr = errConfirmFailed
	repo.block = make(chan struct{})
	repo.entered = make(chan struct{})
	before := store.Tasks()

	require.NoError(t, controller.Start(tasks[0].ID))
	done := make(chan error, 1)
	go func() {
		done <- controller.Drop(ctx, domain.TaskStatusOnHold)
	}()

	<-repo.entered
	moved, ok := store.Task(tasks[0].ID)
	require.True(t, ok)
	require.Equal(t, domain.TaskStatusOnHold, moved.Status)

	close(repo.block)
	require.ErrorIs(t, <-done, errConfirmFailed)
	require.Equal(t, before, store.Tasks())
}

func TestDragController_RollbackRestoresEveryStatusPair(t *testing.T) {
	for _, from := range domain.TaskStatuses {
		for _, to := range domain.TaskStatuses {
			repo, tasks, store, controller, _ := newDragFixture(t)
			ctx := context.Background()

			status := from
			_, err := repo.TaskRepository.Update(ctx, tasks[1].ID, domain.UpdateTaskInput{Status: &status})
			require.NoError(t, err)
			require.NoError(t, store.Load(ctx, ""))
			before := store.Tasks()

			repo.updateErr = errConfirmFailed
			require.NoError(t, controller.Start(tasks[1].ID))
			require.Error(t, controller.Drop(ctx, to))
			require.Equal(t, before, store.Tasks(), "%s -> %s", from, to)
		}
	}
}

func TestDragController_RedropOnSameColumnStillUpdates(t *testing.T) {
	repo, tasks, store, controller, _ := newDragFixture(t)
	ctx := context.Background()
	before, _ := store.Task(tasks[0].ID)

	require.NoError(t, controller.Start(tasks[0].ID))
	require.NoError(t, controller.Drop(ctx, domain.TaskStatusAssigned))
	require.Equal(t, 1, repo.updateCount())

	after, _ := store.Task(tasks[0].ID)
	require.Equal(t, before, after)

	remote, err := repo.Get(ctx, tasks[0].ID)
	require.NoError(t, err)
	require.Equal(t, before.Title, remote.Title)
	require.Equal(t, before.Status, remote.Status)
	require.Equal(t, before.Tags, remote.Tags)
}

func TestDragController_SingleGestureAtATime(t *testing.T) {
	repo, tasks, _, controller, _ := newDragFixture(t)
	ctx := context.Background()
	repo.block = make(chan struct{})
	repo.entered = make(chan struct{})

	require.NoError(t, controller.Start(tasks[0].ID))
	require.ErrorIs(t, controller.Start(tasks[1].ID), board.ErrDragInProgress)

	done := make(chan error, 1)
	go func() {
		done <- controller.Drop(ctx, domain.TaskStatusCompleted)
	}()

	<-repo.entered
	require.Equal(t, board.DragCommitting, controller.State())
	require.ErrorIs(t, controller.Start(tasks[1].ID), board.ErrDragInProgress)
	require.ErrorIs(t, controller.Cancel(), board.ErrNotDragging)

	close(repo.block)
	require.NoError(t, <-done)
	require.Equal(t, board.DragIdle, controller.State())
	require.NoError(t, controller.Start(tasks[1].ID))
}

func TestDragController_GuardsInvalidGestures(t *testing.T) {
	repo, tasks, store, controller, _ := newDragFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, controller.Drop(ctx, domain.TaskStatusCompleted), board.ErrNotDragging)
	require.ErrorIs(t, controller.Cancel(), board.ErrNotDragging)
	require.ErrorIs(t, controller.Start("missing"), domain.ErrTaskNotFound)
	require.Equal(t, board.DragIdle, controller.State())

	require.NoError(t, controller.Start(tasks[0].ID))
	require.NoError(t, controller.Cancel())
	require.Equal(t, board.DragIdle, controller.State())
	_, ok := controller.Dragged()
	require.False(t, ok)

	before := store.Tasks()
	require.NoError(t, controller.Start(tasks[0].ID))
	require.ErrorIs(t, controller.Drop(ctx, "archived"), domain.ErrInvalidStatus)
	require.Equal(t, board.DragIdle, controller.State())
	require.Equal(t, before, store.Tasks())
	require.Zero(t, repo.updateCount())
}

func TestDragState_String(t *testing.T) {
	require.Equal(t, "idle", board.DragIdle.String())
	require.Equal(t, "rolling_back", board.DragRollingBack.String())
	require.Equal(t, "DragState(9)", board.DragState(9).String())
}

func TestDragController_CountsOutcomes(t *testing.T) {
	committed := testutil.ToFloat64(metrics.DragTransitions.WithLabelValues("committed"))
	rolledBack := testutil.ToFloat64(metrics.DragTransitions.WithLabelValues("rolled_back"))

	repo, tasks, _, controller, _ := newDragFixture(t)
	ctx := context.Background()

	require.NoError(t, controller.Start(tasks[0].ID))
	require.NoError(t, controller.Drop(ctx, domain.TaskStatusCompleted))

	repo.updateErr = errConfirmFailed
	require.NoError(t, controller.Start(tasks[1].ID))
	require.Error(t, controller.Drop(ctx, domain.TaskStatusCompleted))

	require.Equal(t, committed+1, testutil.ToFloat64(metrics.DragTransitions.WithLabelValues("committed")))
	require.Equal(t, rolledBack+1, testutil.ToFloat64(metrics.DragTransitions.WithLabelValues("rolled_back")))
}
