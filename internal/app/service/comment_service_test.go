package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"taskboard/internal/adapter/memory"
	"taskboard/internal/app/service"
	"taskboard/internal/core/domain"
)

func newCommentService(t *testing.T) (*service.CommentService, domain.Task) {
	t.Helper()
	tasks := memory.NewTaskRepository()
	task, err := tasks.Create(context.Background(), domain.CreateTaskInput{
		TaskFields:     domain.TaskFields{Title: "Call the plumber"},
		AssigneeUserID: "u1",
	})
	require.NoError(t, err)
	return service.NewCommentService(memory.NewCommentRepository(), tasks), task
}

func TestCommentService_ListsInInsertionOrder(t *testing.T) {
	svc, task := newCommentService(t)
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		_, err := svc.AddComment(ctx, task.ID, content, "u1")
		require.NoError(t, err)
	}

	comments, err := svc.ListComments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	require.Equal(t, "first", comments[0].Content)
	require.Equal(t, "third", comments[2].Content)
}

func TestCommentService_OnlyAuthorMayEditOrDelete(t *testing.T) {
	svc, task := newCommentService(t)
	ctx := context.Background()

	comment, err := svc.AddComment(ctx, task.ID, "keys are at the front desk", "u1")
	require.NoError(t, err)

	require.ErrorIs(t, svc.EditComment(ctx, comment.ID, "hijacked", "u2"), domain.ErrNotCommentAuthor)
	require.ErrorIs(t, svc.EditComment(ctx, comment.ID, "hijacked", ""), domain.ErrNotCommentAuthor)
	require.ErrorIs(t, svc.DeleteComment(ctx, comment.ID, "u2"), domain.ErrNotCommentAuthor)

	require.NoError(t, svc.EditComment(ctx, comment.ID, "keys are with security", "u1"))
	comments, err := svc.ListComments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, comment.ID, comments[0].ID)
	require.Equal(t, "u1", comments[0].Author)
	require.Equal(t, comment.CreatedAt, comments[0].CreatedAt)
	require.Equal(t, "keys are with security", comments[0].Content)

	require.NoError(t, svc.DeleteComment(ctx, comment.ID, "u1"))
	comments, err = svc.ListComments(ctx, task.ID)
	require.NoError(t, err)
	require.Empty(t, comments)

	require.ErrorIs(t, svc.DeleteComment(ctx, comment.ID, "u1"), domain.ErrCommentNotFound)
}

func TestCommentService_RejectsUnknownTask(t *testing.T) {
	svc, _ := newCommentService(t)
	ctx := context.Background()

	_, err := svc.AddComment(ctx, "missing", "hello", "u1")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	_, err = svc.AddReport(ctx, "missing", "broken lock")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestCommentService_Reports(t *testing.T) {
	svc, task := newCommentService(t)
	ctx := context.Background()

	_, err := svc.AddReport(ctx, task.ID, "wrong unit number")
	require.NoError(t, err)
	_, err = svc.AddReport(ctx, task.ID, "due date in the past")
	require.NoError(t, err)

	reports, err := svc.ListReports(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.Equal(t, "wrong unit number", reports[0].Message)
}
