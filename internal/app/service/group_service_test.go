package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"taskboard/internal/adapter/memory"
	"taskboard/internal/app/service"
	"taskboard/internal/core/domain"
)

func TestGroupService_EntriesMustReferenceExistingTasks(t *testing.T) {
	ctx := context.Background()
	tasks := memory.NewTaskRepository()
	svc := service.NewGroupService(memory.NewGroupRepository(), tasks)

	task, err := tasks.Create(ctx, domain.CreateTaskInput{AssigneeUserID: "u1"})
	require.NoError(t, err)

	_, err = svc.CreateGroup(ctx, domain.CreateGroupInput{Users: []domain.GroupEntry{
		{TaskID: task.ID, UserID: "u1"},
		{TaskID: "missing", UserID: "u2"},
	}})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	group, err := svc.CreateGroup(ctx, domain.CreateGroupInput{CreatedBy: "admin", Users: []domain.GroupEntry{
		{TaskID: task.ID, UserID: "u1"},
	}})
	require.NoError(t, err)

	require.ErrorIs(t, svc.AddUser(ctx, group.ID, domain.GroupEntry{TaskID: "missing", UserID: "u2"}), domain.ErrTaskNotFound)
	require.ErrorIs(t, svc.AddUser(ctx, group.ID, domain.GroupEntry{TaskID: task.ID, UserID: "u2"}), domain.ErrDuplicateGroupEntry)

	found, err := svc.GetGroupByTaskID(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, group.ID, found.ID)

	require.NoError(t, svc.RemoveUser(ctx, group.ID, "u1"))
	require.ErrorIs(t, svc.RemoveUser(ctx, group.ID, "u1"), domain.ErrGroupEntryNotFound)

	_, err = svc.GetGroupByTaskID(ctx, task.ID)
	require.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestGroupService_RejectsDuplicateEntries(t *testing.T) {
	ctx := context.Background()
	tasks := memory.NewTaskRepository()
	svc := service.NewGroupService(memory.NewGroupRepository(), tasks)

	first, err := tasks.Create(ctx, domain.CreateTaskInput{AssigneeUserID: "u1"})
	require.NoError(t, err)
	second, err := tasks.Create(ctx, domain.CreateTaskInput{AssigneeUserID: "u1"})
	require.NoError(t, err)

	_, err = svc.CreateGroup(ctx, domain.CreateGroupInput{Users: []domain.GroupEntry{
		{TaskID: first.ID, UserID: "u1"},
		{TaskID: second.ID, UserID: "u1"},
	}})
	require.ErrorIs(t, err, domain.ErrDuplicateGroupEntry)
}
