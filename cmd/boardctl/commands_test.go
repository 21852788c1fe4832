package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/memory"
	"taskboard/internal/app/service"
	"taskboard/internal/core/domain"
	"taskboard/pkg/translator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "../../pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})
	os.Exit(m.Run())
}

type testAPI struct {
	url    string
	tasks  *memory.TaskRepository
	groups *memory.GroupRepository
}

func startAPI(t *testing.T) testAPI {
	t.Helper()

	tasks := memory.NewTaskRepository()
	groups := memory.NewGroupRepository()
	comments := memory.NewCommentRepository()
	employees := memory.NewEmployeeDirectory(memory.SampleEmployees()...)

	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health:     handlers.NewHealthHandler(nil),
		Tasks:      handlers.NewTaskHandler(service.NewTaskService(tasks)),
		Groups:     handlers.NewGroupHandler(service.NewGroupService(groups, tasks), service.NewGroupReconciler(tasks, groups)),
		Comments:   handlers.NewCommentHandler(service.NewCommentService(comments, tasks)),
		Employees:  handlers.NewEmployeeHandler(employees),
		Assignment: handlers.NewAssignmentHandler(service.NewAssignmentService(tasks, groups, employees)),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return testAPI{url: server.URL, tasks: tasks, groups: groups}
}

func run(t *testing.T, api testAPI, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api-url", api.url}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAssign_CreatesGroupedTasks(t *testing.T) {
	api := startAPI(t)

	out, err := run(t, api, "assign", "--as", "emp-001",
		"--title", "Inspect roof", "--priority", "high", "--due", "2026-05-01",
		"--user", "emp-002", "--user", "emp-003")
	require.NoError(t, err)
	require.Contains(t, out, "for Ben Okafor")
	require.Contains(t, out, "for Chloe Martin")
	require.Contains(t, out, "(2 assignees)")

	tasks, err := api.tasks.List(context.Background(), domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, domain.TaskPriorityHigh, tasks[0].Priority)

	groups, err := api.groups.List(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
}

func TestAssign_RequiresActor(t *testing.T) {
	api := startAPI(t)

	_, err := run(t, api, "assign", "--title", "x", "--user", "emp-002")
	require.ErrorIs(t, err, errActorRequired)
}

func TestBoard_PrintsColumnsForUser(t *testing.T) {
	api := startAPI(t)
	ctx := context.Background()
	_, err := api.tasks.Create(ctx, domain.CreateTaskInput{
		TaskFields:     domain.TaskFields{Title: "Sign contract", Status: domain.TaskStatusAssigned, Priority: domain.TaskPriorityLow},
		AssigneeUserID: "emp-002",
		AssigneeName:   "Ben Okafor",
	})
	require.NoError(t, err)
	_, err = api.tasks.Create(ctx, domain.CreateTaskInput{
		TaskFields:     domain.TaskFields{Title: "Audit books", Status: domain.TaskStatusOnHold, Priority: domain.TaskPriorityLow},
		AssigneeUserID: "emp-003",
	})
	require.NoError(t, err)

	out, err := run(t, api, "board", "--user", "emp-002")
	require.NoError(t, err)
	require.Contains(t, out, "assigned (1)")
	require.Contains(t, out, "on-hold (0)")
	require.Contains(t, out, "Sign contract")
	require.NotContains(t, out, "Audit books")
}

func TestMove_UpdatesStatus(t *testing.T) {
	api := startAPI(t)
	ctx := context.Background()
	task, err := api.tasks.Create(ctx, domain.CreateTaskInput{
		TaskFields: domain.TaskFields{Title: "Book cleaner", Status: domain.TaskStatusAssigned, Priority: domain.TaskPriorityMedium},
	})
	require.NoError(t, err)

	out, err := run(t, api, "move", task.ID, "completed")
	require.NoError(t, err)
	require.Contains(t, out, "moved "+task.ID+" to completed")

	stored, err := api.tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCompleted, stored.Status)
}

func TestMove_UnknownTask(t *testing.T) {
	api := startAPI(t)

	_, err := run(t, api, "move", "missing", "completed")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestCommentAndShow(t *testing.T) {
	api := startAPI(t)
	task, err := api.tasks.Create(context.Background(), domain.CreateTaskInput{
		TaskFields: domain.TaskFields{Title: "Replace lock", Status: domain.TaskStatusAssigned, Priority: domain.TaskPriorityMedium},
	})
	require.NoError(t, err)

	_, err = run(t, api, "comment", "--as", "emp-004", task.ID, "ordered the part")
	require.NoError(t, err)
	_, err = run(t, api, "report", task.ID, "wrong key size")
	require.NoError(t, err)

	out, err := run(t, api, "show", task.ID)
	require.NoError(t, err)
	require.Contains(t, out, "Replace lock")
	require.Contains(t, out, "comments (1)")
	require.Contains(t, out, "emp-004: ordered the part")
	require.Contains(t, out, "reports (1)")
	require.Contains(t, out, "wrong key size")
}

func TestReconcile_DryRunKeepsEntries(t *testing.T) {
	api := startAPI(t)
	ctx := context.Background()

	_, err := run(t, api, "assign", "--as", "emp-001", "--title", "Stocktake", "--user", "emp-002", "--user", "emp-003")
	require.NoError(t, err)
	tasks, err := api.tasks.List(ctx, domain.TaskFilter{UserID: "emp-003"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.NoError(t, api.tasks.Delete(ctx, tasks[0].ID))

	out, err := run(t, api, "reconcile", "--dry-run")
	require.NoError(t, err)
	require.Contains(t, out, "dangling: group")
	require.Contains(t, out, "dry run, nothing removed")

	groups, err := api.groups.List(ctx)
	require.NoError(t, err)
	require.Len(t, groups[0].Users, 2)

	out, err = run(t, api, "reconcile")
	require.NoError(t, err)
	require.Contains(t, out, "removed: 1")
}

func TestEmployees_ListsDirectory(t *testing.T) {
	api := startAPI(t)

	out, err := run(t, api, "employees")
	require.NoError(t, err)
	require.Contains(t, out, "Asha Menon")
	require.Contains(t, out, "Diego Alvarez")
}
