package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAssignmentRouter(handler *handlers.AssignmentHandler) *gin.Engine {
	router := gin.New()
	api := router.Group("/api", middleware.LanguageMiddleware(), middleware.UserMiddleware())
	api.POST("/assignments", handler.CreateAssignment)
	api.GET("/tasks/:id/assignees", handler.OpenSession)
	api.PUT("/tasks/:id/assignments", handler.UpdateAssignments)
	api.DELETE("/tasks/:id/assignees/:userId", handler.RemoveAssignee)
	return router
}

func asUser(id string) map[string]string {
	return map[string]string{middleware.UserHeader: id}
}

func groupedSession() domain.EditSession {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	primary := domain.Task{
		ID:             "t-1",
		Title:          "Inspect boiler",
		AssigneeUserID: "emp-001",
		Status:         domain.TaskStatusAssigned,
		Priority:       domain.TaskPriorityMedium,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return domain.EditSession{
		Actor:   "emp-001",
		Primary: primary,
		Group: &domain.TaskGroup{
			ID:        "g-1",
			CreatedBy: "emp-001",
			Users: []domain.GroupEntry{
				{UserID: "emp-001", TaskID: "t-1", Name: "Asha Menon"},
				{UserID: "emp-002", TaskID: "t-2", Name: "Ben Okafor"},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		Assignees: []domain.Assignee{
			{UserID: "emp-001", Name: "Asha Menon"},
			{UserID: "emp-002", Name: "Ben Okafor"},
		},
	}
}

func TestAssignmentHandler_Create_RequiresUser(t *testing.T) {
	serviceMock := new(assignmentServiceMock)
	router := newAssignmentRouter(handlers.NewAssignmentHandler(serviceMock))

	rec := serve(router, http.MethodPost, "/api/assignments", `{"title":"x","assignees":[{"user_id":"emp-001"}]}`, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, apierrors.MsgMissingUser, decodeError(t, rec).ErrDetails.Key)
	serviceMock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAssignmentHandler_Create_Success(t *testing.T) {
	session := groupedSession()
	primary := session.Primary
	sibling := primary
	sibling.ID = "t-2"
	sibling.AssigneeUserID = "emp-002"

	serviceMock := new(assignmentServiceMock)
	serviceMock.On("Create", mock.Anything, mock.MatchedBy(func(input domain.AssignmentInput) bool {
		return input.Title == "Inspect boiler" &&
			input.CreatedBy == "emp-001" &&
			len(input.Assignees) == 2 &&
			input.Assignees[1].UserID == "emp-002" &&
			input.Assignees[1].Name == "Ben Okafor"
	})).Return(domain.AssignmentResult{
		Primary: &primary,
		Created: []domain.Task{primary, sibling},
		Group:   session.Group,
		Session: session,
	}, nil).Once()
	router := newAssignmentRouter(handlers.NewAssignmentHandler(serviceMock))

	body := `{"title":"Inspect boiler","assignees":[{"user_id":"emp-001","name":"Asha Menon"},{"user_id":"emp-002","name":"Ben Okafor"}]}`
	rec := serve(router, http.MethodPost, "/api/assignments", body, asUser("emp-001"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got dto.AssignmentResultItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Primary)
	require.Equal(t, "t-1", got.Primary.ID)
	require.Len(t, got.Created, 2)
	require.NotNil(t, got.Group)
	require.Equal(t, "g-1", got.Group.ID)
	require.Len(t, got.Session.Assignees, 2)
	serviceMock.AssertExpectations(t)
}

func TestAssignmentHandler_Create_RejectsEmptySelection(t *testing.T) {
	serviceMock := new(assignmentServiceMock)
	router := newAssignmentRouter(handlers.NewAssignmentHandler(serviceMock))

	rec := serve(router, http.MethodPost, "/api/assignments", `{"title":"x","assignees":[]}`, asUser("emp-001"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAssignmentHandler_Create_ConsistencyGap(t *testing.T) {
	gap := &domain.ConsistencyGapError{
		Operation: "create_group",
		Err:       errors.New("connection reset"),
	}

	serviceMock := new(assignmentServiceMock)
	serviceMock.On("Create", mock.Anything, mock.Anything).Return(domain.AssignmentResult{}, gap).Once()
	router := newAssignmentRouter(handlers.NewAssignmentHandler(serviceMock))

	body := `{"title":"x","assignees":[{"user_id":"emp-001"},{"user_id":"emp-002"}]}`
	rec := serve(router, http.MethodPost, "/api/assignments", body, asUser("emp-001"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decodeError(t, rec)
	require.Equal(t, apierrors.MsgConsistencyGap, got.ErrDetails.Key)
	require.Equal(t, "The operation was only partially applied", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestAssignmentHandler_Create_GapWinsOverWrappedCause(t *testing.T) {
	gap := &domain.ConsistencyGapError{
		Operation: "add_user",
		Err:       domain.ErrDuplicateGroupEntry,
	}

	serviceMock := new(assignmentServiceMock)
	serviceMock.On("Create", mock.Anything, mock.Anything).Return(domain.AssignmentResult{}, gap).Once()
	router := newAssignmentRouter(handlers.NewAssignmentHandler(serviceMock))

	body := `{"title":"x","assignees":[{"user_id":"emp-001"},{"user_id":"emp-002"}]}`
	rec := serve(router, http.MethodPost, "/api/assignments", body, asUser("emp-001"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, apierrors.MsgConsistencyGap, decodeError(t, rec).ErrDetails.Key)
}

func TestAssignmentHandler_OpenSession(t *testing.T) {
	session := groupedSession()

	serviceMock := new(assignmentServiceMock)
	serviceMock.On("Open", mock.Anything, "t-1", "emp-001").Return(session, nil).Once()
	router := newAssignmentRouter(handlers.NewAssignmentHandler(serviceMock))

	rec := serve(router, http.MethodGet, "/api/tasks/t-1/assignees", "", asUser("emp-001"))

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.EditSessionItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "emp-001", got.Actor)
	require.Equal(t, "t-1", got.Primary.ID)
	require.NotNil(t, got.Group)
	require.Len(t, got.Assignees, 2)
	serviceMock.AssertExpectations(t)
}

func TestAssignmentHandler_Update_KeepsSelectionWhenAbsent(t *testing.T) {
	session := groupedSession()
	updated := session.Primary
	updated.Title = "Inspect boiler and pipes"

	serviceMock := new(assignmentServiceMock)
	serviceMock.On("Open", mock.Anything, "t-1", "emp-001").Return(session, nil).Once()
	serviceMock.On("Update", mock.Anything, session, mock.MatchedBy(func(input domain.UpdateTaskInput) bool {
		return input.Title != nil && *input.Title == "Inspect boiler and pipes" && input.Status == nil
	}), session.Assignees).Return(domain.AssignmentResult{
		Primary: &updated,
		Group:   session.Group,
		Session: session,
	}, nil).Once()
	router := newAssignmentRouter(handlers.NewAssignmentHandler(serviceMock))

	rec := serve(router, http.MethodPut, "/api/tasks/t-1/assignments", `{"title":"Inspect boiler and pipes"}`, asUser("emp-001"))

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.AssignmentResultItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Inspect boiler and pipes", got.Primary.Title)
	serviceMock.AssertExpectations(t)
}

func TestAssignmentHandler_Update_ReplacesSelection(t *testing.T) {
	session := groupedSession()
	selection := []domain.Assignee{{UserID: "emp-001", Name: "Asha Menon"}, {UserID: "emp-003", Name: "Chloe Martin"}}

	serviceMock := new(assignmentServiceMock)
	serviceMock.On("Open", mock.Anything, "t-1", "emp-001").Return(session, nil).Once()
	serviceMock.On("Update", mock.Anything, session, domain.UpdateTaskInput{}, selection).Return(domain.AssignmentResult{
		Removed: []string{"t-2"},
		Session: session,
	}, nil).Once()
	router := newAssignmentRouter(handlers.NewAssignmentHandler(serviceMock))

	body := `{"assignees":[{"user_id":"emp-001","name":"Asha Menon"},{"user_id":"emp-003","name":"Chloe Martin"}]}`
	rec := serve(router, http.MethodPut, "/api/tasks/t-1/assignments", body, asUser("emp-001"))

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.AssignmentResultItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, []string{"t-2"}, got.Removed)
	serviceMock.AssertExpectations(t)
}

func TestAssignmentHandler_Update_RejectsAssigneeFields(t *testing.T) {
	serviceMock := new(assignmentServiceMock)
	router := newAssignmentRouter(handlers.NewAssignmentHandler(serviceMock))

	rec := serve(router, http.MethodPut, "/api/tasks/t-1/assignments", `{"assignee_user_id":"emp-009"}`, asUser("emp-001"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignmentHandler_RemoveAssignee_NoActiveGroup(t *testing.T) {
	session := groupedSession()
	session.Group = nil
	session.Assignees = session.Assignees[:1]

	serviceMock := new(assignmentServiceMock)
	serviceMock.On("Open", mock.Anything, "t-1", "emp-001").Return(session, nil).Once()
	serviceMock.On("RemoveAssignee", mock.Anything, session, "emp-002").Return(domain.AssignmentResult{}, domain.ErrNoActiveGroup).Once()
	router := newAssignmentRouter(handlers.NewAssignmentHandler(serviceMock))

	rec := serve(router, http.MethodDelete, "/api/tasks/t-1/assignees/emp-002", "", asUser("emp-001"))

	require.Equal(t, http.StatusConflict, rec.Code)
	got := decodeError(t, rec)
	require.Equal(t, apierrors.MsgNoActiveGroup, got.ErrDetails.Key)
	require.Equal(t, "The task has no active group", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestAssignmentHandler_OpenSession_TaskNotFound(t *testing.T) {
	serviceMock := new(assignmentServiceMock)
	serviceMock.On("Open", mock.Anything, "missing", "emp-001").Return(domain.EditSession{}, domain.ErrTaskNotFound).Once()
	router := newAssignmentRouter(handlers.NewAssignmentHandler(serviceMock))

	rec := serve(router, http.MethodGet, "/api/tasks/missing/assignees", "", asUser("emp-001"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	serviceMock.AssertExpectations(t)
}
