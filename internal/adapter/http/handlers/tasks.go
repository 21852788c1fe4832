package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns every task record, or only those assigned to user_id.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	filter := domain.TaskFilter{UserID: strings.TrimSpace(c.Query("user_id"))}
	tasks, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask, "failed to list tasks", zap.String("user_id", filter.UserID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetTask, "failed to get task", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	raw, ok := bindPayload(c, &req)
	if !ok {
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw, middleware.GetUser(c))
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, ok := bindPayload(c, &req)
	if !ok {
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw, false)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, "failed to update task", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask, "failed to delete task", zap.String("task_id", taskID))
		return
	}

	c.Status(http.StatusNoContent)
}

func taskIDParam(c *gin.Context) (string, bool) {
	return idParam(c, "id")
}

func idParam(c *gin.Context, name string) (string, bool) {
	id := strings.TrimSpace(c.Param(name))
	if id == "" || len(id) > 64 {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID)
		return "", false
	}
	return id, true
}
