package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

// AssignmentHandler exposes the group consistency engine. Every call opens a
// fresh edit session on the task named in the path.
type AssignmentHandler struct {
	assignmentService ports.AssignmentService
}

func NewAssignmentHandler(assignmentService ports.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	raw, ok := bindPayload(c, &req)
	if !ok {
		return
	}

	fields, err := validation.BuildTaskFields(req.TaskFieldsRequest, raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	result, err := h.assignmentService.Create(c.Request.Context(), domain.AssignmentInput{
		TaskFields: fields,
		Assignees:  mapper.FromAssigneeItems(req.Assignees),
		CreatedBy:  user,
	})
	if err != nil {
		respondError(c, err, apierrors.MsgFailAssignment, "failed to create assigned task",
			zap.Int("created", len(result.Created)))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToAssignmentResultItem(result))
}

func (h *AssignmentHandler) OpenSession(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	session, err := h.assignmentService.Open(c.Request.Context(), taskID, user)
	if err != nil {
		respondError(c, err, apierrors.MsgFailAssignment, "failed to open edit session", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToEditSessionItem(session))
}

func (h *AssignmentHandler) UpdateAssignments(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	raw, ok := bindPayload(c, &req)
	if !ok {
		return
	}

	input, err := validation.BuildUpdateTaskInput(req.UpdateTaskRequest, raw, true)
	if err == nil && (input.AssigneeName != nil || input.AssigneeUserID != nil) {
		// assignees are changed through the selection only
		err = validation.ErrInvalidTaskPayload
	}
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	ctx := c.Request.Context()
	session, err := h.assignmentService.Open(ctx, taskID, user)
	if err != nil {
		respondError(c, err, apierrors.MsgFailAssignment, "failed to open edit session", zap.String("task_id", taskID))
		return
	}

	selection := session.Assignees
	if validation.HasJSONField(raw, "assignees") {
		selection = mapper.FromAssigneeItems(req.Assignees)
	}

	result, err := h.assignmentService.Update(ctx, session, input, selection)
	if err != nil {
		respondError(c, err, apierrors.MsgFailAssignment, "failed to update assignments", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToAssignmentResultItem(result))
}

func (h *AssignmentHandler) RemoveAssignee(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	session, err := h.assignmentService.Open(ctx, taskID, user)
	if err != nil {
		respondError(c, err, apierrors.MsgFailAssignment, "failed to open edit session", zap.String("task_id", taskID))
		return
	}

	result, err := h.assignmentService.RemoveAssignee(ctx, session, userID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailAssignment, "failed to remove assignee",
			zap.String("task_id", taskID), zap.String("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToAssignmentResultItem(result))
}
