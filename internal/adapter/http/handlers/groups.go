package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

type GroupHandler struct {
	groupService ports.GroupService
	reconciler   ports.Reconciler
}

func NewGroupHandler(groupService ports.GroupService, reconciler ports.Reconciler) *GroupHandler {
	return &GroupHandler{groupService: groupService, reconciler: reconciler}
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), domain.CreateGroupInput{
		CreatedBy: user,
		Users:     mapper.FromGroupEntryItems(req.Users),
	})
	if err != nil {
		respondError(c, err, apierrors.MsgFailGroupOperation, "failed to create task group")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToGroupItem(group))
}

func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.ListGroups(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailGroupOperation, "failed to list task groups")
		return
	}

	c.JSON(http.StatusOK, mapper.ToGroupItems(groups))
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	groupID, ok := idParam(c, "id")
	if !ok {
		return
	}

	group, err := h.groupService.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGroupOperation, "failed to get task group", zap.String("group_id", groupID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToGroupItem(group))
}

// GetGroupByTask answers 404 when the task is not part of any group.
func (h *GroupHandler) GetGroupByTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	group, err := h.groupService.GetGroupByTaskID(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGroupOperation, "failed to find task group", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToGroupItem(group))
}

func (h *GroupHandler) AddUser(c *gin.Context) {
	groupID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.GroupEntryItem
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	if err := h.groupService.AddUser(c.Request.Context(), groupID, mapper.FromGroupEntryItem(req)); err != nil {
		respondError(c, err, apierrors.MsgFailGroupOperation, "failed to add task group entry",
			zap.String("group_id", groupID), zap.String("user_id", req.UserID))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GroupHandler) RemoveUser(c *gin.Context) {
	groupID, ok := idParam(c, "id")
	if !ok {
		return
	}
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}

	if err := h.groupService.RemoveUser(c.Request.Context(), groupID, userID); err != nil {
		respondError(c, err, apierrors.MsgFailGroupOperation, "failed to remove task group entry",
			zap.String("group_id", groupID), zap.String("user_id", userID))
		return
	}

	c.Status(http.StatusNoContent)
}

// Reconcile removes dangling group entries, or only lists them with
// ?dry_run=true.
func (h *GroupHandler) Reconcile(c *gin.Context) {
	dryRun := false
	if value := c.Query("dry_run"); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
			return
		}
		dryRun = parsed
	}

	report, err := h.reconciler.Reconcile(c.Request.Context(), dryRun)
	if err != nil {
		respondError(c, err, apierrors.MsgFailReconcile, "failed to reconcile task groups")
		return
	}

	c.JSON(http.StatusOK, mapper.ToReconcileReportItem(report))
}
