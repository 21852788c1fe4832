package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

type CommentHandler struct {
	commentService ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailComment, "failed to list comments", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToCommentItems(comments))
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}
	author, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), taskID, req.Content, author)
	if err != nil {
		respondError(c, err, apierrors.MsgFailComment, "failed to add comment", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToCommentItem(comment))
}

// EditComment and DeleteComment leave the authorship check to the service;
// an anonymous caller is never the author.
func (h *CommentHandler) EditComment(c *gin.Context) {
	commentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	err := h.commentService.EditComment(c.Request.Context(), commentID, req.Content, middleware.GetUser(c))
	if err != nil {
		respondError(c, err, apierrors.MsgFailComment, "failed to edit comment", zap.String("comment_id", commentID))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, middleware.GetUser(c)); err != nil {
		respondError(c, err, apierrors.MsgFailComment, "failed to delete comment", zap.String("comment_id", commentID))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) ListReports(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	reports, err := h.commentService.ListReports(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailReport, "failed to list reports", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToReportItems(reports))
}

func (h *CommentHandler) AddReport(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return
	}

	report, err := h.commentService.AddReport(c.Request.Context(), taskID, req.Message)
	if err != nil {
		respondError(c, err, apierrors.MsgFailReport, "failed to add report", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToReportItem(report))
}
