package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"
)

type domainErrorMapping struct {
	target error
	status int
	key    string
}

// A consistency gap wraps the cause of the failed step, so it is matched
// before the sentinels.
var domainErrorMappings = []domainErrorMapping{
	{domain.ErrConsistencyGap, http.StatusInternalServerError, apierrors.MsgConsistencyGap},
	{domain.ErrRemoteFailure, http.StatusBadGateway, apierrors.MsgInternal},
	{domain.ErrTaskNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrGroupNotFound, http.StatusNotFound, apierrors.MsgGroupNotFound},
	{domain.ErrGroupEntryNotFound, http.StatusNotFound, apierrors.MsgGroupEntryNotFound},
	{domain.ErrCommentNotFound, http.StatusNotFound, apierrors.MsgCommentNotFound},
	{domain.ErrNotCommentAuthor, http.StatusForbidden, apierrors.MsgNotCommentAuthor},
	{domain.ErrInvalidGroupEntry, http.StatusBadRequest, apierrors.MsgInvalidGroupEntry},
	{domain.ErrDuplicateGroupEntry, http.StatusConflict, apierrors.MsgDuplicateGroupEntry},
	{domain.ErrNoAssignees, http.StatusBadRequest, apierrors.MsgNoAssignees},
	{domain.ErrDuplicateAssignee, http.StatusBadRequest, apierrors.MsgDuplicateAssignee},
	{domain.ErrEmptyUpdate, http.StatusBadRequest, apierrors.MsgEmptyUpdate},
	{domain.ErrNoActiveGroup, http.StatusConflict, apierrors.MsgNoActiveGroup},
	{domain.ErrInvalidStatus, http.StatusBadRequest, apierrors.MsgInvalidStatus},
}

func writeError(c *gin.Context, status int, key string) {
	c.JSON(status, apierrors.CreateError(status, key, middleware.GetLang(c)))
}

// respondError maps known domain errors to their status and logs the rest
// before answering with the fallback message.
func respondError(c *gin.Context, err error, fallback string, logMsg string, fields ...zap.Field) {
	for _, mapping := range domainErrorMappings {
		if !errors.Is(err, mapping.target) {
			continue
		}
		if mapping.status >= http.StatusInternalServerError {
			zap.L().Warn(logMsg, append(fields, zap.Error(err))...)
		}
		writeError(c, mapping.status, mapping.key)
		return
	}

	zap.L().Error(logMsg, append(fields, zap.Error(err))...)
	writeError(c, http.StatusInternalServerError, fallback)
}

// bindPayload decodes the body into req with validation and also returns the
// raw object, so partial updates can tell absent fields from null ones.
func bindPayload(c *gin.Context, req any) (map[string]json.RawMessage, bool) {
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return nil, false
	}
	if err := binding.JSON.BindBody(body, req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidPayload)
		return nil, false
	}
	return raw, true
}

func requireUser(c *gin.Context) (string, bool) {
	user := middleware.GetUser(c)
	if user == "" {
		writeError(c, http.StatusUnauthorized, apierrors.MsgMissingUser)
		return "", false
	}
	return user, true
}
