package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

type EmployeeHandler struct {
	directory ports.EmployeeDirectory
}

func NewEmployeeHandler(directory ports.EmployeeDirectory) *EmployeeHandler {
	return &EmployeeHandler{directory: directory}
}

func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.directory.ListEmployees(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailListEmployees, "failed to list employees")
		return
	}

	c.JSON(http.StatusOK, mapper.ToEmployeeItems(employees))
}
