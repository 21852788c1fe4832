package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Tasks      *handlers.TaskHandler
	Groups     *handlers.GroupHandler
	Comments   *handlers.CommentHandler
	Employees  *handlers.EmployeeHandler
	Assignment *handlers.AssignmentHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	validation.RegisterValidators()

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware(), middleware.UserMiddleware(), middleware.MetricsMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		api.GET("/tasks", h.Tasks.ListTasks)
		api.POST("/tasks", h.Tasks.CreateTask)
		api.GET("/tasks/:id", h.Tasks.GetTask)
		api.PATCH("/tasks/:id", h.Tasks.UpdateTask)
		api.DELETE("/tasks/:id", h.Tasks.DeleteTask)

		api.GET("/tasks/:id/group", h.Groups.GetGroupByTask)
		api.GET("/groups", h.Groups.ListGroups)
		api.POST("/groups", h.Groups.CreateGroup)
		api.POST("/groups/reconcile", h.Groups.Reconcile)
		api.GET("/groups/:id", h.Groups.GetGroup)
		api.POST("/groups/:id/users", h.Groups.AddUser)
		api.DELETE("/groups/:id/users/:userId", h.Groups.RemoveUser)

		api.GET("/tasks/:id/comments", h.Comments.ListComments)
		api.POST("/tasks/:id/comments", h.Comments.AddComment)
		api.PUT("/comments/:id", h.Comments.EditComment)
		api.DELETE("/comments/:id", h.Comments.DeleteComment)
		api.GET("/tasks/:id/reports", h.Comments.ListReports)
		api.POST("/tasks/:id/reports", h.Comments.AddReport)

		api.GET("/employees", h.Employees.ListEmployees)

		api.POST("/assignments", h.Assignment.CreateAssignment)
		api.GET("/tasks/:id/assignees", h.Assignment.OpenSession)
		api.PUT("/tasks/:id/assignments", h.Assignment.UpdateAssignments)
		api.DELETE("/tasks/:id/assignees/:userId", h.Assignment.RemoveAssignee)
	}
}
