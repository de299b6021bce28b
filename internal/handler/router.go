package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/leave-alteration-api/internal/middleware"
	"github.com/noah-isme/leave-alteration-api/internal/models"
)

// Routes bundles the handlers and guards mounted under the API prefix.
type Routes struct {
	Alterations   *AlterationHandler
	LeaveRequests *LeaveRequestHandler
	Notifications *NotificationHandler
	Tokens        middleware.TokenValidator
	Audit         middleware.AuditWriter
	Logger        *zap.Logger
}

// Register mounts every protected endpoint on group.
func (r Routes) Register(group gin.IRouter) {
	api := group.Group("")
	api.Use(middleware.JWT(r.Tokens))

	supervisors := middleware.RequireRoles(models.RoleAdmin, models.RoleHOD)

	alterations := api.Group("/alterations")
	alterations.POST("", r.Alterations.Assign)
	alterations.GET("", supervisors, r.Alterations.List)
	alterations.GET("/:id", r.Alterations.Get)
	alterations.PUT("/:id", r.Alterations.Update)
	alterations.POST("/:id/approve", r.Alterations.Approve)
	alterations.POST("/:id/reject", r.Alterations.Reject)

	leaves := api.Group("/leave-requests")
	leaves.GET("", r.LeaveRequests.Search)
	leaves.GET("/:id", r.LeaveRequests.Get)
	leaves.GET("/:id/alteration-statuses", r.Alterations.Statuses)
	leaves.GET("/:id/alterations/export",
		supervisors,
		middleware.Audit(r.Audit, r.Logger, models.AuditActionRosterExport, "leave_request"),
		r.Alterations.Export,
	)

	notifications := api.Group("/notifications")
	notifications.GET("", r.Notifications.List)
	notifications.POST("/:id/read", r.Notifications.MarkRead)
}
