package schedule

import (
	"github.com/sohada-a2it/A2itHRMServer/internal/middleware"
	"github.com/sohada-a2it/A2itHRMServer/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	sched := r.Group("/schedule")
	sched.Use(middleware.AuthMiddleware())
	{
		sched.GET("/weekly-off", middleware.RBACAuthorize(rbacService, "schedule", "read"), handler.GetWeeklyOff)
		sched.PUT("/weekly-off", middleware.RBACAuthorize(rbacService, "schedule", "manage"), handler.UpdateWeeklyOff)
		sched.PUT("/override", middleware.RBACAuthorize(rbacService, "schedule", "manage"), handler.UpsertOverride)
	}
}
