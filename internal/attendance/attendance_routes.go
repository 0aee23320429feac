package attendance

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
	att := r.Group("/attendance")
	att.Use(middleware.AuthMiddleware())
	{
		att.POST("/clock-in", handler.ClockIn)
		att.POST("/clock-out", handler.ClockOut)
		att.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.ListForDate)
		att.PUT("/correct", middleware.RBACAuthorize(rbacService, "attendance", "manage"), handler.AdminCorrect)
		att.GET("/summary", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.Summary)
	}
}
