package audit

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
	audits := r.Group("/audits")
	audits.Use(middleware.AuthMiddleware())
	{
		audits.GET("/me", handler.ListMine)
		audits.GET("", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.List)
		audits.GET("/users/:id", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.ListForUser)
		audits.DELETE("/:id", middleware.RBACAuthorize(rbacService, "audit", "manage"), handler.Delete)
	}
}
