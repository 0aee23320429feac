package session

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
	sessions := r.Group("/sessions")
	sessions.Use(middleware.AuthMiddleware())
	{
		sessions.GET("/me", handler.ListMine)
		sessions.GET("/users/:id", middleware.RBACAuthorize(rbacService, "session", "manage"), handler.ListForUser)
		sessions.DELETE("/:id", middleware.RBACAuthorize(rbacService, "session", "manage"), handler.Revoke)
		sessions.DELETE("/users/:id", middleware.RBACAuthorize(rbacService, "session", "manage"), handler.RevokeAllForUser)
	}
}
