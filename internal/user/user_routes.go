package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", handler.Me)
		users.PATCH("/me/password", handler.ChangePassword)

		users.GET("", middleware.RBACAuthorize(rbacService, "user", "read"), handler.GetAll)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, "user", "read"), handler.GetByID)
		users.POST("", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.Create)
		users.PUT("/:id", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.Update)
		users.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.UpdateStatus)
		users.POST("/:id/roles", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.AssignRole)
		users.POST("/:id/password-reset", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.ForceResetPassword)
		users.DELETE("/:id", middleware.RBACAuthorize(rbacService, "user", "manage"), handler.Delete)
	}
}
