package salaryrule

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
	rules := r.Group("/salary-rules")
	rules.Use(middleware.AuthMiddleware())
	{
		rules.GET("", middleware.RBACAuthorize(rbacService, "salary_rule", "read"), handler.GetAll)
		rules.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_rule", "read"), handler.GetByID)
		rules.POST("", middleware.RBACAuthorize(rbacService, "salary_rule", "manage"), handler.Create)
		rules.PUT("/:id", middleware.RBACAuthorize(rbacService, "salary_rule", "manage"), handler.Update)
		rules.DELETE("/:id", middleware.RBACAuthorize(rbacService, "salary_rule", "manage"), handler.Delete)
	}
}
