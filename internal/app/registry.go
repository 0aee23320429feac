package app

import (
	"github.com/sohada-a2it/A2itHRMServer/internal/attendance"
	"github.com/sohada-a2it/A2itHRMServer/internal/audit"
	"github.com/sohada-a2it/A2itHRMServer/internal/auth"
	"github.com/sohada-a2it/A2itHRMServer/internal/holiday"
	"github.com/sohada-a2it/A2itHRMServer/internal/leave"
	"github.com/sohada-a2it/A2itHRMServer/internal/messaging/kafka"
	"github.com/sohada-a2it/A2itHRMServer/internal/payroll"
	"github.com/sohada-a2it/A2itHRMServer/internal/rbac"
	"github.com/sohada-a2it/A2itHRMServer/internal/rbac/infra"
	"github.com/sohada-a2it/A2itHRMServer/internal/salaryrule"
	"github.com/sohada-a2it/A2itHRMServer/internal/schedule"
	"github.com/sohada-a2it/A2itHRMServer/internal/session"
	"github.com/sohada-a2it/A2itHRMServer/internal/shared/counter"
	"github.com/sohada-a2it/A2itHRMServer/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	sessionRepo := session.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	salaryRuleRepo := salaryrule.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	userService := user.NewService(userRepo, rbacRepo, counterRepo)
	sessionService := session.NewService(sessionRepo)
	authService := auth.NewService(userRepo, rbacService, sessionService)
	holidayService := holiday.NewService(holidayRepo)
	scheduleService := schedule.NewService(scheduleRepo)
	attendanceService := attendance.NewService(attendanceRepo)
	payrollService := payroll.NewService(payrollRepo)
	salaryRuleService := salaryrule.NewService(salaryRuleRepo)
	auditService := audit.NewService(auditRepo)

	reconciler := attendance.NewReconciler(attendanceRepo)
	leaveService := leave.NewService(
		gormDB,
		leaveRepo,
		reconciler,
		payrollService,
		holidayService,
		scheduleService,
		outboxRepo,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	sessionHandler := session.NewHandler(sessionService)
	holidayHandler := holiday.NewHandler(holidayService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	leaveHandler := leave.NewHandler(leaveService)
	salaryRuleHandler := salaryrule.NewHandler(salaryRuleService)
	auditHandler := audit.NewHandler(auditService)
	rbacHandler := rbac.NewHandler(rbacService, rbacRepo)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService)
		session.RegisterRoutes(api, sessionHandler, rbacService)
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		schedule.RegisterRoutes(api, scheduleHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		salaryrule.RegisterRoutes(api, salaryRuleHandler, rbacService)
		audit.RegisterRoutes(api, auditHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
