package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/audit"
	"github.com/BruksfildServices01/barber-hub/internal/config"
	"github.com/BruksfildServices01/barber-hub/internal/domain/tenant"
	"github.com/BruksfildServices01/barber-hub/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-hub/internal/infra/repository"
	"github.com/BruksfildServices01/barber-hub/internal/infra/storage"
	"github.com/BruksfildServices01/barber-hub/internal/metrics"
	"github.com/BruksfildServices01/barber-hub/internal/middleware"
	ucAttendance "github.com/BruksfildServices01/barber-hub/internal/usecase/attendance"
	ucAuth "github.com/BruksfildServices01/barber-hub/internal/usecase/auth"
	ucSchedule "github.com/BruksfildServices01/barber-hub/internal/usecase/schedule"
	ucTenant "github.com/BruksfildServices01/barber-hub/internal/usecase/tenant"
)

// Deps carries the long-lived infrastructure built in main. Optional
// pieces (TenantCache, Store, Metrics) may be nil.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Logger *slog.Logger

	Audit    audit.Recorder
	AuditLog *audit.Logger

	TenantCache tenant.Cache
	Store       storage.ObjectStore
	Mailer      ucAuth.Mailer
	Metrics     *metrics.Metrics
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Mailer == nil {
		d.Mailer = ucAuth.LogMailer{Logger: d.Logger}
	}
	if d.AuditLog == nil {
		d.AuditLog = audit.New(d.DB)
	}
	if d.Audit == nil {
		d.Audit = audit.NewDispatcher(d.AuditLog)
	}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Logger))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)
	barbershopRepo := infraRepo.NewBarbershopGormRepository(d.DB)
	barberRepo := infraRepo.NewBarberGormRepository(d.DB)
	attendanceRepo := infraRepo.NewAttendanceGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)

	tokens := ucAuth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)

	resolver := ucTenant.NewResolver(barbershopRepo, d.TenantCache, cfg.TenantCacheTTL)
	if d.Metrics != nil {
		resolver.SetObserver(d.Metrics)
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	registerUC := ucAuth.NewRegister(accountRepo, tokens, cfg.CheckEmailDomain)
	loginUC := ucAuth.NewLogin(accountRepo, tokens)
	forgotUC := ucAuth.NewForgotPassword(accountRepo, d.Mailer, cfg.ResetTokenTTL, cfg.ResetURLBase)
	checkResetUC := ucAuth.NewCheckResetToken(accountRepo)
	resetUC := ucAuth.NewResetPassword(accountRepo, d.Audit)

	boardUC := ucAttendance.NewGetBoard(attendanceRepo, barbershopRepo)
	markUC := ucAttendance.NewMarkAttendance(attendanceRepo, barbershopRepo, d.Audit)
	addTimeOffUC := ucAttendance.NewAddTimeOff(attendanceRepo, d.Audit)
	removeTimeOffUC := ucAttendance.NewRemoveTimeOff(attendanceRepo, d.Audit)
	listTimeOffUC := ucAttendance.NewListTimeOff(attendanceRepo, barbershopRepo)

	getSchedulesUC := ucSchedule.NewGetSchedules(scheduleRepo, barberRepo)
	saveScheduleUC := ucSchedule.NewSaveSchedule(scheduleRepo, barberRepo, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, forgotUC, checkResetUC, resetUC)
	meHandler := handlers.NewMeHandler(accountRepo, barbershopRepo)
	barbershopHandler := handlers.NewBarbershopHandler(barbershopRepo, resolver, d.Store, d.Audit)
	barberHandler := handlers.NewBarberHandler(barberRepo, d.Audit)
	attendanceHandler := handlers.NewAttendanceHandler(boardUC, markUC, addTimeOffUC, removeTimeOffUC, listTimeOffUC)
	scheduleHandler := handlers.NewScheduleHandler(getSchedulesUC, saveScheduleUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog)
	publicHandler := handlers.NewPublicHandler(resolver, barberRepo)

	r.GET("/health", healthHandler.Check)
	if d.Metrics != nil && cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public/barbershops")
		{
			publicAPI.GET("", publicHandler.ListBarbershops)
			publicAPI.GET("/:slug", publicHandler.GetBarbershop)
			publicAPI.GET("/:slug/theme", publicHandler.Theme)
			publicAPI.GET("/:slug/theme.css", publicHandler.ThemeCSS)
			publicAPI.GET("/:slug/barbers", publicHandler.ListBarbers)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/login", authHandler.Login)
			authAPI.POST("/forgot-password", authHandler.ForgotPassword)
			authAPI.GET("/reset-password/:token", authHandler.CheckResetToken)
			authAPI.POST("/reset-password", authHandler.ResetPassword)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(
			middleware.AuthMiddleware(tokens),
			middleware.RequireBarbershopAdmin(accountRepo),
		)
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/barbershop", barbershopHandler.UpdateMeBarbershop)
			secured.PUT("/barbershop/logo", barbershopHandler.UploadLogo)

			secured.GET("/barbers", barberHandler.List)
			secured.POST("/barbers", barberHandler.Create)
			secured.PATCH("/barbers/:id", barberHandler.Update)

			// ------------------------------
			// ATTENDANCE
			// ------------------------------
			secured.GET("/attendance", attendanceHandler.Board)
			secured.PUT("/attendance/:barberId", attendanceHandler.Mark)

			secured.GET("/time-off", attendanceHandler.ListTimeOff)
			secured.POST("/time-off", attendanceHandler.CreateTimeOff)
			secured.DELETE("/time-off/:id", attendanceHandler.DeleteTimeOff)

			secured.GET("/schedules", scheduleHandler.List)
			secured.PUT("/schedules/:barberId", scheduleHandler.Save)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
