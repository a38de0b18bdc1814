package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/gihansgamage/sms-api/api/swagger"
	"github.com/gihansgamage/sms-api/internal/handler"
	"github.com/gihansgamage/sms-api/internal/middleware"
	"github.com/gihansgamage/sms-api/internal/models"
	"github.com/gihansgamage/sms-api/internal/repository"
	"github.com/gihansgamage/sms-api/internal/service"
	"github.com/gihansgamage/sms-api/pkg/cache"
	"github.com/gihansgamage/sms-api/pkg/config"
	"github.com/gihansgamage/sms-api/pkg/database"
	"github.com/gihansgamage/sms-api/pkg/jobs"
	"github.com/gihansgamage/sms-api/pkg/logger"
	"github.com/gihansgamage/sms-api/pkg/mailer"
	corsmiddleware "github.com/gihansgamage/sms-api/pkg/middleware/cors"
	reqidmiddleware "github.com/gihansgamage/sms-api/pkg/middleware/requestid"
)

// @title Society Management System API
// @version 1.0.0
// @description Approval workflow service for university society registrations, renewals and event permissions
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repositories.
	adminRepo := repository.NewAdminRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	renewalRepo := repository.NewRenewalRepository(db)
	eventRepo := repository.NewEventRepository(db)
	societyRepo := repository.NewSocietyRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	// Outbound email runs on a background worker pool so submissions never
	// block on SMTP.
	smtpMailer := mailer.New(cfg.SMTP, logr)
	emailQueue := jobs.NewQueue("email", service.EmailJobHandler(smtpMailer), jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	})
	defer emailQueue.Stop()

	validate := validator.New()
	metrics := service.NewMetricsService()

	// Services. A disabled notification config drops emails silently.
	notifications := service.NewNotificationService(nil, adminRepo, logr)
	if cfg.Notifications.Enabled {
		emailQueue.Start(ctx)
		notifications = service.NewNotificationService(emailQueue, adminRepo, logr)
	}
	notifications.WithMetrics(metrics)
	authService := service.NewAuthService(adminRepo, activityRepo, validate, logr, cfg.JWT)
	adminService := service.NewAdminService(adminRepo, activityRepo, activityRepo, notifications, validate, logr)
	registrationService := service.NewRegistrationService(registrationRepo, notifications, activityRepo, validate, logr)
	renewalService := service.NewRenewalService(renewalRepo, societyRepo, notifications, activityRepo, validate, logr)
	eventService := service.NewEventService(eventRepo, societyRepo, notifications, activityRepo, validate, logr)
	approvalService := service.NewApprovalService(registrationRepo, renewalRepo, eventRepo, notifications, activityRepo, logr)
	societyService := service.NewSocietyService(societyRepo, cacheRepo, cfg.Societies, logr).WithMetrics(metrics)
	pdfService := service.NewPDFService(registrationRepo, renewalRepo, eventRepo, nil, logr)
	exportService := service.NewExportService(societyRepo, activityRepo, nil, nil, logr).
		WithRequestSources(registrationRepo, renewalRepo, eventRepo)

	// Handlers.
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	registrationHandler := handler.NewRegistrationHandler(registrationService, metrics)
	renewalHandler := handler.NewRenewalHandler(renewalService, metrics)
	eventHandler := handler.NewEventHandler(eventService, metrics)
	approvalHandler := handler.NewApprovalHandler(approvalService, metrics)
	societyHandler := handler.NewSocietyHandler(societyService)
	documentHandler := handler.NewDocumentHandler(pdfService)
	exportHandler := handler.NewExportHandler(exportService)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// Public routes: students submit and track applications without accounts.
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	api.POST("/registrations", registrationHandler.Submit)
	api.GET("/registrations/:id", registrationHandler.Get)
	api.GET("/registrations/:id/document", documentHandler.Registration)
	api.POST("/registrations/preview-document", documentHandler.RegistrationPreview)

	api.POST("/renewals", renewalHandler.Submit)
	api.GET("/renewals/:id", renewalHandler.Get)
	api.GET("/renewals/:id/document", documentHandler.Renewal)
	api.GET("/renewals/society-data", renewalHandler.SocietyData)

	api.POST("/events", eventHandler.Submit)
	api.GET("/events/:id", eventHandler.Get)
	api.GET("/events/:id/document", documentHandler.Event)
	api.GET("/events/upcoming", eventHandler.Upcoming)
	api.GET("/events/applicant-details", eventHandler.ApplicantDetails)
	api.POST("/events/validate-position", eventHandler.ValidatePosition)

	api.GET("/societies", societyHandler.List)
	api.GET("/societies/:id", societyHandler.Get)
	api.GET("/societies/statistics", societyHandler.Statistics)

	// Authenticated routes.
	authed := api.Group("", middleware.JWT(authService))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)

	authed.GET("/registrations", registrationHandler.List)
	authed.GET("/registrations/statistics", registrationHandler.Statistics)
	authed.GET("/renewals", renewalHandler.List)
	authed.GET("/renewals/statistics", renewalHandler.Statistics)
	authed.GET("/events", eventHandler.List)

	approvals := authed.Group("/approvals", middleware.RequireRoles(middleware.ApproverRoles()...))
	approvals.GET("/pending", approvalHandler.Pending)
	approvals.POST("/registrations/:id/approve", approvalHandler.ApproveRegistration)
	approvals.POST("/registrations/:id/reject", approvalHandler.RejectRegistration)
	approvals.POST("/renewals/:id/approve", approvalHandler.ApproveRenewal)
	approvals.POST("/renewals/:id/reject", approvalHandler.RejectRenewal)
	approvals.POST("/events/:id/approve", approvalHandler.ApproveEvent)
	approvals.POST("/events/:id/reject", approvalHandler.RejectEvent)

	admin := authed.Group("/admin", middleware.RequireRoles(models.RoleStudentService, models.RoleSuperAdmin))
	admin.POST("/accounts", adminHandler.Create)
	admin.GET("/accounts", adminHandler.List)
	admin.GET("/accounts/:id", adminHandler.Get)
	admin.PATCH("/accounts/:id/active", adminHandler.SetActive)
	admin.POST("/bulk-email", adminHandler.BulkEmail)
	admin.GET("/activity-logs", adminHandler.ActivityLogs)
	admin.GET("/metrics", metricsHandler.Snapshot)
	admin.GET("/exports/societies", exportHandler.Societies)
	admin.GET("/exports/activity-logs", exportHandler.ActivityLogs)
	admin.GET("/exports/requests", exportHandler.Requests)
	admin.PATCH("/societies/:id/status", societyHandler.SetStatus)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("graceful shutdown failed", "error", err)
	}
}
