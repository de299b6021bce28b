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
	"go.uber.org/zap"

	_ "github.com/noah-isme/leave-alteration-api/api/swagger"
	"github.com/noah-isme/leave-alteration-api/internal/handler"
	internalmiddleware "github.com/noah-isme/leave-alteration-api/internal/middleware"
	"github.com/noah-isme/leave-alteration-api/internal/repository"
	"github.com/noah-isme/leave-alteration-api/internal/scheduler"
	"github.com/noah-isme/leave-alteration-api/internal/service"
	"github.com/noah-isme/leave-alteration-api/pkg/cache"
	"github.com/noah-isme/leave-alteration-api/pkg/config"
	"github.com/noah-isme/leave-alteration-api/pkg/database"
	"github.com/noah-isme/leave-alteration-api/pkg/export"
	"github.com/noah-isme/leave-alteration-api/pkg/jobs"
	"github.com/noah-isme/leave-alteration-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/leave-alteration-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/leave-alteration-api/pkg/middleware/requestid"
)

// @title Leave Alteration API
// @version 1.0.0
// @description Class alteration lifecycle for faculty leave requests.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type notificationDispatcher interface {
	Enqueue(job jobs.Job) error
}

type notificationPublisher interface {
	Publish(ctx context.Context, channel string, value interface{}) error
}

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Fatal("failed to connect redis", zap.Error(err))
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Alterations.StatusCacheTTL, logr, redisClient != nil)
	validate := validator.New()

	alterationRepo := repository.NewAlterationRepository(db)
	leaveRepo := repository.NewLeaveRequestRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	var publisher notificationPublisher
	if redisClient != nil {
		publisher = cacheRepo
	}
	deliveryWorker := service.NewNotificationDeliveryWorker(publisher, cfg.Notifications.Channel, metricsSvc, logr)

	var dispatcher notificationDispatcher
	var queue *jobs.Queue
	if cfg.Notifications.Enabled {
		queue = jobs.NewQueue("notifications", deliveryWorker.Handle, jobs.QueueConfig{
			Workers:     cfg.Notifications.Workers,
			BufferSize:  cfg.Notifications.BufferSize,
			MaxRetries:  cfg.Notifications.MaxRetries,
			RetryDelay:  cfg.Notifications.RetryDelay,
			Logger:      logr,
			OnExhausted: deliveryWorker.Exhausted,
		})
		queue.Start(ctx)
		dispatcher = queue
	}
	notificationSvc := service.NewNotificationService(notificationRepo, dispatcher, deliveryWorker, logr)

	alterationSvc := service.NewAlterationService(alterationRepo, leaveRepo, employeeRepo, notificationSvc, validate, logr,
		service.WithAlterationStatusCache(cacheSvc, cfg.Alterations.StatusCacheTTL),
		service.WithAlterationMetrics(metricsSvc),
		service.WithAlterationAudit(auditRepo),
	)
	leaveSvc := service.NewLeaveRequestService(leaveRepo, validate, logr)
	rosterSvc := service.NewRosterExportService(leaveRepo, alterationRepo, export.NewCSVExporter(), export.NewPDFExporter(), logr)
	reminderSvc := service.NewReminderService(alterationRepo, notificationSvc, cfg.Alterations.ReminderLookaheadDays, logr)
	tokenSvc := service.NewTokenService(service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})

	sched := scheduler.New(logr)
	if err := sched.RegisterReminders(cfg.Alterations.ReminderSchedule, reminderSvc); err != nil {
		logr.Fatal("invalid reminder schedule", zap.String("schedule", cfg.Alterations.ReminderSchedule), zap.Error(err))
	}
	sched.Start()

	checks := map[string]handler.ReadinessCheck{"database": db.PingContext}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Routes{
		Alterations:   handler.NewAlterationHandler(alterationSvc, rosterSvc),
		LeaveRequests: handler.NewLeaveRequestHandler(leaveSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Tokens:        tokenSvc,
		Audit:         auditRepo,
		Logger:        logr,
	}.Register(r.Group(cfg.APIPrefix))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("http shutdown", zap.Error(err))
	}
	sched.Stop()
	if queue != nil {
		logr.Info("stopping queue", zap.String("queue", queue.Name()), zap.Int("pending", queue.Len()))
		queue.Stop()
	}
}
