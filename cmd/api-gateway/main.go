package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/afterschool-api/api/swagger"
	"github.com/noah-isme/afterschool-api/internal/handler"
	"github.com/noah-isme/afterschool-api/internal/repository"
	"github.com/noah-isme/afterschool-api/internal/router"
	"github.com/noah-isme/afterschool-api/internal/service"
	"github.com/noah-isme/afterschool-api/pkg/cache"
	"github.com/noah-isme/afterschool-api/pkg/config"
	"github.com/noah-isme/afterschool-api/pkg/database"
	"github.com/noah-isme/afterschool-api/pkg/logger"
	"github.com/noah-isme/afterschool-api/pkg/validation"
)

// @title Afterschool API
// @version 1.0.0
// @description Course catalogue, enrollment, attendance, notices and surveys for after-school programs
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, sessions and login throttling disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifications := service.NewNotificationService(service.NewLogSender(logr), service.NotificationConfig{
		Workers:    cfg.Notifications.Workers,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
	}, logr)
	notifications.Start(ctx)
	defer notifications.Stop()

	metrics := service.NewMetricsService()
	handlers, auth := buildHandlers(cfg, logr, db, redisClient, notifications, metrics)
	engine := router.Setup(cfg, logr, auth, metrics, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
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
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildHandlers(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, redisClient *redis.Client, notifications *service.NotificationService, metrics *service.MetricsService) (router.Handlers, *service.AuthService) {
	validate := validation.New()

	users := repository.NewUserRepository(db)
	courses := repository.NewCourseRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	notices := repository.NewNoticeRepository(db)
	surveys := repository.NewSurveyRepository(db)
	audit := repository.NewAuditRepository(db)
	sessions := repository.NewSessionRepository(redisClient)

	auth := service.NewAuthService(users, sessions, audit, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		MaxLoginAttempts:  cfg.Auth.MaxLoginAttempts,
		LoginWindow:       cfg.Auth.LoginWindow,
	})
	student := service.NewStudentService(courses, enrollments, attendance, metrics, logr, service.StudentConfig{
		MinAttendanceRate: cfg.Enrollment.MinAttendanceRate,
	})
	teacher := service.NewTeacherService(courses, enrollments, validate, logr)
	attendanceSvc := service.NewAttendanceService(courses, enrollments, attendance, audit, validate, logr)
	noticeSvc := service.NewNoticeService(notices, courses, notifications, audit, validate, logr)
	surveySvc := service.NewSurveyService(surveys, courses, enrollments, notifications, audit, validate, logr)
	admin := service.NewAdminService(users, courses, enrollments, notifications, metrics, audit, validate, logr)

	checks := map[string]handler.ReadinessCheck{
		"database": db.PingContext,
	}
	if sessions.Enabled() {
		checks["redis"] = sessions.Ping
	}

	return router.Handlers{
		Auth:    handler.NewAuthHandler(auth),
		Student: handler.NewStudentHandler(student, surveySvc),
		Teacher: handler.NewTeacherHandler(teacher, attendanceSvc, noticeSvc, surveySvc),
		Admin:   handler.NewAdminHandler(admin, noticeSvc, surveySvc),
		Metrics: handler.NewMetricsHandler(metrics, checks),
	}, auth
}
