package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-hub/internal/audit"
	"github.com/BruksfildServices01/barber-hub/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-hub/internal/db"
	"github.com/BruksfildServices01/barber-hub/internal/infra/cache"
	"github.com/BruksfildServices01/barber-hub/internal/infra/repository"
	"github.com/BruksfildServices01/barber-hub/internal/infra/storage"
	"github.com/BruksfildServices01/barber-hub/internal/jobs"
	"github.com/BruksfildServices01/barber-hub/internal/logger"
	"github.com/BruksfildServices01/barber-hub/internal/metrics"
	"github.com/BruksfildServices01/barber-hub/internal/routes"
	"github.com/BruksfildServices01/barber-hub/internal/timezone"
	"github.com/BruksfildServices01/barber-hub/internal/usecase/auth"
	"github.com/BruksfildServices01/barber-hub/internal/validators"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level: cfg.LogLevel,
		JSON:  cfg.IsProduction(),
		File:  cfg.LogFile,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	timezone.DefaultTimezone = cfg.DefaultTimezone
	if err := validators.Register(); err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			log.Warn("close database", "error", err)
		}
	}()

	if err := dbpkg.Migrate(db, cfg.DefaultTimezone); err != nil {
		return err
	}

	// ======================================================
	// Optional infrastructure
	// ======================================================

	ctx := context.Background()
	m := metrics.New()
	redisClient := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	deps := routes.Deps{
		DB:          db,
		Config:      cfg,
		Logger:      log,
		AuditLog:    audit.New(db),
		TenantCache: cache.NewTenantCache(redisClient),
		Mailer:      auth.LogMailer{Logger: log},
		Metrics:     m,
	}

	// a nil *S3Store must not reach the handler as a non-nil interface
	if s3 := storage.NewS3Store(cfg); s3 != nil {
		deps.Store = s3
		log.Info("logo storage enabled", "bucket", cfg.S3Bucket)
	}

	dispatcher := audit.NewDispatcher(deps.AuditLog, audit.WithDropHook(m.AuditDropped))
	deps.Audit = dispatcher

	scheduler, err := jobs.New(jobs.Options{
		Tokens:         repository.NewAccountGormRepository(db),
		Audit:          deps.AuditLog,
		AuditRetention: cfg.AuditRetention,
		Location:       timezone.Location(cfg.DefaultTimezone),
		Observer:       m,
		Logger:         log,
	})
	if err != nil {
		return err
	}
	scheduler.Start()

	// ======================================================
	// HTTP
	// ======================================================

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	if err := scheduler.Stop(); err != nil {
		log.Warn("stop jobs", "error", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("drain audit queue", "error", err)
	}
	if err := cache.CloseClient(redisClient); err != nil {
		log.Warn("close redis", "error", err)
	}

	log.Info("server stopped")
	return nil
}
