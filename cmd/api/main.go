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

	"go.uber.org/zap"

	"github.com/iamdominic/portfolio-backend/config"
	"github.com/iamdominic/portfolio-backend/internal/api/http/middleware"
	"github.com/iamdominic/portfolio-backend/internal/auth"
	authsvc "github.com/iamdominic/portfolio-backend/internal/auth/service"
	"github.com/iamdominic/portfolio-backend/internal/bootstrap"
	"github.com/iamdominic/portfolio-backend/internal/media"
	"github.com/iamdominic/portfolio-backend/internal/media/sweep"
	"github.com/iamdominic/portfolio-backend/internal/platform/logger"
	projectsvc "github.com/iamdominic/portfolio-backend/internal/projects/service"
)

const serviceName = "portfolio-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	if err := run(cfg, zlog); err != nil {
		zlog.Error("exiting", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
	_ = zlog.Sync()
}

// run owns every resource opened after startup; its defers release them on
// both clean shutdown and startup failure.
func run(cfg *config.Config, zlog *zap.Logger) error {
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.OpenStores(ctx, cfg, zlog)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			zlog.Warn("close stores", zap.Error(err))
		}
	}()

	mediaClient := media.NewClient(stores.Blobs, media.Options{
		Namespace:      cfg.Blob.Namespace,
		MaxUploadBytes: cfg.Blob.MaxUploadBytes,
		MaxWidth:       cfg.Blob.MaxWidth,
	})
	projects := projectsvc.NewProjectService(stores.Projects, mediaClient)
	sessions := authsvc.NewSessionService(stores.Verifier, auth.NewAdminGate(cfg.Admin.Email), stores.Sessions, cfg.Redis.SessionTTL)

	limiter := middleware.NewIPRateLimiter(cfg.Server.AdminRatePerMinute)
	go limiter.Cleanup(ctx)

	if cfg.Sweep.Enabled {
		sweeper := sweep.New(stores.Blobs, stores.Projects, mediaClient.Namespace(), cfg.Sweep.Grace, zlog.Named("sweep"))
		c, err := sweeper.Start(cfg.Sweep.Schedule)
		if err != nil {
			return err
		}
		defer func() { <-c.Stop().Done() }()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  serviceName,
		Version:      cfg.App.Version,
		Logger:       zlog,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Health:       stores.Projects,
		Projects:     projects,
		Media:        mediaClient,
		Sessions:     sessions,
		SessionTTL:   cfg.Redis.SessionTTL,
		SecureCookie: cfg.App.Environment == "production",
		AdminLimiter: limiter,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		zlog.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("server: %w", err)
	default:
		return nil
	}
}
