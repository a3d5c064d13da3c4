// Package main provides the entry point for the TeamLogger backend.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sahildeshmukh45/tl/internal/auth"
	"github.com/sahildeshmukh45/tl/internal/capture"
	"github.com/sahildeshmukh45/tl/internal/config"
	"github.com/sahildeshmukh45/tl/internal/dashboard"
	"github.com/sahildeshmukh45/tl/internal/db"
	"github.com/sahildeshmukh45/tl/internal/handler"
	"github.com/sahildeshmukh45/tl/internal/logger"
	"github.com/sahildeshmukh45/tl/internal/mail"
	"github.com/sahildeshmukh45/tl/internal/repos"
	"github.com/sahildeshmukh45/tl/internal/screen"
	"github.com/sahildeshmukh45/tl/internal/storage"
	"github.com/sahildeshmukh45/tl/internal/tracking"
	"github.com/sahildeshmukh45/tl/internal/user"
)

// Run is the testable entrypoint for the application.
func Run(ctx context.Context) error {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	log.Info("Starting TeamLogger backend")

	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close(gdb)

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(gdb); err != nil {
			log.Error("migration failed", zap.Error(err))
			return err
		}
	}

	usersRepo := repos.NewUsersRepo(gdb)
	entriesRepo := repos.NewTimeEntriesRepo(gdb)
	projectsRepo := repos.NewProjectsRepo(gdb)
	tasksRepo := repos.NewTasksRepo(gdb)
	shotsRepo := repos.NewScreenshotsRepo(gdb)

	uploader, err := storage.NewCloudinary(cfg.CloudinaryURL, cfg.ScreenshotFolder)
	if err != nil {
		log.Error("cloudinary setup failed", zap.Error(err))
		return err
	}

	mailer := mail.New(log, cfg)
	captureSvc := capture.New(log, cfg, screen.New(cfg.ScreenshotQuality), uploader, shotsRepo)
	trackingSvc := tracking.New(log, entriesRepo, usersRepo, projectsRepo, tasksRepo, captureSvc, mailer)
	userSvc := user.New(log, usersRepo, mailer)
	dashboardSvc := dashboard.New(usersRepo, entriesRepo, projectsRepo, tasksRepo, shotsRepo)
	tokens := auth.NewTokenProvider(cfg.JWTSecret, cfg.JWTExpiry)

	h := handler.New(log, validator.New(), trackingSvc, captureSvc, userSvc, dashboardSvc,
		projectsRepo, tasksRepo, tokens)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	captureSvc.Shutdown()
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := Run(ctx); err != nil {
		os.Exit(1)
	}
}
