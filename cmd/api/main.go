package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deepakMaj/Task-Manager-API/internal/api"
	"github.com/deepakMaj/Task-Manager-API/internal/api/handlers"
	"github.com/deepakMaj/Task-Manager-API/internal/auth"
	"github.com/deepakMaj/Task-Manager-API/internal/config"
	"github.com/deepakMaj/Task-Manager-API/internal/db"
	"github.com/deepakMaj/Task-Manager-API/internal/email"
	"github.com/deepakMaj/Task-Manager-API/internal/logger"
	"github.com/deepakMaj/Task-Manager-API/internal/metrics"
	"github.com/deepakMaj/Task-Manager-API/internal/middleware"
	"github.com/deepakMaj/Task-Manager-API/internal/repository/postgres"
	"github.com/deepakMaj/Task-Manager-API/internal/services"
	"github.com/deepakMaj/Task-Manager-API/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTSecret)
	mailer := email.NewClient(cfg.SendgridAPIKey, cfg.EmailFrom)

	userSvc := services.NewUserService(repos.Users, repos.Tasks, tm, mailer, wp)
	taskSvc := services.NewTaskService(repos.Tasks)

	am := middleware.NewAuthMiddleware(tm, repos.Users)
	r := api.NewRouter(cfg, am,
		handlers.NewUsersHandler(userSvc),
		handlers.NewTasksHandler(taskSvc),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
