package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Tomlord1122/todo-api/internal/auth"
	"github.com/Tomlord1122/todo-api/internal/config"
	"github.com/Tomlord1122/todo-api/internal/database"
	"github.com/Tomlord1122/todo-api/internal/repository"
	"github.com/Tomlord1122/todo-api/internal/server"
	"github.com/Tomlord1122/todo-api/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, logger *slog.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The server has 5 seconds to finish the requests it is currently handling.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if dbService != nil {
		if err := dbService.Close(); err != nil {
			logger.Error("closing database connection pool", "error", err)
		} else {
			logger.Info("database connection pool closed")
		}
	}

	logger.Info("server exiting")

	done <- true
}

func newLogger(cfg config.AppConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Env, "prod") || strings.EqualFold(cfg.Env, "production") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	// 1. Database, migrated to the latest schema
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	dbService, err := database.New(startupCtx, cfg.DB)
	cancel()
	if err != nil {
		logger.Error("failed to initialize database", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}
	gormDB := dbService.GetDB()

	// 2. Repositories
	todoRepo := repository.NewGormTodoRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)

	// 3. Identity and services
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	todoService := service.NewTodoService(todoRepo)
	authService := service.NewAuthService(userRepo, issuer, 0)

	// 4. HTTP server
	apiServer := server.NewServer(cfg, server.Dependencies{
		DB:          dbService,
		Identity:    auth.NewProvider(issuer),
		TodoService: todoService,
		AuthService: authService,
		Logger:      logger,
	})

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, logger, done)

	logger.Info("starting server", "addr", apiServer.Addr, "env", cfg.App.Env)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server error", "error", err)
		os.Exit(1)
	}

	<-done
	logger.Info("graceful shutdown complete")
}
