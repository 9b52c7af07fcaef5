package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"campus-auth/internal/config"
	"campus-auth/internal/crypto"
	"campus-auth/internal/database"
	"campus-auth/internal/handler"
	"campus-auth/internal/middleware"
	"campus-auth/internal/repository"
	"campus-auth/internal/router"
	"campus-auth/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Pool)
	slog.Info("database ready")

	cleanup := []func(){db.Close}

	var registry service.RefreshTokenRegistry
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		registry = repository.NewRedisRefreshRegistry(client, "campus-auth", cfg.RefreshTTL)
		cleanup = append(cleanup, func() { _ = client.Close() })
		slog.Info("refresh registry backed by redis", "addr", cfg.RedisAddr)
	} else {
		registry = repository.NewMemoryRefreshRegistry()
		slog.Warn("refresh registry is in-memory; a restart revokes all sessions")
	}

	hasher := crypto.NewBcryptHasher()
	tokenService := service.NewTokenService(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	authService := service.NewAuthService(userRepo, hasher, tokenService, registry, cfg.StrictFingerprint)
	registrationService := service.NewRegistrationService(userRepo, hasher)
	userService := service.NewUserService(userRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	appRouter := router.New(cfg.CORSOrigins, authMiddleware, router.Handlers{
		Auth: handler.NewAuthHandler(registrationService, authService),
		User: handler.NewUserHandler(userService),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server:       server,
		db:           db,
		cleanupFuncs: cleanup,
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
