package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LordArcquedor/Evnt/config"
	"github.com/LordArcquedor/Evnt/db"
	"github.com/LordArcquedor/Evnt/internal/auth/crypto"
	"github.com/LordArcquedor/Evnt/internal/auth/domain"
	"github.com/LordArcquedor/Evnt/internal/auth/handler"
	"github.com/LordArcquedor/Evnt/internal/auth/repository/memory"
	"github.com/LordArcquedor/Evnt/internal/auth/repository/postgres"
	"github.com/LordArcquedor/Evnt/internal/auth/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var userRepo domain.UserRepository
	if cfg.DBURL != "" {
		if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}

		pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
		if err != nil {
			log.Error("database init failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		userRepo = postgres.NewPostgresRepository(pool)
	} else {
		log.Warn("DB_URL not set, using in-memory store")
		userRepo = memory.NewMemoryRepository()
	}

	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.AccessExpiryMin)
	authService := service.NewAuthService(userRepo, crypto.NewBcryptHasher(), tokenService)
	authHandler := handler.NewAuthHandler(authService, tokenService)

	app := fiber.New()
	app.Use(logger.New())
	handler.RegisterRoutes(app, authHandler)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("starting auth service", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
