package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fmt"

	"github.com/joho/godotenv"

	httpadapter "wabridge/internal/adapter/http"
	"wabridge/internal/adapter/postgres"
	"wabridge/internal/adapter/push"
	"wabridge/internal/adapter/usecase"
	"wabridge/internal/adapter/whatsapp"
	"wabridge/internal/config"
	"wabridge/internal/core/domain"
	"wabridge/internal/db"
)

// main is the entry point of the wabridge service. It loads configuration,
// optionally runs database migrations, initializes the database pool and
// repositories, then starts the HTTP server. On receiving a termination
// signal it gracefully shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// A missing .env is fine; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	// Optionally run migrations if configured. We use the Psql sub‑config.
	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.SeedDemo {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo data seeded")
		}
	}

	campaignRepo := postgres.NewCampaignRepository(pool)
	quotaRepo := postgres.NewQuotaRepository(pool)
	chatRepo := postgres.NewChatRepository(pool)
	connRepo := postgres.NewConnectionRepository(pool)

	gateway := whatsapp.NewClient(cfg.WhatsApp, logger)
	pusher := push.NewGateway(cfg.Push)
	normalizer := domain.NewPhoneNormalizer(cfg.Campaign.DefaultPrefix)

	campaignSvc := usecase.NewCampaignService(
		campaignRepo, quotaRepo, gateway, normalizer, logger,
		cfg.Campaign.DailyLimit, cfg.Campaign.BatchSize)
	fanout := usecase.NewFanout(connRepo, pusher, logger)
	chatSvc := usecase.NewChatService(chatRepo, fanout, logger)

	auth := httpadapter.NewAuth(cfg.Auth.Secret)
	handler := httpadapter.NewHandler(campaignSvc, chatSvc, auth, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	// The signal context is already cancelled here; the drain window needs
	// its own parent or Shutdown returns at once.
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
