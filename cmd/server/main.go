// Command promisetrack-server starts the promise tracker HTTP API.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/m-ovsyannikov/promisetrack/internal/auth"
	"github.com/m-ovsyannikov/promisetrack/internal/migrate"
	"github.com/m-ovsyannikov/promisetrack/internal/repository/postgres"
	"github.com/m-ovsyannikov/promisetrack/internal/server/httpapi"
	"github.com/m-ovsyannikov/promisetrack/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// envOr returns the environment value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// main parses configuration, runs migrations, and starts the HTTP server.
func main() {
	// Flags, with environment fallbacks for the secrets.
	addr := flag.String("addr", envOr("ADDR", ":8080"), "listen address")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL DSN")
	botToken := flag.String("bot-token", os.Getenv("TELEGRAM_BOT_TOKEN"), "Telegram bot token (required)")
	tokenTTL := flag.Duration("token-ttl", 30*24*time.Hour, "bearer token TTL")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", *addr),
	)

	if *botToken == "" {
		logger.Fatal("missing bot token (--bot-token or TELEGRAM_BOT_TOKEN)")
	}
	if *dsn == "" {
		logger.Fatal("missing PostgreSQL DSN (--dsn or DATABASE_URL)")
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, *dsn); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	db, err := postgres.New(ctx, *dsn)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	promiseRepo := postgres.NewPromiseRepo(db)
	feedRepo := postgres.NewFeedRepo(db)

	// Services
	codec := auth.NewCodec([]byte(*botToken), *tokenTTL)
	authSvc := service.NewAuthService(userRepo, codec, *botToken)
	promiseSvc := service.NewPromiseService(promiseRepo)
	feedSvc := service.NewFeedService(feedRepo)

	// HTTP server
	api := httpapi.New(authSvc, promiseSvc, feedSvc)
	srv := &http.Server{
		Addr:         *addr,
		Handler:      api.Router(logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
