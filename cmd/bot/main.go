package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/andikarh/parlaybot/internal/app"
	"github.com/andikarh/parlaybot/internal/config"
	"github.com/andikarh/parlaybot/internal/observability"
	"github.com/andikarh/parlaybot/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	edgeLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logging.SlogLevel(cfg.LogLevel),
	}))

	logger := logging.NewJSON(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	shutdownTracing := observability.InitTracing("parlaybot", edgeLogger)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			edgeLogger.Error("stop tracer provider", "error", err)
		}
	}()

	bot, err := app.NewBot(cfg, logger)
	if err != nil {
		edgeLogger.Error("build bot", "error", err)
		os.Exit(1)
	}

	healthSrv := observability.StartHealthServer(cfg.HealthEnabled, cfg.HealthAddr, edgeLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	edgeLogger.Info("bot starting", "timezone", cfg.Timezone, "webhook", cfg.WebhookURL != "")
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		edgeLogger.Error("bot stopped", "error", err)
		_ = observability.StopHealthServer(healthSrv, edgeLogger)
		os.Exit(1)
	}

	if err := observability.StopHealthServer(healthSrv, edgeLogger); err != nil {
		edgeLogger.Error("stop health server", "error", err)
	}

	edgeLogger.Info("bot stopped")
}
