package telegram

import (
	"context"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/andikarh/parlaybot/internal/infrastructure/statefile"
	"github.com/andikarh/parlaybot/internal/platform/logging"
	"github.com/andikarh/parlaybot/internal/usecase"
)

type Services struct {
	Discovery   *usecase.DiscoveryService
	Predictions *usecase.PredictionService
	Sessions    *usecase.SessionService
	Cache       *statefile.CacheStore
}

type Config struct {
	WebhookURL string
	ListenAddr string
}

// Bot receives commands and callbacks and drives the prediction workflow.
// Nothing a handler does is ever fatal to the process; failures end the
// single command with a short status text.
type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      Config
	svc      Services
	location *time.Location
	logger   *logging.Logger
	tracer   trace.Tracer
	timeNow  func() time.Time
}

func NewBot(api *tgbotapi.BotAPI, cfg Config, svc Services, location *time.Location, logger *logging.Logger) *Bot {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Bot{
		api:      api,
		cfg:      cfg,
		svc:      svc,
		location: location,
		logger:   logger,
		tracer:   otel.Tracer("parlaybot/internal/interfaces/telegram"),
		timeNow:  time.Now,
	}
}

// Run consumes updates until the context ends. With a webhook URL
// configured the bot registers it and serves the callback endpoint;
// otherwise it falls back to long polling.
func (b *Bot) Run(ctx context.Context) error {
	updates, shutdown, err := b.updateSource(ctx)
	if err != nil {
		return err
	}
	defer shutdown()

	b.logger.Info("bot ready", "username", b.api.Self.UserName, "webhook", b.cfg.WebhookURL != "")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) updateSource(ctx context.Context) (tgbotapi.UpdatesChannel, func(), error) {
	if b.cfg.WebhookURL == "" {
		updateConfig := tgbotapi.NewUpdate(0)
		updateConfig.Timeout = 30
		return b.api.GetUpdatesChan(updateConfig), b.api.StopReceivingUpdates, nil
	}

	path := "/" + b.api.Token
	webhook, err := tgbotapi.NewWebhook(b.cfg.WebhookURL + path)
	if err != nil {
		return nil, nil, err
	}
	if _, err := b.api.Request(webhook); err != nil {
		return nil, nil, err
	}

	updates := b.api.ListenForWebhook(path)

	server := &http.Server{
		Addr:              b.cfg.ListenAddr,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			b.logger.Error("webhook server stopped", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	return updates, func() {}, nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		ctx, span := b.tracer.Start(ctx, "telegram.message")
		b.handleMessage(ctx, update.Message)
		span.End()
	case update.CallbackQuery != nil:
		ctx, span := b.tracer.Start(ctx, "telegram.callback")
		b.handleCallback(ctx, update.CallbackQuery)
		span.End()
	}
}
