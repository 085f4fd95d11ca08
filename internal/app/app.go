package app

import (
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/andikarh/parlaybot/external/apifootball"
	"github.com/andikarh/parlaybot/internal/config"
	"github.com/andikarh/parlaybot/internal/infrastructure/statefile"
	"github.com/andikarh/parlaybot/internal/interfaces/telegram"
	"github.com/andikarh/parlaybot/internal/platform/logging"
	"github.com/andikarh/parlaybot/internal/platform/resilience"
	"github.com/andikarh/parlaybot/internal/usecase"
)

// NewBot wires configuration, stores, services and the transport into a
// runnable bot.
func NewBot(cfg config.Config, logger *logging.Logger) (*telegram.Bot, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, crerr.Wrapf(err, "load timezone %q", cfg.Timezone)
	}

	allowed, err := config.LoadLeagues(cfg.LeaguesFile)
	if err != nil {
		return nil, crerr.Wrap(err, "load league allow-list")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, crerr.Wrap(err, "authorize bot")
	}

	client := apifootball.NewClient(apifootball.ClientConfig{
		HTTPClient: &http.Client{Timeout: cfg.APITimeout},
		BaseURL:    cfg.APIBaseURL,
		APIKey:     cfg.APIKey,
		Retry: resilience.RetryPolicy{
			MaxAttempts: cfg.APIMaxRetries,
			Delay:       cfg.APIRetryDelay,
		},
		Logger: logger,
	})

	discovery := usecase.NewDiscoveryService(client, location, allowed, logger)
	predictions := usecase.NewPredictionService(client, location, cfg.PredictionConcurrency, logger)
	sessions := usecase.NewSessionService(statefile.NewSelectionStore(cfg.StateFile, logger), logger)
	cache := statefile.NewCacheStore(cfg.CacheFile, logger)

	return telegram.NewBot(
		api,
		telegram.Config{WebhookURL: cfg.WebhookURL, ListenAddr: cfg.ListenAddr},
		telegram.Services{
			Discovery:   discovery,
			Predictions: predictions,
			Sessions:    sessions,
			Cache:       cache,
		},
		location,
		logger,
	), nil
}
