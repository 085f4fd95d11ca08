package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/andikarh/parlaybot/internal/platform/logging"
)

// Config stores runtime configuration for the bot.
type Config struct {
	BotToken string

	APIBaseURL    string
	APIKey        string
	APITimeout    time.Duration
	APIMaxRetries int
	APIRetryDelay time.Duration

	WebhookURL string
	ListenAddr string

	Timezone              string
	PredictionConcurrency int

	LeaguesFile string
	StateFile   string
	CacheFile   string

	HealthEnabled bool
	HealthAddr    string

	LogLevel logging.Level
}

func Load() (Config, error) {
	botToken := strings.TrimSpace(os.Getenv("BOT_TOKEN"))
	if botToken == "" {
		return Config{}, fmt.Errorf("BOT_TOKEN is required")
	}

	apiKey := strings.TrimSpace(os.Getenv("API_KEY"))
	if apiKey == "" {
		return Config{}, fmt.Errorf("API_KEY is required")
	}

	apiTimeout, err := getEnvAsDuration("API_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_TIMEOUT: %w", err)
	}
	apiMaxRetries, err := getEnvAsInt("API_MAX_ATTEMPTS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_MAX_ATTEMPTS: %w", err)
	}
	apiRetryDelay, err := getEnvAsDuration("API_RETRY_DELAY", 2*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_RETRY_DELAY: %w", err)
	}

	concurrency, err := getEnvAsInt("PREDICTION_CONCURRENCY", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse PREDICTION_CONCURRENCY: %w", err)
	}

	healthEnabled, err := strconv.ParseBool(getEnv("HEALTH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HEALTH_ENABLED: %w", err)
	}

	logLevel, err := zapcore.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	return Config{
		BotToken:              botToken,
		APIBaseURL:            getEnv("API_BASE_URL", "https://v3.football.api-sports.io"),
		APIKey:                apiKey,
		APITimeout:            apiTimeout,
		APIMaxRetries:         apiMaxRetries,
		APIRetryDelay:         apiRetryDelay,
		WebhookURL:            strings.TrimSpace(os.Getenv("WEBHOOK_URL")),
		ListenAddr:            ":" + getEnv("PORT", "8080"),
		Timezone:              getEnv("APP_TIMEZONE", "Asia/Makassar"),
		PredictionConcurrency: concurrency,
		LeaguesFile:           getEnv("LEAGUES_FILE", "leagues.json"),
		StateFile:             getEnv("STATE_FILE", "selections.json"),
		CacheFile:             getEnv("CACHE_FILE", "cache.json"),
		HealthEnabled:         healthEnabled,
		HealthAddr:            getEnv("HEALTH_ADDR", ":6060"),
		LogLevel:              logLevel,
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
