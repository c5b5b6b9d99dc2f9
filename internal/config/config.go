package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModeWebhook = "webhook"
	ModePolling = "polling"
)

type Config struct {
	BotToken string
	BotMode  string

	SpreadsheetID      string
	SpreadsheetRange   string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string
	GoogleAPIKey       string

	CacheTTL        time.Duration
	RefreshInterval time.Duration
	ExchangeAPIURL  string
	SnapshotDBPath  string

	HTTPAddr      string
	WebhookPath   string
	WebhookURL    string
	WebhookSecret string

	ChatRateLimit int

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup and validates it.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	c := Config{
		BotToken:           get("TELEGRAM_BOT_TOKEN", ""),
		BotMode:            get("BOT_MODE", ModeWebhook),
		SpreadsheetID:      get("SPREADSHEET_ID", ""),
		SpreadsheetRange:   get("SPREADSHEET_RANGE", ""),
		GoogleClientID:     get("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRefreshToken: get("GOOGLE_REFRESH_TOKEN", ""),
		GoogleAPIKey:       get("GOOGLE_API_KEY", ""),
		ExchangeAPIURL:     get("EXCHANGE_API_URL", "https://ve.dolarapi.com/v1/dolares"),
		SnapshotDBPath:     get("SNAPSHOT_DB_PATH", ""),
		HTTPAddr:           get("HTTP_ADDR", ":8080"),
		WebhookPath:        get("WEBHOOK_PATH", "/api/telegram"),
		WebhookURL:         get("WEBHOOK_URL", ""),
		WebhookSecret:      get("WEBHOOK_SECRET", ""),
		LogLevel:           get("LOG_LEVEL", "info"),
		LogFormat:          get("LOG_FORMAT", "json"),
	}

	var err error
	if c.CacheTTL, err = time.ParseDuration(get("CACHE_TTL", "5m")); err != nil {
		return c, fmt.Errorf("CACHE_TTL: %w", err)
	}
	if c.RefreshInterval, err = time.ParseDuration(get("REFRESH_INTERVAL", "0")); err != nil {
		return c, fmt.Errorf("REFRESH_INTERVAL: %w", err)
	}
	if c.ChatRateLimit, err = strconv.Atoi(get("CHAT_RATE_LIMIT", "0")); err != nil {
		return c, fmt.Errorf("CHAT_RATE_LIMIT: %w", err)
	}

	return c, c.validate()
}

func (c Config) validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.SpreadsheetID == "" {
		return fmt.Errorf("SPREADSHEET_ID is required")
	}
	if c.SpreadsheetRange == "" {
		return fmt.Errorf("SPREADSHEET_RANGE is required")
	}
	if c.GoogleRefreshToken == "" && c.GoogleAPIKey == "" {
		return fmt.Errorf("GOOGLE_REFRESH_TOKEN or GOOGLE_API_KEY is required")
	}
	if c.GoogleRefreshToken != "" && (c.GoogleClientID == "" || c.GoogleClientSecret == "") {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required with GOOGLE_REFRESH_TOKEN")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("REFRESH_INTERVAL must not be negative")
	}
	if c.ChatRateLimit < 0 {
		return fmt.Errorf("CHAT_RATE_LIMIT must not be negative")
	}
	if c.BotMode != ModeWebhook && c.BotMode != ModePolling {
		return fmt.Errorf("BOT_MODE must be %q or %q", ModeWebhook, ModePolling)
	}
	return nil
}
