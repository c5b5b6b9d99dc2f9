package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	_ "github.com/mattn/go-sqlite3"

	internalbot "tasasbot/internal/bot"
	"tasasbot/internal/config"
	"tasasbot/internal/db"
	"tasasbot/internal/db/sqlite"
	"tasasbot/internal/exchange/dolarapi"
	"tasasbot/internal/logger"
	"tasasbot/internal/rates"
	"tasasbot/internal/reply"
	"tasasbot/internal/server"
	"tasasbot/internal/service"
	"tasasbot/internal/sheets"
)

func main() {
	setWebhook := flag.Bool("set-webhook", false, "register WEBHOOK_URL with Telegram and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	log, err := logger.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		slog.Error("build logger", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(log)

	if err := run(cfg, log, *setWebhook); err != nil {
		log.Error("exit", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger, setWebhook bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sheet, err := sheets.New(ctx, sheets.Config{
		SpreadsheetID: cfg.SpreadsheetID,
		Range:         cfg.SpreadsheetRange,
		ClientID:      cfg.GoogleClientID,
		ClientSecret:  cfg.GoogleClientSecret,
		RefreshToken:  cfg.GoogleRefreshToken,
		APIKey:        cfg.GoogleAPIKey,
	}, log)
	if err != nil {
		return err
	}

	cacheOpts := []rates.CacheOption{rates.WithTTL(cfg.CacheTTL), rates.WithLogger(log)}
	if cfg.SnapshotDBPath != "" {
		repository, err := openSnapshots(cfg.SnapshotDBPath, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := repository.Close(); err != nil {
				log.Warn("close snapshot store", slog.Any("error", err))
			}
		}()
		cacheOpts = append(cacheOpts, rates.WithSnapshotStore(repository))
	}

	cache := rates.NewCache(sheet, cacheOpts...)
	if err := cache.Restore(ctx); err != nil {
		log.Warn("restore rate snapshot", slog.Any("error", err))
	}

	client := &http.Client{Timeout: 15 * time.Second}
	local := dolarapi.NewApiDolar(cfg.ExchangeAPIURL, client, log)

	router := internalbot.NewRouter(cache, local, reply.NewFormatter(), internalbot.NewChatLimiter(cfg.ChatRateLimit), log)

	opts := []bot.Option{
		bot.WithDefaultHandler(internalbot.Func(router)),
		bot.WithErrorsHandler(func(err error) {
			log.Error("telegram", slog.Any("error", err))
		}),
	}
	if cfg.WebhookSecret != "" {
		opts = append(opts, bot.WithWebhookSecretToken(cfg.WebhookSecret))
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		return err
	}

	if setWebhook {
		return registerWebhook(ctx, b, cfg, log)
	}

	if cfg.RefreshInterval > 0 {
		refresher := service.NewRefresher(cache, cfg.RefreshInterval, log)
		refresher.Start()
		defer refresher.Stop()
	}

	if cfg.BotMode == config.ModePolling {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
			return err
		}
		log.Info("polling for updates")
		b.Start(ctx)
		return nil
	}

	return serveWebhook(ctx, b, cfg, cache, log)
}

func openSnapshots(path string, log *slog.Logger) (db.SnapshotRepository, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	var repository db.SnapshotRepository = sqlite.NewRepositorySQlite(conn, log)
	if err := repository.Init(); err != nil {
		_ = repository.Close()
		return nil, err
	}
	return repository, nil
}

func registerWebhook(ctx context.Context, b *bot.Bot, cfg config.Config, log *slog.Logger) error {
	if cfg.WebhookURL == "" {
		return errors.New("WEBHOOK_URL is required with -set-webhook")
	}
	if _, err := b.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:         cfg.WebhookURL,
		SecretToken: cfg.WebhookSecret,
	}); err != nil {
		return err
	}
	log.Info("webhook registered", "url", cfg.WebhookURL)
	return nil
}

func serveWebhook(ctx context.Context, b *bot.Bot, cfg config.Config, cache *rates.Cache, log *slog.Logger) error {
	go b.StartWebhook(ctx)

	srv := server.New(server.Config{Addr: cfg.HTTPAddr, WebhookPath: cfg.WebhookPath}, b.WebhookHandler(), cache, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.HTTPAddr, "webhook_path", cfg.WebhookPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
