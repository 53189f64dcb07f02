package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"shopbot/internal/bot"
	"shopbot/internal/config"
	"shopbot/internal/http/handlers"
	applog "shopbot/internal/log"
	"shopbot/internal/repos"
	"shopbot/internal/services"
	"shopbot/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot and its HTTP endpoints",
	Long: `Run the bot. Updates arrive by long polling, or through
POST /telegram/webhook when SHOPBOT_WEBHOOK_URL is set.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireBot(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	catalog := services.NewCatalogService(repos.NewBrandRepo(db), repos.NewCategoryRepo(db), repos.NewProductRepo(db))

	sessions, closeSessions, err := openSessions(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	tg, err := bot.NewTelegram(bot.TelegramConfig{
		Token:          cfg.BotToken,
		FilesChannelID: cfg.FilesChannelID,
		SendRate:       cfg.SendRate,
	})
	if err != nil {
		return err
	}
	b := bot.New(bot.Deps{
		Messenger:    tg,
		Catalog:      catalog,
		Sessions:     sessions,
		Operators:    cfg.Operators,
		LogChannelID: cfg.LogChannelID,
		Storefronts: []bot.StoreLink{
			{Title: "🟣 Wildberries", URL: cfg.WBStoreURL},
			{Title: "🔵 Ozon", URL: cfg.OzonStoreURL},
			{Title: "🟡 Yandex.Market", URL: cfg.YMStoreURL},
		},
	})

	var updates <-chan tgbotapi.Update
	var webhook chan tgbotapi.Update
	if cfg.WebhookURL != "" {
		webhook = make(chan tgbotapi.Update, 100)
		if err := tg.SetWebhook(ctx, cfg.WebhookURL, cfg.WebhookSecret); err != nil {
			return err
		}
		updates = webhook
	} else {
		polled, err := tg.Poll(ctx)
		if err != nil {
			return err
		}
		defer tg.StopPolling()
		updates = polled
	}

	app := handlers.NewApp(handlers.AppConfig{
		AdminTokenHash: cfg.AdminTokenHash,
		Health:         func() error { return db.PingContext(ctx) },
	}, handlers.NewDeps(catalog, webhook, cfg.WebhookSecret))

	count, err := catalog.ProductCount(ctx)
	if err != nil {
		applog.Error(ctx, "startup.count.fail", err, nil)
	}
	b.Audit().Emit(ctx, bot.TagStartup,
		fmt.Sprintf("Bot @%s started\nProducts in catalog: %d\nOperators: %d", tg.Username(), count, len(cfg.Operators)),
		map[string]any{"products": count, "operators": len(cfg.Operators), "webhook": cfg.WebhookURL != ""})

	dispatcher := bot.NewDispatcher(b)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx, updates)
	})
	g.Go(func() error {
		applog.Info(gctx, "http.listen", map[string]any{"addr": cfg.HTTPAddr})
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	err = g.Wait()
	applog.Info(ctx, "shutdown", nil)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func openSessions(ctx context.Context, cfg config.Config) (session.Store, func() error, error) {
	if cfg.SessionBackend == "redis" {
		rs := session.NewRedisStore(session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SessionTTL,
		})
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("redis: %w", err)
		}
		return rs, rs.Close, nil
	}
	return session.NewMemoryStore(cfg.SessionTTL), func() error { return nil }, nil
}
