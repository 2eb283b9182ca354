// @title          FarmBot API
// @version        1.0
// @description    Backend for the FarmBot Telegram Mini-App.
// @BasePath       /
// @securityDefinitions.apikey InitData
// @in             header
// @name           X-Telegram-Init-Data
// @securityDefinitions.apikey ApiKeyAuth
// @in             header
// @name           X-API-Key
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	_ "github.com/osse101/FarmBot_Go/docs"
	"github.com/osse101/FarmBot_Go/internal/bootstrap"
	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/identity"
	"github.com/osse101/FarmBot_Go/internal/payment"
	"github.com/osse101/FarmBot_Go/internal/scheduler"
	"github.com/osse101/FarmBot_Go/internal/server"
	"github.com/osse101/FarmBot_Go/internal/telegram"
	"github.com/osse101/FarmBot_Go/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("FarmBot exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := bootstrap.SetupLogger(cfg)

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn("Configuration warning", "warning", w)
	}

	catalog, err := farm.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg, catalog.StartingCoins)
	if err != nil {
		return err
	}

	_, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		store.Close()
		return err
	}

	retry := bootstrap.RetryPolicy(cfg)
	game := farm.NewService(store, catalog, cfg.DevMode, retry)

	reconciler, err := payment.NewReconciler(store, game, catalog, publisher, payment.Config{
		CacheSize:      cfg.PaymentCacheSize,
		CacheTTL:       cfg.PaymentCacheTTL,
		UnsettledGrace: cfg.UnsettledGrace,
		Retry:          retry,
	})
	if err != nil {
		store.Close()
		return err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.UnsettledScanInterval, &worker.UnsettledSweepJob{Flagger: reconciler})

	components := bootstrap.ShutdownComponents{
		Scheduler:          sched,
		WorkerPool:         pool,
		ResilientPublisher: publisher,
		Store:              store,
	}

	bot, err := telegram.NewBotAPI(cfg.TelegramBotToken, 0)
	if err != nil {
		bootstrap.GracefulShutdown(ctx, components)
		return err
	}
	client := telegram.NewClient(bot)
	notifier := telegram.NewNotifier(client, pool, cfg.MiniAppURL)

	if cfg.TelegramWebhookURL != "" {
		if err := client.SetWebhook(cfg.TelegramWebhookURL, cfg.TelegramWebhookSecret, false); err != nil {
			log.Warn("Failed to register webhook", "url", cfg.TelegramWebhookURL, "error", err)
		} else {
			log.Info("Webhook registered", "url", cfg.TelegramWebhookURL)
		}
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Version:        cfg.Version,
		Environment:    cfg.Environment,
	}, server.Deps{
		Verifier:  identity.NewVerifier(cfg.TelegramBotToken, cfg.InitDataMaxAge),
		Game:      game,
		Catalog:   catalog,
		Invoices:  client,
		Unsettled: reconciler,
		Store:     store,
		Webhook:   telegram.NewWebhookHandler(cfg.TelegramWebhookSecret, reconciler, game, client, notifier),
	})
	components.Server = srv

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", "port", cfg.Port)
		return srv.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.ShutdownGraceDuration)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, components)
		return nil
	})

	return g.Wait()
}
