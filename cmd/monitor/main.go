package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/OtaviOuu/shopee-monitor/internal/browser"
	"github.com/OtaviOuu/shopee-monitor/internal/config"
	"github.com/OtaviOuu/shopee-monitor/internal/monitor"
	"github.com/OtaviOuu/shopee-monitor/internal/notifier"
	"github.com/OtaviOuu/shopee-monitor/internal/scheduler"
	"github.com/OtaviOuu/shopee-monitor/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	slog.Info("Starting Shopee listing monitor...")
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}

	seen, err := openStore(cfg)
	if err != nil {
		slog.Error("Critical error opening seen-set", "path", cfg.StorePath, "error", err)
		os.Exit(1)
	}
	defer seen.Close()

	session, err := openSession(cfg)
	if err != nil {
		slog.Error("Critical error starting browser session", "backend", cfg.BrowserBackend, "error", err)
		os.Exit(1)
	}
	defer session.Close()

	n := notifier.New(cfg.BotToken, cfg.ChatID)
	m := monitor.New(session, seen, n, cfg)
	sched := scheduler.New(m.RunCycle, cfg.PollInterval, cfg.CycleTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Polling", "target", cfg.TargetURL, "interval", cfg.PollInterval)
	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Scheduler stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Monitor stopped.")
}

func openStore(cfg *config.Config) (store.SeenStore, error) {
	switch cfg.StoreBackend {
	case "file":
		return store.OpenFile(cfg.StorePath)
	case "bolt":
		return store.OpenBolt(cfg.StorePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func openSession(cfg *config.Config) (browser.Session, error) {
	switch cfg.BrowserBackend {
	case "chromedp":
		return browser.NewChrome(cfg), nil
	case "playwright":
		return browser.NewPlaywright(cfg)
	default:
		return nil, fmt.Errorf("unknown browser backend %q", cfg.BrowserBackend)
	}
}
