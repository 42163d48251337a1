package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/OtaviOuu/shopee-monitor/internal/validate"
)

const (
	defaultTargetURL     = "https://shopee.com.br/search?facet=11060478&page=0&sortBy=ctime"
	defaultReadySelector = ".row.shopee-search-item-result__items li"
	defaultStorePath     = "shopee.json"
	defaultUserDataDir   = "./uc-user-data"
)

type Config struct {
	// Telegram credentials; both are secrets sourced from the environment.
	BotToken string `validate:"required"`
	ChatID   string `validate:"required"`

	TargetURL     string `validate:"required,url"`
	ReadySelector string `validate:"required"`

	StorePath    string `validate:"required"`
	StoreBackend string `validate:"oneof=file bolt"`

	BrowserBackend string `validate:"oneof=chromedp playwright"`
	BrowserPath    string
	UserDataDir    string
	Headless       bool

	PollInterval   time.Duration `validate:"gt=0"`
	CycleTimeout   time.Duration `validate:"gt=0"`
	SettleDelay    time.Duration `validate:"gte=0"`
	CaptureTimeout time.Duration `validate:"gt=0"`
}

func Load() (*Config, error) {
	cfg := &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		ChatID:         os.Getenv("CHAT_ID"),
		TargetURL:      getenv("TARGET_URL", defaultTargetURL),
		ReadySelector:  getenv("READY_SELECTOR", defaultReadySelector),
		StorePath:      getenv("STORE_PATH", defaultStorePath),
		StoreBackend:   getenv("STORE_BACKEND", "file"),
		BrowserBackend: getenv("BROWSER_BACKEND", "chromedp"),
		BrowserPath:    os.Getenv("BROWSER_PATH"),
		UserDataDir:    getenv("USER_DATA_DIR", defaultUserDataDir),
	}

	headless := true
	if v := os.Getenv("HEADLESS"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HEADLESS %q: %w", v, err)
		}
		headless = parsed
	}
	cfg.Headless = headless

	var err error
	if cfg.PollInterval, err = getenvDuration("POLL_INTERVAL", "100s"); err != nil {
		return nil, err
	}
	if cfg.CycleTimeout, err = getenvDuration("CYCLE_TIMEOUT", "3m"); err != nil {
		return nil, err
	}
	if cfg.SettleDelay, err = getenvDuration("SETTLE_DELAY", "4s"); err != nil {
		return nil, err
	}
	if cfg.CaptureTimeout, err = getenvDuration("CAPTURE_TIMEOUT", "30s"); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key, fallback string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
