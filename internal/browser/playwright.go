package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/OtaviOuu/shopee-monitor/internal/capture"
	"github.com/OtaviOuu/shopee-monitor/internal/config"
	"github.com/OtaviOuu/shopee-monitor/internal/feed"
)

// PlaywrightSession is the alternative backend. A persistent context
// keeps the profile directory warm between cycles, which helps against
// bot checks on the target site.
type PlaywrightSession struct {
	cfg     *config.Config
	pw      *playwright.Playwright
	browser playwright.BrowserContext
}

func NewPlaywright(cfg *config.Config) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright driver: %w", err)
	}

	opts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(cfg.Headless),
	}
	if cfg.BrowserPath != "" {
		opts.ExecutablePath = playwright.String(cfg.BrowserPath)
	}
	browserCtx, err := pw.Chromium.LaunchPersistentContext(cfg.UserDataDir, opts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	return &PlaywrightSession{cfg: cfg, pw: pw, browser: browserCtx}, nil
}

func (s *PlaywrightSession) CaptureSearch(ctx context.Context, pageURL string) ([]byte, error) {
	page, err := s.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	slot := capture.NewSlot[playwright.Response]()
	page.OnResponse(func(resp playwright.Response) {
		if strings.Contains(resp.URL(), feed.SearchEndpoint) {
			slog.Info("Captured catalog response", "url", resp.URL())
			slot.Set(resp)
		}
	})

	// Playwright's own timeouts do not observe ctx, so the caller's
	// deadline has to be threaded through the option structs.
	timeout := deadlineTimeout(ctx)
	if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   timeout,
	}); err != nil {
		return nil, fmt.Errorf("navigating search page: %w", err)
	}

	if err := page.Locator(s.cfg.ReadySelector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: deadlineTimeout(ctx),
	}); err != nil {
		return nil, fmt.Errorf("waiting for results grid: %w", err)
	}

	// Let the in-page catalog fetch finish before consuming the capture.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.cfg.SettleDelay):
	}

	resp, err := slot.Await(ctx, s.cfg.CaptureTimeout)
	if err != nil {
		return nil, err
	}
	body, err := resp.Body()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", capture.ErrDecode, err)
	}
	return body, nil
}

// deadlineTimeout converts ctx's deadline to the millisecond timeout
// playwright options expect, or nil to keep the driver default.
func deadlineTimeout(ctx context.Context) *float64 {
	deadline, ok := ctx.Deadline()
	if !ok {
		return nil
	}
	remaining := time.Until(deadline)
	if remaining < 0 {
		remaining = 0
	}
	return playwright.Float(float64(remaining.Milliseconds()))
}

func (s *PlaywrightSession) Close() error {
	closeErr := s.browser.Close()
	if err := s.pw.Stop(); err != nil {
		return err
	}
	return closeErr
}
