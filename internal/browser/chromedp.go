package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/OtaviOuu/shopee-monitor/internal/capture"
	"github.com/OtaviOuu/shopee-monitor/internal/config"
	"github.com/OtaviOuu/shopee-monitor/internal/feed"
)

// ChromeSession talks CDP through chromedp. The allocator is long-lived;
// each CaptureSearch opens a fresh tab so cycle state never leaks.
type ChromeSession struct {
	cfg       *config.Config
	allocCtx  context.Context
	allocStop context.CancelFunc
}

func NewChrome(cfg *config.Config) *ChromeSession {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
	)
	if cfg.BrowserPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.BrowserPath))
	}
	if cfg.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.UserDataDir))
	}
	allocCtx, stop := chromedp.NewExecAllocator(context.Background(), opts...)
	return &ChromeSession{cfg: cfg, allocCtx: allocCtx, allocStop: stop}
}

func (s *ChromeSession) CaptureSearch(ctx context.Context, pageURL string) ([]byte, error) {
	tabCtx, cancel := chromedp.NewContext(s.allocCtx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var dcancel context.CancelFunc
		tabCtx, dcancel = context.WithDeadline(tabCtx, deadline)
		defer dcancel()
	}

	// The listener must be attached before navigation starts or the
	// catalog XHR can complete unobserved.
	slot := capture.NewSlot[network.RequestID]()
	chromedp.ListenTarget(tabCtx, func(ev any) {
		e, ok := ev.(*network.EventResponseReceived)
		if !ok {
			return
		}
		if strings.Contains(e.Response.URL, feed.SearchEndpoint) {
			slog.Info("Captured catalog response", "url", e.Response.URL)
			slot.Set(e.RequestID)
		}
	})

	err := chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(s.cfg.ReadySelector, chromedp.ByQuery),
		chromedp.Sleep(s.cfg.SettleDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("navigating search page: %w", err)
	}

	requestID, err := slot.Await(tabCtx, s.cfg.CaptureTimeout)
	if err != nil {
		return nil, err
	}

	var body []byte
	err = chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		res := new(network.GetResponseBodyReturns)
		if err := cdp.Execute(ctx, network.CommandGetResponseBody, network.GetResponseBody(requestID), res); err != nil {
			return err
		}
		raw, err := capture.DecodeBody(res.Body, res.Base64encoded)
		if err != nil {
			return err
		}
		body = raw
		return nil
	}))
	if err != nil {
		if errors.Is(err, capture.ErrDecode) {
			return nil, err
		}
		return nil, fmt.Errorf("fetching response body: %w", err)
	}
	return body, nil
}

func (s *ChromeSession) Close() error {
	s.allocStop()
	return nil
}
