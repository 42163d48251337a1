package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/OtaviOuu/shopee-monitor/internal/capture"
	"github.com/OtaviOuu/shopee-monitor/internal/config"
	"github.com/OtaviOuu/shopee-monitor/internal/feed"
)

// Monitor runs one poll cycle: retry pending alerts, capture the catalog
// response the search page issues, extract item records, and alert every
// listing not yet in the seen-set.
type Monitor struct {
	session  Session
	store    SeenStore
	notifier Notifier
	cfg      *config.Config
}

func New(session Session, store SeenStore, n Notifier, cfg *config.Config) *Monitor {
	return &Monitor{session: session, store: store, notifier: n, cfg: cfg}
}

// RunCycle executes a single poll. Content anomalies (no capture, decode
// failure) end the cycle with zero items; only store faults and
// unexpected errors propagate to the scheduler.
func (m *Monitor) RunCycle(ctx context.Context) error {
	m.retryPending(ctx)

	body, err := m.session.CaptureSearch(ctx, m.cfg.TargetURL)
	switch {
	case errors.Is(err, capture.ErrNoCapture):
		slog.Info("No catalog response captured this cycle")
		return nil
	case errors.Is(err, capture.ErrDecode):
		slog.Warn("Captured body failed to decode", "error", err)
		return nil
	case err != nil:
		return fmt.Errorf("capture failed: %w", err)
	}

	items, err := feed.Extract(body)
	if err != nil {
		slog.Warn("Catalog payload failed to parse", "error", err)
		return nil
	}
	slog.Info("Extracted catalog items", "count", len(items))

	var newCount int
	for _, item := range items {
		key := item.Key()
		seen, err := m.store.Seen(ctx, key)
		if err != nil {
			return fmt.Errorf("checking seen-set: %w", err)
		}
		if !seen && key != item.Name {
			// Documents written before ids were tracked hold titles.
			seen, err = m.store.Seen(ctx, item.Name)
			if err != nil {
				return fmt.Errorf("checking seen-set: %w", err)
			}
		}
		if seen {
			continue
		}

		// Persist before notifying so a crash cannot alert twice; a
		// failed notify stays pending and is retried next cycle.
		if err := m.store.MarkPending(ctx, item); err != nil {
			return fmt.Errorf("persisting %q: %w", key, err)
		}
		newCount++

		if err := m.notifier.Notify(ctx, item); err != nil {
			slog.Error("Notify failed, alert stays pending", "item", item.Name, "error", err)
			continue
		}
		if err := m.store.Confirm(ctx, key); err != nil {
			return fmt.Errorf("confirming %q: %w", key, err)
		}
		slog.Info("New listing alerted", "item", item.Name, "price", item.Price)
	}

	slog.Info("Cycle finished", "new", newCount)
	return nil
}

// retryPending re-attempts alerts whose notify call failed on an earlier
// cycle. Failures here are logged and left pending again.
func (m *Monitor) retryPending(ctx context.Context) {
	pending, err := m.store.Pending(ctx)
	if err != nil {
		slog.Warn("Could not read pending alerts", "error", err)
		return
	}
	for _, item := range pending {
		if err := m.notifier.Notify(ctx, item); err != nil {
			slog.Warn("Pending alert still failing", "item", item.Name, "error", err)
			continue
		}
		if err := m.store.Confirm(ctx, item.Key()); err != nil {
			slog.Warn("Could not confirm pending alert", "item", item.Name, "error", err)
		}
	}
}
