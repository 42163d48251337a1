package monitor

import (
	"context"

	"github.com/OtaviOuu/shopee-monitor/internal/models"
)

// Session abstracts the browser collaborator that performs the capture.
type Session interface {
	CaptureSearch(ctx context.Context, pageURL string) ([]byte, error)
}

// SeenStore gates alerts on listing identity.
type SeenStore interface {
	Seen(ctx context.Context, key string) (bool, error)
	MarkPending(ctx context.Context, item models.Item) error
	Confirm(ctx context.Context, key string) error
	Pending(ctx context.Context) ([]models.Item, error)
}

// Notifier delivers one alert per new listing.
type Notifier interface {
	Notify(ctx context.Context, item models.Item) error
}
