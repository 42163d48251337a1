package store

import (
	"context"
	"errors"

	"github.com/OtaviOuu/shopee-monitor/internal/models"
)

// ErrCorrupt is returned when the persisted seen-set cannot be loaded.
// The monitor must not run without its dedup state, so this is fatal.
var ErrCorrupt = errors.New("store: seen-set is missing or corrupt")

// SeenStore tracks which listings have already been alerted. Keys move
// through two phases: pending (persisted before the notify attempt, full
// record kept so the alert can be retried) and confirmed (notify
// succeeded). Confirmed keys are never removed.
type SeenStore interface {
	// Seen reports whether key is pending or confirmed.
	Seen(ctx context.Context, key string) (bool, error)

	// MarkPending persists item ahead of its notify attempt. Idempotent;
	// a no-op when the key is already pending or confirmed.
	MarkPending(ctx context.Context, item models.Item) error

	// Confirm promotes key from pending to confirmed.
	Confirm(ctx context.Context, key string) error

	// Pending returns items whose notify attempt has not yet succeeded.
	Pending(ctx context.Context) ([]models.Item, error)

	Close() error
}
