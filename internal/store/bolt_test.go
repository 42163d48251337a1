package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/OtaviOuu/shopee-monitor/internal/models"
)

func openTestBolt(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBolt(filepath.Join(t.TempDir(), "seen.db"))
	if err != nil {
		t.Fatalf("OpenBolt() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBoltStore_PendingConfirmFlow(t *testing.T) {
	s := openTestBolt(t)
	ctx := context.Background()
	item := models.Item{Name: "Book A", Price: 19.999, Link: "https://shopee.com.br/Book A-i.123.456", ShopID: 123, ItemID: 456}

	if seen, err := s.Seen(ctx, item.Key()); err != nil || seen {
		t.Fatalf("Seen() = %v, %v on fresh store", seen, err)
	}
	if err := s.MarkPending(ctx, item); err != nil {
		t.Fatalf("MarkPending() error = %v", err)
	}
	if seen, _ := s.Seen(ctx, item.Key()); !seen {
		t.Error("Seen() = false for pending item")
	}

	pending, err := s.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 1 || pending[0].Key() != "123.456" {
		t.Fatalf("Pending() = %v, want the marked record", pending)
	}

	if err := s.Confirm(ctx, item.Key()); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if pending, _ := s.Pending(ctx); len(pending) != 0 {
		t.Errorf("Pending() after confirm = %v, want empty", pending)
	}
	if seen, _ := s.Seen(ctx, item.Key()); !seen {
		t.Error("Seen() = false for confirmed item")
	}
}

func TestBoltStore_MarkPendingSkipsConfirmed(t *testing.T) {
	s := openTestBolt(t)
	ctx := context.Background()
	item := models.Item{Name: "Book A"}

	if err := s.MarkPending(ctx, item); err != nil {
		t.Fatal(err)
	}
	if err := s.Confirm(ctx, item.Key()); err != nil {
		t.Fatal(err)
	}
	// A confirmed key must not re-enter the pending queue.
	if err := s.MarkPending(ctx, item); err != nil {
		t.Fatal(err)
	}
	if pending, _ := s.Pending(ctx); len(pending) != 0 {
		t.Errorf("Pending() = %v, want empty for confirmed key", pending)
	}
}
