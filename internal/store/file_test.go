package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/OtaviOuu/shopee-monitor/internal/models"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shopee.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenFile_MissingFile(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("OpenFile() error = %v, want ErrCorrupt", err)
	}
}

func TestOpenFile_MalformedFile(t *testing.T) {
	path := writeSeedFile(t, `{"items": [truncated`)
	_, err := OpenFile(path)
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("OpenFile() error = %v, want ErrCorrupt", err)
	}
}

func TestFileStore_LegacySingleFieldDocument(t *testing.T) {
	// The historical layout has only the "items" sequence.
	path := writeSeedFile(t, `{"items": ["Old Book"]}`)
	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	seen, err := s.Seen(context.Background(), "Old Book")
	if err != nil {
		t.Fatalf("Seen() error = %v", err)
	}
	if !seen {
		t.Error("Seen() = false for key present in legacy document")
	}
}

func TestFileStore_PendingConfirmFlow(t *testing.T) {
	path := writeSeedFile(t, `{"items": []}`)
	s, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	item := models.Item{Name: "Book A", Price: 19.999, Link: "https://shopee.com.br/Book A-i.123.456", ShopID: 123, ItemID: 456}

	if seen, _ := s.Seen(ctx, item.Key()); seen {
		t.Fatal("fresh store claims item seen")
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
	if len(pending) != 1 || pending[0].Name != "Book A" {
		t.Fatalf("Pending() = %v, want the full record", pending)
	}

	if err := s.Confirm(ctx, item.Key()); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	pending, _ = s.Pending(ctx)
	if len(pending) != 0 {
		t.Errorf("Pending() after confirm = %v, want empty", pending)
	}
	if seen, _ := s.Seen(ctx, item.Key()); !seen {
		t.Error("Seen() = false for confirmed item")
	}
}

func TestFileStore_MarkPendingIdempotent(t *testing.T) {
	path := writeSeedFile(t, `{"items": []}`)
	s, _ := OpenFile(path)
	ctx := context.Background()
	item := models.Item{Name: "Book A", Link: "https://x/a"}

	for i := 0; i < 3; i++ {
		if err := s.MarkPending(ctx, item); err != nil {
			t.Fatal(err)
		}
	}
	pending, _ := s.Pending(ctx)
	if len(pending) != 1 {
		t.Errorf("Pending() has %d entries after repeated MarkPending, want 1", len(pending))
	}
}

func TestFileStore_ConfirmedNeverRemoved(t *testing.T) {
	path := writeSeedFile(t, `{"items": ["A", "B"]}`)
	s, _ := OpenFile(path)
	ctx := context.Background()

	// Confirming again and adding new keys must keep the existing set.
	if err := s.Confirm(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkPending(ctx, models.Item{Name: "C"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Confirm(ctx, "C"); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"A", "B", "C"} {
		if seen, _ := s.Seen(ctx, key); !seen {
			t.Errorf("Seen(%q) = false, want true", key)
		}
	}

	doc, err := s.load()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Items) != 3 {
		t.Errorf("confirmed set has %d keys, want 3 (no duplicates, no removals)", len(doc.Items))
	}
}

func TestFileStore_StateSurvivesReopen(t *testing.T) {
	path := writeSeedFile(t, `{"items": []}`)
	first, _ := OpenFile(path)
	ctx := context.Background()

	if err := first.MarkPending(ctx, models.Item{Name: "Persisted"}); err != nil {
		t.Fatal(err)
	}
	if err := first.Confirm(ctx, "Persisted"); err != nil {
		t.Fatal(err)
	}

	second, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	if seen, _ := second.Seen(ctx, "Persisted"); !seen {
		t.Error("Seen() = false after reopen, want true")
	}
}
