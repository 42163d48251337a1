package browser

import (
	"context"
	"testing"
	"time"
)

func TestDeadlineTimeout_NoDeadline(t *testing.T) {
	if got := deadlineTimeout(context.Background()); got != nil {
		t.Errorf("deadlineTimeout() = %v, want nil without a deadline", *got)
	}
}

func TestDeadlineTimeout_RemainingTime(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	got := deadlineTimeout(ctx)
	if got == nil {
		t.Fatal("deadlineTimeout() = nil, want the remaining milliseconds")
	}
	if *got <= 0 || *got > 30_000 {
		t.Errorf("deadlineTimeout() = %v ms, want within (0, 30000]", *got)
	}
}

func TestDeadlineTimeout_ExpiredDeadline(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	got := deadlineTimeout(ctx)
	if got == nil || *got != 0 {
		t.Errorf("deadlineTimeout() = %v, want 0 for an expired deadline", got)
	}
}
