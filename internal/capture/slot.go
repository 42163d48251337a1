package capture

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrNoCapture means no matching catalog response arrived inside the
	// wait window. The cycle treats it as "nothing to process".
	ErrNoCapture = errors.New("capture: no matching response observed")

	// ErrDecode means the captured body could not be decoded.
	ErrDecode = errors.New("capture: response body decode failed")
)

// Slot bridges a push-style network event to a value the poll cycle can
// await deterministically. Set may fire more than once per navigation;
// the latest value wins.
type Slot[T any] struct {
	mu    sync.Mutex
	val   T
	ready chan struct{}
}

func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{ready: make(chan struct{}, 1)}
}

// Set records v, overwriting any unconsumed value.
func (s *Slot[T]) Set(v T) {
	s.mu.Lock()
	s.val = v
	s.mu.Unlock()
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Await blocks until a value is available, timeout elapses, or ctx is
// done. A timeout yields ErrNoCapture.
func (s *Slot[T]) Await(ctx context.Context, timeout time.Duration) (T, error) {
	var zero T
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-s.ready:
		s.mu.Lock()
		v := s.val
		s.mu.Unlock()
		return v, nil
	case <-timer.C:
		return zero, ErrNoCapture
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
