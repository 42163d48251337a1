package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/OtaviOuu/shopee-monitor/internal/util"
)

const defaultMaxBackoff = 10 * time.Minute

// Scheduler supervises the poll loop: fixed interval between successful
// cycles, per-cycle timeout, exponential backoff with jitter while
// cycles keep failing.
type Scheduler struct {
	run          func(ctx context.Context) error
	interval     time.Duration
	cycleTimeout time.Duration
	maxBackoff   time.Duration
}

func New(run func(ctx context.Context) error, interval, cycleTimeout time.Duration) *Scheduler {
	return &Scheduler{
		run:          run,
		interval:     interval,
		cycleTimeout: cycleTimeout,
		maxBackoff:   defaultMaxBackoff,
	}
}

// Start blocks running cycles until ctx is cancelled, which is the only
// way to stop it; it then returns ctx.Err().
func (s *Scheduler) Start(ctx context.Context) error {
	failures := 0
	for {
		cycleCtx, cancel := context.WithTimeout(ctx, s.cycleTimeout)
		err := s.run(cycleCtx)
		cancel()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait := s.interval
		if err != nil {
			failures++
			wait = util.JitterBackoff(failures, s.interval, s.maxBackoff)
			slog.Error("Cycle failed", "consecutive", failures, "retry_in", wait, "error", err)
		} else {
			failures = 0
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
