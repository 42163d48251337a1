package util

import (
	"math/rand/v2"
	"time"
)

// JitterBackoff returns the wait before the next poll after `failures`
// consecutive cycle errors: base doubled per failure, capped at max,
// plus up to 25% random jitter so restarted instances don't synchronize.
func JitterBackoff(failures int, base, max time.Duration) time.Duration {
	if failures < 1 {
		return base
	}
	shift := failures - 1
	if shift > 16 {
		shift = 16
	}
	backoff := base << shift
	if backoff <= 0 || backoff > max {
		backoff = max
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/4 + 1))
	return backoff + jitter
}
