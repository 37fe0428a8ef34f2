package queue

import (
	"math/rand"
	"time"
)

// JitteredDelay spreads base by +/- jitterPct percent and caps it at max.
func JitteredDelay(base, max time.Duration, jitterPct int) time.Duration {
	if jitterPct <= 0 {
		jitterPct = 25
	}
	delta := (rand.Float64()*2 - 1) * float64(jitterPct) / 100.0
	wait := time.Duration(float64(base) * (1 + delta))
	if wait < 0 {
		wait = base
	}
	if wait > max {
		wait = max
	}
	return wait
}

// Backoff returns the jittered delay before retry number attempt (1-based),
// doubling from base up to max.
func Backoff(attempt int, base, max time.Duration, jitterPct int) time.Duration {
	d := base
	for i := 1; i < attempt && d < max; i++ {
		d *= 2
	}
	if d > max {
		d = max
	}
	return JitteredDelay(d, max, jitterPct)
}
