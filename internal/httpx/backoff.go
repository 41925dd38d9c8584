package httpx

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Backoff computes exponentially growing retry delays, capped at MaxDelay and
// spread by +/- Jitter (a fraction in [0,1]).
type Backoff struct {
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Jitter    float64

	mu    sync.Mutex
	float func() float64
}

// NewBackoff returns a Backoff initialized with the supplied parameters.
func NewBackoff(base, max time.Duration, jitter float64) *Backoff {
	if base <= 0 {
		base = 50 * time.Millisecond
	}
	if max <= 0 {
		max = time.Second
	}
	if max < base {
		max = base
	}
	return &Backoff{
		BaseDelay: base,
		MaxDelay:  max,
		Jitter:    math.Max(0, math.Min(jitter, 1)),
		float:     rand.New(rand.NewSource(time.Now().UnixNano())).Float64,
	}
}

// ForAttempt returns the delay before retry number attempt (0-indexed).
func (b *Backoff) ForAttempt(attempt int) time.Duration {
	delay := b.BaseDelay
	for i := 0; i < attempt && delay < b.MaxDelay; i++ {
		delay *= 2
	}
	if delay <= 0 || delay > b.MaxDelay {
		delay = b.MaxDelay
	}
	return b.spread(delay)
}

func (b *Backoff) spread(delay time.Duration) time.Duration {
	if b.Jitter == 0 || b.float == nil {
		return delay
	}
	b.mu.Lock()
	r := b.float()
	b.mu.Unlock()

	factor := 1 + (r*2-1)*b.Jitter
	return time.Duration(float64(delay) * factor)
}
