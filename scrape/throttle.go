package scrape

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle spaces requests to the same host by a fixed delay. One Throttle
// is shared by every worker so concurrent crawls of a host queue behind each
// other.
type Throttle struct {
	mu       sync.Mutex
	delay    time.Duration
	limiters map[string]*rate.Limiter
}

// NewThrottle returns a Throttle. A delay <= 0 disables throttling.
func NewThrottle(delay time.Duration) *Throttle {
	return &Throttle{
		delay:    delay,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to host may be sent.
func (t *Throttle) Wait(ctx context.Context, host string) error {
	if t == nil || t.delay <= 0 {
		return ctx.Err()
	}
	return t.limiter(host).Wait(ctx)
}

func (t *Throttle) limiter(host string) *rate.Limiter {
	host = strings.ToLower(host)
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Every(t.delay), 1)
		t.limiters[host] = l
	}
	return l
}
