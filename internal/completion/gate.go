package completion

import (
	"context"
	"sync"
	"time"
)

const (
	// MinInterval is the minimum delay between consecutive outbound
	// completion calls, process-wide.
	MinInterval = 4 * time.Second

	// RateLimitCooldown is how long to wait before the single retry after
	// the backend reports a rate limit.
	RateLimitCooldown = 60 * time.Second
)

// Gate serializes outbound completion calls so that consecutive requests are
// spaced at least one interval apart. A single Gate is constructed per
// process and shared by every client call site; concurrent runs queue behind
// each other's slots.
type Gate struct {
	mu       sync.Mutex
	last     time.Time
	interval time.Duration
	cooldown time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGate creates a gate with the given spacing interval and rate-limit
// cooldown. Tests pass zero values to get a gate that never blocks.
func NewGate(interval, cooldown time.Duration) *Gate {
	return &Gate{
		interval: interval,
		cooldown: cooldown,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// NewDefaultGate creates a gate with the production spacing constants.
func NewDefaultGate() *Gate {
	return NewGate(MinInterval, RateLimitCooldown)
}

// Wait blocks until the caller's slot in the global request schedule opens.
// Slots are handed out under the mutex so each waiter gets a distinct slot;
// the N-th admitted call cannot begin sooner than (N-1) intervals after the
// first.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	now := g.now()
	slot := g.last.Add(g.interval)
	if slot.Before(now) {
		slot = now
	}
	g.last = slot
	g.mu.Unlock()

	if d := slot.Sub(now); d > 0 {
		return g.sleep(ctx, d)
	}
	return nil
}

// Cooldown blocks for the rate-limit cooldown period.
func (g *Gate) Cooldown(ctx context.Context) error {
	if g.cooldown <= 0 {
		return nil
	}
	return g.sleep(ctx, g.cooldown)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
