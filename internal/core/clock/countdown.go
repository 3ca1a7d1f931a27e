package clock

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the tick period that drives the break cycle.
const DefaultInterval = 100 * time.Millisecond

// Countdown wraps a single periodic tick source.
type Countdown struct {
	clock    clockwork.Clock
	interval time.Duration
}

// New creates a countdown ticking every interval on the given clock.
// A nil clock uses the real monotonic clock.
func New(clock clockwork.Clock, interval time.Duration) *Countdown {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Countdown{clock: clock, interval: interval}
}

// Clock returns the underlying time source.
func (countdown *Countdown) Clock() clockwork.Clock {
	return countdown.clock
}

// Interval returns the tick period.
func (countdown *Countdown) Interval() time.Duration {
	return countdown.interval
}

// Run calls onTick with the current instant on every tick until ctx is done.
// Delayed ticks are not replayed; consumers compute elapsed time from instants.
func (countdown *Countdown) Run(ctx context.Context, onTick func(time.Time)) {
	ticker := countdown.clock.NewTicker(countdown.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			onTick(countdown.clock.Now())
		}
	}
}
