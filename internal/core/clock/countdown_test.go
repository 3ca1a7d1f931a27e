package clock

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	countdown := New(nil, 0)
	assert.Equal(t, DefaultInterval, countdown.Interval())
	assert.NotNil(t, countdown.Clock())
}

func TestRunTicksWithClockInstant(t *testing.T) {
	fake := clockwork.NewFakeClock()
	countdown := New(fake, 100*time.Millisecond)

	ticks := make(chan time.Time, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		countdown.Run(ctx, func(now time.Time) { ticks <- now })
		close(done)
	}()

	fake.BlockUntil(1)
	start := fake.Now()
	fake.Advance(100 * time.Millisecond)

	select {
	case got := <-ticks:
		assert.Equal(t, start.Add(100*time.Millisecond), got)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a tick")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.Fail(t, "Run did not stop after cancel")
	}
}
