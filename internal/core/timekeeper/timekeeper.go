package timekeeper

import (
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"eyeguard/internal/core/escalation"
	"eyeguard/internal/core/model"
)

// TimeKeeper is the work/rest state machine.
//
// All fields are guarded by one mutex because a transition touches several of them at once.
// Events produced under the lock are dispatched after it is released, so handlers may call
// back into the TimeKeeper.
type TimeKeeper struct {
	mu           sync.Mutex
	clock        clockwork.Clock
	config       model.CycleConfig
	mode         Mode
	restType     escalation.RestType
	startTime    time.Time
	lastTick     time.Time
	paused       bool
	eyeRestCount uint32
	handlers     []func(Event)
	events       []chan Event
	closed       bool
}

// New creates a TimeKeeper in work mode. A nil clock uses the real clock.
func New(config model.CycleConfig, clock clockwork.Clock) *TimeKeeper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	now := clock.Now()
	return &TimeKeeper{
		clock:     clock,
		config:    config.Normalize(),
		mode:      ModeWork,
		restType:  escalation.EyeRest,
		startTime: now,
		lastTick:  now,
	}
}

// OnEvent registers a handler that is called synchronously for every event.
func (keeper *TimeKeeper) OnEvent(handler func(Event)) {
	if handler == nil {
		return
	}
	keeper.mu.Lock()
	keeper.handlers = append(keeper.handlers, handler)
	keeper.mu.Unlock()
}

// Subscribe registers a new observer channel. Slow observers miss events instead of blocking.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Close closes every subscriber channel.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Start restarts the work countdown from now and announces the work mode.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	now := keeper.clock.Now()
	keeper.mode = ModeWork
	keeper.startTime = now
	keeper.lastTick = now
	event := keeper.workStartLocked(now, false)
	keeper.mu.Unlock()

	keeper.dispatch(event)
}

// Tick advances the cycle to now.
func (keeper *TimeKeeper) Tick(now time.Time) {
	keeper.mu.Lock()
	event, ok := keeper.tickLocked(now)
	keeper.mu.Unlock()

	if ok {
		keeper.dispatch(event)
	}
}

// TogglePause flips the paused flag and returns the new value.
func (keeper *TimeKeeper) TogglePause() bool {
	keeper.mu.Lock()
	paused := !keeper.paused
	event := keeper.setPausedLocked(paused)
	keeper.mu.Unlock()

	keeper.dispatch(event)
	return paused
}

// Pause freezes elapsed time.
func (keeper *TimeKeeper) Pause() {
	keeper.setPaused(true)
}

// Resume unfreezes elapsed time.
func (keeper *TimeKeeper) Resume() {
	keeper.setPaused(false)
}

// Skip restarts the work countdown in work mode and ends the rest early in rest mode.
func (keeper *TimeKeeper) Skip() {
	keeper.mu.Lock()
	now := keeper.clock.Now()
	keeper.startTime = now
	keeper.lastTick = now

	var event Event
	if keeper.mode == ModeRest {
		keeper.mode = ModeWork
		event = keeper.workStartLocked(now, true)
	} else {
		event = Event{
			Type:      EventProgress,
			Mode:      ModeWork,
			Remaining: keeper.config.WorkDuration,
			Progress:  1,
			Paused:    keeper.paused,
			RestCount: keeper.eyeRestCount,
			At:        now,
		}
	}
	keeper.mu.Unlock()

	keeper.dispatch(event)
}

// ApplyWorkMinutes clamps and applies a new work length. In work mode the countdown restarts
// so the new limit takes effect immediately. It returns the applied value.
func (keeper *TimeKeeper) ApplyWorkMinutes(minutes int) int {
	minutes = model.ClampWorkMinutes(minutes)

	keeper.mu.Lock()
	events := keeper.applyWorkLocked(time.Duration(minutes) * time.Minute)
	keeper.mu.Unlock()

	keeper.dispatch(events...)
	return minutes
}

// ApplyRestSeconds clamps and applies a new rest length. It returns the applied value.
func (keeper *TimeKeeper) ApplyRestSeconds(seconds int) int {
	seconds = model.ClampRestSeconds(seconds)

	keeper.mu.Lock()
	keeper.config.RestDuration = time.Duration(seconds) * time.Second
	event := keeper.configEventLocked()
	keeper.mu.Unlock()

	keeper.dispatch(event)
	return seconds
}

// ApplyWaterInterval clamps and applies the water reminder interval. It returns the applied value.
func (keeper *TimeKeeper) ApplyWaterInterval(interval int) int {
	interval = model.ClampReminderInterval(interval)

	keeper.mu.Lock()
	keeper.config.WaterInterval = uint32(interval)
	event := keeper.configEventLocked()
	keeper.mu.Unlock()

	keeper.dispatch(event)
	return interval
}

// ApplyWalkInterval clamps and applies the walk reminder interval. It returns the applied value.
func (keeper *TimeKeeper) ApplyWalkInterval(interval int) int {
	interval = model.ClampReminderInterval(interval)

	keeper.mu.Lock()
	keeper.config.WalkInterval = uint32(interval)
	event := keeper.configEventLocked()
	keeper.mu.Unlock()

	keeper.dispatch(event)
	return interval
}

// ApplyConfig clamps and applies a whole configuration. The work countdown only restarts
// when the work length actually changed.
func (keeper *TimeKeeper) ApplyConfig(config model.CycleConfig) model.CycleConfig {
	config = config.Normalize()

	keeper.mu.Lock()
	keeper.config.RestDuration = config.RestDuration
	keeper.config.WaterInterval = config.WaterInterval
	keeper.config.WalkInterval = config.WalkInterval
	var events []Event
	if config.WorkDuration != keeper.config.WorkDuration {
		events = keeper.applyWorkLocked(config.WorkDuration)
	} else {
		events = []Event{keeper.configEventLocked()}
	}
	keeper.mu.Unlock()

	keeper.dispatch(events...)
	return config
}

// Config returns the current configuration.
func (keeper *TimeKeeper) Config() model.CycleConfig {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.config
}

// Snapshot returns the state as of the clock's current instant.
// While paused, elapsed time stays frozen at the pause instant.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	now := keeper.clock.Now()
	if keeper.paused {
		now = keeper.lastTick
	}
	elapsed := keeper.elapsedLocked(now)
	limit := keeper.limitLocked()
	remaining := limit - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return Snapshot{
		Mode:      keeper.mode,
		Elapsed:   elapsed,
		Remaining: remaining,
		Progress:  progress(elapsed, limit),
		Paused:    keeper.paused,
		RestType:  keeper.restType,
		RestCount: keeper.eyeRestCount,
		Config:    keeper.config,
	}
}

func (keeper *TimeKeeper) setPaused(paused bool) {
	keeper.mu.Lock()
	if keeper.paused == paused {
		keeper.mu.Unlock()
		return
	}
	event := keeper.setPausedLocked(paused)
	keeper.mu.Unlock()

	keeper.dispatch(event)
}

func (keeper *TimeKeeper) setPausedLocked(paused bool) Event {
	now := keeper.clock.Now()
	if paused {
		// Time up to the pause instant still counts.
		keeper.lastTick = now
	} else {
		keeper.startTime = keeper.startTime.Add(now.Sub(keeper.lastTick))
		keeper.lastTick = now
	}
	keeper.paused = paused
	return Event{
		Type:      EventPauseChange,
		Mode:      keeper.mode,
		Paused:    paused,
		RestCount: keeper.eyeRestCount,
		At:        now,
	}
}

func (keeper *TimeKeeper) tickLocked(now time.Time) (Event, bool) {
	if keeper.paused {
		if now.After(keeper.lastTick) {
			keeper.startTime = keeper.startTime.Add(now.Sub(keeper.lastTick))
			keeper.lastTick = now
		}
		return Event{}, false
	}
	keeper.lastTick = now

	elapsed := keeper.elapsedLocked(now)
	limit := keeper.limitLocked()
	if elapsed >= limit {
		keeper.startTime = now
		if keeper.mode == ModeWork {
			return keeper.restStartLocked(now), true
		}
		keeper.mode = ModeWork
		return keeper.workStartLocked(now, false), true
	}

	return Event{
		Type:      EventProgress,
		Mode:      keeper.mode,
		Remaining: limit - elapsed,
		Progress:  progress(elapsed, limit),
		RestType:  keeper.restType,
		RestCount: keeper.eyeRestCount,
		At:        now,
	}, true
}

func (keeper *TimeKeeper) restStartLocked(now time.Time) Event {
	keeper.mode = ModeRest
	keeper.eyeRestCount++
	keeper.restType = escalation.Resolve(keeper.eyeRestCount, keeper.config.WaterInterval, keeper.config.WalkInterval)
	return Event{
		Type:      EventRestStart,
		Mode:      ModeRest,
		Remaining: keeper.config.RestDuration,
		Progress:  1,
		RestType:  keeper.restType,
		RestCount: keeper.eyeRestCount,
		Status:    StatusRest,
		At:        now,
	}
}

func (keeper *TimeKeeper) workStartLocked(now time.Time, skipped bool) Event {
	return Event{
		Type:      EventWorkStart,
		Mode:      ModeWork,
		Remaining: keeper.config.WorkDuration,
		Progress:  1,
		Paused:    keeper.paused,
		RestCount: keeper.eyeRestCount,
		Skipped:   skipped,
		Status:    StatusFocus,
		At:        now,
	}
}

func (keeper *TimeKeeper) applyWorkLocked(work time.Duration) []Event {
	keeper.config.WorkDuration = work
	events := []Event{keeper.configEventLocked()}
	if keeper.mode != ModeWork {
		return events
	}

	now := keeper.clock.Now()
	keeper.startTime = now
	keeper.lastTick = now
	return append(events, Event{
		Type:      EventProgress,
		Mode:      ModeWork,
		Remaining: work,
		Progress:  1,
		Paused:    keeper.paused,
		RestCount: keeper.eyeRestCount,
		Status:    StatusFocus,
		At:        now,
	})
}

func (keeper *TimeKeeper) configEventLocked() Event {
	return Event{
		Type:      EventConfigChange,
		Mode:      keeper.mode,
		Paused:    keeper.paused,
		RestCount: keeper.eyeRestCount,
		Config:    keeper.config,
		At:        keeper.clock.Now(),
	}
}

func (keeper *TimeKeeper) elapsedLocked(now time.Time) time.Duration {
	elapsed := now.Sub(keeper.startTime)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (keeper *TimeKeeper) limitLocked() time.Duration {
	if keeper.mode == ModeRest {
		return keeper.config.RestDuration
	}
	return keeper.config.WorkDuration
}

func (keeper *TimeKeeper) dispatch(events ...Event) {
	keeper.mu.Lock()
	handlers := slices.Clone(keeper.handlers)
	keeper.mu.Unlock()

	for _, event := range events {
		for _, handler := range handlers {
			handler(event)
		}
		keeper.emit(event)
	}
}

func (keeper *TimeKeeper) emit(event Event) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func progress(elapsed, limit time.Duration) float64 {
	if limit <= 0 {
		return 0
	}
	value := 1 - float64(elapsed)/float64(limit)
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
