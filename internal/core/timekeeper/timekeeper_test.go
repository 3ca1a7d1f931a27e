package timekeeper

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eyeguard/internal/core/escalation"
	"eyeguard/internal/core/model"
)

const tick = 100 * time.Millisecond

type recorder struct {
	events []Event
}

func (rec *recorder) handle(event Event) {
	rec.events = append(rec.events, event)
}

func (rec *recorder) ofType(eventType EventType) []Event {
	var matched []Event
	for _, event := range rec.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

func newKeeper(t *testing.T, config model.CycleConfig) (*TimeKeeper, *clockwork.FakeClock, *recorder) {
	t.Helper()
	fake := clockwork.NewFakeClock()
	keeper := New(config, fake)
	rec := &recorder{}
	keeper.OnEvent(rec.handle)
	return keeper, fake, rec
}

func shortConfig() model.CycleConfig {
	return model.CycleConfig{
		WorkDuration:  time.Minute,
		RestDuration:  10 * time.Second,
		WaterInterval: 2,
		WalkInterval:  3,
	}
}

func advance(keeper *TimeKeeper, fake *clockwork.FakeClock, total time.Duration) {
	for step := time.Duration(0); step < total; step += tick {
		fake.Advance(tick)
		keeper.Tick(fake.Now())
	}
}

func TestWorkToRestAfterWorkDuration(t *testing.T) {
	keeper, fake, rec := newKeeper(t, shortConfig())

	advance(keeper, fake, time.Minute-tick)
	assert.Empty(t, rec.ofType(EventRestStart))
	assert.Equal(t, ModeWork, keeper.Snapshot().Mode)

	advance(keeper, fake, tick)
	starts := rec.ofType(EventRestStart)
	require.Len(t, starts, 1)
	assert.Equal(t, ModeRest, starts[0].Mode)
	assert.Equal(t, 10*time.Second, starts[0].Remaining)
	assert.Equal(t, 1.0, starts[0].Progress)
	assert.Equal(t, uint32(1), starts[0].RestCount)
	assert.Equal(t, escalation.EyeRest, starts[0].RestType)
	assert.Equal(t, StatusRest, starts[0].Status)

	snapshot := keeper.Snapshot()
	assert.Equal(t, ModeRest, snapshot.Mode)
	assert.Equal(t, time.Duration(0), snapshot.Elapsed)
}

func TestRestToWorkAfterRestDuration(t *testing.T) {
	keeper, fake, rec := newKeeper(t, shortConfig())

	advance(keeper, fake, time.Minute)
	advance(keeper, fake, 10*time.Second)

	starts := rec.ofType(EventWorkStart)
	require.Len(t, starts, 1)
	assert.False(t, starts[0].Skipped)
	assert.Equal(t, time.Minute, starts[0].Remaining)
	assert.Equal(t, StatusFocus, starts[0].Status)
	assert.Equal(t, ModeWork, keeper.Snapshot().Mode)
}

func TestSingleLateTickStillTransitions(t *testing.T) {
	keeper, fake, rec := newKeeper(t, shortConfig())

	fake.Advance(5 * time.Minute)
	keeper.Tick(fake.Now())

	require.Len(t, rec.events, 1)
	assert.Equal(t, EventRestStart, rec.events[0].Type)
}

func TestProgressStrictlyDecreasesWithinMode(t *testing.T) {
	keeper, fake, rec := newKeeper(t, shortConfig())

	advance(keeper, fake, 30*time.Second)

	progress := rec.ofType(EventProgress)
	require.NotEmpty(t, progress)
	previous := 1.0
	for _, event := range progress {
		assert.Less(t, event.Progress, previous)
		assert.GreaterOrEqual(t, event.Progress, 0.0)
		previous = event.Progress
	}
	assert.InDelta(t, 0.5, progress[len(progress)-1].Progress, 0.0001)
	assert.Equal(t, 30*time.Second, progress[len(progress)-1].Remaining)
}

func TestPauseFreezesElapsed(t *testing.T) {
	keeper, fake, rec := newKeeper(t, shortConfig())

	advance(keeper, fake, 20*time.Second)
	fake.Advance(30 * time.Millisecond)
	before := keeper.Snapshot().Elapsed

	keeper.Pause()
	advance(keeper, fake, 3*time.Minute)
	fake.Advance(70 * time.Millisecond)
	keeper.Resume()

	after := keeper.Snapshot()
	assert.Equal(t, before, after.Elapsed)
	assert.Equal(t, ModeWork, after.Mode)
	assert.Empty(t, rec.ofType(EventRestStart))

	pauses := rec.ofType(EventPauseChange)
	require.Len(t, pauses, 2)
	assert.True(t, pauses[0].Paused)
	assert.False(t, pauses[1].Paused)
}

func TestPauseDuringRestKeepsRest(t *testing.T) {
	keeper, fake, _ := newKeeper(t, shortConfig())

	advance(keeper, fake, time.Minute)
	advance(keeper, fake, 2*time.Second)
	assert.True(t, keeper.TogglePause())
	advance(keeper, fake, time.Minute)

	snapshot := keeper.Snapshot()
	assert.Equal(t, ModeRest, snapshot.Mode)
	assert.Equal(t, 2*time.Second, snapshot.Elapsed)
	assert.True(t, snapshot.Paused)

	assert.False(t, keeper.TogglePause())
	advance(keeper, fake, 8*time.Second)
	assert.Equal(t, ModeWork, keeper.Snapshot().Mode)
}

func TestPauseIsIdempotent(t *testing.T) {
	keeper, _, rec := newKeeper(t, shortConfig())

	keeper.Pause()
	keeper.Pause()
	keeper.Resume()
	keeper.Resume()

	assert.Len(t, rec.ofType(EventPauseChange), 2)
}

func TestSkipInWorkRestartsCountdown(t *testing.T) {
	keeper, fake, rec := newKeeper(t, shortConfig())

	advance(keeper, fake, 40*time.Second)
	keeper.Skip()

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, EventProgress, last.Type)
	assert.Equal(t, time.Minute, last.Remaining)
	assert.Equal(t, 1.0, last.Progress)

	snapshot := keeper.Snapshot()
	assert.Equal(t, ModeWork, snapshot.Mode)
	assert.Equal(t, time.Duration(0), snapshot.Elapsed)
	assert.Empty(t, rec.ofType(EventWorkStart))
}

func TestSkipInRestForcesWork(t *testing.T) {
	keeper, fake, rec := newKeeper(t, shortConfig())

	advance(keeper, fake, time.Minute)
	advance(keeper, fake, time.Second)
	countBefore := keeper.Snapshot().RestCount

	keeper.Skip()

	starts := rec.ofType(EventWorkStart)
	require.Len(t, starts, 1)
	assert.True(t, starts[0].Skipped)

	snapshot := keeper.Snapshot()
	assert.Equal(t, ModeWork, snapshot.Mode)
	assert.Equal(t, countBefore, snapshot.RestCount)
}

func TestEscalationAcrossRests(t *testing.T) {
	keeper, fake, rec := newKeeper(t, shortConfig())

	for i := 0; i < 6; i++ {
		advance(keeper, fake, time.Minute)
		advance(keeper, fake, 10*time.Second)
	}

	var got []escalation.RestType
	for index, event := range rec.ofType(EventRestStart) {
		assert.Equal(t, uint32(index+1), event.RestCount)
		got = append(got, event.RestType)
	}
	assert.Equal(t, []escalation.RestType{
		escalation.EyeRest, escalation.Water, escalation.Walk,
		escalation.Water, escalation.EyeRest, escalation.Walk,
	}, got)
}

func TestApplyWorkMinutesClampsAndRestartsInWork(t *testing.T) {
	keeper, fake, rec := newKeeper(t, shortConfig())

	advance(keeper, fake, 30*time.Second)
	applied := keeper.ApplyWorkMinutes(0)

	assert.Equal(t, 1, applied)
	snapshot := keeper.Snapshot()
	assert.Equal(t, time.Minute, snapshot.Config.WorkDuration)
	assert.Equal(t, time.Duration(0), snapshot.Elapsed)

	assert.Equal(t, 180, keeper.ApplyWorkMinutes(1000))
	last := rec.events[len(rec.events)-1]
	assert.Equal(t, EventProgress, last.Type)
	assert.Equal(t, 180*time.Minute, last.Remaining)
	assert.Equal(t, StatusFocus, last.Status)
}

func TestApplyWorkMinutesDuringRestKeepsRestTimer(t *testing.T) {
	keeper, fake, rec := newKeeper(t, shortConfig())

	advance(keeper, fake, time.Minute)
	advance(keeper, fake, 3*time.Second)
	keeper.ApplyWorkMinutes(45)

	snapshot := keeper.Snapshot()
	assert.Equal(t, ModeRest, snapshot.Mode)
	assert.Equal(t, 3*time.Second, snapshot.Elapsed)
	assert.Equal(t, EventConfigChange, rec.events[len(rec.events)-1].Type)
}

func TestApplyOtherSettingsClamp(t *testing.T) {
	keeper, _, rec := newKeeper(t, shortConfig())

	assert.Equal(t, 5, keeper.ApplyRestSeconds(1))
	assert.Equal(t, 300, keeper.ApplyRestSeconds(999))
	assert.Equal(t, 1, keeper.ApplyWaterInterval(0))
	assert.Equal(t, 20, keeper.ApplyWalkInterval(50))

	config := keeper.Config()
	assert.Equal(t, 300*time.Second, config.RestDuration)
	assert.Equal(t, uint32(1), config.WaterInterval)
	assert.Equal(t, uint32(20), config.WalkInterval)
	assert.Len(t, rec.ofType(EventConfigChange), 4)
}

func TestApplyConfigOnlyRestartsOnWorkChange(t *testing.T) {
	keeper, fake, _ := newKeeper(t, shortConfig())

	advance(keeper, fake, 10*time.Second)
	config := shortConfig()
	config.RestDuration = 30 * time.Second
	keeper.ApplyConfig(config)
	assert.Equal(t, 10*time.Second, keeper.Snapshot().Elapsed)

	config.WorkDuration = 2 * time.Minute
	keeper.ApplyConfig(config)
	assert.Equal(t, time.Duration(0), keeper.Snapshot().Elapsed)
	assert.Equal(t, 30*time.Second, keeper.Config().RestDuration)
}

func TestSubscribeReceivesEventsAndCloses(t *testing.T) {
	keeper, fake, _ := newKeeper(t, shortConfig())
	events := keeper.Subscribe(1024)

	advance(keeper, fake, time.Minute)

	var restStart bool
	for len(events) > 0 {
		if (<-events).Type == EventRestStart {
			restStart = true
		}
	}
	assert.True(t, restStart)

	keeper.Close()
	_, open := <-events
	assert.False(t, open)

	late := keeper.Subscribe(1)
	_, open = <-late
	assert.False(t, open)
}

func TestStartAnnouncesWork(t *testing.T) {
	keeper, _, rec := newKeeper(t, shortConfig())

	keeper.Start()

	require.Len(t, rec.events, 1)
	assert.Equal(t, EventWorkStart, rec.events[0].Type)
	assert.Equal(t, time.Minute, rec.events[0].Remaining)
}

func TestHandlersMayCallBackIntoKeeper(t *testing.T) {
	keeper, fake, rec := newKeeper(t, shortConfig())
	var seenMode Mode
	keeper.OnEvent(func(event Event) {
		if event.Type == EventRestStart {
			seenMode = keeper.Snapshot().Mode
			keeper.Pause()
		}
	})

	advance(keeper, fake, time.Minute)

	assert.Equal(t, ModeRest, seenMode)
	assert.True(t, keeper.Snapshot().Paused)
	pauses := rec.ofType(EventPauseChange)
	require.Len(t, pauses, 1)
	assert.True(t, pauses[0].Paused)
}

func TestHandlersRegisteredDuringDispatchSeeLaterEvents(t *testing.T) {
	keeper, fake, _ := newKeeper(t, shortConfig())
	late := &recorder{}
	registered := false
	keeper.OnEvent(func(Event) {
		if !registered {
			registered = true
			keeper.OnEvent(late.handle)
		}
	})

	advance(keeper, fake, tick)
	assert.Empty(t, late.events)

	advance(keeper, fake, tick)
	assert.Len(t, late.events, 1)
}
