package timekeeper

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenpomodoro/internal/core/model"
)

type idleTicker struct {
	ch chan time.Time
}

func (ticker idleTicker) Chan() <-chan time.Time { return ticker.ch }
func (ticker idleTicker) Stop()                  {}

type recordingAlerter struct {
	mu    sync.Mutex
	modes []model.TimerMode
	err   error
}

func (alerter *recordingAlerter) Alert(mode model.TimerMode) error {
	alerter.mu.Lock()
	defer alerter.mu.Unlock()
	alerter.modes = append(alerter.modes, mode)
	return alerter.err
}

func testSettings(focus, short, long int) model.TimerSettings {
	return model.TimerSettings{
		FocusDuration:      time.Duration(focus) * time.Second,
		ShortBreakDuration: time.Duration(short) * time.Second,
		LongBreakDuration:  time.Duration(long) * time.Second,
	}
}

// newManualKeeper returns a keeper whose ticks only happen through advance.
func newManualKeeper(t *testing.T, settings model.TimerSettings) *TimeKeeper {
	t.Helper()
	keeper := New(settings, Config{
		NewTicker: func(time.Duration) Ticker {
			return idleTicker{ch: make(chan time.Time)}
		},
	})
	t.Cleanup(keeper.Close)
	return keeper
}

func advance(keeper *TimeKeeper, ticks int) {
	for i := 0; i < ticks; i++ {
		keeper.mu.Lock()
		generation := keeper.generation
		keeper.mu.Unlock()
		keeper.tick(generation)
	}
}

func countCompletions(keeper *TimeKeeper) *[]model.TimerMode {
	var mu sync.Mutex
	modes := &[]model.TimerMode{}
	keeper.OnSessionComplete(func(mode model.TimerMode) {
		mu.Lock()
		defer mu.Unlock()
		*modes = append(*modes, mode)
	})
	return modes
}

func TestNewStartsPausedInFocus(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(1500, 300, 900))

	state := keeper.Snapshot()
	assert.Equal(t, model.ModeFocus, state.Mode)
	assert.Equal(t, 1500*time.Second, state.TimeLeft)
	assert.Equal(t, 1500*time.Second, state.Duration)
	assert.False(t, state.Active)
}

func TestNewFallsBackToDefaultsOnInvalidSettings(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(0, 300, 900))

	assert.Equal(t, model.DefaultTimerSettings(), keeper.Settings())
	assert.Equal(t, 25*time.Minute, keeper.Snapshot().TimeLeft)
}

func TestSwitchModeResetsAndStops(t *testing.T) {
	for _, running := range []bool{false, true} {
		keeper := newManualKeeper(t, testSettings(1500, 300, 900))
		if running {
			require.True(t, keeper.Toggle())
			advance(keeper, 10)
		}

		keeper.SwitchMode(model.ModeLongBreak)

		state := keeper.Snapshot()
		assert.Equal(t, model.ModeLongBreak, state.Mode)
		assert.Equal(t, 900*time.Second, state.TimeLeft)
		assert.False(t, state.Active)
	}
}

func TestSwitchModeIgnoresUnknownMode(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(1500, 300, 900))

	keeper.SwitchMode(model.TimerMode("nap"))

	assert.Equal(t, model.ModeFocus, keeper.Snapshot().Mode)
}

func TestCountdownCompletesExactlyOnce(t *testing.T) {
	for _, seconds := range []int{1, 2, 7, 60} {
		keeper := newManualKeeper(t, testSettings(seconds, 300, 900))
		completions := countCompletions(keeper)

		keeper.Toggle()
		advance(keeper, seconds)

		state := keeper.Snapshot()
		assert.Equal(t, time.Duration(0), state.TimeLeft, "duration %d", seconds)
		assert.False(t, state.Active, "duration %d", seconds)
		assert.Equal(t, []model.TimerMode{model.ModeFocus}, *completions, "duration %d", seconds)

		advance(keeper, 3)
		assert.Len(t, *completions, 1, "duration %d", seconds)
	}
}

func TestToggleTwiceWithoutTickLeavesTimeLeft(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(1500, 300, 900))
	keeper.Toggle()
	advance(keeper, 5)
	before := keeper.Snapshot().TimeLeft

	assert.False(t, keeper.Toggle())
	assert.True(t, keeper.Toggle())
	assert.False(t, keeper.Toggle())
	assert.True(t, keeper.Toggle())

	assert.Equal(t, before, keeper.Snapshot().TimeLeft)
}

func TestShortBreakScenario(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(1500, 300, 900))
	completions := countCompletions(keeper)
	require.Equal(t, 1500*time.Second, keeper.Snapshot().TimeLeft)

	keeper.SwitchMode(model.ModeShortBreak)
	state := keeper.Snapshot()
	assert.Equal(t, 300*time.Second, state.TimeLeft)
	assert.False(t, state.Active)

	keeper.Toggle()
	assert.True(t, keeper.Snapshot().Active)

	advance(keeper, 300)
	state = keeper.Snapshot()
	assert.Equal(t, time.Duration(0), state.TimeLeft)
	assert.False(t, state.Active)
	assert.Equal(t, []model.TimerMode{model.ModeShortBreak}, *completions)
}

func TestResetRestoresDurationAndStops(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(1500, 300, 900))
	keeper.Toggle()
	advance(keeper, 42)

	keeper.Reset()

	state := keeper.Snapshot()
	assert.Equal(t, 1500*time.Second, state.TimeLeft)
	assert.False(t, state.Active)
}

func TestStaleTickIsIgnored(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(1500, 300, 900))
	keeper.Toggle()
	keeper.mu.Lock()
	stale := keeper.generation
	keeper.mu.Unlock()

	keeper.Reset()
	keeper.Toggle()

	assert.False(t, keeper.tick(stale))
	assert.Equal(t, 1500*time.Second, keeper.Snapshot().TimeLeft)
}

func TestPausedTickDoesNothing(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(1500, 300, 900))

	advance(keeper, 3)

	assert.Equal(t, 1500*time.Second, keeper.Snapshot().TimeLeft)
}

func TestUpdateSettingsResetsRunningTimer(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(1500, 300, 900))
	keeper.SwitchMode(model.ModeShortBreak)
	keeper.Toggle()
	advance(keeper, 10)

	require.NoError(t, keeper.UpdateSettings(testSettings(1200, 240, 600)))

	state := keeper.Snapshot()
	assert.Equal(t, model.ModeShortBreak, state.Mode)
	assert.Equal(t, 240*time.Second, state.TimeLeft)
	assert.False(t, state.Active)
}

func TestUpdateSettingsRejectsInvalidDurations(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(1500, 300, 900))

	err := keeper.UpdateSettings(testSettings(1500, 0, 900))

	assert.ErrorIs(t, err, model.ErrInvalidDuration)
	assert.Equal(t, 300*time.Second, keeper.Settings().ShortBreakDuration)
}

func TestToggleAtZeroCompletesOnNextTick(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(2, 300, 900))
	completions := countCompletions(keeper)
	keeper.Toggle()
	advance(keeper, 2)
	require.Len(t, *completions, 1)

	keeper.Toggle()
	assert.True(t, keeper.Snapshot().Active)
	advance(keeper, 1)

	assert.False(t, keeper.Snapshot().Active)
	assert.Len(t, *completions, 2)
}

func TestAlerterFailureIsSwallowed(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(1, 300, 900))
	alerter := &recordingAlerter{err: errors.New("no audio device")}
	keeper.SetAlerter(alerter)
	completions := countCompletions(keeper)

	keeper.Toggle()
	advance(keeper, 1)

	assert.Equal(t, []model.TimerMode{model.ModeFocus}, alerter.modes)
	assert.Len(t, *completions, 1)
	assert.False(t, keeper.Snapshot().Active)
}

type alerterFunc func(mode model.TimerMode) error

func (fn alerterFunc) Alert(mode model.TimerMode) error { return fn(mode) }

func drain(events <-chan Event) []Event {
	var out []Event
	for len(events) > 0 {
		out = append(out, <-events)
	}
	return out
}

func TestCompletionEventPrecedesAlerterTransitions(t *testing.T) {
	cases := []struct {
		name  string
		react func(keeper *TimeKeeper)
	}{
		{"toggle", func(keeper *TimeKeeper) { keeper.Toggle() }},
		{"switch mode", func(keeper *TimeKeeper) { keeper.SwitchMode(model.ModeShortBreak) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keeper := newManualKeeper(t, testSettings(1, 300, 900))
			keeper.SetAlerter(alerterFunc(func(model.TimerMode) error {
				tc.react(keeper)
				return nil
			}))
			events := keeper.Subscribe(16)

			keeper.Toggle()
			advance(keeper, 1)

			got := drain(events)
			require.Len(t, got, 3)
			assert.Equal(t, EventStateChange, got[0].Type)
			assert.Equal(t, EventSessionComplete, got[1].Type)
			assert.Equal(t, model.ModeFocus, got[1].State.Mode)
			assert.False(t, got[1].State.Active)
			assert.Equal(t, EventStateChange, got[2].Type)
			assert.Equal(t, keeper.Snapshot(), got[2].State)
		})
	}
}

func TestHooksRunBeforeCompletionIsPublished(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(2, 300, 900))
	events := keeper.Subscribe(16)
	var seenByHook []EventType
	keeper.OnSessionComplete(func(model.TimerMode) {
		for _, event := range drain(events) {
			seenByHook = append(seenByHook, event.Type)
		}
	})

	keeper.Toggle()
	advance(keeper, 2)

	assert.Equal(t, []EventType{EventStateChange, EventProgress}, seenByHook)
	got := drain(events)
	require.Len(t, got, 1)
	assert.Equal(t, EventSessionComplete, got[0].Type)
}

func TestSubscribersReceiveTransitions(t *testing.T) {
	keeper := newManualKeeper(t, testSettings(2, 300, 900))
	events := keeper.Subscribe(16)

	keeper.Toggle()
	advance(keeper, 2)

	var types []EventType
	for len(events) > 0 {
		types = append(types, (<-events).Type)
	}
	assert.Equal(t, []EventType{EventStateChange, EventProgress, EventSessionComplete}, types)
}

func TestTickerDrivesCountdownToCompletion(t *testing.T) {
	keeper := New(testSettings(3, 300, 900), Config{TickInterval: 2 * time.Millisecond})
	t.Cleanup(keeper.Close)
	events := keeper.Subscribe(32)

	keeper.Toggle()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Type != EventSessionComplete {
				continue
			}
			assert.Equal(t, model.ModeFocus, event.State.Mode)
			assert.Equal(t, time.Duration(0), keeper.Snapshot().TimeLeft)
			assert.False(t, keeper.Snapshot().Active)
			return
		case <-timeout:
			t.Fatalf("session did not complete, state %+v", keeper.Snapshot())
		}
	}
}

func TestCloseStopsObservers(t *testing.T) {
	keeper := New(testSettings(3, 300, 900), Config{})
	events := keeper.Subscribe(1)

	keeper.Close()

	_, open := <-events
	assert.False(t, open)
	_, open = <-keeper.Subscribe(1)
	assert.False(t, open)
	assert.False(t, keeper.Toggle())
}
