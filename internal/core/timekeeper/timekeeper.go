package timekeeper

import (
	"log"
	"sync"
	"time"

	"zenpomodoro/internal/core/model"
)

// Alerter plays a short cue when a session ends.
type Alerter interface {
	Alert(mode model.TimerMode) error
}

// Ticker is the subset of time.Ticker used by the ticking loop.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type clockTicker struct {
	*time.Ticker
}

func (ticker clockTicker) Chan() <-chan time.Time {
	return ticker.C
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	// TickInterval is the wall-clock period between ticks. Every tick
	// removes exactly one second from the countdown.
	TickInterval time.Duration
	NewTicker    func(time.Duration) Ticker
}

// TimeKeeper is the pomodoro countdown state machine.
type TimeKeeper struct {
	mu         sync.Mutex
	settings   model.TimerSettings
	options    Config
	mode       model.TimerMode
	remaining  time.Duration
	active     bool
	generation uint64
	stopCh     chan struct{}
	events     []chan Event
	hooks      []func(model.TimerMode)
	alerter    Alerter
	closed     bool
}

// New creates a TimeKeeper in focus mode with a full, paused countdown.
// Invalid settings are replaced by the defaults.
func New(settings model.TimerSettings, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.NewTicker == nil {
		options.NewTicker = func(interval time.Duration) Ticker {
			return clockTicker{time.NewTicker(interval)}
		}
	}
	settings = settings.Truncated()
	if err := settings.Validate(); err != nil {
		log.Printf("timekeeper: %v, using defaults", err)
		settings = model.DefaultTimerSettings()
	}

	keeper := &TimeKeeper{
		settings: settings,
		options:  options,
		mode:     model.ModeFocus,
	}
	keeper.remaining = settings.Duration(keeper.mode)
	return keeper
}

// SetAlerter injects the session-complete cue.
func (keeper *TimeKeeper) SetAlerter(alerter Alerter) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.alerter = alerter
}

// OnSessionComplete registers a hook that runs each time a countdown
// reaches zero, inside the completing transition and before subscribers
// see the event. Hooks must not call back into the TimeKeeper.
func (keeper *TimeKeeper) OnSessionComplete(hook func(model.TimerMode)) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.hooks = append(keeper.hooks, hook)
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Snapshot returns the current timer state.
func (keeper *TimeKeeper) Snapshot() model.TimerState {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.stateLocked()
}

// Settings returns the active timer settings.
func (keeper *TimeKeeper) Settings() model.TimerSettings {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.settings
}

// SwitchMode moves to mode with a full, paused countdown. A running
// session is stopped silently.
func (keeper *TimeKeeper) SwitchMode(mode model.TimerMode) {
	if !mode.Valid() {
		return
	}
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.mode = mode
	keeper.resetLocked()
	keeper.emitLocked(keeper.eventLocked(EventStateChange))
	keeper.mu.Unlock()
}

// Toggle starts a paused countdown or pauses a running one. It returns
// whether the countdown is running afterwards.
func (keeper *TimeKeeper) Toggle() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return false
	}
	if keeper.active {
		keeper.active = false
		keeper.cancelTickLocked()
	} else {
		keeper.active = true
		keeper.startTickLocked()
	}
	keeper.emitLocked(keeper.eventLocked(EventStateChange))
	return keeper.active
}

// Reset restores the full duration of the current mode and pauses.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	keeper.resetLocked()
	keeper.emitLocked(keeper.eventLocked(EventStateChange))
}

// UpdateSettings replaces the durations and resets the current mode to
// its new duration.
func (keeper *TimeKeeper) UpdateSettings(settings model.TimerSettings) error {
	settings = settings.Truncated()
	if err := settings.Validate(); err != nil {
		return err
	}
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.settings = settings
	if keeper.closed {
		return nil
	}
	keeper.resetLocked()
	keeper.emitLocked(keeper.eventLocked(EventStateChange))
	return nil
}

// Close stops ticking and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.active = false
	keeper.cancelTickLocked()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) run(generation uint64, ticker Ticker, stop <-chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			if !keeper.tick(generation) {
				return
			}
		}
	}
}

// tick advances the countdown by one second. It returns false once the
// loop that issued it should exit.
func (keeper *TimeKeeper) tick(generation uint64) bool {
	keeper.mu.Lock()
	if keeper.closed || !keeper.active || generation != keeper.generation {
		keeper.mu.Unlock()
		return false
	}

	if keeper.remaining > time.Second {
		keeper.remaining -= time.Second
		keeper.emitLocked(keeper.eventLocked(EventProgress))
		keeper.mu.Unlock()
		return true
	}

	keeper.remaining = 0
	keeper.active = false
	keeper.cancelTickLocked()
	mode := keeper.mode
	for _, hook := range keeper.hooks {
		hook(mode)
	}
	keeper.emitLocked(keeper.eventLocked(EventSessionComplete))
	alerter := keeper.alerter
	keeper.mu.Unlock()

	if alerter != nil {
		if err := alerter.Alert(mode); err != nil {
			log.Printf("timekeeper: alert failed: %v", err)
		}
	}
	return false
}

func (keeper *TimeKeeper) resetLocked() {
	keeper.remaining = keeper.settings.Duration(keeper.mode)
	keeper.active = false
	keeper.cancelTickLocked()
}

// startTickLocked cancels any pending tick before scheduling the next
// one, so at most one ticking loop is ever live.
func (keeper *TimeKeeper) startTickLocked() {
	keeper.cancelTickLocked()
	stop := make(chan struct{})
	keeper.stopCh = stop
	go keeper.run(keeper.generation, keeper.options.NewTicker(keeper.options.TickInterval), stop)
}

func (keeper *TimeKeeper) cancelTickLocked() {
	keeper.generation++
	if keeper.stopCh != nil {
		close(keeper.stopCh)
		keeper.stopCh = nil
	}
}

func (keeper *TimeKeeper) stateLocked() model.TimerState {
	return model.TimerState{
		Mode:     keeper.mode,
		TimeLeft: keeper.remaining,
		Duration: keeper.settings.Duration(keeper.mode),
		Active:   keeper.active,
	}
}

func (keeper *TimeKeeper) eventLocked(eventType EventType) Event {
	return Event{
		Type:  eventType,
		State: keeper.stateLocked(),
		At:    time.Now(),
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
