package model

import (
	"errors"
	"fmt"
	"time"
)

// TimerMode identifies one of the three mutually exclusive timer phases.
type TimerMode string

const (
	ModeFocus      TimerMode = "focus"
	ModeShortBreak TimerMode = "short_break"
	ModeLongBreak  TimerMode = "long_break"
)

// Modes lists the timer modes in display order.
var Modes = []TimerMode{ModeFocus, ModeShortBreak, ModeLongBreak}

// Label returns the human-readable name of the mode.
func (mode TimerMode) Label() string {
	switch mode {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return string(mode)
	}
}

// Valid reports whether mode is one of the known modes.
func (mode TimerMode) Valid() bool {
	switch mode {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}

// ParseTimerMode converts a stored or typed value into a TimerMode.
func ParseTimerMode(value string) (TimerMode, error) {
	mode := TimerMode(value)
	if !mode.Valid() {
		return "", fmt.Errorf("unknown timer mode %q", value)
	}
	return mode, nil
}

// ErrInvalidDuration is returned for non-positive durations.
var ErrInvalidDuration = errors.New("duration must be at least one second")

// TimerSettings contains the durations used by the timer state machine.
type TimerSettings struct {
	FocusDuration      time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration

	// Auto-start preferences, saved alongside the durations.
	AutoStartBreaks    bool
	AutoStartPomodoros bool
}

// DefaultTimerSettings returns the classic 25/5/15 minute schedule.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		FocusDuration:      25 * time.Minute,
		ShortBreakDuration: 5 * time.Minute,
		LongBreakDuration:  15 * time.Minute,
	}
}

// Duration returns the configured duration for mode.
func (settings TimerSettings) Duration(mode TimerMode) time.Duration {
	switch mode {
	case ModeShortBreak:
		return settings.ShortBreakDuration
	case ModeLongBreak:
		return settings.LongBreakDuration
	default:
		return settings.FocusDuration
	}
}

// Validate checks that every duration is a positive whole number of seconds.
func (settings TimerSettings) Validate() error {
	for _, mode := range Modes {
		if settings.Duration(mode) < time.Second {
			return fmt.Errorf("%s: %w", mode.Label(), ErrInvalidDuration)
		}
	}
	return nil
}

// Truncated returns a copy with every duration rounded down to whole seconds.
func (settings TimerSettings) Truncated() TimerSettings {
	settings.FocusDuration = settings.FocusDuration.Truncate(time.Second)
	settings.ShortBreakDuration = settings.ShortBreakDuration.Truncate(time.Second)
	settings.LongBreakDuration = settings.LongBreakDuration.Truncate(time.Second)
	return settings
}

// TimerState is a point-in-time view of the timer.
type TimerState struct {
	Mode     TimerMode
	TimeLeft time.Duration
	Duration time.Duration
	Active   bool
}

// Progress returns the elapsed fraction of the current session in [0, 1].
func (state TimerState) Progress() float64 {
	if state.Duration <= 0 {
		return 1
	}
	progress := float64(state.Duration-state.TimeLeft) / float64(state.Duration)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// FormatClock renders a duration as MM:SS, clamping negatives to zero.
func FormatClock(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
