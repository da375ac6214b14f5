package preferences

import (
	"time"

	"zenpomodoro/internal/core/model"
	"zenpomodoro/internal/planner"
)

// MaxSessionDuration caps every configurable session length.
const MaxSessionDuration = 180 * time.Minute

// Settings defines editable user preferences.
type Settings struct {
	FocusDuration      time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	AutoStartBreaks    bool
	AutoStartPomodoros bool

	LaunchAtLogin bool
	AIModel       string
}

// DefaultSettings returns default settings for ZenPomodoro.
func DefaultSettings() Settings {
	timer := model.DefaultTimerSettings()
	return Settings{
		FocusDuration:      timer.FocusDuration,
		ShortBreakDuration: timer.ShortBreakDuration,
		LongBreakDuration:  timer.LongBreakDuration,
		AIModel:            planner.DefaultModel,
	}
}

// TimerSettings converts settings to the timer's configuration.
func (settings Settings) TimerSettings() model.TimerSettings {
	return model.TimerSettings{
		FocusDuration:      settings.FocusDuration,
		ShortBreakDuration: settings.ShortBreakDuration,
		LongBreakDuration:  settings.LongBreakDuration,
		AutoStartBreaks:    settings.AutoStartBreaks,
		AutoStartPomodoros: settings.AutoStartPomodoros,
	}
}
