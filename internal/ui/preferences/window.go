package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	onCancel      func()
	focus         *widget.Entry
	shortBreak    *widget.Entry
	longBreak     *widget.Entry
	autoBreaks    *widget.Check
	autoPomodoros *widget.Check
	launchAtLogin *widget.Check
	model         *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("ZenPomodoro Settings")

	focus := widget.NewEntry()
	shortBreak := widget.NewEntry()
	longBreak := widget.NewEntry()

	autoBreaks := widget.NewCheck("Auto-start breaks", nil)
	autoPomodoros := widget.NewCheck("Auto-start pomodoros", nil)
	launchAtLogin := widget.NewCheck("Launch at login", nil)

	modelEntry := widget.NewEntry()
	modelEntry.SetPlaceHolder("gemini model name")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus"), focus, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), shortBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), longBreak, widget.NewLabel("min")),
		autoBreaks,
		autoPomodoros,
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		launchAtLogin,
		widget.NewLabel("AI model"),
		modelEntry,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(380, 420))

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		focus:         focus,
		shortBreak:    shortBreak,
		longBreak:     longBreak,
		autoBreaks:    autoBreaks,
		autoPomodoros: autoPomodoros,
		launchAtLogin: launchAtLogin,
		model:         modelEntry,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		prefs.UpdateSettings(prefs.settings)
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}
	window.SetCloseIntercept(cancelButton.OnTapped)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel registers a callback for a dismissed window.
func (prefs *Window) SetOnCancel(onCancel func()) {
	prefs.onCancel = onCancel
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.focus.SetText(formatMinutes(settings.FocusDuration))
	prefs.shortBreak.SetText(formatMinutes(settings.ShortBreakDuration))
	prefs.longBreak.SetText(formatMinutes(settings.LongBreakDuration))
	prefs.autoBreaks.SetChecked(settings.AutoStartBreaks)
	prefs.autoPomodoros.SetChecked(settings.AutoStartPomodoros)
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
	prefs.model.SetText(settings.AIModel)
}

// Settings returns the last saved values.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if duration, ok := parseMinutes(prefs.focus.Text); ok {
		settings.FocusDuration = duration
	}
	if duration, ok := parseMinutes(prefs.shortBreak.Text); ok {
		settings.ShortBreakDuration = duration
	}
	if duration, ok := parseMinutes(prefs.longBreak.Text); ok {
		settings.LongBreakDuration = duration
	}

	settings.AutoStartBreaks = prefs.autoBreaks.Checked
	settings.AutoStartPomodoros = prefs.autoPomodoros.Checked
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked
	if modelName := strings.TrimSpace(prefs.model.Text); modelName != "" {
		settings.AIModel = modelName
	}

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func formatMinutes(duration time.Duration) string {
	return fmt.Sprintf("%d", int(duration.Minutes()))
}

// parseMinutes accepts whole minutes in (0, MaxSessionDuration].
func parseMinutes(value string) (time.Duration, bool) {
	minutes, ok := parsePositiveInt(strings.TrimSpace(value))
	if !ok {
		return 0, false
	}
	duration := time.Duration(minutes) * time.Minute
	if duration > MaxSessionDuration {
		return 0, false
	}
	return duration, true
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
