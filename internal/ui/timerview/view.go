// Package timerview renders the countdown, mode switch and timer controls.
package timerview

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"zenpomodoro/internal/core/model"
)

// Timer is the subset of the timer state machine the view drives.
type Timer interface {
	Snapshot() model.TimerState
	SwitchMode(mode model.TimerMode)
	Toggle() bool
	Reset()
}

var modeColors = map[model.TimerMode]color.NRGBA{
	model.ModeFocus:      {R: 239, G: 68, B: 68, A: 255},
	model.ModeShortBreak: {R: 20, G: 184, B: 166, A: 255},
	model.ModeLongBreak:  {R: 99, G: 102, B: 241, A: 255},
}

// ModeColor returns the accent color for mode.
func ModeColor(mode model.TimerMode) color.NRGBA {
	if value, ok := modeColors[mode]; ok {
		return value
	}
	return modeColors[model.ModeFocus]
}

// View is the timer half of the main window.
type View struct {
	timer        Timer
	modeButtons  map[model.TimerMode]*widget.Button
	clock        *canvas.Text
	modeLabel    *canvas.Text
	progress     *widget.ProgressBar
	toggleButton *widget.Button
	resetButton  *widget.Button
	taskLabel    *widget.Label
	content      fyne.CanvasObject
}

// New builds the view. Call Refresh after every timer event.
func New(timer Timer) *View {
	view := &View{
		timer:       timer,
		modeButtons: make(map[model.TimerMode]*widget.Button, len(model.Modes)),
	}

	modeRow := container.NewHBox(layout.NewSpacer())
	for _, mode := range model.Modes {
		mode := mode
		button := widget.NewButton(mode.Label(), func() {
			view.timer.SwitchMode(mode)
			view.Refresh()
		})
		view.modeButtons[mode] = button
		modeRow.Add(button)
	}
	modeRow.Add(layout.NewSpacer())

	view.clock = canvas.NewText("--:--", ModeColor(model.ModeFocus))
	view.clock.Alignment = fyne.TextAlignCenter
	view.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.clock.TextSize = 72

	view.modeLabel = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	view.modeLabel.Alignment = fyne.TextAlignCenter
	view.modeLabel.TextSize = 16

	view.progress = widget.NewProgressBar()
	view.progress.TextFormatter = func() string { return "" }

	view.toggleButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		view.timer.Toggle()
		view.Refresh()
	})
	view.toggleButton.Importance = widget.HighImportance
	view.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		view.timer.Reset()
		view.Refresh()
	})

	view.taskLabel = widget.NewLabel("")
	view.taskLabel.Alignment = fyne.TextAlignCenter
	view.taskLabel.Truncation = fyne.TextTruncateEllipsis

	controls := container.NewHBox(layout.NewSpacer(), view.toggleButton, view.resetButton, layout.NewSpacer())
	currentTaskTitle := widget.NewLabelWithStyle("CURRENT TASK", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	view.content = container.NewVBox(
		modeRow,
		layout.NewSpacer(),
		view.clock,
		view.modeLabel,
		view.progress,
		controls,
		layout.NewSpacer(),
		currentTaskTitle,
		view.taskLabel,
	)

	view.SetCurrentTask("")
	view.Refresh()
	return view
}

// Content returns the root canvas object.
func (view *View) Content() fyne.CanvasObject {
	return view.content
}

// SetCurrentTask shows the selected task's title. Empty shows a hint.
func (view *View) SetCurrentTask(title string) {
	if title == "" {
		view.taskLabel.TextStyle = fyne.TextStyle{Italic: true}
		view.taskLabel.SetText("Select a task to focus on")
		return
	}
	view.taskLabel.TextStyle = fyne.TextStyle{}
	view.taskLabel.SetText(title)
}

// Refresh redraws the view from the timer's current state.
func (view *View) Refresh() {
	state := view.timer.Snapshot()
	accent := ModeColor(state.Mode)

	view.clock.Text = model.FormatClock(state.TimeLeft)
	view.clock.Color = accent
	view.clock.Refresh()

	status := "paused"
	if state.Active {
		status = "running"
	}
	view.modeLabel.Text = state.Mode.Label() + " · " + status
	view.modeLabel.Refresh()

	view.progress.SetValue(state.Progress())

	if state.Active {
		view.toggleButton.SetText("Pause")
		view.toggleButton.SetIcon(theme.MediaPauseIcon())
	} else {
		view.toggleButton.SetText("Start")
		view.toggleButton.SetIcon(theme.MediaPlayIcon())
	}

	for mode, button := range view.modeButtons {
		importance := widget.LowImportance
		if mode == state.Mode {
			importance = widget.HighImportance
		}
		if button.Importance != importance {
			button.Importance = importance
			button.Refresh()
		}
	}
}
