// Package terminal is the keyboard-driven terminal surface for the timer
// and the task list.
package terminal

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"zenpomodoro/internal/core/controller"
	"zenpomodoro/internal/core/model"
	"zenpomodoro/internal/core/timekeeper"
	"zenpomodoro/internal/planner"
	"zenpomodoro/internal/platform"
)

type inputMode int

const (
	inputNone inputMode = iota
	inputTask
	inputGoal
)

type (
	timerEventMsg   struct{ event timekeeper.Event }
	eventsClosedMsg struct{}
	noticeMsg       string
	planDoneMsg     struct {
		tasks []model.Task
		err   error
	}
)

// Notifier forwards controller notices into a running program.
func Notifier(send func(tea.Msg)) controller.Notifier {
	return controller.NotifierFunc(func(message string) {
		send(noticeMsg(message))
	})
}

// Model is the bubbletea model for the terminal surface.
type Model struct {
	ctrl     *controller.Controller
	events   <-chan timekeeper.Event
	input    textinput.Model
	spinner  spinner.Model
	progress progress.Model

	mode       inputMode
	state      model.TimerState
	tasks      []model.Task
	selectedID string
	cursor     int
	notice     string
	planning   bool
	width      int
	quitting   bool
}

// New subscribes to the controller's timer and loads the task list.
func New(ctrl *controller.Controller) *Model {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 50

	m := &Model{
		ctrl:     ctrl,
		events:   ctrl.Timer().Subscribe(64),
		input:    input,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.progress.Width = 40
	m.state = ctrl.Timer().Snapshot()
	m.reload()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		target := msg.Width - 8
		if target > 60 {
			target = 60
		}
		if target < 10 {
			target = 10
		}
		m.progress.Width = target
		return m, nil

	case timerEventMsg:
		m.state = msg.event.State
		if msg.event.Type == timekeeper.EventSessionComplete {
			m.notice = platform.CompletionMessage(msg.event.State.Mode)
			m.reload()
		}
		return m, waitForEvent(m.events)

	case eventsClosedMsg:
		return m, nil

	case noticeMsg:
		m.notice = string(msg)
		return m, nil

	case planDoneMsg:
		m.planning = false
		if msg.err == nil {
			m.notice = planSummary(len(msg.tasks))
		}
		m.reload()
		return m, nil

	case spinner.TickMsg:
		if !m.planning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	timer := m.ctrl.Timer()
	store := m.ctrl.Tasks()

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "1", "2", "3":
		index, _ := strconv.Atoi(msg.String())
		timer.SwitchMode(model.Modes[index-1])
	case " ", "space", "s":
		timer.Toggle()
	case "r":
		timer.Reset()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "enter":
		if task, ok := m.cursorTask(); ok {
			_ = store.Select(task.ID)
		}
	case "x":
		if task, ok := m.cursorTask(); ok {
			store.ToggleComplete(task.ID)
		}
	case "d", "delete":
		if task, ok := m.cursorTask(); ok {
			store.Delete(task.ID)
		}
	case "a":
		return m, m.openInput(inputTask, "Task title, append *N for pomodoros")
	case "g":
		if m.planning {
			m.notice = "A breakdown is already running."
			return m, nil
		}
		return m, m.openInput(inputGoal, "Describe a goal to break down")
	case "esc":
		m.notice = ""
	}

	m.state = timer.Snapshot()
	m.reload()
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.closeInput()
		if value == "" {
			return m, nil
		}
		if mode == inputTask {
			title, estimate := parseTaskInput(value)
			if _, err := m.ctrl.Tasks().Add(title, estimate); err != nil {
				m.notice = err.Error()
			}
			m.reload()
			return m, nil
		}
		m.planning = true
		m.notice = ""
		return m, tea.Batch(m.spinner.Tick, planCmd(m.ctrl, value))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) openInput(mode inputMode, placeholder string) tea.Cmd {
	m.mode = mode
	m.input.Reset()
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) reload() {
	store := m.ctrl.Tasks()
	m.tasks = store.List()
	m.selectedID = store.SelectedID()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) cursorTask() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func waitForEvent(events <-chan timekeeper.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return timerEventMsg{event: event}
	}
}

func planCmd(ctrl *controller.Controller, goal string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), planner.DefaultRequestTimeout)
		defer cancel()
		tasks, err := ctrl.PlanFromGoal(ctx, goal)
		if errors.Is(err, controller.ErrPlanInProgress) {
			return noticeMsg("A breakdown is already running.")
		}
		return planDoneMsg{tasks: tasks, err: err}
	}
}

// parseTaskInput splits "title *N" into a title and an estimate.
func parseTaskInput(value string) (string, int) {
	index := strings.LastIndex(value, "*")
	if index <= 0 {
		return value, 1
	}
	estimate, err := strconv.Atoi(strings.TrimSpace(value[index+1:]))
	if err != nil || estimate <= 0 {
		return value, 1
	}
	return strings.TrimSpace(value[:index]), estimate
}

func planSummary(count int) string {
	switch count {
	case 0:
		return "No tasks were suggested for that goal."
	case 1:
		return "Added 1 task."
	default:
		return "Added " + strconv.Itoa(count) + " tasks."
	}
}
