package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"zenpomodoro/internal/core/model"
)

var (
	focusColor = lipgloss.Color("#EF4444")
	shortColor = lipgloss.Color("#14B8A6")
	longColor  = lipgloss.Color("#6366F1")
	mutedColor = lipgloss.Color("#6B7280")
	fgColor    = lipgloss.Color("#F9FAFB")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(focusColor).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Strikethrough(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

func modeColor(mode model.TimerMode) lipgloss.Color {
	switch mode {
	case model.ModeShortBreak:
		return shortColor
	case model.ModeLongBreak:
		return longColor
	default:
		return focusColor
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("ZenPomodoro") + "\n")
	b.WriteString(m.renderTabs() + "\n")
	b.WriteString(m.renderClock() + "\n")
	b.WriteString(panelStyle.Render(m.renderTasks()) + "\n")

	if m.mode != inputNone {
		b.WriteString(m.input.View() + "\n")
	}
	if m.planning {
		b.WriteString(m.spinner.View() + " Planning tasks...\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(model.Modes))
	for i, mode := range model.Modes {
		label := fmt.Sprintf("%d %s", i+1, mode.Label())
		style := tabStyle
		if mode == m.state.Mode {
			style = style.Foreground(modeColor(mode)).Bold(true).Underline(true)
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderClock() string {
	status := "paused"
	if m.state.Active {
		status = "running"
	}
	clock := clockStyle.Foreground(modeColor(m.state.Mode)).Render(model.FormatClock(m.state.TimeLeft))
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Center, clock, tabStyle.Render(status)),
		"  " + m.progress.ViewAs(m.state.Progress()),
	}

	current := "no task selected"
	for _, task := range m.tasks {
		if task.ID == m.selectedID {
			current = task.Title
			break
		}
	}
	lines = append(lines, "  Current: "+truncateLabel(current, m.contentWidth()-11))
	return strings.Join(lines, "\n")
}

func (m *Model) renderTasks() string {
	summary := m.ctrl.Tasks().Summary()
	header := fmt.Sprintf("Tasks %d/%d done · %d/%d pomodoros",
		summary.CompletedTasks, summary.Tasks, summary.CompletedPomodoros, summary.EstimatedPomodoros)
	if len(m.tasks) == 0 {
		return header + "\n" + helpStyle.Render("No tasks yet. Press a to add one or g to plan a goal.")
	}

	width := m.contentWidth() - 16
	lines := []string{header}
	for i, task := range m.tasks {
		pointer := "  "
		if i == m.cursor {
			pointer = "> "
		}
		check := "[ ]"
		if task.Completed {
			check = "[x]"
		}
		marker := " "
		if task.ID == m.selectedID {
			marker = "*"
		}
		title := truncateLabel(task.Title, width)
		switch {
		case task.Completed:
			title = doneStyle.Render(title)
		case i == m.cursor:
			title = cursorStyle.Render(title)
		}
		lines = append(lines, fmt.Sprintf("%s%s%s %s  %d/%d", pointer, check, marker, title, task.CompletedPomodoros, task.EstimatedPomodoros))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) helpLine() string {
	if m.mode != inputNone {
		return "enter confirm · esc cancel"
	}
	return "1/2/3 mode · space start/pause · r reset · a add · g plan goal · j/k move · enter select · x done · d delete · q quit"
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func truncateLabel(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= max {
		return text
	}
	return ansi.Truncate(text, max, "…")
}
