package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zenpomodoro/internal/core/model"
	"zenpomodoro/internal/planner"
)

var breakdownJSON bool

var breakdownCmd = &cobra.Command{
	Use:   "breakdown <goal>",
	Short: "Print an AI breakdown of a goal into pomodoro-sized tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBreakdown,
}

var (
	breakdownTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#EF4444"))

	breakdownCountStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6B7280"))
)

func init() {
	breakdownCmd.Flags().BoolVar(&breakdownJSON, "json", false, "print the tasks as JSON")
}

func runBreakdown(cmd *cobra.Command, args []string) error {
	goal := strings.Join(args, " ")
	settings, _ := loadSettings()

	ctx, cancel := context.WithTimeout(cmd.Context(), planner.DefaultRequestTimeout)
	defer cancel()

	drafts, err := newPlanner(settings).Breakdown(ctx, goal)
	if err != nil {
		return fmt.Errorf("breakdown: %w", err)
	}

	format := formatPlain
	switch {
	case breakdownJSON:
		format = formatJSON
	case term.IsTerminal(int(os.Stdout.Fd())):
		format = formatStyled
	}
	return writeBreakdown(cmd.OutOrStdout(), goal, drafts, format)
}

type breakdownFormat int

const (
	formatPlain breakdownFormat = iota
	formatStyled
	formatJSON
)

func writeBreakdown(w io.Writer, goal string, drafts []model.Draft, format breakdownFormat) error {
	if format == formatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if drafts == nil {
			drafts = []model.Draft{}
		}
		return encoder.Encode(struct {
			Tasks []model.Draft `json:"tasks"`
		}{Tasks: drafts})
	}

	total := 0
	var b strings.Builder
	if format == formatStyled {
		b.WriteString(breakdownTitleStyle.Render(goal) + "\n")
	}
	for i, draft := range drafts {
		total += draft.EstimatedPomodoros
		count := fmt.Sprintf("%d pomodoro(s)", draft.EstimatedPomodoros)
		if format == formatStyled {
			count = breakdownCountStyle.Render(count)
		}
		fmt.Fprintf(&b, "%d. %s  %s\n", i+1, draft.Title, count)
	}
	if format == formatStyled {
		b.WriteString(breakdownCountStyle.Render(fmt.Sprintf("%d tasks · %d pomodoros", len(drafts), total)) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
