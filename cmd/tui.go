package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"zenpomodoro/internal/platform"
	"zenpomodoro/internal/ui/terminal"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the timer and task list in the terminal",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	if flags.logFile == "" {
		logFile, err := tea.LogToFile(filepath.Join(os.TempDir(), "zenpomodoro-tui.log"), "tui")
		if err != nil {
			return fmt.Errorf("open tui log: %w", err)
		}
		defer logFile.Close()
	}

	settings, _ := loadSettings()
	ctrl := newController(settings, nil)
	keeper := ctrl.Timer()
	defer keeper.Close()
	keeper.SetAlerter(platform.BellAlerter{Writer: os.Stderr})

	model := terminal.New(ctrl)
	program := tea.NewProgram(model, tea.WithAltScreen())
	ctrl.SetNotifier(terminal.Notifier(program.Send))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	log.Printf("tui: exited")
	return nil
}
