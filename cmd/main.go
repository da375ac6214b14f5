package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	appName = "ZenPomodoro"
	appID   = "com.zenpomodoro.app"
)

var rootCmd = &cobra.Command{
	Use:   "zenpomodoro",
	Short: "ZenPomodoro - pomodoro timer with an AI task planner",
	Long:  `ZenPomodoro runs a focus/break countdown next to a task list. A goal can be broken down into pomodoro-sized tasks by a Gemini model.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return openLogFile(flags.logFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogFile()
	},
	SilenceUsage: true,
	RunE:         runDesktop,
}

var flags struct {
	configPath string
	apiKey     string
	model      string
	logFile    string
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "settings file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&flags.apiKey, "api-key", "", "Gemini API key (default: $GEMINI_API_KEY or $API_KEY)")
	rootCmd.PersistentFlags().StringVar(&flags.model, "model", "", "Gemini model (default: settings file)")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write logs to this file")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(breakdownCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
