package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"zenpomodoro/internal/core/controller"
	"zenpomodoro/internal/core/tasks"
	"zenpomodoro/internal/core/timekeeper"
	"zenpomodoro/internal/planner"
	"zenpomodoro/internal/storage"
	"zenpomodoro/internal/ui/preferences"
)

var apiKeyEnv = []string{"GEMINI_API_KEY", "API_KEY"}

var logOutput io.Closer

func openLogFile(path string) error {
	if path == "" {
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(file)
	logOutput = file
	return nil
}

func closeLogFile() {
	if logOutput == nil {
		return
	}
	log.SetOutput(os.Stderr)
	_ = logOutput.Close()
	logOutput = nil
}

func settingsPath() (string, error) {
	if flags.configPath != "" {
		return flags.configPath, nil
	}
	return storage.DefaultPath(appName)
}

// loadSettings never fails: unreadable files fall back to defaults.
func loadSettings() (preferences.Settings, string) {
	path, err := settingsPath()
	if err != nil {
		log.Printf("settings path: %v", err)
		return preferences.DefaultSettings(), ""
	}
	settings, err := storage.LoadSettings(path)
	if err != nil {
		log.Printf("load settings: %v", err)
	}
	return settings, path
}

// resolveAPIKey prefers the flag, then the environment in order.
func resolveAPIKey(flagValue string, lookup func(string) string) string {
	if key := strings.TrimSpace(flagValue); key != "" {
		return key
	}
	for _, name := range apiKeyEnv {
		if key := strings.TrimSpace(lookup(name)); key != "" {
			return key
		}
	}
	return ""
}

func resolveModel(flagValue string, settings preferences.Settings) string {
	if model := strings.TrimSpace(flagValue); model != "" {
		return model
	}
	if settings.AIModel != "" {
		return settings.AIModel
	}
	return planner.DefaultModel
}

func newPlanner(settings preferences.Settings) *planner.Planner {
	config := planner.Config{
		APIKey: resolveAPIKey(flags.apiKey, os.Getenv),
		Model:  resolveModel(flags.model, settings),
	}
	breakdown := planner.New(config, planner.NewGeminiGenerator())
	if !breakdown.Configured() {
		log.Printf("planner: no API key, goal breakdown will fail until one is set")
	}
	return breakdown
}

func newController(settings preferences.Settings, notifier controller.Notifier) *controller.Controller {
	keeper := timekeeper.New(settings.TimerSettings(), timekeeper.Config{})
	return controller.New(keeper, tasks.NewStore(), newPlanner(settings), notifier)
}
