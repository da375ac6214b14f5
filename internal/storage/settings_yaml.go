package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"zenpomodoro/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes       int    `yaml:"focus_minutes"`
	ShortBreakMinutes  int    `yaml:"short_break_minutes"`
	LongBreakMinutes   int    `yaml:"long_break_minutes"`
	AutoStartBreaks    bool   `yaml:"auto_start_breaks"`
	AutoStartPomodoros bool   `yaml:"auto_start_pomodoros"`
	LaunchAtLogin      bool   `yaml:"launch_at_login"`
	AIModel            string `yaml:"ai_model,omitempty"`
}

// DefaultPath returns the settings file location for appName.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		FocusMinutes:       int(settings.FocusDuration / time.Minute),
		ShortBreakMinutes:  int(settings.ShortBreakDuration / time.Minute),
		LongBreakMinutes:   int(settings.LongBreakDuration / time.Minute),
		AutoStartBreaks:    settings.AutoStartBreaks,
		AutoStartPomodoros: settings.AutoStartPomodoros,
		LaunchAtLogin:      settings.LaunchAtLogin,
		AIModel:            settings.AIModel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if duration, ok := minutesInRange(fileData.FocusMinutes); ok {
		settings.FocusDuration = duration
	}
	if duration, ok := minutesInRange(fileData.ShortBreakMinutes); ok {
		settings.ShortBreakDuration = duration
	}
	if duration, ok := minutesInRange(fileData.LongBreakMinutes); ok {
		settings.LongBreakDuration = duration
	}
	if model := strings.TrimSpace(fileData.AIModel); model != "" {
		settings.AIModel = model
	}

	settings.AutoStartBreaks = fileData.AutoStartBreaks
	settings.AutoStartPomodoros = fileData.AutoStartPomodoros
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}

func minutesInRange(minutes int) (time.Duration, bool) {
	duration := time.Duration(minutes) * time.Minute
	if minutes <= 0 || duration > preferences.MaxSessionDuration {
		return 0, false
	}
	return duration, true
}
