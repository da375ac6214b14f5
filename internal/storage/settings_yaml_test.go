package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenpomodoro/internal/ui/preferences"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent", "settings.yaml"))

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveThenLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	saved := preferences.Settings{
		FocusDuration:      50 * time.Minute,
		ShortBreakDuration: 10 * time.Minute,
		LongBreakDuration:  30 * time.Minute,
		AutoStartBreaks:    true,
		LaunchAtLogin:      true,
		AIModel:            "gemini-2.5-flash",
	}

	require.NoError(t, SaveSettings(path, saved))
	loaded, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadSettingsFallsBackOnOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "focus_minutes: 0\nshort_break_minutes: -4\nlong_break_minutes: 999\nauto_start_pomodoros: true\nai_model: \"  \"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettings(path)

	require.NoError(t, err)
	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.FocusDuration, settings.FocusDuration)
	assert.Equal(t, defaults.ShortBreakDuration, settings.ShortBreakDuration)
	assert.Equal(t, defaults.LongBreakDuration, settings.LongBreakDuration)
	assert.Equal(t, defaults.AIModel, settings.AIModel)
	assert.True(t, settings.AutoStartPomodoros)
}

func TestLoadSettingsRejectsMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("focus_minutes: [oops"), 0o644))

	settings, err := LoadSettings(path)

	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestDefaultPathEndsWithAppDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())

	path, err := DefaultPath("ZenPomodoro")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("ZenPomodoro", "settings.yaml"), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
