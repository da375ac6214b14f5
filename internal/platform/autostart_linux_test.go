//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutostartWritesAndRemovesDesktopEntry(t *testing.T) {
	dir := t.TempDir()
	autostart := &Autostart{AppName: "Zen Pomodoro", ExecPath: "/opt/zen pomodoro/bin", baseDir: dir}
	path := filepath.Join(dir, "zen-pomodoro.desktop")

	require.NoError(t, autostart.Apply(true))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Name=Zen Pomodoro\n")
	assert.Contains(t, string(content), "Exec=\"/opt/zen pomodoro/bin\"\n")

	require.NoError(t, autostart.Apply(false))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, autostart.Apply(false))
}

func TestAutostartRequiresNameAndPath(t *testing.T) {
	assert.Error(t, (&Autostart{ExecPath: "/bin/true", baseDir: t.TempDir()}).Apply(true))
	assert.Error(t, (&Autostart{AppName: "Zen", baseDir: t.TempDir()}).Apply(true))
}
