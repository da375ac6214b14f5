//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func (autostart *Autostart) entryPath() (string, error) {
	dir := autostart.baseDir
	if dir == "" {
		configDir, err := userConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(configDir, "autostart")
	}
	return filepath.Join(dir, autostart.slug()+".desktop"), nil
}

func (autostart *Autostart) entryContent() string {
	execLine := autostart.ExecPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}
	var builder strings.Builder
	builder.WriteString("[Desktop Entry]\n")
	builder.WriteString("Type=Application\n")
	fmt.Fprintf(&builder, "Name=%s\n", autostart.AppName)
	fmt.Fprintf(&builder, "Exec=%s\n", execLine)
	builder.WriteString("Comment=Pomodoro timer\n")
	builder.WriteString("X-GNOME-Autostart-enabled=true\n")
	builder.WriteString("Terminal=false\n")
	return builder.String()
}

func (autostart *Autostart) enable() error {
	path, err := autostart.entryPath()
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(autostart.entryContent()), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}
	return nil
}

func (autostart *Autostart) disable() error {
	path, err := autostart.entryPath()
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := removeIfExists(path); err != nil {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}
	return nil
}
