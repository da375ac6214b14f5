package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Autostart registers the application to start when the user logs in.
type Autostart struct {
	AppName  string
	ExecPath string

	// baseDir replaces the per-OS entry directory.
	baseDir string
}

// NewAutostart returns an Autostart for the running executable.
func NewAutostart(appName string) (*Autostart, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("autostart: resolve executable: %w", err)
	}
	return &Autostart{AppName: appName, ExecPath: execPath}, nil
}

// Apply enables or disables launch at login.
func (autostart *Autostart) Apply(enabled bool) error {
	if strings.TrimSpace(autostart.AppName) == "" {
		return errors.New("autostart: app name is empty")
	}
	if !enabled {
		return autostart.disable()
	}
	if autostart.ExecPath == "" {
		return errors.New("autostart: exec path is empty")
	}
	return autostart.enable()
}

func (autostart *Autostart) slug() string {
	name := strings.ToLower(strings.TrimSpace(autostart.AppName))
	return strings.ReplaceAll(name, " ", "-")
}

func userConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}
	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		return "", fmt.Errorf("get config dir: %w", errors.Join(err, homeErr))
	}
	return fallbackConfigDir(homeDir), nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
