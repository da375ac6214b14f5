//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func (autostart *Autostart) enable() error {
	value := fmt.Sprintf(`"%s"`, strings.Trim(autostart.ExecPath, `"`))
	if err := runReg("add", registryRunKey, "/v", autostart.AppName, "/t", "REG_SZ", "/d", value, "/f"); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

func (autostart *Autostart) disable() error {
	if err := runReg("delete", registryRunKey, "/v", autostart.AppName, "/f"); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

func runReg(args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("reg %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}
