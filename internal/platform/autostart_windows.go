//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) EnableAutostart(execPath string) error {
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}

	command := exec.Command(
		"reg", "add", registryRunKey,
		"/v", service.appName,
		"/t", "REG_SZ",
		"/d", quoteWindowsPath(execPath)+" run",
		"/f",
	)
	if output, err := command.CombinedOutput(); err != nil {
		return fmt.Errorf("enable autostart: reg add failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (service *platformService) DisableAutostart() error {
	command := exec.Command("reg", "delete", registryRunKey, "/v", service.appName, "/f")
	if output, err := command.CombinedOutput(); err != nil {
		return fmt.Errorf("disable autostart: reg delete failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (service *platformService) AutostartEnabled() (bool, error) {
	command := exec.Command("reg", "query", registryRunKey, "/v", service.appName)
	if err := command.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return false, nil
		}
		return false, fmt.Errorf("autostart status: reg query failed: %w", err)
	}
	return true, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func quoteWindowsPath(execPath string) string {
	trimmed := strings.Trim(execPath, `"`)
	return fmt.Sprintf(`"%s"`, trimmed)
}
