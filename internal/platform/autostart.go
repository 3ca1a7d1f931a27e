package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyAppName indicates a platform helper was called without an application name.
var ErrEmptyAppName = errors.New("app name is empty")

// Service groups the OS-specific helpers the application needs.
type Service interface {
	ConfigDir() (string, error)
	EnableAutostart(execPath string) error
	DisableAutostart() error
	AutostartEnabled() (bool, error)
}

type platformService struct {
	appName string
}

// NewService returns the implementation for the running OS.
func NewService(appName string) (Service, error) {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return nil, ErrEmptyAppName
	}
	return &platformService{appName: appName}, nil
}

// ConfigDir returns the per-application configuration directory.
func (service *platformService) ConfigDir() (string, error) {
	base, err := userConfigBase()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, slug(service.appName)), nil
}

func userConfigBase() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

func slug(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	return strings.ReplaceAll(name, " ", "-")
}
