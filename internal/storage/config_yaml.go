package storage

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"eyeguard/internal/core/model"
)

const configFileName = "config.yaml"

// Overlay opacity bounds; values outside are ignored.
const (
	MinOverlayOpacity     = 0.7
	MaxOverlayOpacity     = 0.95
	DefaultOverlayOpacity = 0.85
)

// Settings is everything the config file can set.
type Settings struct {
	Cycle          model.CycleConfig
	Chime          bool
	OverlayOpacity float64
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Cycle:          model.DefaultCycleConfig(),
		Chime:          true,
		OverlayOpacity: DefaultOverlayOpacity,
	}
}

// OverlayAlpha converts the opacity to an 8-bit alpha value.
func (settings Settings) OverlayAlpha() uint8 {
	return uint8(math.Round(settings.OverlayOpacity * 255))
}

type yamlSettings struct {
	WorkMinutes    *int     `yaml:"work_minutes"`
	RestSeconds    *int     `yaml:"rest_seconds"`
	WaterInterval  *int     `yaml:"water_interval"`
	WalkInterval   *int     `yaml:"walk_interval"`
	Chime          *bool    `yaml:"chime"`
	OverlayOpacity *float64 `yaml:"overlay_opacity"`
}

// DefaultPath returns <UserConfigDir>/<appName>/config.yaml.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

// LoadSettings reads settings from YAML. A missing file yields defaults.
// Keys that are absent keep their default; numeric values are clamped.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config file: %w", err)
	}

	return ParseSettings(rawData)
}

// ParseSettings decodes YAML config content on top of the defaults.
func ParseSettings(rawData []byte) (Settings, error) {
	settings := DefaultSettings()

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

func applyYamlSettings(settings *Settings, fileData yamlSettings) {
	if fileData.WorkMinutes != nil {
		minutes := model.ClampWorkMinutes(*fileData.WorkMinutes)
		settings.Cycle.WorkDuration = time.Duration(minutes) * time.Minute
	}
	if fileData.RestSeconds != nil {
		seconds := model.ClampRestSeconds(*fileData.RestSeconds)
		settings.Cycle.RestDuration = time.Duration(seconds) * time.Second
	}
	if fileData.WaterInterval != nil {
		settings.Cycle.WaterInterval = uint32(model.ClampReminderInterval(*fileData.WaterInterval))
	}
	if fileData.WalkInterval != nil {
		settings.Cycle.WalkInterval = uint32(model.ClampReminderInterval(*fileData.WalkInterval))
	}
	if fileData.Chime != nil {
		settings.Chime = *fileData.Chime
	}
	if opacity := fileData.OverlayOpacity; opacity != nil &&
		*opacity >= MinOverlayOpacity && *opacity <= MaxOverlayOpacity {
		settings.OverlayOpacity = *opacity
	}
}
