package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eyeguard/internal/core/model"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettingsReadsAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	content := []byte(`
work_minutes: 500
rest_seconds: 2
water_interval: 0
walk_interval: 4
chime: false
overlay_opacity: 0.9
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 180*time.Minute, settings.Cycle.WorkDuration)
	assert.Equal(t, 5*time.Second, settings.Cycle.RestDuration)
	assert.Equal(t, uint32(1), settings.Cycle.WaterInterval)
	assert.Equal(t, uint32(4), settings.Cycle.WalkInterval)
	assert.False(t, settings.Chime)
	assert.InDelta(t, 0.9, settings.OverlayOpacity, 1e-9)
}

func TestParseSettingsKeepsDefaultsForAbsentKeys(t *testing.T) {
	settings, err := ParseSettings([]byte("rest_seconds: 45\noverlay_opacity: 0.2\n"))
	require.NoError(t, err)

	defaults := model.DefaultCycleConfig()
	assert.Equal(t, defaults.WorkDuration, settings.Cycle.WorkDuration)
	assert.Equal(t, 45*time.Second, settings.Cycle.RestDuration)
	assert.True(t, settings.Chime)
	assert.Equal(t, DefaultOverlayOpacity, settings.OverlayOpacity)
}

func TestParseSettingsRejectsMalformedYAML(t *testing.T) {
	_, err := ParseSettings([]byte("work_minutes: [oops"))
	assert.Error(t, err)
}

func TestOverlayAlpha(t *testing.T) {
	assert.Equal(t, uint8(217), Settings{OverlayOpacity: 0.85}.OverlayAlpha())
}
