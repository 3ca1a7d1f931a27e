package platform

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"eyeguard/internal/core/model"
)

// ErrNoMonitors indicates the display server reported no usable monitors.
var ErrNoMonitors = errors.New("no monitors detected")

// Fallback geometry used when no monitor can be enumerated.
const (
	defaultDesktopWidth  = 1920
	defaultDesktopHeight = 1080
)

// GLFWMonitorSource enumerates displays through the GLFW context the fyne driver
// already owns. Calls must happen on the UI goroutine.
type GLFWMonitorSource struct{}

// NewMonitorSource returns a monitor source backed by GLFW.
func NewMonitorSource() *GLFWMonitorSource {
	return &GLFWMonitorSource{}
}

// Monitors returns every connected display in device pixels. Enumeration
// failures yield an empty slice.
func (source *GLFWMonitorSource) Monitors() (monitors []model.Monitor) {
	defer func() {
		if recover() != nil {
			monitors = nil
		}
	}()
	return collectMonitors(glfw.GetMonitors())
}

// VirtualDesktop returns the rectangle spanning all displays.
func (source *GLFWMonitorSource) VirtualDesktop() model.Monitor {
	if box, ok := model.BoundingBox(source.Monitors()); ok {
		return box
	}
	return model.Monitor{
		Name:        "virtual",
		Width:       defaultDesktopWidth,
		Height:      defaultDesktopHeight,
		ScaleFactor: 1,
	}
}

// ProbeMonitors initializes GLFW just long enough to list the displays. It is
// meant for command-line use outside the fyne event loop and must run on the
// main OS thread.
func ProbeMonitors() ([]model.Monitor, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	monitors := collectMonitors(glfw.GetMonitors())
	if len(monitors) == 0 {
		return nil, ErrNoMonitors
	}
	return monitors, nil
}

func collectMonitors(handles []*glfw.Monitor) []model.Monitor {
	monitors := make([]model.Monitor, 0, len(handles))
	for _, handle := range handles {
		if handle == nil {
			continue
		}
		mode := handle.GetVideoMode()
		if mode == nil {
			continue
		}
		x, y := handle.GetPos()
		scale, _ := handle.GetContentScale()
		monitors = append(monitors, model.Monitor{
			Name:        handle.GetName(),
			X:           x,
			Y:           y,
			Width:       mode.Width,
			Height:      mode.Height,
			ScaleFactor: scale,
		})
	}
	return monitors
}
