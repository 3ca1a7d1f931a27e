package app

import (
	"fmt"
	"time"

	"eyeguard/internal/core/escalation"
	"eyeguard/internal/core/model"
	"eyeguard/internal/ui/overlay"
)

type fakeWindow struct {
	visible  bool
	shows    int
	hides    int
	status   string
	time     string
	progress float64
	paused   bool
	resting  bool
	settings model.CycleConfig
}

func (window *fakeWindow) Show()                                { window.visible = true; window.shows++ }
func (window *fakeWindow) Hide()                                { window.visible = false; window.hides++ }
func (window *fakeWindow) Visible() bool                        { return window.visible }
func (window *fakeWindow) SetStatusText(text string)            { window.status = text }
func (window *fakeWindow) SetTimeDisplay(text string)           { window.time = text }
func (window *fakeWindow) SetProgress(value float64)            { window.progress = value }
func (window *fakeWindow) SetIsPaused(paused bool)              { window.paused = paused }
func (window *fakeWindow) SetResting(resting bool)              { window.resting = resting }
func (window *fakeWindow) SetSettings(config model.CycleConfig) { window.settings = config }

type fakeTray struct {
	status  string
	time    string
	paused  bool
	resting bool
}

func (tray *fakeTray) SetStatus(status string) { tray.status = status }
func (tray *fakeTray) SetTime(text string)     { tray.time = text }
func (tray *fakeTray) SetPaused(paused bool)   { tray.paused = paused }
func (tray *fakeTray) SetResting(resting bool) { tray.resting = resting }

type fakeComposer struct {
	types []escalation.RestType
}

func (composer *fakeComposer) Compose(restType escalation.RestType, rest time.Duration) (string, string) {
	composer.types = append(composer.types, restType)
	return "headline " + restType.String(), fmt.Sprintf("rest for %d seconds", int(rest/time.Second))
}

type fakeSurface struct {
	headline  string
	message   string
	countdown string
	visible   bool
	closed    bool
}

func (surface *fakeSurface) SetHeadline(text string)       { surface.headline = text }
func (surface *fakeSurface) SetMessage(text string)        { surface.message = text }
func (surface *fakeSurface) SetCountdown(text string)      { surface.countdown = text }
func (surface *fakeSurface) SetPosition(x, y int)          {}
func (surface *fakeSurface) SetSize(width, height float32) {}
func (surface *fakeSurface) Show()                         { surface.visible = true }
func (surface *fakeSurface) Hide()                         { surface.visible = false }
func (surface *fakeSurface) RequestRedraw()                {}
func (surface *fakeSurface) Close()                        { surface.closed = true }

type fakePresenter struct {
	surfaces []*fakeSurface
}

func (presenter *fakePresenter) Create() (overlay.Surface, error) {
	surface := &fakeSurface{}
	presenter.surfaces = append(presenter.surfaces, surface)
	return surface, nil
}

func (presenter *fakePresenter) live() []*fakeSurface {
	var live []*fakeSurface
	for _, surface := range presenter.surfaces {
		if !surface.closed {
			live = append(live, surface)
		}
	}
	return live
}

type fakeSource struct {
	monitors []model.Monitor
}

func (source *fakeSource) Monitors() []model.Monitor { return source.monitors }
func (source *fakeSource) VirtualDesktop() model.Monitor {
	return model.Monitor{Name: "virtual", Width: 1920, Height: 1080, ScaleFactor: 1}
}

func twoMonitors() []model.Monitor {
	return []model.Monitor{
		{Name: "left", X: 0, Y: 0, Width: 1920, Height: 1080, ScaleFactor: 1},
		{Name: "right", X: 1920, Y: 0, Width: 2560, Height: 1440, ScaleFactor: 1.5},
	}
}
