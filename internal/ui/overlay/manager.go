package overlay

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"eyeguard/internal/core/model"
)

// ErrSurfaceUnavailable indicates the presenter could not create an overlay surface.
var ErrSurfaceUnavailable = errors.New("overlay surface unavailable")

// Surface is one full-screen overlay window owned by the Manager.
type Surface interface {
	SetHeadline(text string)
	SetMessage(text string)
	SetCountdown(text string)
	SetPosition(x, y int)
	SetSize(width, height float32)
	Show()
	Hide()
	RequestRedraw()
	Close()
}

// Presenter creates overlay surfaces.
type Presenter interface {
	Create() (Surface, error)
}

// Placer is implemented by presenters that can report whether surfaces can be
// moved to an explicit origin. Without placement every surface would cover the
// same screen, so the manager builds a single one instead.
type Placer interface {
	CanPlace() bool
}

// MonitorSource supplies the current display layout. Monitors may return an empty slice
// when enumeration fails; VirtualDesktop is a best-effort rectangle covering all displays.
type MonitorSource interface {
	Monitors() []model.Monitor
	VirtualDesktop() model.Monitor
}

type entry struct {
	surface Surface
	monitor model.Monitor
}

// Manager keeps exactly one overlay per monitor while a rest is in progress.
// It is not safe for concurrent use; callers keep it on the UI goroutine.
type Manager struct {
	presenter Presenter
	source    MonitorSource
	logger    *zap.Logger
	entries   []entry
}

// NewManager creates an overlay manager.
func NewManager(presenter Presenter, source MonitorSource, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		presenter: presenter,
		source:    source,
		logger:    logger,
	}
}

// Show discards any live overlays and builds a fresh one on every monitor.
// Monitors whose surface cannot be created are skipped; when none succeed a single
// overlay is fitted to the first monitor or, failing that, the virtual desktop.
// A presenter that cannot place surfaces gets that single overlay directly.
func (manager *Manager) Show(remaining time.Duration, headline, message string) {
	manager.Hide()

	monitors := manager.source.Monitors()
	targets := monitors
	if !manager.canPlace() && len(targets) > 1 {
		targets = nil
	}
	for _, monitor := range targets {
		surface, err := manager.presenter.Create()
		if err != nil {
			manager.logger.Warn("overlay creation failed",
				zap.String("monitor", monitor.Name),
				zap.Error(err))
			continue
		}
		manager.entries = append(manager.entries, entry{surface: surface, monitor: monitor})
	}

	fallback := false
	if len(manager.entries) == 0 {
		fallback = true
		monitor := manager.fallbackMonitor(monitors)
		surface, err := manager.presenter.Create()
		if err != nil {
			manager.logger.Warn("fallback overlay creation failed", zap.Error(err))
		} else {
			manager.entries = append(manager.entries, entry{surface: surface, monitor: monitor})
		}
	}

	countdown := model.FormatCountdown(remaining)
	for _, current := range manager.entries {
		current.surface.SetHeadline(headline)
		current.surface.SetMessage(message)
		current.surface.SetCountdown(countdown)
		fit(current)
		current.surface.Show()
		// Some window managers move a window when it is first mapped.
		fit(current)
		current.surface.RequestRedraw()
	}

	manager.logger.Info("rest overlays shown",
		zap.Int("monitors", len(monitors)),
		zap.Int("overlays", len(manager.entries)),
		zap.Bool("fallback", fallback),
		zap.Bool("placement", manager.canPlace()))
}

// Update pushes a new countdown to the live overlays and re-fits them in place.
func (manager *Manager) Update(remaining time.Duration) {
	if len(manager.entries) == 0 {
		return
	}

	countdown := model.FormatCountdown(remaining)
	for _, current := range manager.entries {
		current.surface.SetCountdown(countdown)
		fit(current)
		current.surface.RequestRedraw()
	}
}

// Hide hides and discards every live overlay. It is a no-op when none are live.
func (manager *Manager) Hide() {
	if len(manager.entries) == 0 {
		return
	}
	for _, current := range manager.entries {
		current.surface.Hide()
		current.surface.Close()
	}
	manager.entries = nil
	manager.logger.Debug("rest overlays hidden")
}

// Len returns the number of live overlays.
func (manager *Manager) Len() int {
	return len(manager.entries)
}

// Monitors returns the geometry each live overlay was fitted to.
func (manager *Manager) Monitors() []model.Monitor {
	monitors := make([]model.Monitor, 0, len(manager.entries))
	for _, current := range manager.entries {
		monitors = append(monitors, current.monitor)
	}
	return monitors
}

func (manager *Manager) canPlace() bool {
	placer, ok := manager.presenter.(Placer)
	return !ok || placer.CanPlace()
}

func (manager *Manager) fallbackMonitor(monitors []model.Monitor) model.Monitor {
	for _, monitor := range monitors {
		if !monitor.Empty() {
			return monitor
		}
	}
	return manager.source.VirtualDesktop()
}

func fit(current entry) {
	current.surface.SetPosition(current.monitor.X, current.monitor.Y)
	width, height := current.monitor.LogicalSize()
	current.surface.SetSize(width, height)
}
