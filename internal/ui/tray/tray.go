package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "EyeGuard"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowWindow  func()
	OnTogglePause func()
	OnSkip        func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	timeItem    *fyne.MenuItem
	showItem    *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	skipItem    *fyne.MenuItem
	quitItem    *fyne.MenuItem
	callbacks   Callbacks
	paused      bool
	resting     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks. A nil app yields a
// manager that tracks state without a visible tray.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "starting...",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.timeItem = fyne.NewMenuItem("--:--", nil)
	manager.timeItem.Disabled = true

	manager.showItem = fyne.NewMenuItem("Show window", invoke(&manager.callbacks.OnShowWindow))
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnTogglePause))
	manager.skipItem = fyne.NewMenuItem("Reset timer", invoke(&manager.callbacks.OnSkip))
	manager.quitItem = fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit))
	manager.quitItem.IsQuit = true

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetTime updates the remaining-time row.
func (manager *Manager) SetTime(text string) {
	if manager.timeItem.Label == text {
		return
	}
	manager.timeItem.Label = text
	manager.refreshMenu()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	if paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshStatus()
}

// SetResting switches the secondary action between resetting work and skipping a rest.
func (manager *Manager) SetResting(resting bool) {
	manager.resting = resting
	if resting {
		manager.skipItem.Label = "Skip rest"
	} else {
		manager.skipItem.Label = "Reset timer"
	}
	manager.refreshMenu()
}

// Labels returns the current menu labels in display order.
func (manager *Manager) Labels() []string {
	items := manager.items()
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	return labels
}

func (manager *Manager) items() []*fyne.MenuItem {
	return []*fyne.MenuItem{
		manager.statusItem,
		manager.timeItem,
		fyne.NewMenuItemSeparator(),
		manager.showItem,
		manager.pauseItem,
		manager.skipItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	}
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle, manager.items()...))
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
