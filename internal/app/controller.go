// Package app connects the work/rest cycle to the overlays, the control window and the tray.
package app

import (
	"time"

	"go.uber.org/zap"

	"eyeguard/internal/core/escalation"
	"eyeguard/internal/core/model"
	"eyeguard/internal/core/timekeeper"
	"eyeguard/internal/ui/mainwindow"
	"eyeguard/internal/ui/tray"
	"eyeguard/resources"
)

// PrimaryWindow is the control window.
type PrimaryWindow interface {
	Show()
	Hide()
	Visible() bool
	SetStatusText(text string)
	SetTimeDisplay(text string)
	SetProgress(value float64)
	SetIsPaused(paused bool)
	SetResting(resting bool)
	SetSettings(config model.CycleConfig)
}

// Overlays is the per-monitor rest overlay set.
type Overlays interface {
	Show(remaining time.Duration, headline, message string)
	Update(remaining time.Duration)
	Hide()
	Len() int
}

// Tray mirrors status into the system tray.
type Tray interface {
	SetStatus(status string)
	SetTime(text string)
	SetPaused(paused bool)
	SetResting(resting bool)
}

// Composer produces overlay text for a rest.
type Composer interface {
	Compose(restType escalation.RestType, rest time.Duration) (headline, message string)
}

// Options holds the optional collaborators of a Controller.
type Options struct {
	OnIcon func(resources.IconVariant)
	OnQuit func()
	Logger *zap.Logger
}

// Controller applies TimeKeeper events to the UI and forwards UI actions to
// the TimeKeeper. All methods run on the UI goroutine.
type Controller struct {
	keeper   *timekeeper.TimeKeeper
	overlays Overlays
	window   PrimaryWindow
	composer Composer
	tray     Tray
	onIcon   func(resources.IconVariant)
	onQuit   func()
	logger   *zap.Logger
	mode     timekeeper.Mode
	paused   bool
}

// New creates a controller and registers it with keeper. Events are ignored
// until Attach supplies the control window.
func New(keeper *timekeeper.TimeKeeper, overlays Overlays, composer Composer, options Options) *Controller {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	controller := &Controller{
		keeper:   keeper,
		overlays: overlays,
		composer: composer,
		onIcon:   options.OnIcon,
		onQuit:   options.OnQuit,
		logger:   logger,
		mode:     timekeeper.ModeWork,
	}
	keeper.OnEvent(controller.HandleEvent)
	return controller
}

// Attach connects the control window and, optionally, the tray. Both are built
// from the controller's callbacks, so they arrive after New.
func (controller *Controller) Attach(window PrimaryWindow, trayState Tray) {
	controller.window = window
	controller.tray = trayState
}

// HandleEvent reacts to one TimeKeeper event.
func (controller *Controller) HandleEvent(event timekeeper.Event) {
	if controller.window == nil {
		return
	}
	switch event.Type {
	case timekeeper.EventRestStart:
		controller.enterRest(event)
	case timekeeper.EventWorkStart:
		controller.enterWork(event)
	case timekeeper.EventProgress:
		controller.showProgress(event)
	case timekeeper.EventPauseChange:
		controller.paused = event.Paused
		controller.window.SetIsPaused(event.Paused)
		if controller.tray != nil {
			controller.tray.SetPaused(event.Paused)
		}
		controller.updateIcon()
		controller.logger.Info("pause changed", zap.Bool("paused", event.Paused))
	case timekeeper.EventConfigChange:
		controller.window.SetSettings(event.Config)
		controller.logger.Info("settings applied",
			zap.Int("work_minutes", event.Config.WorkMinutes()),
			zap.Int("rest_seconds", event.Config.RestSeconds()),
			zap.Uint32("water_interval", event.Config.WaterInterval),
			zap.Uint32("walk_interval", event.Config.WalkInterval))
	}
}

func (controller *Controller) enterRest(event timekeeper.Event) {
	controller.mode = timekeeper.ModeRest
	headline, message := controller.composer.Compose(event.RestType, event.Remaining)
	controller.overlays.Show(event.Remaining, headline, message)

	if controller.window.Visible() {
		controller.window.Hide()
	}
	controller.window.SetResting(true)
	controller.applyStatus(event)
	if controller.tray != nil {
		controller.tray.SetResting(true)
	}
	controller.updateIcon()

	controller.logger.Info("rest started",
		zap.Uint32("rest_count", event.RestCount),
		zap.String("rest_type", event.RestType.String()),
		zap.Duration("rest", event.Remaining),
		zap.Int("overlays", controller.overlays.Len()))
}

func (controller *Controller) enterWork(event timekeeper.Event) {
	controller.mode = timekeeper.ModeWork
	controller.overlays.Hide()

	controller.window.Show()
	controller.window.SetResting(false)
	controller.applyStatus(event)
	if controller.tray != nil {
		controller.tray.SetResting(false)
	}
	controller.updateIcon()

	controller.logger.Info("work started",
		zap.Bool("skipped", event.Skipped),
		zap.Duration("work", event.Remaining))
}

func (controller *Controller) showProgress(event timekeeper.Event) {
	controller.applyStatus(event)
	if event.Mode == timekeeper.ModeRest {
		controller.overlays.Update(event.Remaining)
	}
}

func (controller *Controller) applyStatus(event timekeeper.Event) {
	text := model.FormatCountdown(event.Remaining)
	if event.Status != "" {
		controller.window.SetStatusText(event.Status)
	}
	controller.window.SetTimeDisplay(text)
	controller.window.SetProgress(event.Progress)
	if controller.tray == nil {
		return
	}
	if event.Status != "" {
		controller.tray.SetStatus(event.Status)
	}
	controller.tray.SetTime(text)
}

func (controller *Controller) updateIcon() {
	if controller.onIcon == nil {
		return
	}
	switch {
	case controller.paused:
		controller.onIcon(resources.IconPaused)
	case controller.mode == timekeeper.ModeRest:
		controller.onIcon(resources.IconRest)
	default:
		controller.onIcon(resources.IconActive)
	}
}

// TogglePause pauses or resumes the cycle.
func (controller *Controller) TogglePause() {
	controller.keeper.TogglePause()
}

// Skip resets work or ends the current rest.
func (controller *Controller) Skip() {
	controller.keeper.Skip()
}

// ShowWindow restores the control window from the tray.
func (controller *Controller) ShowWindow() {
	if controller.window == nil {
		return
	}
	controller.window.Show()
}

// MinimizeToTray is called after the user hid the control window.
func (controller *Controller) MinimizeToTray() {
	controller.logger.Debug("control window minimized to tray")
}

// WindowVisible reports whether the control window is shown.
func (controller *Controller) WindowVisible() bool {
	return controller.window != nil && controller.window.Visible()
}

// ApplyConfig re-applies a full configuration, typically after a file reload.
func (controller *Controller) ApplyConfig(config model.CycleConfig) {
	controller.keeper.ApplyConfig(config)
}

// Quit tears down overlays and stops the application.
func (controller *Controller) Quit() {
	controller.overlays.Hide()
	controller.keeper.Close()
	if controller.onQuit != nil {
		controller.onQuit()
	}
}

// WindowHandlers returns the control window callbacks.
func (controller *Controller) WindowHandlers() mainwindow.Handlers {
	return mainwindow.Handlers{
		OnTogglePause:        controller.TogglePause,
		OnSkip:               controller.Skip,
		OnApplyWorkMinutes:   controller.keeper.ApplyWorkMinutes,
		OnApplyRestSeconds:   controller.keeper.ApplyRestSeconds,
		OnApplyWaterInterval: controller.keeper.ApplyWaterInterval,
		OnApplyWalkInterval:  controller.keeper.ApplyWalkInterval,
		OnMinimize:           controller.MinimizeToTray,
	}
}

// TrayCallbacks returns the tray menu callbacks.
func (controller *Controller) TrayCallbacks() tray.Callbacks {
	return tray.Callbacks{
		OnShowWindow:  controller.ShowWindow,
		OnTogglePause: controller.TogglePause,
		OnSkip:        controller.Skip,
		OnQuit:        controller.Quit,
	}
}
