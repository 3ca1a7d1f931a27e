package mainwindow

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"eyeguard/internal/core/model"
	"eyeguard/internal/ui/drag"
)

// Handlers receives user actions from the window. The Apply handlers return
// the value actually applied so the entry can echo it back.
type Handlers struct {
	OnTogglePause        func()
	OnSkip               func()
	OnApplyWorkMinutes   func(int) int
	OnApplyRestSeconds   func(int) int
	OnApplyWaterInterval func(int) int
	OnApplyWalkInterval  func(int) int
	OnMinimize           func()
}

// Window is the control window: status, countdown, progress and settings.
type Window struct {
	window   fyne.Window
	handlers Handlers
	visible  bool

	statusLabel *widget.Label
	timeLabel   *canvas.Text
	progress    *widget.ProgressBar
	pauseButton *widget.Button
	skipButton  *widget.Button

	workEntry  *widget.Entry
	restEntry  *widget.Entry
	waterEntry *widget.Entry
	walkEntry  *widget.Entry

	dragger *drag.Controller

	settings      model.CycleConfig
	settingsShown bool
}

// New creates the control window. It starts hidden.
func New(app fyne.App, title string, config model.CycleConfig, handlers Handlers) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	control := &Window{
		window:      window,
		handlers:    handlers,
		statusLabel: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		progress:    widget.NewProgressBar(),
		workEntry:   widget.NewEntry(),
		restEntry:   widget.NewEntry(),
		waterEntry:  widget.NewEntry(),
		walkEntry:   widget.NewEntry(),
	}
	control.dragger = drag.NewController(&nativeWindow{window: window})

	control.timeLabel = canvas.NewText("--:--", color.NRGBA{R: 46, G: 160, B: 110, A: 255})
	control.timeLabel.Alignment = fyne.TextAlignCenter
	control.timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	control.timeLabel.TextSize = 48

	control.progress.Min, control.progress.Max = 0, 1
	control.progress.TextFormatter = func() string { return "" }

	control.pauseButton = widget.NewButton("Pause", func() { call(control.handlers.OnTogglePause) })
	control.skipButton = widget.NewButton("Reset", func() { call(control.handlers.OnSkip) })

	settings := container.New(layout.NewFormLayout(),
		widget.NewLabel("Work (min)"), control.settingRow(control.workEntry, &control.handlers.OnApplyWorkMinutes),
		widget.NewLabel("Rest (sec)"), control.settingRow(control.restEntry, &control.handlers.OnApplyRestSeconds),
		widget.NewLabel("Water every"), control.settingRow(control.waterEntry, &control.handlers.OnApplyWaterInterval),
		widget.NewLabel("Walk every"), control.settingRow(control.walkEntry, &control.handlers.OnApplyWalkInterval),
	)

	header := newDragHeader(title, control, func() { control.minimize() })

	content := container.NewVBox(
		header,
		control.statusLabel,
		control.timeLabel,
		control.progress,
		container.NewGridWithColumns(2, control.pauseButton, control.skipButton),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Settings", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		settings,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(360, 420))
	window.SetCloseIntercept(control.minimize)

	control.SetSettings(config)
	return control
}

// Show maps the window and focuses it.
func (control *Window) Show() {
	control.window.Show()
	control.window.RequestFocus()
	control.visible = true
}

// Hide unmaps the window.
func (control *Window) Hide() {
	control.window.Hide()
	control.visible = false
}

// Visible reports whether the window was last shown.
func (control *Window) Visible() bool {
	return control.visible
}

// SetStatusText updates the status line.
func (control *Window) SetStatusText(text string) {
	control.statusLabel.SetText(text)
}

// SetTimeDisplay updates the countdown text.
func (control *Window) SetTimeDisplay(text string) {
	if control.timeLabel.Text == text {
		return
	}
	control.timeLabel.Text = text
	control.timeLabel.Refresh()
}

// SetProgress sets the remaining fraction of the current period.
func (control *Window) SetProgress(value float64) {
	control.progress.SetValue(value)
}

// SetIsPaused switches the pause button label.
func (control *Window) SetIsPaused(paused bool) {
	if paused {
		control.pauseButton.SetText("Resume")
	} else {
		control.pauseButton.SetText("Pause")
	}
}

// SetResting switches the secondary action between reset and skip.
func (control *Window) SetResting(resting bool) {
	if resting {
		control.skipButton.SetText("Skip rest")
	} else {
		control.skipButton.SetText("Reset")
	}
}

// SetSettings writes changed config values into the settings entries. Entries
// whose value did not change, and the entry being edited, keep their text.
func (control *Window) SetSettings(config model.CycleConfig) {
	previous, first := control.settings, !control.settingsShown
	control.updateEntry(control.workEntry, strconv.Itoa(config.WorkMinutes()),
		first || config.WorkMinutes() != previous.WorkMinutes())
	control.updateEntry(control.restEntry, strconv.Itoa(config.RestSeconds()),
		first || config.RestSeconds() != previous.RestSeconds())
	control.updateEntry(control.waterEntry, fmt.Sprintf("%d", config.WaterInterval),
		first || config.WaterInterval != previous.WaterInterval)
	control.updateEntry(control.walkEntry, fmt.Sprintf("%d", config.WalkInterval),
		first || config.WalkInterval != previous.WalkInterval)
	control.settings = config
	control.settingsShown = true
}

func (control *Window) updateEntry(entry *widget.Entry, text string, changed bool) {
	if !changed || control.window.Canvas().Focused() == entry {
		return
	}
	entry.SetText(text)
}

func (control *Window) settingRow(entry *widget.Entry, handler *func(int) int) fyne.CanvasObject {
	apply := func() {
		value, ok := parseInt(entry.Text)
		if !ok || *handler == nil {
			return
		}
		entry.SetText(strconv.Itoa((*handler)(value)))
	}
	entry.OnSubmitted = func(string) { apply() }
	return container.NewBorder(nil, nil, nil, widget.NewButton("Apply", apply), entry)
}

func (control *Window) minimize() {
	control.Hide()
	call(control.handlers.OnMinimize)
}

func parseInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
