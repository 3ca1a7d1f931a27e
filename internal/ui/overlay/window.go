package overlay

import (
	"fmt"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"eyeguard/internal/platform"
)

// Config defines overlay visuals.
type Config struct {
	Opacity uint8
	Title   string
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// FynePresenter creates overlay surfaces as undecorated fyne windows.
type FynePresenter struct {
	app    fyne.App
	config Config
	onSkip func()
}

// NewFynePresenter creates a presenter bound to the fyne application.
func NewFynePresenter(app fyne.App, config Config) *FynePresenter {
	if config.Title == "" {
		config.Title = "EyeGuard"
	}
	return &FynePresenter{app: app, config: config}
}

// SetOnSkip sets the handler for the overlay skip button.
func (presenter *FynePresenter) SetOnSkip(handler func()) {
	presenter.onSkip = handler
}

// SetOpacity changes the background alpha of overlays created afterwards.
func (presenter *FynePresenter) SetOpacity(opacity uint8) {
	presenter.config.Opacity = opacity
}

// CanPlace reports whether overlays can be positioned per monitor. Elsewhere a
// single fullscreen overlay covers the current screen.
func (presenter *FynePresenter) CanPlace() bool {
	return platform.PlacementSupported()
}

// Create builds a new hidden overlay window.
func (presenter *FynePresenter) Create() (surface Surface, err error) {
	if presenter.app == nil || presenter.app.Driver() == nil {
		return nil, ErrSurfaceUnavailable
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			surface = nil
			err = fmt.Errorf("%w: %v", ErrSurfaceUnavailable, recovered)
		}
	}()

	window := presenter.app.NewWindow(presenter.config.Title)
	if driver, ok := presenter.app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if window == nil {
		return nil, ErrSurfaceUnavailable
	}
	if presenter.app.Icon() != nil {
		window.SetIcon(presenter.app.Icon())
	}
	window.SetPadded(false)

	return newWindow(window, presenter.config, presenter.onSkip), nil
}

// Window is a single overlay surface.
type Window struct {
	mu            sync.Mutex
	window        fyne.Window
	closed        bool
	headlineLabel *canvas.Text
	messageLabel  *widget.Label
	timerLabel    *canvas.Text
	x, y          int
	placed        bool
	fullscreen    bool
}

func newWindow(window fyne.Window, config Config, onSkip func()) *Window {
	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity})

	headlineLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	headlineLabel.Alignment = fyne.TextAlignCenter
	headlineLabel.TextStyle = fyne.TextStyle{Bold: true}
	headlineLabel.TextSize = 42

	messageLabel := widget.NewLabel("")
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.Wrapping = fyne.TextWrapWord

	timerLabel := canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 64

	skipButton := widget.NewButton("Skip", func() {
		if onSkip != nil {
			onSkip()
		}
	})

	column := container.NewVBox(
		headlineLabel,
		container.New(&messageLayout{}, messageLabel),
		timerLabel,
		container.NewCenter(skipButton),
	)
	content := container.NewVBox(layout.NewSpacer(), column, layout.NewSpacer())
	window.SetContent(container.NewStack(background, content))

	return &Window{
		window:        window,
		headlineLabel: headlineLabel,
		messageLabel:  messageLabel,
		timerLabel:    timerLabel,
	}
}

// SetHeadline updates the headline text.
func (overlay *Window) SetHeadline(text string) {
	overlay.withWindow(func(fyne.Window) {
		overlay.headlineLabel.Text = text
		overlay.headlineLabel.Refresh()
	})
}

// SetMessage updates the reminder text.
func (overlay *Window) SetMessage(text string) {
	overlay.withWindow(func(fyne.Window) {
		overlay.messageLabel.SetText(text)
	})
}

// SetCountdown updates the timer label.
func (overlay *Window) SetCountdown(text string) {
	overlay.withWindow(func(fyne.Window) {
		overlay.timerLabel.Text = text
		overlay.timerLabel.Refresh()
	})
}

// SetPosition moves the window to a device-pixel origin. Without native placement
// support the window covers its current screen in fullscreen mode instead.
func (overlay *Window) SetPosition(x, y int) {
	overlay.withWindow(func(window fyne.Window) {
		overlay.x, overlay.y = x, y
		overlay.placed = platform.PlaceTopmost(window, x, y)
		overlay.setFullScreen(window, !overlay.placed)
	})
}

// SetSize resizes the window in logical units.
func (overlay *Window) SetSize(width, height float32) {
	overlay.withWindow(func(window fyne.Window) {
		if !overlay.placed {
			return
		}
		window.Resize(fyne.NewSize(width, height))
	})
}

// Show maps the window and brings it to the front.
func (overlay *Window) Show() {
	overlay.withWindow(func(window fyne.Window) {
		window.Show()
		window.RequestFocus()
		if overlay.placed {
			platform.PlaceTopmost(window, overlay.x, overlay.y)
		}
	})
}

// Hide unmaps the window.
func (overlay *Window) Hide() {
	overlay.withWindow(func(window fyne.Window) {
		overlay.setFullScreen(window, false)
		window.Hide()
	})
}

// RequestRedraw refreshes the window content.
func (overlay *Window) RequestRedraw() {
	overlay.withWindow(func(window fyne.Window) {
		if content := window.Content(); content != nil {
			content.Refresh()
		}
	})
}

// Close releases the window. Later calls on the surface are ignored.
func (overlay *Window) Close() {
	overlay.mu.Lock()
	if overlay.closed || overlay.window == nil {
		overlay.closed = true
		overlay.mu.Unlock()
		return
	}
	window := overlay.window
	overlay.closed = true
	overlay.window = nil
	overlay.mu.Unlock()

	window.Close()
}

func (overlay *Window) setFullScreen(window fyne.Window, fullscreen bool) {
	if overlay.fullscreen == fullscreen {
		return
	}
	overlay.fullscreen = fullscreen
	window.SetFullScreen(fullscreen)
}

// withWindow runs fn only while the window handle is still alive.
func (overlay *Window) withWindow(fn func(fyne.Window)) {
	overlay.mu.Lock()
	window := overlay.window
	closed := overlay.closed
	overlay.mu.Unlock()
	if closed || window == nil {
		return
	}
	fn(window)
}

// messageLayout caps the message width so long reminders wrap into a readable column.
type messageLayout struct{}

const messageMaxWidth = float32(760)

func (column *messageLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	width := size.Width
	if width > messageMaxWidth {
		width = messageMaxWidth
	}
	objects[0].Move(fyne.NewPos((size.Width-width)/2, 0))
	objects[0].Resize(fyne.NewSize(width, size.Height))
}

func (column *messageLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) == 0 {
		return fyne.NewSize(0, 0)
	}
	minSize := objects[0].MinSize()
	return fyne.NewSize(minSize.Width, minSize.Height*3)
}
