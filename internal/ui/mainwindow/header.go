package mainwindow

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"eyeguard/internal/platform"
	"eyeguard/internal/ui/drag"
)

// dragHeader is a title strip that moves the window when dragged.
type dragHeader struct {
	widget.BaseWidget
	owner    *Window
	content  fyne.CanvasObject
	dragging bool
}

func newDragHeader(title string, owner *Window, onMinimize func()) *dragHeader {
	header := &dragHeader{owner: owner}
	label := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	minimize := widget.NewButtonWithIcon("", theme.WindowMinimizeIcon(), onMinimize)
	minimize.Importance = widget.LowImportance
	header.content = container.NewHBox(label, layout.NewSpacer(), minimize)
	header.ExtendBaseWidget(header)
	return header
}

func (header *dragHeader) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(header.content)
}

// Dragged starts a gesture on the first event and updates it afterwards.
func (header *dragHeader) Dragged(event *fyne.DragEvent) {
	local := header.toDevice(event.Position)
	if !header.dragging {
		header.dragging = header.owner.dragger.Start(local)
		return
	}
	header.owner.dragger.Update(local)
}

func (header *dragHeader) DragEnd() {
	header.dragging = false
	header.owner.dragger.End()
}

func (header *dragHeader) toDevice(position fyne.Position) drag.Point {
	scale := float32(1)
	if canvas := header.owner.window.Canvas(); canvas != nil && canvas.Scale() > 0 {
		scale = canvas.Scale()
	}
	return drag.Point{X: int(position.X * scale), Y: int(position.Y * scale)}
}

// nativeWindow adapts a fyne window to the drag controller.
type nativeWindow struct {
	window fyne.Window
}

func (native *nativeWindow) Position() (drag.Point, bool) {
	x, y, ok := platform.WindowPosition(native.window)
	return drag.Point{X: x, Y: y}, ok
}

func (native *nativeWindow) Move(point drag.Point) {
	platform.MoveWindow(native.window, point.X, point.Y)
}
