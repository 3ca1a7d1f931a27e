// Package drag moves a borderless window by following the pointer.
package drag

// Point is a position in device pixels.
type Point struct {
	X, Y int
}

// Add returns p translated by other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p minus other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Window is the part of a window the controller needs.
type Window interface {
	Position() (Point, bool)
	Move(Point)
}

// Controller tracks one drag gesture. Both anchors are captured together at
// Start, so Update never sees one without the other.
type Controller struct {
	window       Window
	active       bool
	windowAnchor Point
	cursorAnchor Point
}

// NewController creates a controller for window.
func NewController(window Window) *Controller {
	return &Controller{window: window}
}

// Start records the window origin and the absolute cursor position derived from
// the window-local cursor offset. It returns false when the window position
// cannot be read.
func (controller *Controller) Start(local Point) bool {
	origin, ok := controller.window.Position()
	if !ok {
		controller.End()
		return false
	}
	controller.windowAnchor = origin
	controller.cursorAnchor = origin.Add(local)
	controller.active = true
	return true
}

// Update moves the window by the absolute cursor delta since Start. No-op
// without a gesture or when the window position cannot be read.
func (controller *Controller) Update(local Point) {
	if !controller.active {
		return
	}
	current, ok := controller.window.Position()
	if !ok {
		return
	}
	delta := current.Add(local).Sub(controller.cursorAnchor)
	controller.window.Move(controller.windowAnchor.Add(delta))
}

// End finishes the gesture.
func (controller *Controller) End() {
	controller.active = false
	controller.windowAnchor = Point{}
	controller.cursorAnchor = Point{}
}

// Active reports whether a drag is in progress.
func (controller *Controller) Active() bool {
	return controller.active
}
