package model

// Monitor describes one physical display in device pixels.
type Monitor struct {
	Name        string
	X           int
	Y           int
	Width       int
	Height      int
	ScaleFactor float32
}

// LogicalPad is added to each logical dimension so overlays never leave a sub-pixel gap.
const LogicalPad = float32(1)

// Scale returns the device pixels per logical pixel, falling back to 1 for unusable values.
func (monitor Monitor) Scale() float32 {
	if monitor.ScaleFactor <= 0 {
		return 1
	}
	return monitor.ScaleFactor
}

// LogicalSize returns the padded logical size that covers the whole monitor.
func (monitor Monitor) LogicalSize() (float32, float32) {
	scale := monitor.Scale()
	return float32(monitor.Width)/scale + LogicalPad, float32(monitor.Height)/scale + LogicalPad
}

// Empty reports whether the monitor has no usable area.
func (monitor Monitor) Empty() bool {
	return monitor.Width <= 0 || monitor.Height <= 0
}

// BoundingBox returns the smallest rectangle that contains every monitor.
// The result has a scale factor of 1; ok is false when no monitor has area.
func BoundingBox(monitors []Monitor) (Monitor, bool) {
	var box Monitor
	found := false
	for _, monitor := range monitors {
		if monitor.Empty() {
			continue
		}
		if !found {
			box = Monitor{X: monitor.X, Y: monitor.Y, Width: monitor.Width, Height: monitor.Height}
			found = true
			continue
		}
		right := max(box.X+box.Width, monitor.X+monitor.Width)
		bottom := max(box.Y+box.Height, monitor.Y+monitor.Height)
		box.X = min(box.X, monitor.X)
		box.Y = min(box.Y, monitor.Y)
		box.Width = right - box.X
		box.Height = bottom - box.Y
	}
	if !found {
		return Monitor{}, false
	}
	box.Name = "virtual"
	box.ScaleFactor = 1
	return box, true
}
