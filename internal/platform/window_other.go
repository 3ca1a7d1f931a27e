//go:build !windows

package platform

import "fyne.io/fyne/v2"

// PlacementSupported reports whether windows can be moved to explicit origins.
func PlacementSupported() bool {
	return false
}

// PlaceTopmost is unsupported here; callers fall back to fullscreen.
func PlaceTopmost(window fyne.Window, x, y int) bool {
	return false
}

// WindowPosition is unsupported here.
func WindowPosition(window fyne.Window) (x, y int, ok bool) {
	return 0, 0, false
}

// MoveWindow is unsupported here.
func MoveWindow(window fyne.Window, x, y int) bool {
	return false
}
