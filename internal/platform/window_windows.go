//go:build windows

package platform

import (
	"syscall"
	"unsafe"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

const (
	swpNoSize     = 0x0001
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010
	swpShowWindow = 0x0040
)

// hwndTopmost is HWND_TOPMOST ((HWND)-1).
var hwndTopmost = ^uintptr(0)

var (
	user32DLL         = syscall.NewLazyDLL("user32.dll")
	procSetWindowPos  = user32DLL.NewProc("SetWindowPos")
	procGetWindowRect = user32DLL.NewProc("GetWindowRect")
)

type rect struct {
	Left, Top, Right, Bottom int32
}

// PlacementSupported reports whether windows can be moved to explicit origins.
func PlacementSupported() bool {
	return true
}

// PlaceTopmost moves the window to a device-pixel origin above all other windows.
func PlaceTopmost(window fyne.Window, x, y int) bool {
	return withHWND(window, func(hwnd uintptr) {
		procSetWindowPos.Call(hwnd, hwndTopmost,
			intToUintptr(x), intToUintptr(y), 0, 0,
			swpNoSize|swpShowWindow)
	})
}

// WindowPosition reports the window's top-left corner in device pixels.
func WindowPosition(window fyne.Window) (x, y int, ok bool) {
	var found bool
	withHWND(window, func(hwnd uintptr) {
		var bounds rect
		result, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&bounds)))
		if result == 0 {
			return
		}
		x, y = int(bounds.Left), int(bounds.Top)
		found = true
	})
	return x, y, found
}

// MoveWindow moves the window without changing its size or z-order.
func MoveWindow(window fyne.Window, x, y int) bool {
	return withHWND(window, func(hwnd uintptr) {
		procSetWindowPos.Call(hwnd, 0,
			intToUintptr(x), intToUintptr(y), 0, 0,
			swpNoSize|swpNoZOrder|swpNoActivate)
	})
}

// withHWND runs fn with the native handle. It reports false when the window
// has no native handle yet.
func withHWND(window fyne.Window, fn func(hwnd uintptr)) (handled bool) {
	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return false
	}
	defer func() {
		if recover() != nil {
			handled = false
		}
	}()

	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		default:
			return
		}
		if hwnd == 0 {
			return
		}
		fn(hwnd)
		handled = true
	})
	return handled
}

func intToUintptr(value int) uintptr {
	return uintptr(uint32(int32(value)))
}
