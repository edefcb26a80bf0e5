// Package native describes the windowing and surface collaborators the
// note event loop is written against. Backends live in subpackages.
//
// Events returned by Platform.NextEvent are either values injected with
// Send, a WindowEvent wrapping one of the golang.org/x/mobile/event values
// (mouse.Event, paint.Event, size.Event, lifecycle.Event), or Shutdown.
package native

import "errors"

var (
	// ErrUnsupported is returned by operations the backend cannot perform.
	ErrUnsupported = errors.New("operation not supported by this backend")
	// ErrReleased is returned when a released window or surface is used.
	ErrReleased = errors.New("resource already released")
)

// WindowID identifies a native window for its whole lifetime.
type WindowID uint64

// WindowConfig describes a window to create.
type WindowConfig struct {
	Title       string
	Width       int
	Height      int
	MinWidth    int
	MinHeight   int
	Decorated   bool
	AlwaysOnTop bool
	Resizable   bool
}

// ResizeDirection names the edge or corner an interactive resize grabs.
type ResizeDirection int

const (
	ResizeNorth ResizeDirection = iota
	ResizeSouth
	ResizeEast
	ResizeWest
	ResizeNorthEast
	ResizeNorthWest
	ResizeSouthEast
	ResizeSouthWest
)

func (d ResizeDirection) String() string {
	switch d {
	case ResizeNorth:
		return "n"
	case ResizeSouth:
		return "s"
	case ResizeEast:
		return "e"
	case ResizeWest:
		return "w"
	case ResizeNorthEast:
		return "ne"
	case ResizeNorthWest:
		return "nw"
	case ResizeSouthEast:
		return "se"
	case ResizeSouthWest:
		return "sw"
	}
	return "unknown"
}

// Cursor is a pointer icon.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorEWResize
	CursorNSResize
)

func (c Cursor) String() string {
	switch c {
	case CursorPointer:
		return "pointer"
	case CursorEWResize:
		return "ew-resize"
	case CursorNSResize:
		return "ns-resize"
	}
	return "default"
}

// Window is a native top-level window. Methods must only be called from the
// goroutine that runs the event loop.
type Window interface {
	ID() WindowID
	// Size reports the current inner size in physical pixels.
	Size() (width, height int)
	SetCursor(Cursor) error
	// DragMove hands the pointer to the window manager for an interactive move.
	DragMove() error
	// DragResize hands the pointer to the window manager for an interactive resize.
	DragResize(ResizeDirection) error
	SetVisible(bool) error
	// RequestRedraw queues a paint event for the window.
	RequestRedraw()
	Release() error
}

// Surface is a presentable pixel buffer bound to one window. Pixels are
// packed 0x00RRGGBB, row-major.
type Surface interface {
	Resize(width, height int) error
	// Buffer returns the writable backing store of the last Resize.
	Buffer() ([]uint32, error)
	Present() error
	Release() error
}

// Platform owns the native event queue.
type Platform interface {
	NewWindow(WindowConfig) (Window, error)
	NewSurface(Window) (Surface, error)
	// NextEvent blocks until an event is available.
	NextEvent() any
	// Send injects ev into the event queue. It is safe to call from any
	// goroutine.
	Send(ev any)
	Release()
}

// WindowEvent is an input or lifecycle event addressed to one window.
type WindowEvent struct {
	Window WindowID
	Event  any
}

// Shutdown is delivered once the platform can no longer produce events.
type Shutdown struct {
	Err error
}
