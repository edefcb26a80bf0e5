// Package note models the popup windows that show captured clipboard
// content and the registry the event loop keeps them in.
package note

import (
	"errors"
	"fmt"

	"github.com/example/fonotes/internal/native"
	"github.com/example/fonotes/internal/render"
	"github.com/example/fonotes/internal/snapshot"
)

// TitlePrefix starts every note window title.
const TitlePrefix = "FONotes - "

// DefaultWindow returns the window configuration used for new notes.
func DefaultWindow() native.WindowConfig {
	return native.WindowConfig{
		Width:       800,
		Height:      600,
		MinWidth:    50,
		MinHeight:   50,
		Decorated:   false,
		AlwaysOnTop: true,
		Resizable:   true,
	}
}

// Request asks the event loop to open a note. It is built on the listener
// goroutine and handed over by value; the receiver owns it afterwards.
type Request struct {
	Window  native.WindowConfig
	Content snapshot.Snapshot
}

// NewRequest pairs content with a copy of the window template, titled after
// the content kind. Decorations are always off.
func NewRequest(window native.WindowConfig, content snapshot.Snapshot) Request {
	window.Title = TitlePrefix + content.Title()
	window.Decorated = false
	return Request{Window: window, Content: content}
}

// Note is one visible popup and the native resources it owns.
type Note struct {
	Content snapshot.Snapshot
	Window  native.Window
	Surface native.Surface

	// PointerX and PointerY hold the last reported pointer position in
	// window-local physical pixels.
	PointerX, PointerY float64

	// Cursor is the icon last set on the window. Windows open with
	// native.CursorDefault.
	Cursor native.Cursor

	// View caches the rendered content layer between redraws.
	View *render.View

	released bool
}

// New wraps a freshly created window and its surface.
func New(window native.Window, surface native.Surface, content snapshot.Snapshot) *Note {
	return &Note{Content: content, Window: window, Surface: surface, View: render.NewView(content)}
}

// ID returns the id of the note's window.
func (n *Note) ID() native.WindowID { return n.Window.ID() }

// Size returns the current window size as reported by the window.
func (n *Note) Size() (width, height int) { return n.Window.Size() }

// Release frees the surface and the window. Calling it again is a no-op.
func (n *Note) Release() error {
	if n.released {
		return nil
	}
	n.released = true
	n.View = nil
	var errs []error
	if n.Surface != nil {
		if err := n.Surface.Release(); err != nil {
			errs = append(errs, fmt.Errorf("release surface: %w", err))
		}
	}
	if err := n.Window.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release window: %w", err))
	}
	return errors.Join(errs...)
}

// Released reports whether Release has been called.
func (n *Note) Released() bool { return n.released }
