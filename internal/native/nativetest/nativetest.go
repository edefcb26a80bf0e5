// Package nativetest provides an in-memory native.Platform that records
// every window operation for inspection by tests.
package nativetest

import (
	"errors"
	"slices"

	"golang.org/x/mobile/event/paint"

	"github.com/example/fonotes/internal/native"
)

// Platform is a fake windowing system. Events are queued in a buffered
// channel; tests inject input with Send and inspect windows after the loop
// has processed it.
type Platform struct {
	events chan any
	nextID native.WindowID

	// Windows lists every window ever created, in creation order.
	Windows []*Window
	// Surfaces lists every surface ever created, in creation order.
	Surfaces []*Surface

	// WindowErr and SurfaceErr, when set, make the next creation fail.
	WindowErr  error
	SurfaceErr error

	Released bool
}

// New returns an empty platform.
func New() *Platform {
	return &Platform{events: make(chan any, 1024)}
}

func (p *Platform) NewWindow(cfg native.WindowConfig) (native.Window, error) {
	if err := p.WindowErr; err != nil {
		p.WindowErr = nil
		return nil, err
	}
	p.nextID++
	w := &Window{
		Config:   cfg,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Visible:  true,
		id:       p.nextID,
		platform: p,
	}
	p.Windows = append(p.Windows, w)
	return w, nil
}

func (p *Platform) NewSurface(w native.Window) (native.Surface, error) {
	if err := p.SurfaceErr; err != nil {
		p.SurfaceErr = nil
		return nil, err
	}
	fw, ok := w.(*Window)
	if !ok {
		return nil, errors.New("nativetest: foreign window")
	}
	s := &Surface{Window: fw}
	p.Surfaces = append(p.Surfaces, s)
	return s, nil
}

func (p *Platform) NextEvent() any { return <-p.events }

func (p *Platform) Send(ev any) { p.events <- ev }

func (p *Platform) Release() { p.Released = true }

// Window returns the window with id, or nil.
func (p *Platform) Window(id native.WindowID) *Window {
	for _, w := range p.Windows {
		if w.id == id {
			return w
		}
	}
	return nil
}

// Window is a fake native window.
type Window struct {
	Config        native.WindowConfig
	Width, Height int
	Visible       bool

	Cursor   native.Cursor
	Cursors  []native.Cursor
	Moves    int
	Resizes  []native.ResizeDirection
	Redraws  int
	Released bool

	id       native.WindowID
	platform *Platform
}

func (w *Window) ID() native.WindowID { return w.id }

func (w *Window) Size() (int, int) { return w.Width, w.Height }

func (w *Window) SetCursor(c native.Cursor) error {
	if w.Released {
		return native.ErrReleased
	}
	w.Cursor = c
	w.Cursors = append(w.Cursors, c)
	return nil
}

func (w *Window) DragMove() error {
	if w.Released {
		return native.ErrReleased
	}
	w.Moves++
	return nil
}

func (w *Window) DragResize(d native.ResizeDirection) error {
	if w.Released {
		return native.ErrReleased
	}
	w.Resizes = append(w.Resizes, d)
	return nil
}

func (w *Window) SetVisible(v bool) error {
	if w.Released {
		return native.ErrReleased
	}
	w.Visible = v
	return nil
}

// RequestRedraw queues a paint event, like a compositor would.
func (w *Window) RequestRedraw() {
	if w.Released {
		return
	}
	w.Redraws++
	w.platform.Send(native.WindowEvent{Window: w.id, Event: paint.Event{}})
}

func (w *Window) Release() error {
	if w.Released {
		return native.ErrReleased
	}
	w.Released = true
	w.Visible = false
	return nil
}

// Surface is a fake presentable buffer. Every Present appends a copy of the
// buffer to Frames.
type Surface struct {
	Window        *Window
	Width, Height int
	Buf           []uint32
	Frames        [][]uint32
	Released      bool
}

func (s *Surface) Resize(w, h int) error {
	if s.Released {
		return native.ErrReleased
	}
	if w <= 0 || h <= 0 {
		return errors.New("nativetest: zero-area surface")
	}
	if w != s.Width || h != s.Height {
		s.Width, s.Height = w, h
		s.Buf = make([]uint32, w*h)
	}
	return nil
}

func (s *Surface) Buffer() ([]uint32, error) {
	if s.Released {
		return nil, native.ErrReleased
	}
	return s.Buf, nil
}

func (s *Surface) Present() error {
	if s.Released {
		return native.ErrReleased
	}
	s.Frames = append(s.Frames, slices.Clone(s.Buf))
	return nil
}

func (s *Surface) Release() error {
	if s.Released {
		return native.ErrReleased
	}
	s.Released = true
	return nil
}

// LastFrame returns the most recently presented frame, or nil.
func (s *Surface) LastFrame() []uint32 {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[len(s.Frames)-1]
}
