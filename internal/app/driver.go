// Package app runs the note event loop: it opens windows for incoming
// requests, turns pointer input into chrome actions and redraws notes.
package app

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/fonotes/internal/chrome"
	"github.com/example/fonotes/internal/native"
	"github.com/example/fonotes/internal/note"
	"github.com/example/fonotes/internal/render"
)

// Notifier is told about opened and closed notes. Calls are made off the
// event loop goroutine.
type Notifier interface {
	Capture(detail string, img image.Image)
	Close(detail string)
}

// Option configures a Driver.
type Option func(*Driver)

// WithNotifier sends desktop notifications through n.
func WithNotifier(n Notifier) Option {
	return func(d *Driver) { d.notifier = n }
}

// WithExitWhenEmpty stops Run once every opened note has been closed.
func WithExitWhenEmpty() Option {
	return func(d *Driver) { d.exitWhenEmpty = true }
}

// Driver owns the note registry and every native resource. All methods
// except Submit must be called from the goroutine running Run.
type Driver struct {
	platform  native.Platform
	presenter *render.Presenter
	notes     *note.Registry
	notifier  Notifier

	exitWhenEmpty bool
	opened        bool
}

// New returns a driver drawing through presenter on platform.
func New(platform native.Platform, presenter *render.Presenter, opts ...Option) *Driver {
	d := &Driver{
		platform:  platform,
		presenter: presenter,
		notes:     note.NewRegistry(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Submit queues r for the event loop. It is safe to call from any
// goroutine; the request is handled on a later event-turn.
func (d *Driver) Submit(r note.Request) { d.platform.Send(r) }

// Notes exposes the registry for inspection.
func (d *Driver) Notes() *note.Registry { return d.notes }

// Run processes events one at a time until the platform shuts down, a
// note cannot be created, or the last note closes under WithExitWhenEmpty.
// Remaining notes are released on return.
func (d *Driver) Run() error {
	defer d.closeAll()
	for {
		done, err := d.Dispatch(d.platform.NextEvent())
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Dispatch handles one event to completion and reports whether the loop
// should stop.
func (d *Driver) Dispatch(ev any) (bool, error) {
	switch e := ev.(type) {
	case note.Request:
		if err := d.open(e); err != nil {
			return true, err
		}
	case native.WindowEvent:
		d.windowEvent(e)
		if d.exitWhenEmpty && d.opened && d.notes.Len() == 0 {
			return true, nil
		}
	case native.Shutdown:
		if e.Err != nil {
			return true, fmt.Errorf("platform shutdown: %w", e.Err)
		}
		return true, nil
	default:
		slog.Debug("ignored event", "type", fmt.Sprintf("%T", ev))
	}
	return false, nil
}

func (d *Driver) open(r note.Request) error {
	win, err := d.platform.NewWindow(r.Window)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	surf, err := d.platform.NewSurface(win)
	if err != nil {
		_ = win.Release()
		return fmt.Errorf("create surface: %w", err)
	}
	n := note.New(win, surf, r.Content)
	if err := d.notes.Add(n); err != nil {
		_ = n.Release()
		return err
	}
	d.opened = true
	slog.Info("note opened", "id", n.ID(), "content", r.Content.String())
	win.RequestRedraw()

	if d.notifier != nil {
		var preview image.Image
		if rgba := r.Content.RGBA(); rgba != nil {
			preview = rgba
		}
		go d.notifier.Capture(r.Content.Title(), preview)
	}
	return nil
}

func (d *Driver) windowEvent(e native.WindowEvent) {
	n := d.notes.Get(e.Window)
	if n == nil {
		slog.Debug("event for closed window", "id", e.Window, "type", fmt.Sprintf("%T", e.Event))
		return
	}
	switch ev := e.Event.(type) {
	case mouse.Event:
		d.pointer(n, ev)
	case paint.Event:
		d.redraw(n)
	case size.Event:
		n.Window.RequestRedraw()
	case lifecycle.Event:
		if ev.To == lifecycle.StageDead {
			d.close(n)
		}
	}
}

func (d *Driver) pointer(n *note.Note, ev mouse.Event) {
	switch ev.Direction {
	case mouse.DirNone:
		n.PointerX, n.PointerY = float64(ev.X), float64(ev.Y)
		c := d.zone(n).Cursor()
		if c == n.Cursor {
			return
		}
		err := n.Window.SetCursor(c)
		logActionErr(n, "set cursor", err)
		if err == nil {
			n.Cursor = c
		}
	case mouse.DirPress:
		if ev.Button != mouse.ButtonLeft {
			return
		}
		n.PointerX, n.PointerY = float64(ev.X), float64(ev.Y)
		d.act(n, d.zone(n))
	}
}

func (d *Driver) zone(n *note.Note) chrome.Zone {
	w, h := n.Size()
	return chrome.HitTest(n.PointerX, n.PointerY, float64(w), float64(h))
}

func (d *Driver) act(n *note.Note, zone chrome.Zone) {
	switch zone {
	case chrome.Close:
		d.close(n)
	case chrome.Drag:
		logActionErr(n, "drag move", n.Window.DragMove())
	default:
		dir, _ := zone.Direction()
		logActionErr(n, "drag resize", n.Window.DragResize(dir))
	}
}

func logActionErr(n *note.Note, op string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, native.ErrUnsupported):
		slog.Debug(op+" unsupported", "id", n.ID())
	default:
		slog.Warn(op+" failed", "id", n.ID(), "err", err)
	}
}

func (d *Driver) redraw(n *note.Note) {
	w, h := n.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if err := d.presenter.Present(n.Surface, n.View, w, h); err != nil {
		slog.Error("redraw failed", "id", n.ID(), "err", err)
	}
}

// close removes n and frees its window and surface in the same turn.
func (d *Driver) close(n *note.Note) {
	d.notes.Remove(n.ID())
	if err := n.Release(); err != nil {
		slog.Warn("release note", "id", n.ID(), "err", err)
	}
	slog.Info("note closed", "id", n.ID())
	if d.notifier != nil {
		go d.notifier.Close(n.Content.Title())
	}
}

func (d *Driver) closeAll() {
	for _, n := range d.notes.Notes() {
		d.notes.Remove(n.ID())
		if err := n.Release(); err != nil {
			slog.Warn("release note", "id", n.ID(), "err", err)
		}
	}
}
