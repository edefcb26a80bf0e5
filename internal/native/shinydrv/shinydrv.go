// Package shinydrv implements native.Platform on golang.org/x/exp/shiny.
// Shiny windows keep their decorations and cannot hand the pointer to the
// window manager, so cursors and interactive moves report
// native.ErrUnsupported.
package shinydrv

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/fonotes/internal/native"
)

// Main runs f with a platform on the shiny driver. It blocks until f returns.
func Main(f func(native.Platform)) {
	driver.Main(func(s screen.Screen) {
		p := New(s)
		defer p.Release()
		f(p)
	})
}

// stopPump tells a window's pump goroutine to exit.
type stopPump struct{}

// Platform multiplexes the event queues of every shiny window into one.
type Platform struct {
	screen screen.Screen
	events chan any

	mu      sync.Mutex
	nextID  native.WindowID
	windows map[native.WindowID]*Window
}

// New wraps s.
func New(s screen.Screen) *Platform {
	return &Platform{
		screen:  s,
		events:  make(chan any, 1024),
		windows: make(map[native.WindowID]*Window),
	}
}

func (p *Platform) NewWindow(cfg native.WindowConfig) (native.Window, error) {
	sw, err := p.screen.NewWindow(&screen.NewWindowOptions{
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  cfg.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("shiny window: %w", err)
	}
	p.mu.Lock()
	p.nextID++
	w := &Window{p: p, win: sw, id: p.nextID, width: cfg.Width, height: cfg.Height}
	p.windows[w.id] = w
	p.mu.Unlock()
	go w.pump()
	return w, nil
}

func (p *Platform) NewSurface(w native.Window) (native.Surface, error) {
	sw, ok := w.(*Window)
	if !ok || sw.p != p {
		return nil, fmt.Errorf("shinydrv: window belongs to another platform")
	}
	return &Surface{p: p, win: sw}, nil
}

// NextEvent returns the next event, tracking window sizes from size events.
func (p *Platform) NextEvent() any {
	ev := <-p.events
	if we, ok := ev.(native.WindowEvent); ok {
		if sz, ok := we.Event.(size.Event); ok {
			p.mu.Lock()
			if w := p.windows[we.Window]; w != nil {
				w.width, w.height = sz.WidthPx, sz.HeightPx
			}
			p.mu.Unlock()
		}
	}
	return ev
}

func (p *Platform) Send(ev any) {
	select {
	case p.events <- ev:
	default:
		go func() { p.events <- ev }()
	}
}

// Release closes every remaining window.
func (p *Platform) Release() {
	p.mu.Lock()
	ws := make([]*Window, 0, len(p.windows))
	for _, w := range p.windows {
		ws = append(ws, w)
	}
	p.mu.Unlock()
	for _, w := range ws {
		_ = w.Release()
	}
}

// Window wraps a shiny window and the goroutine draining its events.
type Window struct {
	p             *Platform
	win           screen.Window
	id            native.WindowID
	width, height int
	released      bool
}

func (w *Window) pump() {
	for {
		switch e := w.win.NextEvent().(type) {
		case stopPump:
			return
		case size.Event, paint.Event, mouse.Event:
			w.p.Send(native.WindowEvent{Window: w.id, Event: e})
		case lifecycle.Event:
			w.p.Send(native.WindowEvent{Window: w.id, Event: e})
			if e.To == lifecycle.StageDead {
				return
			}
		}
	}
}

func (w *Window) ID() native.WindowID { return w.id }

func (w *Window) Size() (int, int) {
	w.p.mu.Lock()
	defer w.p.mu.Unlock()
	return w.width, w.height
}

func (w *Window) SetCursor(native.Cursor) error { return w.unsupported() }

func (w *Window) DragMove() error { return w.unsupported() }

func (w *Window) DragResize(native.ResizeDirection) error { return w.unsupported() }

func (w *Window) SetVisible(bool) error { return w.unsupported() }

func (w *Window) unsupported() error {
	if w.released {
		return native.ErrReleased
	}
	return native.ErrUnsupported
}

func (w *Window) RequestRedraw() {
	if w.released {
		return
	}
	w.win.Send(paint.Event{})
}

func (w *Window) Release() error {
	if w.released {
		return native.ErrReleased
	}
	w.released = true
	w.p.mu.Lock()
	delete(w.p.windows, w.id)
	w.p.mu.Unlock()
	w.win.Send(stopPump{})
	w.win.Release()
	return nil
}

// Surface keeps a packed frame and a shiny buffer of the same size.
type Surface struct {
	p        *Platform
	win      *Window
	buf      []uint32
	shiny    screen.Buffer
	released bool
}

func (s *Surface) Resize(w, h int) error {
	if s.released {
		return native.ErrReleased
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("shinydrv: invalid surface size %dx%d", w, h)
	}
	if s.shiny != nil && s.shiny.Size() == (image.Point{X: w, Y: h}) {
		return nil
	}
	b, err := s.p.screen.NewBuffer(image.Point{X: w, Y: h})
	if err != nil {
		return fmt.Errorf("shiny buffer: %w", err)
	}
	if s.shiny != nil {
		s.shiny.Release()
	}
	s.shiny = b
	s.buf = make([]uint32, w*h)
	return nil
}

func (s *Surface) Buffer() ([]uint32, error) {
	if s.released {
		return nil, native.ErrReleased
	}
	return s.buf, nil
}

func (s *Surface) Present() error {
	if s.released || s.win.released {
		return native.ErrReleased
	}
	if s.shiny == nil {
		return nil
	}
	unpack(s.shiny.RGBA(), s.buf)
	s.win.win.Upload(image.Point{}, s.shiny, s.shiny.Bounds())
	s.win.win.Publish()
	return nil
}

func (s *Surface) Release() error {
	if s.released {
		return native.ErrReleased
	}
	s.released = true
	if s.shiny != nil {
		s.shiny.Release()
		s.shiny = nil
	}
	s.buf = nil
	return nil
}

// unpack expands 0x00RRGGBB pixels into opaque RGBA.
func unpack(dst *image.RGBA, src []uint32) {
	w := dst.Rect.Dx()
	for i, px := range src {
		x, y := i%w, i/w
		o := dst.PixOffset(dst.Rect.Min.X+x, dst.Rect.Min.Y+y)
		dst.Pix[o+0] = uint8(px >> 16)
		dst.Pix[o+1] = uint8(px >> 8)
		dst.Pix[o+2] = uint8(px)
		dst.Pix[o+3] = 0xff
	}
}
