//go:build linux || freebsd || openbsd || netbsd || dragonfly

// Package x11 implements native.Platform on a plain X11 connection:
// undecorated windows, cursor-font cursors, window-manager driven moves and
// resizes, and PutImage presentation.
package x11

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/fonotes/internal/native"
)

var errPixmapFormat = errors.New("x11: root depth has no 32 bits-per-pixel pixmap format")

type atoms struct {
	protocols  xproto.Atom
	deleteWin  xproto.Atom
	motifHints xproto.Atom
	state      xproto.Atom
	stateAbove xproto.Atom
	moveResize xproto.Atom
	netName    xproto.Atom
	utf8String xproto.Atom
}

// Platform is an X11 connection plus the windows created on it.
type Platform struct {
	conn   *xgb.Conn
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo
	atoms  atoms

	events   chan any
	windows  map[xproto.Window]*Window
	cursors  map[native.Cursor]xproto.Cursor
	font     xproto.Font
	released atomic.Bool
}

// Open connects to $DISPLAY and starts reading events.
func Open() (*Platform, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	setup := xproto.Setup(conn)
	if setup == nil || len(setup.Roots) == 0 {
		conn.Close()
		return nil, errors.New("x11: no screens")
	}
	p := &Platform{
		conn:    conn,
		setup:   setup,
		screen:  setup.DefaultScreen(conn),
		events:  make(chan any, 1024),
		windows: make(map[xproto.Window]*Window),
		cursors: make(map[native.Cursor]xproto.Cursor),
	}
	if err := p.internAtoms(); err != nil {
		conn.Close()
		return nil, err
	}
	go p.read()
	return p, nil
}

func (p *Platform) internAtoms() error {
	names := []struct {
		dst  *xproto.Atom
		name string
	}{
		{&p.atoms.protocols, "WM_PROTOCOLS"},
		{&p.atoms.deleteWin, "WM_DELETE_WINDOW"},
		{&p.atoms.motifHints, "_MOTIF_WM_HINTS"},
		{&p.atoms.state, "_NET_WM_STATE"},
		{&p.atoms.stateAbove, "_NET_WM_STATE_ABOVE"},
		{&p.atoms.moveResize, "_NET_WM_MOVERESIZE"},
		{&p.atoms.netName, "_NET_WM_NAME"},
		{&p.atoms.utf8String, "UTF8_STRING"},
	}
	cookies := make([]xproto.InternAtomCookie, len(names))
	for i, n := range names {
		cookies[i] = xproto.InternAtom(p.conn, false, uint16(len(n.name)), n.name)
	}
	for i, c := range cookies {
		reply, err := c.Reply()
		if err != nil {
			return fmt.Errorf("intern %s: %w", names[i].name, err)
		}
		*names[i].dst = reply.Atom
	}
	return nil
}

// read translates X events until the connection closes.
func (p *Platform) read() {
	for {
		ev, err := p.conn.WaitForEvent()
		if ev == nil && err == nil {
			if !p.released.Load() {
				p.Send(native.Shutdown{Err: errors.New("x11: connection closed")})
			}
			return
		}
		if err != nil {
			slog.Debug("x11 error", "err", err)
			continue
		}
		if out, ok := p.translate(ev); ok {
			p.Send(out)
		}
	}
}

func (p *Platform) translate(ev xgb.Event) (native.WindowEvent, bool) {
	switch e := ev.(type) {
	case xproto.ExposeEvent:
		if e.Count != 0 {
			return native.WindowEvent{}, false
		}
		return windowEvent(e.Window, paint.Event{External: true}), true
	case xproto.ConfigureNotifyEvent:
		return windowEvent(e.Window, size.Event{WidthPx: int(e.Width), HeightPx: int(e.Height)}), true
	case xproto.MotionNotifyEvent:
		return windowEvent(e.Event, mouse.Event{X: float32(e.EventX), Y: float32(e.EventY)}), true
	case xproto.ButtonPressEvent:
		return windowEvent(e.Event, buttonEvent(e.Detail, e.EventX, e.EventY, mouse.DirPress)), true
	case xproto.ButtonReleaseEvent:
		return windowEvent(e.Event, buttonEvent(e.Detail, e.EventX, e.EventY, mouse.DirRelease)), true
	case xproto.ClientMessageEvent:
		if e.Type == p.atoms.protocols && e.Format == 32 &&
			len(e.Data.Data32) > 0 && xproto.Atom(e.Data.Data32[0]) == p.atoms.deleteWin {
			return windowEvent(e.Window, lifecycle.Event{From: lifecycle.StageVisible, To: lifecycle.StageDead}), true
		}
	}
	return native.WindowEvent{}, false
}

func windowEvent(w xproto.Window, ev any) native.WindowEvent {
	return native.WindowEvent{Window: native.WindowID(w), Event: ev}
}

func buttonEvent(detail xproto.Button, x, y int16, dir mouse.Direction) mouse.Event {
	ev := mouse.Event{X: float32(x), Y: float32(y), Direction: dir}
	switch detail {
	case xproto.ButtonIndex1:
		ev.Button = mouse.ButtonLeft
	case xproto.ButtonIndex2:
		ev.Button = mouse.ButtonMiddle
	case xproto.ButtonIndex3:
		ev.Button = mouse.ButtonRight
	case xproto.ButtonIndex4:
		ev.Button, ev.Direction = mouse.ButtonWheelUp, mouse.DirStep
	case xproto.ButtonIndex5:
		ev.Button, ev.Direction = mouse.ButtonWheelDown, mouse.DirStep
	}
	return ev
}

// NextEvent returns the next event, keeping cached window sizes current.
// Pure moves are swallowed.
func (p *Platform) NextEvent() any {
	for {
		ev := <-p.events
		we, ok := ev.(native.WindowEvent)
		if !ok {
			return ev
		}
		if sz, ok := we.Event.(size.Event); ok {
			w := p.windows[xproto.Window(we.Window)]
			if w == nil {
				continue
			}
			if w.width == sz.WidthPx && w.height == sz.HeightPx {
				continue
			}
			w.width, w.height = sz.WidthPx, sz.HeightPx
		}
		return ev
	}
}

// Send queues ev. A full queue hands the value to a goroutine so callers on
// the event loop never block on themselves.
func (p *Platform) Send(ev any) {
	select {
	case p.events <- ev:
	default:
		go func() { p.events <- ev }()
	}
}

// Release destroys every remaining window and closes the connection.
func (p *Platform) Release() {
	if p.released.Swap(true) {
		return
	}
	for _, w := range p.windows {
		_ = w.Release()
	}
	for _, c := range p.cursors {
		xproto.FreeCursor(p.conn, c)
	}
	if p.font != 0 {
		xproto.CloseFont(p.conn, p.font)
	}
	p.conn.Close()
}

func (p *Platform) cursor(c native.Cursor) (xproto.Cursor, error) {
	if id, ok := p.cursors[c]; ok {
		return id, nil
	}
	if p.font == 0 {
		fid, err := xproto.NewFontId(p.conn)
		if err != nil {
			return 0, err
		}
		const name = "cursor"
		if err := xproto.OpenFontChecked(p.conn, fid, uint16(len(name)), name).Check(); err != nil {
			return 0, fmt.Errorf("open cursor font: %w", err)
		}
		p.font = fid
	}
	cid, err := xproto.NewCursorId(p.conn)
	if err != nil {
		return 0, err
	}
	glyph := cursorGlyph(c)
	err = xproto.CreateGlyphCursorChecked(p.conn, cid, p.font, p.font, glyph, glyph+1,
		0, 0, 0, 0xffff, 0xffff, 0xffff).Check()
	if err != nil {
		return 0, fmt.Errorf("create %s cursor: %w", c, err)
	}
	p.cursors[c] = cid
	return cid, nil
}

func (p *Platform) bitsPerPixel() int {
	for _, f := range p.setup.PixmapFormats {
		if f.Depth == p.screen.RootDepth {
			return int(f.BitsPerPixel)
		}
	}
	return 0
}

func (p *Platform) NewSurface(w native.Window) (native.Surface, error) {
	xw, ok := w.(*Window)
	if !ok || xw.p != p {
		return nil, errors.New("x11: window belongs to another platform")
	}
	if p.bitsPerPixel() != 32 {
		return nil, errPixmapFormat
	}
	return &Surface{win: xw}, nil
}
