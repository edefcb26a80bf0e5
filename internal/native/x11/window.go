//go:build linux || freebsd || openbsd || netbsd || dragonfly

package x11

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
	"golang.org/x/mobile/event/paint"

	"github.com/example/fonotes/internal/native"
)

const eventMask = xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease

// Window is a top-level X window with its own graphics context.
type Window struct {
	p             *Platform
	xid           xproto.Window
	gc            xproto.Gcontext
	width, height int
	released      bool
}

func (p *Platform) NewWindow(cfg native.WindowConfig) (native.Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("x11: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	wid, err := xproto.NewWindowId(p.conn)
	if err != nil {
		return nil, err
	}
	err = xproto.CreateWindowChecked(p.conn, p.screen.RootDepth, wid, p.screen.Root,
		0, 0, uint16(cfg.Width), uint16(cfg.Height), 0,
		xproto.WindowClassInputOutput, p.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{p.screen.WhitePixel, eventMask}).Check()
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	w := &Window{p: p, xid: wid, width: cfg.Width, height: cfg.Height}
	if err := w.configure(cfg); err != nil {
		xproto.DestroyWindow(p.conn, wid)
		return nil, err
	}
	gc, err := xproto.NewGcontextId(p.conn)
	if err != nil {
		xproto.DestroyWindow(p.conn, wid)
		return nil, err
	}
	if err := xproto.CreateGCChecked(p.conn, gc, xproto.Drawable(wid), 0, nil).Check(); err != nil {
		xproto.DestroyWindow(p.conn, wid)
		return nil, fmt.Errorf("create gc: %w", err)
	}
	w.gc = gc
	if err := xproto.MapWindowChecked(p.conn, wid).Check(); err != nil {
		_ = w.Release()
		return nil, fmt.Errorf("map window: %w", err)
	}
	p.windows[wid] = w
	return w, nil
}

type property struct {
	name   string
	prop   xproto.Atom
	typ    xproto.Atom
	format byte
	data   []byte
}

// configure sets the properties the window manager reads before mapping.
func (w *Window) configure(cfg native.WindowConfig) error {
	a := w.p.atoms
	props := []property{
		{"WM_NAME", xproto.AtomWmName, xproto.AtomString, 8, []byte(cfg.Title)},
		{"_NET_WM_NAME", a.netName, a.utf8String, 8, []byte(cfg.Title)},
		{"WM_PROTOCOLS", a.protocols, xproto.AtomAtom, 32, putUint32s([]uint32{uint32(a.deleteWin)})},
		{"WM_NORMAL_HINTS", xproto.AtomWmNormalHints, xproto.AtomWmSizeHints, 32, putUint32s(sizeHints(cfg))},
		{"_MOTIF_WM_HINTS", a.motifHints, a.motifHints, 32, putUint32s(motifHints(cfg.Decorated))},
	}
	if cfg.AlwaysOnTop {
		props = append(props, property{"_NET_WM_STATE", a.state, xproto.AtomAtom, 32, putUint32s([]uint32{uint32(a.stateAbove)})})
	}
	for _, pr := range props {
		n := uint32(len(pr.data)) / uint32(pr.format/8)
		err := xproto.ChangePropertyChecked(w.p.conn, xproto.PropModeReplace, w.xid,
			pr.prop, pr.typ, pr.format, n, pr.data).Check()
		if err != nil {
			return fmt.Errorf("set %s: %w", pr.name, err)
		}
	}
	return nil
}

func (w *Window) ID() native.WindowID { return native.WindowID(w.xid) }

func (w *Window) Size() (int, int) { return w.width, w.height }

func (w *Window) SetCursor(c native.Cursor) error {
	if w.released {
		return native.ErrReleased
	}
	cid, err := w.p.cursor(c)
	if err != nil {
		return err
	}
	return xproto.ChangeWindowAttributesChecked(w.p.conn, w.xid, xproto.CwCursor, []uint32{uint32(cid)}).Check()
}

func (w *Window) DragMove() error { return w.moveResize(moveResizeMove) }

func (w *Window) DragResize(d native.ResizeDirection) error {
	return w.moveResize(moveResizeDirection(d))
}

// moveResize asks the window manager to take over the pointer from its
// current root position.
func (w *Window) moveResize(dir uint32) error {
	if w.released {
		return native.ErrReleased
	}
	ptr, err := xproto.QueryPointer(w.p.conn, w.xid).Reply()
	if err != nil {
		return fmt.Errorf("query pointer: %w", err)
	}
	xproto.UngrabPointer(w.p.conn, xproto.TimeCurrentTime)
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w.xid,
		Type:   w.p.atoms.moveResize,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(int32(ptr.RootX)), uint32(int32(ptr.RootY)), dir, uint32(xproto.ButtonIndex1), 1,
		}),
	}
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	return xproto.SendEventChecked(w.p.conn, false, w.p.screen.Root, mask, string(ev.Bytes())).Check()
}

func (w *Window) SetVisible(v bool) error {
	if w.released {
		return native.ErrReleased
	}
	if v {
		return xproto.MapWindowChecked(w.p.conn, w.xid).Check()
	}
	return xproto.UnmapWindowChecked(w.p.conn, w.xid).Check()
}

func (w *Window) RequestRedraw() {
	if w.released {
		return
	}
	w.p.Send(windowEvent(w.xid, paint.Event{}))
}

func (w *Window) Release() error {
	if w.released {
		return native.ErrReleased
	}
	w.released = true
	delete(w.p.windows, w.xid)
	if w.gc != 0 {
		xproto.FreeGC(w.p.conn, w.gc)
	}
	return xproto.DestroyWindowChecked(w.p.conn, w.xid).Check()
}

// Surface presents a packed pixel buffer with PutImage.
type Surface struct {
	win           *Window
	width, height int
	buf           []uint32
	scratch       []byte
	released      bool
}

func (s *Surface) Resize(w, h int) error {
	if s.released {
		return native.ErrReleased
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("x11: invalid surface size %dx%d", w, h)
	}
	if w != s.width || h != s.height {
		s.width, s.height = w, h
		s.buf = make([]uint32, w*h)
		s.scratch = make([]byte, 4*w*h)
	}
	return nil
}

func (s *Surface) Buffer() ([]uint32, error) {
	if s.released {
		return nil, native.ErrReleased
	}
	return s.buf, nil
}

func (s *Surface) Present() error {
	if s.released {
		return native.ErrReleased
	}
	if s.win.released {
		return native.ErrReleased
	}
	p := s.win.p
	encodePixels(s.scratch, s.buf, p.setup.ImageByteOrder == xproto.ImageOrderMSBFirst)
	step := rowsPerRequest(s.width, p.setup.MaximumRequestLength)
	stride := 4 * s.width
	for y := 0; y < s.height; y += step {
		rows := min(step, s.height-y)
		err := xproto.PutImageChecked(p.conn, xproto.ImageFormatZPixmap, xproto.Drawable(s.win.xid), s.win.gc,
			uint16(s.width), uint16(rows), 0, int16(y), 0, p.screen.RootDepth,
			s.scratch[y*stride:(y+rows)*stride]).Check()
		if err != nil {
			return fmt.Errorf("put image: %w", err)
		}
	}
	return nil
}

func (s *Surface) Release() error {
	if s.released {
		return native.ErrReleased
	}
	s.released = true
	s.buf, s.scratch = nil, nil
	return nil
}
