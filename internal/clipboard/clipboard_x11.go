//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	atoms        atomSet
)

type atomSet struct {
	clipboard xproto.Atom
	utf8      xproto.Atom
	png       xproto.Atom
	incr      xproto.Atom
	property  xproto.Atom
}

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		conn, err := xgb.NewConn()
		if err != nil {
			initErr = fmt.Errorf("connect X server: %w", err)
			return
		}
		defer conn.Close()
		atoms, initErr = internAtoms(conn)
	})
	return initErr
}

func internAtoms(conn *xgb.Conn) (atomSet, error) {
	get := func(name string) (xproto.Atom, error) {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return 0, fmt.Errorf("intern %s: %w", name, err)
		}
		return reply.Atom, nil
	}
	var (
		set atomSet
		err error
	)
	if set.clipboard, err = get("CLIPBOARD"); err != nil {
		return atomSet{}, err
	}
	if set.utf8, err = get("UTF8_STRING"); err != nil {
		return atomSet{}, err
	}
	if set.png, err = get("image/png"); err != nil {
		return atomSet{}, err
	}
	if set.incr, err = get("INCR"); err != nil {
		return atomSet{}, err
	}
	if set.property, err = get("FONOTES_CLIPBOARD"); err != nil {
		return atomSet{}, err
	}
	return set, nil
}

// ReadImage retrieves PNG image data from the clipboard and decodes it.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := readSelection(atoms.png)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errNoImage
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard image: %w", err)
	}
	return img, nil
}

// ReadText returns UTF-8 text data from the clipboard.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	data, err := readSelection(atoms.utf8)
	if err != nil {
		data, err = readSelection(xproto.AtomString)
		if err != nil {
			return "", err
		}
	}
	if len(data) == 0 {
		return "", errNoText
	}
	// Some owners include a trailing NUL in STRING replies.
	if data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	return string(data), nil
}

const selectionTimeout = 2 * time.Second

var errSelectionTimeout = errors.New("clipboard owner did not answer")

// readSelection converts the CLIPBOARD selection to target on a private
// connection and waits for the owner's reply, following INCR transfers.
func readSelection(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := convert(conn, target)
		done <- result{data, err}
	}()
	select {
	case r := <-done:
		return r.data, r.err
	case <-time.After(selectionTimeout):
		return nil, errSelectionTimeout
	}
}

func convert(conn *xgb.Conn, target xproto.Atom) ([]byte, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	err = xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	owner, err := xproto.GetSelectionOwner(conn, atoms.clipboard).Reply()
	if err != nil {
		return nil, err
	}
	if owner.Owner == xproto.WindowNone {
		return nil, errors.New("clipboard has no owner")
	}
	err = xproto.ConvertSelectionChecked(conn, window, atoms.clipboard, target, atoms.property, xproto.TimeCurrentTime).Check()
	if err != nil {
		return nil, err
	}

	for {
		ev, err := next(conn)
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, errors.New("clipboard target unavailable")
		}
		if e.Property != atoms.property {
			continue
		}
		reply, err := takeProperty(conn, window)
		if err != nil {
			return nil, err
		}
		if reply.Type == atoms.incr {
			return readIncr(conn, window)
		}
		return bytes.Clone(reply.Value), nil
	}
}

// readIncr collects an INCR transfer: the owner writes chunks into the
// property after each deletion and ends with an empty one.
func readIncr(conn *xgb.Conn, window xproto.Window) ([]byte, error) {
	var buf bytes.Buffer
	for {
		ev, err := next(conn)
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.PropertyNotifyEvent)
		if !ok || e.Window != window || e.Atom != atoms.property || e.State != xproto.PropertyNewValue {
			continue
		}
		reply, err := takeProperty(conn, window)
		if err != nil {
			return nil, err
		}
		if len(reply.Value) == 0 {
			return buf.Bytes(), nil
		}
		buf.Write(reply.Value)
	}
}

func takeProperty(conn *xgb.Conn, window xproto.Window) (*xproto.GetPropertyReply, error) {
	return xproto.GetProperty(conn, true, window, atoms.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
}

func next(conn *xgb.Conn) (xgb.Event, error) {
	ev, err := conn.WaitForEvent()
	if ev == nil && err == nil {
		return nil, errors.New("X connection closed")
	}
	return ev, err
}
