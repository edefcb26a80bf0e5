package app

import (
	"errors"
	"image"
	"testing"
	"time"

	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/fonotes/internal/native"
	"github.com/example/fonotes/internal/native/nativetest"
	"github.com/example/fonotes/internal/note"
	"github.com/example/fonotes/internal/render"
	"github.com/example/fonotes/internal/snapshot"
)

func newDriver(t *testing.T, opts ...Option) (*Driver, *nativetest.Platform) {
	t.Helper()
	fonts, err := render.LoadFonts("")
	if err != nil {
		t.Fatal(err)
	}
	p := nativetest.New()
	return New(p, render.NewPresenter(render.DefaultStyle(), fonts), opts...), p
}

func window(w, h int) native.WindowConfig {
	cfg := note.DefaultWindow()
	cfg.Width, cfg.Height = w, h
	return cfg
}

func open(t *testing.T, d *Driver, p *nativetest.Platform, snap snapshot.Snapshot, w, h int) *nativetest.Window {
	t.Helper()
	if _, err := d.Dispatch(note.NewRequest(window(w, h), snap)); err != nil {
		t.Fatal(err)
	}
	return p.Windows[len(p.Windows)-1]
}

func send(t *testing.T, d *Driver, id native.WindowID, ev any) {
	t.Helper()
	if _, err := d.Dispatch(native.WindowEvent{Window: id, Event: ev}); err != nil {
		t.Fatal(err)
	}
}

func TestRequestOpensNote(t *testing.T) {
	d, p := newDriver(t)
	win := open(t, d, p, snapshot.Text("hello"), 200, 200)
	if d.Notes().Len() != 1 {
		t.Fatalf("notes = %d", d.Notes().Len())
	}
	cfg := win.Config
	if cfg.Title != "FONotes - Text" || cfg.Decorated || !cfg.AlwaysOnTop || !cfg.Resizable {
		t.Fatalf("config = %+v", cfg)
	}
	if win.Redraws != 1 {
		t.Fatalf("redraw requests = %d", win.Redraws)
	}
	send(t, d, win.ID(), paint.Event{})
	s := p.Surfaces[0]
	if len(s.Frames) != 1 || s.Width != 200 || s.Height != 200 {
		t.Fatalf("frames=%d size=%dx%d", len(s.Frames), s.Width, s.Height)
	}
}

func TestSubmitRoundTripAcrossGoroutines(t *testing.T) {
	d, p := newDriver(t)
	pix := make([]byte, 3*2*4)
	for i := range pix {
		pix[i] = byte(i * 7)
	}
	img, err := snapshot.Image(3, 2, pix)
	if err != nil {
		t.Fatal(err)
	}
	go d.Submit(note.NewRequest(window(300, 200), img))

	if _, err := d.Dispatch(p.NextEvent()); err != nil {
		t.Fatal(err)
	}
	notes := d.Notes().Notes()
	if len(notes) != 1 {
		t.Fatalf("notes = %d", len(notes))
	}
	if !notes[0].Content.Equal(img) {
		t.Fatal("content changed in transit")
	}
	if got := p.Windows[0].Config.Title; got != "FONotes - Image" {
		t.Fatalf("title = %q", got)
	}
}

func TestDistinctWindowsPerRequest(t *testing.T) {
	d, p := newDriver(t)
	a := open(t, d, p, snapshot.Text("a"), 200, 200)
	b := open(t, d, p, snapshot.Empty(), 200, 200)
	if a.ID() == b.ID() || d.Notes().Len() != 2 {
		t.Fatalf("ids %d %d, notes %d", a.ID(), b.ID(), d.Notes().Len())
	}
	if b.Config.Title != "FONotes - ???" {
		t.Fatalf("title = %q", b.Config.Title)
	}
}

func TestHoverSetsCursor(t *testing.T) {
	d, p := newDriver(t)
	win := open(t, d, p, snapshot.Empty(), 200, 200)
	cases := []struct {
		x, y float32
		want native.Cursor
	}{
		{185, 15, native.CursorPointer},
		{5, 100, native.CursorEWResize},
		{195, 195, native.CursorEWResize},
		{100, 5, native.CursorNSResize},
		{100, 195, native.CursorNSResize},
		{100, 100, native.CursorDefault},
	}
	for _, c := range cases {
		send(t, d, win.ID(), mouse.Event{X: c.x, Y: c.y})
		if win.Cursor != c.want {
			t.Errorf("hover (%v,%v): cursor %v, want %v", c.x, c.y, win.Cursor, c.want)
		}
	}
	n := d.Notes().Get(win.ID())
	if n.PointerX != 100 || n.PointerY != 100 {
		t.Fatalf("last pointer = %v,%v", n.PointerX, n.PointerY)
	}
}

func TestHoverSetsCursorOnlyOnChange(t *testing.T) {
	d, p := newDriver(t)
	win := open(t, d, p, snapshot.Empty(), 200, 200)
	moves := []struct {
		x, y  float32
		calls int
	}{
		{100, 100, 0},
		{120, 90, 0},
		{185, 15, 1},
		{186, 16, 1},
		{5, 100, 2},
		{6, 120, 2},
		{100, 100, 3},
	}
	for _, m := range moves {
		send(t, d, win.ID(), mouse.Event{X: m.x, Y: m.y})
		if len(win.Cursors) != m.calls {
			t.Fatalf("after (%v,%v): %d cursor changes, want %d", m.x, m.y, len(win.Cursors), m.calls)
		}
	}
	if d.Notes().Get(win.ID()).Cursor != native.CursorDefault {
		t.Fatal("cached cursor not updated")
	}
}

func TestClickCloseReleasesEverything(t *testing.T) {
	d, p := newDriver(t)
	win := open(t, d, p, snapshot.Text("bye"), 200, 200)
	// Hover somewhere else first; the click position decides.
	send(t, d, win.ID(), mouse.Event{X: 100, Y: 100})
	send(t, d, win.ID(), mouse.Event{X: 185, Y: 15, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if d.Notes().Len() != 0 {
		t.Fatal("note still registered")
	}
	if !win.Released || !p.Surfaces[0].Released {
		t.Fatalf("window released=%v surface released=%v", win.Released, p.Surfaces[0].Released)
	}
	// In-flight events for the closed window are dropped.
	send(t, d, win.ID(), paint.Event{})
	send(t, d, win.ID(), mouse.Event{X: 185, Y: 15, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
}

func TestClickDragAndResize(t *testing.T) {
	d, p := newDriver(t)
	win := open(t, d, p, snapshot.Empty(), 200, 200)
	press := func(x, y float32) {
		send(t, d, win.ID(), mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	}
	press(100, 100)
	if win.Moves != 1 {
		t.Fatalf("moves = %d", win.Moves)
	}
	press(195, 195)
	press(5, 5)
	press(100, 195)
	press(195, 100)
	want := []native.ResizeDirection{native.ResizeSouthEast, native.ResizeNorthWest, native.ResizeSouth, native.ResizeEast}
	if len(win.Resizes) != len(want) {
		t.Fatalf("resizes = %v", win.Resizes)
	}
	for i := range want {
		if win.Resizes[i] != want[i] {
			t.Fatalf("resizes = %v, want %v", win.Resizes, want)
		}
	}
}

func TestNonPrimaryButtonIgnored(t *testing.T) {
	d, p := newDriver(t)
	win := open(t, d, p, snapshot.Empty(), 200, 200)
	send(t, d, win.ID(), mouse.Event{X: 185, Y: 15, Button: mouse.ButtonRight, Direction: mouse.DirPress})
	send(t, d, win.ID(), mouse.Event{X: 185, Y: 15, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	if d.Notes().Len() != 1 || win.Moves != 0 {
		t.Fatal("non-primary input acted")
	}
}

func TestSizeEventRequestsRedraw(t *testing.T) {
	d, p := newDriver(t)
	win := open(t, d, p, snapshot.Text("x"), 200, 200)
	win.Width, win.Height = 320, 240
	send(t, d, win.ID(), size.Event{WidthPx: 320, HeightPx: 240})
	if win.Redraws != 2 {
		t.Fatalf("redraws = %d", win.Redraws)
	}
	send(t, d, win.ID(), paint.Event{})
	s := p.Surfaces[0]
	if s.Width != 320 || s.Height != 240 || len(s.LastFrame()) != 320*240 {
		t.Fatalf("surface %dx%d", s.Width, s.Height)
	}
}

func TestZeroSizeRedrawSkipped(t *testing.T) {
	d, p := newDriver(t)
	win := open(t, d, p, snapshot.Text("x"), 200, 200)
	win.Width, win.Height = 0, 0
	send(t, d, win.ID(), paint.Event{})
	if len(p.Surfaces[0].Frames) != 0 {
		t.Fatal("zero-area frame presented")
	}
}

func TestWindowManagerCloseReleases(t *testing.T) {
	d, p := newDriver(t)
	win := open(t, d, p, snapshot.Empty(), 200, 200)
	send(t, d, win.ID(), lifecycle.Event{From: lifecycle.StageFocused, To: lifecycle.StageDead})
	if d.Notes().Len() != 0 || !win.Released {
		t.Fatal("note not destroyed")
	}
}

func TestCreationFailureIsFatal(t *testing.T) {
	d, p := newDriver(t)
	boom := errors.New("no resources")
	p.WindowErr = boom
	done, err := d.Dispatch(note.NewRequest(window(200, 200), snapshot.Empty()))
	if !done || !errors.Is(err, boom) {
		t.Fatalf("done=%v err=%v", done, err)
	}
	p.SurfaceErr = boom
	_, err = d.Dispatch(note.NewRequest(window(200, 200), snapshot.Empty()))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if !p.Windows[0].Released || d.Notes().Len() != 0 {
		t.Fatal("window leaked after surface failure")
	}
}

func TestRunStopsOnShutdown(t *testing.T) {
	d, p := newDriver(t)
	boom := errors.New("display gone")
	p.Send(note.NewRequest(window(200, 200), snapshot.Text("x")))
	p.Send(native.Shutdown{Err: boom})
	if err := d.Run(); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if !p.Windows[0].Released {
		t.Fatal("notes not released on exit")
	}

	d2, p2 := newDriver(t)
	p2.Send(native.Shutdown{})
	if err := d2.Run(); err != nil {
		t.Fatal(err)
	}
}

func TestRunExitsWhenEmpty(t *testing.T) {
	d, p := newDriver(t, WithExitWhenEmpty())
	p.Send(note.NewRequest(window(200, 200), snapshot.Text("x")))
	p.Send(native.WindowEvent{Window: 1, Event: mouse.Event{X: 190, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress}})
	errc := make(chan error, 1)
	go func() { errc <- d.Run() }()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after the last note closed")
	}
}

type fakeNotifier struct {
	captures chan string
	closes   chan string
	preview  chan bool
}

func (f *fakeNotifier) Capture(detail string, img image.Image) {
	f.preview <- img != nil
	f.captures <- detail
}

func (f *fakeNotifier) Close(detail string) { f.closes <- detail }

func TestNotifications(t *testing.T) {
	n := &fakeNotifier{captures: make(chan string, 1), closes: make(chan string, 1), preview: make(chan bool, 1)}
	d, p := newDriver(t, WithNotifier(n))
	win := open(t, d, p, snapshot.Text("x"), 200, 200)
	if got := <-n.preview; got {
		t.Fatal("text note sent an image preview")
	}
	if got := <-n.captures; got != "Text" {
		t.Fatalf("capture detail = %q", got)
	}
	send(t, d, win.ID(), lifecycle.Event{To: lifecycle.StageDead})
	select {
	case got := <-n.closes:
		if got != "Text" {
			t.Fatalf("close detail = %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no close notification")
	}
}

func TestUnknownEventIgnored(t *testing.T) {
	d, _ := newDriver(t)
	if done, err := d.Dispatch(struct{}{}); done || err != nil {
		t.Fatalf("done=%v err=%v", done, err)
	}
}
