package render

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/example/fonotes/internal/snapshot"
)

func newPresenter(t *testing.T) *Presenter {
	t.Helper()
	fonts, err := LoadFonts("")
	if err != nil {
		t.Fatalf("load fonts: %v", err)
	}
	t.Cleanup(fonts.Close)
	return NewPresenter(DefaultStyle(), fonts)
}

func testImage(t *testing.T, w, h int) snapshot.Snapshot {
	t.Helper()
	pix := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		pix[i*4+0] = byte(10 + i)
		pix[i*4+1] = byte(100 + i)
		pix[i*4+2] = byte(200 - i)
		pix[i*4+3] = 0xff
	}
	snap, err := snapshot.Image(uint32(w), uint32(h), pix)
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

type memSurface struct {
	w, h     int
	buf      []uint32
	resizes  int
	presents int
}

func (s *memSurface) Resize(w, h int) error {
	s.w, s.h = w, h
	s.buf = make([]uint32, w*h)
	s.resizes++
	return nil
}
func (s *memSurface) Buffer() ([]uint32, error) { return s.buf, nil }
func (s *memSurface) Present() error            { s.presents++; return nil }
func (s *memSurface) Release() error            { return nil }

func TestImageStretchFillsWindowFromOrigin(t *testing.T) {
	p := newPresenter(t)
	snap := testImage(t, 3, 2)
	v := NewView(snap)
	frame, rect, err := p.Compose(v, 250, 300)
	if err != nil {
		t.Fatal(err)
	}
	if got := frame.Rect.Size(); got != image.Pt(250, 300) {
		t.Fatalf("frame size = %v", got)
	}
	if rect != frame.Rect {
		t.Fatalf("content rect = %v, want full frame", rect)
	}
	src := snap.RGBA()
	if got, want := frame.RGBAAt(0, 0), src.RGBAAt(0, 0); got != want {
		t.Fatalf("pixel (0,0) = %v, want %v", got, want)
	}
	// The bottom-left block samples the last source row.
	if got, want := frame.RGBAAt(0, 299), src.RGBAAt(0, 1); got != want {
		t.Fatalf("pixel (0,299) = %v, want %v", got, want)
	}
}

func TestPresentPacksFrame(t *testing.T) {
	p := newPresenter(t)
	snap := testImage(t, 4, 4)
	s := &memSurface{}
	if err := p.Present(s, NewView(snap), 120, 80); err != nil {
		t.Fatal(err)
	}
	if s.resizes != 1 || s.presents != 1 {
		t.Fatalf("resizes=%d presents=%d", s.resizes, s.presents)
	}
	if s.w != 120 || s.h != 80 || len(s.buf) != 120*80 {
		t.Fatalf("surface %dx%d len %d", s.w, s.h, len(s.buf))
	}
	c := snap.RGBA().RGBAAt(0, 0)
	want := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if s.buf[0] != want {
		t.Fatalf("buf[0] = %#06x, want %#06x", s.buf[0], want)
	}
}

func TestPresentSkipsZeroArea(t *testing.T) {
	p := newPresenter(t)
	s := &memSurface{}
	if err := p.Present(s, NewView(snapshot.Text("x")), 0, 0); err != nil {
		t.Fatal(err)
	}
	if s.resizes != 0 || s.presents != 0 {
		t.Fatal("zero-area window was drawn")
	}
}

func TestEmptyDrawsBackgroundAndChromeOnly(t *testing.T) {
	p := newPresenter(t)
	frame, rect, err := p.Compose(NewView(snapshot.Empty()), 250, 300)
	if err != nil {
		t.Fatal(err)
	}
	if !rect.Empty() {
		t.Fatalf("content rect = %v, want empty", rect)
	}
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	for _, pt := range []image.Point{{0, 0}, {125, 150}, {249, 299}, {219, 29}} {
		if got := frame.RGBAAt(pt.X, pt.Y); got != white {
			t.Errorf("pixel %v = %v, want background", pt, got)
		}
	}
	box := frame.RGBAAt(250-28, 2)
	if box.R < 230 || box.R > 238 || box.G < 148 || box.G > 156 || box.G != box.B {
		t.Errorf("close box pixel = %v", box)
	}
	if got := frame.RGBAAt(250-15, 15); got != white {
		t.Errorf("close glyph center = %v, want glyph color", got)
	}
}

func TestTextIsCenteredAndFits(t *testing.T) {
	p := newPresenter(t)
	frame, rect, err := p.Compose(NewView(snapshot.Text("Hello")), 400, 300)
	if err != nil {
		t.Fatal(err)
	}
	if rect.Empty() || !rect.In(frame.Rect) {
		t.Fatalf("content rect = %v", rect)
	}
	left, right := rect.Min.X, 400-rect.Max.X
	top, bottom := rect.Min.Y, 300-rect.Max.Y
	if d := left - right; d < -1 || d > 1 {
		t.Fatalf("horizontal margins %d/%d", left, right)
	}
	if d := top - bottom; d < -1 || d > 1 {
		t.Fatalf("vertical margins %d/%d", top, bottom)
	}
	dark := false
	for y := rect.Min.Y; y < rect.Max.Y && !dark; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if frame.RGBAAt(x, y).R < 64 {
				dark = true
				break
			}
		}
	}
	if !dark {
		t.Fatal("no glyph pixels drawn")
	}
}

func TestManyLinesFitInsideWindow(t *testing.T) {
	p := newPresenter(t)
	for _, tc := range []struct {
		line          string
		lines         int
		width, height int
	}{
		{"line", 80, 800, 600},
		{"x", 41, 300, 200},
		{"x", 41, 800, 600},
		{"wider line of text", 25, 250, 300},
		{"line", 7, 120, 90},
		{"Hello", 1, 400, 300},
	} {
		text := strings.TrimSuffix(strings.Repeat(tc.line+"\n", tc.lines), "\n")
		v := NewView(snapshot.Text(text))
		layer, rect, err := v.layerFor(p, tc.width, tc.height)
		if err != nil {
			t.Fatal(err)
		}
		bounds := image.Rect(0, 0, tc.width, tc.height)
		if layer == nil || rect.Empty() || !rect.In(bounds) {
			t.Errorf("%d x %q in %dx%d: placed at %v", tc.lines, tc.line, tc.width, tc.height, rect)
		}
	}
}

func TestLayoutHeightScalesLinearly(t *testing.T) {
	fonts, err := LoadFonts("")
	if err != nil {
		t.Fatal(err)
	}
	text := strings.TrimSuffix(strings.Repeat("x\n", 41), "\n")
	for _, size := range []float64{3, 4, 7, 11} {
		face, err := fonts.Face(size)
		if err != nil {
			t.Fatal(err)
		}
		lay := LayoutText(face, size, text, 1.2)
		if want := int(math.Ceil(41 * (size * 1.2))); lay.Height > want {
			t.Errorf("size %g: height %d, want at most %d", size, lay.Height, want)
		}
	}
}

func TestLayoutPreservesLines(t *testing.T) {
	fonts, err := LoadFonts("")
	if err != nil {
		t.Fatal(err)
	}
	face, err := fonts.Face(20)
	if err != nil {
		t.Fatal(err)
	}
	for _, text := range []string{"one", "alpha\nbeta\n\ngamma", "a\r\nb\r\n", "\n"} {
		lay := LayoutText(face, 20, text, 1.2)
		want := strings.Count(text, "\n") + 1
		if len(lay.Lines) != want {
			t.Fatalf("%q: %d lines, want %d", text, len(lay.Lines), want)
		}
		texts := make([]string, len(lay.Lines))
		for i, l := range lay.Lines {
			texts[i] = l.Text
		}
		if got := strings.Join(texts, "\n"); got != strings.ReplaceAll(text, "\r\n", "\n") {
			t.Fatalf("rejoined %q, want %q", got, text)
		}
		if lay.Height != want*24 || lay.LineHeight != 24 {
			t.Fatalf("%q: height %d line height %g", text, lay.Height, lay.LineHeight)
		}
	}
}

func TestLayoutWidthIsWidestLine(t *testing.T) {
	fonts, err := LoadFonts("")
	if err != nil {
		t.Fatal(err)
	}
	face, _ := fonts.Face(30)
	lay := LayoutText(face, 30, "ab\nabcd", 1.2)
	if lay.Width != lay.Lines[1].Width || lay.Lines[0].Width >= lay.Lines[1].Width {
		t.Fatalf("widths %d %d block %d", lay.Lines[0].Width, lay.Lines[1].Width, lay.Width)
	}
	if lay.Lines[1].Height <= 0 {
		t.Fatal("line height not recorded")
	}
	spaced := LayoutText(face, 30, "a b", 1.2)
	tabbed := LayoutText(face, 30, "a\tb", 1.2)
	if tabbed.Width <= spaced.Width {
		t.Fatalf("tab width %d not wider than space width %d", tabbed.Width, spaced.Width)
	}
}

func TestEmptyTextRasterizesPlaceholder(t *testing.T) {
	fonts, err := LoadFonts("")
	if err != nil {
		t.Fatal(err)
	}
	face, _ := fonts.Face(12)
	img := LayoutText(face, 12, "", 1.2).Rasterize(color.NRGBA{A: 0xff})
	if img.Rect.Size() != image.Pt(1, 1) {
		t.Fatalf("placeholder size %v", img.Rect.Size())
	}
}

func TestFitSize(t *testing.T) {
	cases := []struct {
		natW, natH, w, h int
		want             float64
	}{
		{200, 120, 400, 120, 100},
		{200, 120, 100, 600, 50},
		{0, 120, 10, 240, 200},
		{1000, 1000, 5, 5, 1},
		{0, 0, 10, 10, 100},
	}
	for _, c := range cases {
		if got := FitSize(100, c.natW, c.natH, c.w, c.h); got != c.want {
			t.Errorf("FitSize(%d,%d -> %d,%d) = %v, want %v", c.natW, c.natH, c.w, c.h, got, c.want)
		}
	}
}

func TestContain(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	img, rect := Contain(src, 200, 200)
	if rect != image.Rect(0, 50, 200, 150) {
		t.Fatalf("rect = %v", rect)
	}
	if img.Bounds().Size() != rect.Size() {
		t.Fatalf("scaled size %v", img.Bounds().Size())
	}
}

func TestContainStyleLetterboxes(t *testing.T) {
	p := newPresenter(t)
	p.Style.Fit = FitContain
	_, rect, err := p.Compose(NewView(testImage(t, 2, 1)), 300, 300)
	if err != nil {
		t.Fatal(err)
	}
	if rect != image.Rect(0, 75, 300, 225) {
		t.Fatalf("rect = %v", rect)
	}
}

func TestPack(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{0x01, 0x02, 0x03, 0xff})
	img.SetRGBA(1, 0, color.RGBA{0xaa, 0xbb, 0xcc, 0xff})
	dst := make([]uint32, 2)
	Pack(dst, img)
	if dst[0] != 0x010203 || dst[1] != 0xaabbcc {
		t.Fatalf("packed %#x %#x", dst[0], dst[1])
	}
}

func TestFaceCache(t *testing.T) {
	fonts, err := LoadFonts("")
	if err != nil {
		t.Fatal(err)
	}
	a, _ := fonts.Face(14)
	b, _ := fonts.Face(14)
	if a != b {
		t.Fatal("face not cached")
	}
	for i := 0; i < maxFaces+5; i++ {
		if _, err := fonts.Face(float64(10 + i)); err != nil {
			t.Fatal(err)
		}
	}
	if len(fonts.faces) > maxFaces {
		t.Fatalf("cache grew to %d", len(fonts.faces))
	}
	if _, err := LoadFonts("/nonexistent/font.ttf"); err == nil {
		t.Fatal("missing font file accepted")
	}
}

func TestParseFit(t *testing.T) {
	if ParseFit("contain") != FitContain || ParseFit("stretch") != FitStretch || ParseFit("bogus") != FitStretch {
		t.Fatal("unexpected parse")
	}
}
