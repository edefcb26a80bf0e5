package chrome

import (
	"image"
	"testing"

	"github.com/example/fonotes/internal/native"
)

func TestHitTestZones(t *testing.T) {
	const w, h = 200, 200
	cases := []struct {
		x, y float64
		want Zone
	}{
		{185, 15, Close},
		{171, 0, Close},
		{199, 29, Close},
		{5, 5, NorthWest},
		{5, 195, SouthWest},
		{195, 195, SouthEast},
		{185, 35, East},
		{5, 100, West},
		{195, 100, East},
		{100, 5, North},
		{100, 195, South},
		{100, 100, Drag},
		{20, 20, Drag},
		{180, 180, Drag},
		{165, 10, North},
		{175, 31, Drag},
	}
	for _, c := range cases {
		if got := HitTest(c.x, c.y, w, h); got != c.want {
			t.Errorf("HitTest(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestHitTestCloseBoxBoundary(t *testing.T) {
	if got := HitTest(195, 10, 200, 400); got != Close {
		t.Fatalf("got %v, want close", got)
	}
	if got := HitTest(170, 5, 200, 400); got != North {
		t.Fatalf("got %v, want north", got)
	}
}

func TestHitTestInteriorIsDrag(t *testing.T) {
	sizes := []image.Point{{200, 200}, {250, 300}, {800, 600}, {41, 41}}
	for _, sz := range sizes {
		w, h := float64(sz.X), float64(sz.Y)
		for y := 20.0; y <= h-20; y += 0.5 {
			for x := 20.0; x <= w-20; x += 0.5 {
				if x > w-CloseSize && y < CloseSize {
					continue
				}
				if got := HitTest(x, y, w, h); got != Drag {
					t.Fatalf("%vx%v: HitTest(%v, %v) = %v, want drag", w, h, x, y, got)
				}
			}
		}
	}
}

func TestHitTestCloseHasPriority(t *testing.T) {
	sizes := []image.Point{{200, 200}, {50, 50}, {30, 30}, {1000, 40}}
	for _, sz := range sizes {
		w, h := float64(sz.X), float64(sz.Y)
		for y := 0.0; y < CloseSize; y += 0.25 {
			for x := w - CloseSize + 0.25; x <= w; x += 0.25 {
				if got := HitTest(x, y, w, h); got != Close {
					t.Fatalf("%vx%v: HitTest(%v, %v) = %v, want close", w, h, x, y, got)
				}
			}
		}
	}
}

func TestHitTestIsPure(t *testing.T) {
	for x := 0.0; x < 200; x += 7 {
		for y := 0.0; y < 200; y += 7 {
			a := HitTest(x, y, 200, 200)
			b := HitTest(x, y, 200, 200)
			if a != b {
				t.Fatalf("HitTest(%v, %v) not idempotent: %v then %v", x, y, a, b)
			}
		}
	}
}

func TestHitTestNarrowWindowPrefersWest(t *testing.T) {
	// In a 30px wide window both vertical edges overlap; west is checked first.
	if got := HitTest(15, 100, 30, 200); got != West {
		t.Fatalf("got %v, want west", got)
	}
	if got := HitTest(15, 195, 30, 200); got != SouthWest {
		t.Fatalf("got %v, want sw", got)
	}
}

func TestZoneCursor(t *testing.T) {
	cases := map[Zone]native.Cursor{
		Close:     native.CursorPointer,
		East:      native.CursorEWResize,
		West:      native.CursorEWResize,
		NorthEast: native.CursorEWResize,
		SouthWest: native.CursorEWResize,
		North:     native.CursorNSResize,
		South:     native.CursorNSResize,
		Drag:      native.CursorDefault,
	}
	for z, want := range cases {
		if got := z.Cursor(); got != want {
			t.Errorf("%v.Cursor() = %v, want %v", z, got, want)
		}
	}
}

func TestZoneDirection(t *testing.T) {
	if _, ok := Drag.Direction(); ok {
		t.Error("drag has no resize direction")
	}
	if _, ok := Close.Direction(); ok {
		t.Error("close has no resize direction")
	}
	if d, ok := SouthEast.Direction(); !ok || d != native.ResizeSouthEast {
		t.Errorf("SouthEast.Direction() = %v, %v", d, ok)
	}
}

func TestCloseRect(t *testing.T) {
	if got, want := CloseRect(200), image.Rect(170, 0, 200, 30); got != want {
		t.Fatalf("CloseRect(200) = %v, want %v", got, want)
	}
}
