package snapshot

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestImageRejectsBadLength(t *testing.T) {
	_, err := Image(2, 2, make([]byte, 15))
	if !errors.Is(err, ErrPixelLength) {
		t.Fatalf("expected ErrPixelLength, got %v", err)
	}
}

func TestImageCopiesInput(t *testing.T) {
	pix := []byte{1, 2, 3, 4}
	s, err := Image(1, 1, pix)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	pix[0] = 99
	if got := s.Pixels()[0]; got != 1 {
		t.Fatalf("snapshot mutated through caller buffer: got %d", got)
	}
	out := s.Pixels()
	out[1] = 99
	if got := s.Pixels()[1]; got != 2 {
		t.Fatalf("snapshot mutated through Pixels copy: got %d", got)
	}
}

func TestFromImageRebasesBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	s := FromImage(src)
	w, h := s.Size()
	if w != 2 || h != 1 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
	got := s.RGBA().RGBAAt(0, 0)
	if got != (color.RGBA{10, 20, 30, 255}) {
		t.Fatalf("unexpected origin pixel %v", got)
	}
}

func TestTitles(t *testing.T) {
	img, _ := Image(1, 1, make([]byte, 4))
	cases := []struct {
		snap Snapshot
		want string
	}{
		{img, "Image"},
		{Text("hi"), "Text"},
		{Empty(), "???"},
		{Snapshot{}, "???"},
	}
	for _, c := range cases {
		if got := c.snap.Title(); got != c.want {
			t.Errorf("Title() = %q, want %q", got, c.want)
		}
	}
}

func TestEqual(t *testing.T) {
	a, _ := Image(1, 1, []byte{1, 2, 3, 4})
	b, _ := Image(1, 1, []byte{1, 2, 3, 4})
	c, _ := Image(1, 1, []byte{1, 2, 3, 5})
	if !a.Equal(b) {
		t.Error("identical images should be equal")
	}
	if a.Equal(c) {
		t.Error("different pixels should not be equal")
	}
	if Text("a").Equal(Text("b")) {
		t.Error("different text should not be equal")
	}
	if !Empty().Equal(Snapshot{}) {
		t.Error("empty snapshots should be equal")
	}
	if Text("").Equal(Empty()) {
		t.Error("empty text is not an empty snapshot")
	}
}
