// Package snapshot holds point-in-time captures of clipboard content.
//
// A Snapshot is a value: constructors copy their input and accessors hand
// out copies, so a Snapshot can be moved between goroutines without any
// shared mutable state.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// Kind identifies which variant a Snapshot holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindImage
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "Image"
	case KindText:
		return "Text"
	default:
		return "???"
	}
}

// ErrPixelLength reports an RGBA8 buffer whose length does not match its
// declared dimensions.
var ErrPixelLength = errors.New("pixel buffer length does not match width*height*4")

// Snapshot is an immutable capture of clipboard state. The zero value is an
// Empty snapshot.
type Snapshot struct {
	kind   Kind
	width  uint32
	height uint32
	pix    []byte
	text   string
}

// Empty returns a snapshot carrying no usable content.
func Empty() Snapshot { return Snapshot{} }

// Text returns a text snapshot.
func Text(s string) Snapshot { return Snapshot{kind: KindText, text: s} }

// Image returns an image snapshot from a row-major RGBA8 buffer. The buffer
// is copied.
func Image(width, height uint32, pix []byte) (Snapshot, error) {
	want := uint64(width) * uint64(height) * 4
	if uint64(len(pix)) != want {
		return Snapshot{}, fmt.Errorf("%w: got %d bytes for %dx%d", ErrPixelLength, len(pix), width, height)
	}
	return Snapshot{
		kind:   KindImage,
		width:  width,
		height: height,
		pix:    bytes.Clone(pix),
	}, nil
}

// FromImage converts img into an image snapshot. The result is always
// origin-based RGBA8 regardless of img's bounds or color model.
func FromImage(img image.Image) Snapshot {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return Snapshot{
		kind:   KindImage,
		width:  uint32(b.Dx()),
		height: uint32(b.Dy()),
		pix:    rgba.Pix,
	}
}

// Kind reports the snapshot variant.
func (s Snapshot) Kind() Kind { return s.kind }

// IsEmpty reports whether the snapshot holds no content.
func (s Snapshot) IsEmpty() bool { return s.kind == KindEmpty }

// Text returns the captured string for text snapshots and "" otherwise.
func (s Snapshot) Text() string { return s.text }

// Size returns the pixel dimensions of an image snapshot.
func (s Snapshot) Size() (width, height uint32) { return s.width, s.height }

// Pixels returns a copy of the RGBA8 buffer of an image snapshot.
func (s Snapshot) Pixels() []byte { return bytes.Clone(s.pix) }

// RGBA returns a fresh *image.RGBA holding the snapshot pixels, or nil for
// non-image snapshots.
func (s Snapshot) RGBA() *image.RGBA {
	if s.kind != KindImage {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, int(s.width), int(s.height)))
	copy(img.Pix, s.pix)
	return img
}

// Title is the short label used in window titles.
func (s Snapshot) Title() string { return s.kind.String() }

// Equal reports whether both snapshots hold bit-for-bit identical content.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case KindImage:
		return s.width == o.width && s.height == o.height && bytes.Equal(s.pix, o.pix)
	case KindText:
		return s.text == o.text
	default:
		return true
	}
}

func (s Snapshot) String() string {
	switch s.kind {
	case KindImage:
		return fmt.Sprintf("image %dx%d", s.width, s.height)
	case KindText:
		return fmt.Sprintf("text (%d bytes)", len(s.text))
	default:
		return "empty"
	}
}
