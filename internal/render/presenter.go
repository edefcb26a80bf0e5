// Package render draws note frames: the content layer (laid out text or a
// scaled image) under the hand-drawn close box, packed for a native surface.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/example/fonotes/internal/chrome"
	"github.com/example/fonotes/internal/native"
)

// Style holds the colors and layout knobs of a note.
type Style struct {
	Background  color.NRGBA
	Foreground  color.NRGBA
	CloseFill   color.NRGBA
	CloseGlyph  color.NRGBA
	LineSpacing float64
	Fit         Fit
}

// DefaultStyle is black text on white with a translucent red close box.
func DefaultStyle() Style {
	return Style{
		Background:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Foreground:  color.NRGBA{A: 0xff},
		CloseFill:   color.NRGBA{R: 220, G: 80, B: 80, A: 150},
		CloseGlyph:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		LineSpacing: 1.2,
		Fit:         FitStretch,
	}
}

// Presenter composes frames. One presenter serves every note; it reuses a
// single frame buffer and is owned by the event loop goroutine.
type Presenter struct {
	Style Style
	Fonts *Fonts

	frame *image.RGBA
	rast  *vector.Rasterizer
}

// NewPresenter returns a presenter drawing with style and fonts.
func NewPresenter(style Style, fonts *Fonts) *Presenter {
	return &Presenter{
		Style: style,
		Fonts: fonts,
		rast:  vector.NewRasterizer(chrome.CloseSize, chrome.CloseSize),
	}
}

// Compose draws v into a width x height frame: background, content, then
// the close box. It returns the frame and the rectangle the content layer
// covers, which is empty when nothing was drawn. The frame is reused by the
// next call.
func (p *Presenter) Compose(v *View, width, height int) (*image.RGBA, image.Rectangle, error) {
	frame := p.frameFor(width, height)
	draw.Draw(frame, frame.Rect, image.NewUniform(p.Style.Background), image.Point{}, draw.Src)

	layer, rect, err := v.layerFor(p, width, height)
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("render %s: %w", v.content.Kind(), err)
	}
	if layer != nil {
		draw.Draw(frame, rect, layer, layer.Bounds().Min, draw.Over)
	}

	box := chrome.CloseRect(width)
	draw.Draw(frame, box, image.NewUniform(p.Style.CloseFill), image.Point{}, draw.Over)
	p.drawCross(frame, box)
	return frame, rect.Intersect(frame.Rect), nil
}

func (p *Presenter) frameFor(width, height int) *image.RGBA {
	r := image.Rect(0, 0, width, height)
	if p.frame == nil || p.frame.Rect != r {
		p.frame = image.NewRGBA(r)
	}
	return p.frame
}

// drawCross draws the close glyph as two crossing bars inside box.
func (p *Presenter) drawCross(dst *image.RGBA, box image.Rectangle) {
	const (
		lo = 9
		hi = chrome.CloseSize - 9
		d  = 1.1 // half bar width along each axis
	)
	z := p.rast
	z.Reset(box.Dx(), box.Dy())

	z.MoveTo(lo+d, lo-d)
	z.LineTo(hi+d, hi-d)
	z.LineTo(hi-d, hi+d)
	z.LineTo(lo-d, lo+d)
	z.ClosePath()

	z.MoveTo(hi+d, lo+d)
	z.LineTo(lo+d, hi+d)
	z.LineTo(lo-d, hi-d)
	z.LineTo(hi-d, lo-d)
	z.ClosePath()

	z.Draw(dst, box, image.NewUniform(p.Style.CloseGlyph), image.Point{})
}

// Present redraws v at width x height onto s. The surface is resized
// before every write so its buffer tracks the window size.
func (p *Presenter) Present(s native.Surface, v *View, width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	frame, _, err := p.Compose(v, width, height)
	if err != nil {
		return err
	}
	if err := s.Resize(width, height); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}
	buf, err := s.Buffer()
	if err != nil {
		return fmt.Errorf("surface buffer: %w", err)
	}
	if len(buf) < width*height {
		return fmt.Errorf("surface buffer holds %d pixels, need %d", len(buf), width*height)
	}
	Pack(buf, frame)
	if err := s.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// Pack converts an opaque RGBA frame to row-major 0x00RRGGBB pixels.
func Pack(dst []uint32, src *image.RGBA) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		out := dst[y*w : (y+1)*w]
		for x := range out {
			px := row[x*4 : x*4+3]
			out[x] = uint32(px[0])<<16 | uint32(px[1])<<8 | uint32(px[2])
		}
	}
}
