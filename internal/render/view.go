package render

import (
	"image"

	"github.com/example/fonotes/internal/snapshot"
)

// View is the content layer of one note, cached across redraws at the same
// window size.
type View struct {
	content snapshot.Snapshot
	src     *image.RGBA

	measured bool
	natural  image.Point

	size  image.Point
	layer image.Image
	rect  image.Rectangle
}

// NewView prepares content for drawing. Image pixels are unpacked once.
func NewView(content snapshot.Snapshot) *View {
	return &View{content: content, src: content.RGBA()}
}

// layerFor returns the content layer for a width x height window and the
// window-space rectangle it covers. Empty content yields a nil layer.
func (v *View) layerFor(p *Presenter, width, height int) (image.Image, image.Rectangle, error) {
	size := image.Pt(width, height)
	if v.layer != nil && v.size == size {
		return v.layer, v.rect, nil
	}
	var (
		layer image.Image
		rect  image.Rectangle
		err   error
	)
	switch v.content.Kind() {
	case snapshot.KindImage:
		layer, rect = v.imageLayer(p.Style.Fit, width, height)
	case snapshot.KindText:
		layer, rect, err = v.textLayer(p, width, height)
	default:
		return nil, image.Rectangle{}, nil
	}
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	v.size, v.layer, v.rect = size, layer, rect
	return layer, rect, nil
}

func (v *View) imageLayer(fit Fit, width, height int) (image.Image, image.Rectangle) {
	if v.src == nil || v.src.Rect.Empty() {
		return nil, image.Rectangle{}
	}
	if fit == FitContain {
		return Contain(v.src, width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	Stretch(dst, v.src)
	return dst, dst.Rect
}

func (v *View) textLayer(p *Presenter, width, height int) (image.Image, image.Rectangle, error) {
	text := v.content.Text()
	if !v.measured {
		probe, err := p.Fonts.Face(ProbeSize)
		if err != nil {
			return nil, image.Rectangle{}, err
		}
		m := MeasureText(probe, ProbeSize, text, p.Style.LineSpacing)
		v.natural = image.Pt(m.Width, m.Height)
		v.measured = true
	}
	size := FitSize(ProbeSize, v.natural.X, v.natural.Y, width, height)
	face, err := p.Fonts.Face(size)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	lay := LayoutText(face, size, text, p.Style.LineSpacing)
	// Advances round per size, so a line can come out wider than measured.
	for size > 1 && (lay.Width > width || lay.Height > height) {
		size--
		if face, err = p.Fonts.Face(size); err != nil {
			return nil, image.Rectangle{}, err
		}
		lay = LayoutText(face, size, text, p.Style.LineSpacing)
	}
	img := lay.Rasterize(p.Style.Foreground)
	return img, Centered(img.Rect.Size(), image.Rect(0, 0, width, height)), nil
}
