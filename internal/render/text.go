package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	// ProbeSize is the point size of the reference layout used to fit text.
	ProbeSize = 100
	// spaceEm is the advance of a space placeholder relative to the size.
	spaceEm = 0.25
	// tabSpaces is the number of space placeholders a tab advances.
	tabSpaces = 4
)

type placed struct {
	dr   image.Rectangle
	mask *image.Alpha
}

// cloneMask copies a glyph mask out of the face's scratch buffer, which the
// next Glyph call overwrites.
func cloneMask(mask image.Image, mp, size image.Point) *image.Alpha {
	m := image.NewAlpha(image.Rectangle{Max: size})
	draw.Draw(m, m.Rect, mask, mp, draw.Src)
	return m
}

// Line is one laid out line of text. Glyph rectangles are relative to the
// line's baseline origin.
type Line struct {
	Text   string
	Width  int
	Height int
	glyphs []placed
}

// TextLayout is a block of lines at one size. Line i's baseline sits at
// floor(i*LineHeight)+Ascent, so the block grows linearly with the size.
type TextLayout struct {
	Lines      []Line
	Size       float64
	LineHeight float64
	Ascent     int
	Width      int
	Height     int
}

// SplitLines breaks text on line feeds, dropping a carriage return before
// each break.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// LayoutText places every glyph of text left to right, one line per
// SplitLines entry. Lines are lineSpacing*size apart.
func LayoutText(face font.Face, size float64, text string, lineSpacing float64) TextLayout {
	return layout(face, size, text, lineSpacing, true)
}

// MeasureText is LayoutText without keeping glyph masks; the result only
// reports metrics and cannot be rasterized.
func MeasureText(face font.Face, size float64, text string, lineSpacing float64) TextLayout {
	return layout(face, size, text, lineSpacing, false)
}

func layout(face font.Face, size float64, text string, lineSpacing float64, keep bool) TextLayout {
	if lineSpacing <= 0 {
		lineSpacing = 1.2
	}
	space := fixed.Int26_6(math.Round(size * spaceEm * 64))
	lay := TextLayout{
		Size:       size,
		LineHeight: size * lineSpacing,
		Ascent:     face.Metrics().Ascent.Ceil(),
	}
	for _, s := range SplitLines(text) {
		line := Line{Text: s}
		var dot fixed.Int26_6
		prev := rune(-1)
		for _, r := range s {
			switch r {
			case ' ':
				dot += space
				prev = -1
				continue
			case '\t':
				dot += space * tabSpaces
				prev = -1
				continue
			}
			if prev >= 0 {
				dot += face.Kern(prev, r)
			}
			dr, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{X: dot}, r)
			if !ok {
				dr, mask, maskp, adv, ok = face.Glyph(fixed.Point26_6{X: dot}, '\ufffd')
			}
			if ok && !dr.Empty() {
				if keep {
					line.glyphs = append(line.glyphs, placed{dr: dr, mask: cloneMask(mask, maskp, dr.Size())})
				}
				line.Height = max(line.Height, dr.Dy())
			}
			dot += adv
			prev = r
		}
		line.Width = dot.Ceil()
		lay.Width = max(lay.Width, line.Width)
		lay.Lines = append(lay.Lines, line)
	}
	lay.Height = int(math.Ceil(float64(len(lay.Lines)) * lay.LineHeight))
	return lay
}

// Rasterize draws the layout into a transparent image tinted with c. Each
// glyph keeps its coverage as alpha; overlapping glyphs keep the stronger
// coverage. A layout with no area yields a 1x1 transparent image.
func (l TextLayout) Rasterize(c color.NRGBA) *image.NRGBA {
	if l.Width <= 0 || l.Height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	dst := image.NewNRGBA(image.Rect(0, 0, l.Width, l.Height))
	for i, line := range l.Lines {
		base := image.Pt(0, int(math.Floor(float64(i)*l.LineHeight))+l.Ascent)
		for _, g := range line.glyphs {
			tint(dst, g.dr.Add(base), g.mask, c)
		}
	}
	return dst
}

func tint(dst *image.NRGBA, r image.Rectangle, mask *image.Alpha, c color.NRGBA) {
	clipped := r.Intersect(dst.Rect)
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		for x := clipped.Min.X; x < clipped.Max.X; x++ {
			cov := uint32(mask.AlphaAt(x-r.Min.X, y-r.Min.Y).A)
			if cov == 0 {
				continue
			}
			a := uint8(cov * uint32(c.A) / 255)
			i := dst.PixOffset(x, y)
			if a <= dst.Pix[i+3] {
				continue
			}
			dst.Pix[i+0] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = a
		}
	}
}

// FitSize scales probe by how much a block of natural size natW x natH
// must grow or shrink to fill width x height. Blocks with no width fit by
// height alone. The result is never below 1.
func FitSize(probe float64, natW, natH, width, height int) float64 {
	if natH <= 0 {
		return probe
	}
	ratio := float64(height) / float64(natH)
	if natW > 0 {
		ratio = math.Min(ratio, float64(width)/float64(natW))
	}
	return math.Max(1, math.Floor(probe*ratio))
}

// Centered returns a size-sized rectangle centered in bounds.
func Centered(size image.Point, bounds image.Rectangle) image.Rectangle {
	off := image.Pt((bounds.Dx()-size.X)/2, (bounds.Dy()-size.Y)/2)
	return image.Rectangle{Max: size}.Add(bounds.Min.Add(off))
}
