package render

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Fit selects how an image snapshot is mapped onto the window.
type Fit int

const (
	// FitStretch scales each axis independently to cover the whole
	// window, anchored at the top-left corner.
	FitStretch Fit = iota
	// FitContain scales uniformly to the largest size that fits and
	// centers the result.
	FitContain
)

func (f Fit) String() string {
	if f == FitContain {
		return "contain"
	}
	return "stretch"
}

// ParseFit converts a config value to a Fit. Unknown values select stretch.
func ParseFit(s string) Fit {
	if s == "contain" {
		return FitContain
	}
	return FitStretch
}

// Stretch resamples src onto the whole of dst with nearest-neighbour
// sampling. Destination pixel (x, y) reads source pixel
// (x*srcW/width, y*srcH/height), so the origin pixel is always copied
// unchanged. Both images must start at the origin.
func Stretch(dst *image.RGBA, src *image.RGBA) {
	sb, db := src.Rect, dst.Rect
	sw, sh := sb.Dx(), sb.Dy()
	dw, dh := db.Dx(), db.Dy()
	if sw == 0 || sh == 0 || dw == 0 || dh == 0 {
		return
	}
	for y := 0; y < dh; y++ {
		sy := y * sh / dh
		srow := src.Pix[sy*src.Stride:]
		drow := dst.Pix[y*dst.Stride:]
		for x := 0; x < dw; x++ {
			sx := x * sw / dw
			copy(drow[x*4:x*4+4], srow[sx*4:sx*4+4])
		}
	}
}

// Contain scales src uniformly to fit width x height and returns the
// scaled image with the rectangle it occupies, centered, in window space.
func Contain(src image.Image, width, height int) (image.Image, image.Rectangle) {
	sb := src.Bounds()
	if sb.Empty() || width <= 0 || height <= 0 {
		return nil, image.Rectangle{}
	}
	scale := math.Min(float64(width)/float64(sb.Dx()), float64(height)/float64(sb.Dy()))
	w := max(1, int(math.Round(float64(sb.Dx())*scale)))
	h := max(1, int(math.Round(float64(sb.Dy())*scale)))
	scaled := imaging.Resize(src, w, h, imaging.Lanczos)
	return scaled, Centered(image.Pt(w, h), image.Rect(0, 0, width, height))
}
