package render

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// maxFaces bounds the face cache; window resizes walk through many sizes.
const maxFaces = 32

// Fonts rasterizes one typeface at arbitrary sizes. It is owned by the
// event loop goroutine.
type Fonts struct {
	font  *opentype.Font
	faces map[float64]font.Face
}

// LoadFonts parses the TrueType or OpenType file at path, or the embedded
// Go Regular face when path is empty.
func LoadFonts(path string) (*Fonts, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Fonts{font: f, faces: map[float64]font.Face{}}, nil
}

// Face returns a face for size points at 72 DPI, so one point is one
// physical pixel.
func (f *Fonts) Face(size float64) (font.Face, error) {
	size = math.Max(1, size)
	if face, ok := f.faces[size]; ok {
		return face, nil
	}
	if len(f.faces) >= maxFaces {
		f.drop()
	}
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face %.0fpt: %w", size, err)
	}
	f.faces[size] = face
	return face, nil
}

func (f *Fonts) drop() {
	for size, face := range f.faces {
		face.Close()
		delete(f.faces, size)
	}
}

// Close releases every cached face.
func (f *Fonts) Close() {
	f.drop()
}
