// Package clipboard reads the desktop clipboard and turns its current
// contents into snapshots.
package clipboard

import (
	"errors"
	"image"
	"log/slog"

	"github.com/example/fonotes/internal/snapshot"
)

var (
	errNoImage = errors.New("clipboard does not contain image data")
	errNoText  = errors.New("clipboard does not contain text data")
)

// Reader is the clipboard as seen by Capture. Both reads are synchronous
// and fail immediately when the format is absent.
type Reader interface {
	ReadImage() (image.Image, error)
	ReadText() (string, error)
}

// System reads the platform clipboard.
type System struct{}

func (System) ReadImage() (image.Image, error) { return ReadImage() }
func (System) ReadText() (string, error)       { return ReadText() }

// Capture snapshots r: an image if one is present, otherwise text,
// otherwise Empty. Read failures are the normal way a format is reported
// missing and are never returned.
func Capture(r Reader) snapshot.Snapshot {
	img, err := r.ReadImage()
	if err == nil && img != nil && !img.Bounds().Empty() {
		return snapshot.FromImage(img)
	}
	if err != nil {
		slog.Debug("clipboard image unavailable", "err", err)
	}
	text, err := r.ReadText()
	if err == nil {
		return snapshot.Text(text)
	}
	slog.Debug("clipboard text unavailable", "err", err)
	return snapshot.Empty()
}
