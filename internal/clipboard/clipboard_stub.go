//go:build !windows && !linux && !freebsd && !openbsd && !netbsd && !dragonfly && !(darwin && cgo)

package clipboard

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("clipboard is not supported on this platform")

func ReadImage() (image.Image, error) { return nil, errUnsupported }

func ReadText() (string, error) { return "", errUnsupported }
