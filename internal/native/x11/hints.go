package x11

import (
	"encoding/binary"

	"github.com/example/fonotes/internal/native"
)

// Cursor font glyph indices.
const (
	glyphLeftPtr        = 68
	glyphHand2          = 60
	glyphSbHDoubleArrow = 108
	glyphSbVDoubleArrow = 116
)

func cursorGlyph(c native.Cursor) uint16 {
	switch c {
	case native.CursorPointer:
		return glyphHand2
	case native.CursorEWResize:
		return glyphSbHDoubleArrow
	case native.CursorNSResize:
		return glyphSbVDoubleArrow
	}
	return glyphLeftPtr
}

// _NET_WM_MOVERESIZE directions.
const (
	moveResizeTopLeft = iota
	moveResizeTop
	moveResizeTopRight
	moveResizeRight
	moveResizeBottomRight
	moveResizeBottom
	moveResizeBottomLeft
	moveResizeLeft
	moveResizeMove
)

func moveResizeDirection(d native.ResizeDirection) uint32 {
	switch d {
	case native.ResizeNorthWest:
		return moveResizeTopLeft
	case native.ResizeNorth:
		return moveResizeTop
	case native.ResizeNorthEast:
		return moveResizeTopRight
	case native.ResizeEast:
		return moveResizeRight
	case native.ResizeSouthEast:
		return moveResizeBottomRight
	case native.ResizeSouth:
		return moveResizeBottom
	case native.ResizeSouthWest:
		return moveResizeBottomLeft
	}
	return moveResizeLeft
}

// motifHints returns _MOTIF_WM_HINTS asking the window manager to leave
// the window undecorated.
func motifHints(decorated bool) []uint32 {
	const flagDecorations = 1 << 1
	var decorations uint32
	if decorated {
		decorations = 1
	}
	return []uint32{flagDecorations, 0, decorations, 0, 0}
}

// sizeHints returns WM_NORMAL_HINTS for cfg. Non-resizable windows pin
// their maximum to the initial size as well.
func sizeHints(cfg native.WindowConfig) []uint32 {
	const (
		pMinSize = 1 << 4
		pMaxSize = 1 << 5
	)
	h := make([]uint32, 18)
	if cfg.MinWidth > 0 || cfg.MinHeight > 0 {
		h[0] |= pMinSize
		h[5], h[6] = uint32(max(cfg.MinWidth, 1)), uint32(max(cfg.MinHeight, 1))
	}
	if !cfg.Resizable {
		h[0] |= pMinSize | pMaxSize
		h[5], h[6] = uint32(cfg.Width), uint32(cfg.Height)
		h[7], h[8] = uint32(cfg.Width), uint32(cfg.Height)
	}
	return h
}

// putUint32s encodes vals in the connection's byte order, as property and
// client message payloads of format 32 expect.
func putUint32s(vals []uint32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[i*4:], v)
	}
	return b
}

// encodePixels writes 0x00RRGGBB pixels as 32 bits-per-pixel ZPixmap data
// in the server's image byte order.
func encodePixels(dst []byte, src []uint32, msbFirst bool) {
	order := binary.ByteOrder(binary.LittleEndian)
	if msbFirst {
		order = binary.BigEndian
	}
	for i, px := range src {
		order.PutUint32(dst[i*4:], px&0x00ffffff)
	}
}

// rowsPerRequest returns how many rows of a width-pixel image fit in one
// PutImage request of at most maxLen four-byte units.
func rowsPerRequest(width int, maxLen uint16) int {
	const header = 24
	budget := int(maxLen)*4 - header
	return max(1, budget/(width*4))
}
