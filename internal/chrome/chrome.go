// Package chrome classifies pointer positions against the hand-drawn window
// decorations of an undecorated note window.
package chrome

import (
	"image"

	"github.com/example/fonotes/internal/native"
)

const (
	// CloseSize is the side of the close box in the top-right corner.
	CloseSize = 30
	// EdgeSize is the thickness of the resize band along each edge.
	EdgeSize = 20
)

// Zone is the hit-test classification of a pointer position.
type Zone int

const (
	Drag Zone = iota
	Close
	North
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

func (z Zone) String() string {
	switch z {
	case Close:
		return "close"
	case North:
		return "n"
	case South:
		return "s"
	case East:
		return "e"
	case West:
		return "w"
	case NorthEast:
		return "ne"
	case NorthWest:
		return "nw"
	case SouthEast:
		return "se"
	case SouthWest:
		return "sw"
	}
	return "drag"
}

// HitTest maps a window-local pointer position to a zone. The close box
// wins over the corner it overlaps, corners win over edges, and anything
// left is the drag interior.
func HitTest(x, y, width, height float64) Zone {
	west := x < EdgeSize
	east := x > width-EdgeSize
	north := y < EdgeSize
	south := y > height-EdgeSize

	switch {
	case x > width-CloseSize && y < CloseSize:
		return Close
	case west && north:
		return NorthWest
	case west && south:
		return SouthWest
	case east && north:
		return NorthEast
	case east && south:
		return SouthEast
	case west:
		return West
	case east:
		return East
	case south:
		return South
	case north:
		return North
	}
	return Drag
}

// Cursor returns the pointer icon shown while hovering z.
func (z Zone) Cursor() native.Cursor {
	switch z {
	case Close:
		return native.CursorPointer
	case East, West, NorthEast, NorthWest, SouthEast, SouthWest:
		return native.CursorEWResize
	case North, South:
		return native.CursorNSResize
	}
	return native.CursorDefault
}

// Direction returns the resize direction for edge and corner zones.
func (z Zone) Direction() (native.ResizeDirection, bool) {
	switch z {
	case North:
		return native.ResizeNorth, true
	case South:
		return native.ResizeSouth, true
	case East:
		return native.ResizeEast, true
	case West:
		return native.ResizeWest, true
	case NorthEast:
		return native.ResizeNorthEast, true
	case NorthWest:
		return native.ResizeNorthWest, true
	case SouthEast:
		return native.ResizeSouthEast, true
	case SouthWest:
		return native.ResizeSouthWest, true
	}
	return 0, false
}

// CloseRect returns the close box of a width-wide window.
func CloseRect(width int) image.Rectangle {
	return image.Rect(width-CloseSize, 0, width, CloseSize)
}
