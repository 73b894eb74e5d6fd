// Package geometry holds the pixel primitives shared by the measurement
// host and the pagination engine: rectangles in the render surface's
// coordinate space and the offset metrics used when a live rectangle
// cannot be resolved.
package geometry

import (
	"github.com/harbour-enterprises/pageflow/utils"
)

type Fl = utils.Fl

// Rect is an axis aligned rectangle, in surface pixels.
type Rect struct {
	Top, Bottom, Left, Right Fl
	Width, Height            Fl
}

// Point is a probe location for caret hit-testing.
type Point struct {
	X, Y Fl
}

// IsZero reports whether r carries no usable extent.
func (r Rect) IsZero() bool {
	return r.Width == 0 && r.Height == 0 && r.Top == 0 && r.Left == 0
}

// FromEdges builds a Rect from its four edges, deriving Width and Height.
func FromEdges(top, left, bottom, right Fl) Rect {
	return Rect{
		Top: top, Bottom: bottom, Left: left, Right: right,
		Width: right - left, Height: bottom - top,
	}
}

// ElementMetrics are the box-model offsets an element reports even when
// its live bounding rectangle is unavailable.
type ElementMetrics struct {
	OffsetTop, OffsetLeft     Fl
	OffsetWidth, OffsetHeight Fl
}

// FallbackRect synthesizes a rectangle from offset metrics. Non finite
// components degrade to 0, so the result is always well formed.
func FallbackRect(m ElementMetrics) Rect {
	top := utils.FirstFinite(m.OffsetTop)
	left := utils.FirstFinite(m.OffsetLeft)
	width := utils.FirstFinite(m.OffsetWidth)
	height := utils.FirstFinite(m.OffsetHeight)
	return Rect{
		Top:    top,
		Bottom: top + height,
		Left:   left,
		Right:  left + width,
		Width:  width,
		Height: height,
	}
}
