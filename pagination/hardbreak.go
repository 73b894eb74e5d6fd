package pagination

// Explicit break markers. A hard break found inside the window
// (lowerBound, upperBound] wins over any overflow-located break.

import (
	"github.com/harbour-enterprises/pageflow/document"
	"github.com/harbour-enterprises/pageflow/geometry"
	"github.com/harbour-enterprises/pageflow/utils"
)

// detectHardBreak scans a rendered block and its descendants for explicit
// break markers inside the window. Among the candidates in range, the one
// with the smallest top (the earliest) wins. Returns nil when the block
// carries no usable marker.
func (st *state) detectHardBreak(block *document.Node, blockRect geometry.Rect, lowerBound, upperBound Fl) *BreakResult {
	var (
		best       *document.Node
		bestTop    Fl
		bestBottom Fl
	)
	for _, n := range document.Descendants(block) {
		if !n.IsHardBreak() {
			continue
		}
		top, bottom := st.markerExtent(n)
		if !utils.IsFinite(top) {
			continue
		}
		top, bottom = st.flowY(top), st.flowY(bottom)
		if !(top > lowerBound && top <= upperBound) {
			continue
		}
		if best == nil || top < bestTop {
			best, bestTop, bestBottom = n, top, bottom
		}
	}
	if best == nil {
		return nil
	}

	pos := st.markerPosition(best, bestTop)
	if pos <= st.lastBreakPos {
		return nil
	}
	// a forced break sitting exactly on a section boundary moves past it,
	// so the break coincides with the section change instead of splitting it
	pos = st.doc.ExtendAcrossSectionBoundary(pos)

	fittedTop := utils.Clamp(bestTop, st.pageStart, upperBound)
	fittedBottom := utils.Clamp(utils.FirstFinite(bestBottom, bestTop), fittedTop, upperBound)
	return &BreakResult{
		FittedTop:    fittedTop,
		FittedBottom: fittedBottom,
		Pos:          pos,
		BreakY:       bestTop,
	}
}

// markerExtent measures a marker in surface coordinates. When the marker's
// own bottom cannot be measured, the bottom of the immediately preceding
// sibling element serves instead.
func (st *state) markerExtent(marker *document.Node) (top, bottom Fl) {
	top, bottom = utils.NaN(), utils.NaN()
	if r, err := st.provider.ResolveElementRect(marker); err == nil {
		top, bottom = r.Top, r.Bottom
	} else if r, ok := st.provider.ResolveRectAtPosition(marker.Pos); ok {
		top, bottom = r.Top, r.Bottom
	}
	if !utils.IsFinite(bottom) {
		if prev := marker.PrevSibling(); prev != nil {
			if r, err := st.provider.ResolveElementRect(prev); err == nil && utils.IsFinite(r.Bottom) {
				bottom = r.Bottom
			}
		}
	}
	return top, bottom
}

// markerPosition resolves the break position of a marker: the document
// position just after it, so the marker itself stays on the page it
// closes. Falls back to a caret hit-test, then to the node's own range.
func (st *state) markerPosition(marker *document.Node, flowTop Fl) int {
	size := marker.End - marker.Pos
	if pos, err := st.provider.ResolvePositionFromElement(marker, size); err == nil {
		return pos
	}
	probe := geometry.Point{X: st.surface.Left, Y: st.surfaceY(flowTop)}
	if pos, ok := st.provider.ResolvePositionFromPoint(probe); ok {
		return pos
	}
	return marker.End
}
