package pagination

// The break locator. Given a block element crossing the open page's lower
// boundary, descend into block containers until the exact leaf block and
// intra-block break point are found, normalizing every coordinate to
// page-relative, clamped flow space.

import (
	"sort"

	"github.com/harbour-enterprises/pageflow/document"
	"github.com/harbour-enterprises/pageflow/geometry"
	"github.com/harbour-enterprises/pageflow/utils"
)

// BreakResult is the outcome of one break search.
//
// FittedTop and FittedBottom are flow coordinates clamped to
// [pageStart, pageStart+usableHeightPx]; Pos is the document position of
// the break; BreakY keeps the unclamped flow Y, which downstream
// spacing-segment math needs.
type BreakResult struct {
	FittedTop    Fl  `json:"fittedTop"`
	FittedBottom Fl  `json:"fittedBottom"`
	Pos          int `json:"pos"`
	BreakY       Fl  `json:"breakY"`
}

// locateBreak finds the break point inside a block that crosses the page
// limit. Returns nil when no position is resolvable anywhere; the caller
// then breaks exactly at the page limit.
func (st *state) locateBreak(block *document.Node, blockRect geometry.Rect, pageLimit Fl) *BreakResult {
	// resolve the block's document position, hit-testing a probe point
	// when the element mapping fails
	pos, err := st.provider.ResolvePositionFromElement(block, 0)
	if err != nil {
		probe := geometry.Point{
			X: blockRect.Left,
			Y: utils.MinF(blockRect.Bottom, st.surfaceY(pageLimit)),
		}
		p, ok := st.provider.ResolvePositionFromPoint(probe)
		if !ok {
			return nil
		}
		pos = p
	}

	node := st.provider.ResolveNodeAtPosition(pos)
	if node == nil || (node.IsContainer() && len(node.Children()) == 0) {
		node = st.provider.ResolveNodeAtPosition(pos - 1)
	}
	if node == nil {
		return nil
	}

	if node.IsContainer() {
		return st.findBreakInBlockContainer(node, blockRect, pageLimit)
	}
	return st.findAndNormalizeBreakResult(node, blockRect, pageLimit)
}

// findBreakInBlockContainer walks the container's children in document
// order looking for the child that crosses the boundary.
func (st *state) findBreakInBlockContainer(container *document.Node, containerRect geometry.Rect, boundary Fl) *BreakResult {
	// row-level continuation wins inside tabular content
	if isTabular(container) {
		if br := st.findRowContinuation(container, boundary); br != nil {
			return br
		}
	}

	for _, child := range container.Children() {
		rect, ok := st.blockRect(child)
		if !ok {
			continue
		}
		top, bottom := st.flowY(rect.Top), st.flowY(rect.Bottom)
		// the child crosses the boundary when top <= boundary < bottom
		if !(top <= boundary && boundary < bottom) {
			continue
		}
		if child.IsContainer() {
			if br := st.findBreakInBlockContainer(child, rect, boundary); br != nil {
				return br
			}
			// The container's visual box extends beyond its content
			// (padding, borders): push the whole container to the next
			// page instead of slicing at an arbitrary padding offset.
			if leaf := document.FirstLeafIn(child); leaf != nil {
				return st.breakBefore(child, top, boundary)
			}
			continue
		}
		return st.findAndNormalizeBreakResult(child, rect, boundary)
	}
	return nil
}

// breakBefore breaks immediately before a container's start position.
func (st *state) breakBefore(container *document.Node, top, boundary Fl) *BreakResult {
	fittedBottom := utils.Clamp(top, st.pageStart, boundary)
	fittedTop := utils.Clamp(top, st.pageStart, fittedBottom)
	return &BreakResult{
		FittedTop:    fittedTop,
		FittedBottom: fittedBottom,
		Pos:          container.Pos,
		BreakY:       top,
	}
}

// findAndNormalizeBreakResult runs the inline break search on a leaf and
// converts the raw outcome into clamped page coordinates. When the search
// yields no usable geometry, coordinates are synthesized from the
// position rectangle, then from the leaf's own rectangle, then from the
// leaf's top as a last resort.
func (st *state) findAndNormalizeBreakResult(leaf *document.Node, leafRect geometry.Rect, boundary Fl) *BreakResult {
	pos, rawTop, rawBottom := st.findBreakInLeaf(leaf, boundary)
	if pos < 0 {
		return nil
	}

	leafTop := st.flowY(leafRect.Top)
	leafBottom := st.flowY(leafRect.Bottom)
	if !utils.IsFinite(rawTop) || !utils.IsFinite(rawBottom) {
		if r, ok := st.provider.ResolveRectAtPosition(pos); ok {
			rawTop = utils.FirstFinite(rawTop, st.flowY(r.Top))
			rawBottom = utils.FirstFinite(rawBottom, st.flowY(r.Bottom))
		}
		rawTop = utils.FirstFinite(rawTop, leafTop)
		rawBottom = utils.FirstFinite(rawBottom, leafBottom, rawTop)
	}

	fittedBottom := utils.Clamp(rawBottom, st.pageStart, boundary)
	fittedTop := utils.Clamp(rawTop, st.pageStart, fittedBottom)
	return &BreakResult{
		FittedTop:    fittedTop,
		FittedBottom: fittedBottom,
		Pos:          pos,
		BreakY:       rawTop,
	}
}

// findBreakInLeaf searches the leaf's inline content for the first
// position whose caret rectangle crosses the boundary. The search is
// bounded below by the last committed break position. Returns pos < 0
// when the leaf holds no searchable position, and NaN coordinates when
// the position was found but its geometry was not.
func (st *state) findBreakInLeaf(leaf *document.Node, boundary Fl) (pos int, top, bottom Fl) {
	first := utils.MaxInt(leaf.Pos+1, st.lastBreakPos+1)
	last := leaf.End - 1 // closing token
	if first >= last {
		return -1, 0, 0
	}

	// caret rectangles grow monotonically down the flow, so binary
	// search for the first overflowing position; positions with missing
	// geometry count as fitting
	n := last - first
	i := sort.Search(n, func(i int) bool {
		r, ok := st.provider.ResolveRectAtPosition(first + i)
		if !ok {
			return false
		}
		return st.flowY(r.Bottom) > boundary
	})
	if i == n {
		// nothing overflows: geometry is missing or inconsistent
		return last, utils.NaN(), utils.NaN()
	}

	pos = first + i
	if r, ok := st.provider.ResolveRectAtPosition(pos); ok {
		return pos, st.flowY(r.Top), st.flowY(r.Bottom)
	}
	return pos, utils.NaN(), utils.NaN()
}
