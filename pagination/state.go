package pagination

// The pagination state machine. One state value is created per run,
// mutated in place by every component and discarded after finalization.

import (
	"github.com/harbour-enterprises/pageflow/document"
	"github.com/harbour-enterprises/pageflow/geometry"
	"github.com/harbour-enterprises/pageflow/logger"
	"github.com/harbour-enterprises/pageflow/utils"
)

type state struct {
	doc      *document.Document
	provider GeometryProvider
	params   resolvedParams

	// surface is the root element's rectangle; every measured rectangle
	// is normalized against its top into a single unbounded flow space.
	surface geometry.Rect

	pages     []PageEntry
	pageIndex int
	// pageStart is the flow offset where the open page's content begins.
	pageStart  Fl
	blockIndex int

	// visualStackTop accumulates the offset for visually stacking page
	// previews.
	visualStackTop Fl
	// currentFittedBottom is the running lower edge of content known to
	// fit on the open page.
	currentFittedBottom Fl
	lastBreakPos        int
	docEndPos           int

	layout pageLayout
}

func newState(doc *document.Document, provider GeometryProvider, surface geometry.Rect, params resolvedParams) *state {
	return &state{
		doc:       doc,
		provider:  provider,
		params:    params,
		surface:   surface,
		docEndPos: doc.EndPos(),
	}
}

// nextVisualTop stacks the next page preview below the current one.
// Non finite inputs count as 0.
func nextVisualTop(top, height, gap Fl) Fl {
	return utils.FirstFinite(top) + utils.FirstFinite(height) + utils.FirstFinite(gap)
}

// flowY converts a surface Y into flow coordinates.
func (st *state) flowY(y Fl) Fl { return y - st.surface.Top }

// surfaceY converts a flow Y back into surface coordinates.
func (st *state) surfaceY(y Fl) Fl { return y + st.surface.Top }

// pageLimit is the lower content boundary of the open page.
func (st *state) pageLimit() Fl { return st.pageStart + st.layout.usableHeightPx }

// blockRect measures a node, degrading from the live rectangle to a
// position rectangle to synthetic offset metrics.
func (st *state) blockRect(n *document.Node) (geometry.Rect, bool) {
	if r, err := st.provider.ResolveElementRect(n); err == nil && utils.IsFinite(r.Top) && utils.IsFinite(r.Bottom) {
		return r, true
	}
	if r, ok := st.provider.ResolveRectAtPosition(n.Pos); ok && utils.IsFinite(r.Top) {
		return r, true
	}
	if mp, ok := st.provider.(ElementMetricser); ok {
		if m, ok := mp.ElementMetrics(n); ok {
			return geometry.FallbackRect(m), true
		}
	}
	return geometry.Rect{}, false
}

// run walks the top-level blocks and drives the accumulator through page
// creation, break recording and finalization.
func (st *state) run() {
	st.layout = resolvePageLayoutForIndex(0, false, st.params)
	st.openPage()

	// margins consuming the whole page: a single page, no content area
	if st.layout.usableHeightPx <= 0 {
		logger.WarningLogger.Println("pagination: zero usable height, skipping content flow")
		st.finalize()
		return
	}

	blocks := st.doc.Blocks()
	// a run can only produce so many pages; past this something failed to
	// make progress
	maxPages := 4*len(blocks) + 64

	for st.blockIndex < len(blocks) {
		if st.pageIndex >= maxPages {
			logger.WarningLogger.Printf("pagination: no progress after %d pages, aborting flow", st.pageIndex)
			break
		}
		block := blocks[st.blockIndex]
		rect, ok := st.blockRect(block)
		if !ok {
			st.blockIndex++
			continue
		}
		bottom := st.flowY(rect.Bottom)
		if bottom <= st.pageStart {
			// fully above the open page
			st.blockIndex++
			continue
		}
		limit := st.pageLimit()

		// an explicit break marker short-circuits overflow handling
		if hb := st.detectHardBreak(block, rect, st.pageStart, limit); hb != nil {
			st.recordBreak(hb.FittedTop, hb.FittedBottom, hb.Pos, hb.BreakY, st.currentFittedBottom)
			// the same block may hold further markers or overflow
			continue
		}

		if bottom > limit {
			br := st.locateBreak(block, rect, limit)
			if br == nil {
				// unresolvable break: fall back to the page limit so
				// pagination always terminates
				br = &BreakResult{
					FittedTop:    limit,
					FittedBottom: limit,
					Pos:          st.positionNear(block, limit),
					BreakY:       limit,
				}
			}
			st.recordBreak(br.FittedTop, br.FittedBottom, br.Pos, br.BreakY, st.currentFittedBottom)
			continue
		}

		st.currentFittedBottom = utils.Clamp(bottom, st.pageStart, limit)
		st.blockIndex++
	}

	st.finalize()
}

// positionNear resolves a document position for a forced break at the
// given flow Y, preferring a caret hit-test at the block's left edge.
func (st *state) positionNear(block *document.Node, y Fl) int {
	rect, _ := st.blockRect(block)
	probe := geometry.Point{X: rect.Left, Y: st.surfaceY(y)}
	if pos, ok := st.provider.ResolvePositionFromPoint(probe); ok && pos > st.lastBreakPos {
		return pos
	}
	if block.End-1 > st.lastBreakPos {
		return block.End - 1
	}
	return st.lastBreakPos + 1
}

// openPage appends a fresh entry for the current layout, starting at
// pageStart.
func (st *state) openPage() {
	lay := st.layout
	entry := PageEntry{
		PageIndex:         st.pageIndex,
		Break:             BreakRecord{StartOffsetPx: st.pageStart, Pos: st.lastBreakPos},
		Metrics:           st.pageMetrics(lay),
		PageTopOffsetPx:   st.visualStackTop,
		PageGapPx:         lay.pageGapPx,
		HeaderFooterAreas: lay.areas,
		ContentArea: ContentArea{
			StartPx:        st.pageStart,
			EndPx:          st.pageStart + lay.usableHeightPx,
			UsableHeightPx: lay.usableHeightPx,
		},
	}
	st.pages = append(st.pages, entry)
	st.visualStackTop = nextVisualTop(st.visualStackTop, lay.pageHeightPx, lay.pageGapPx)
	st.currentFittedBottom = st.pageStart
}

func (st *state) pageMetrics(lay pageLayout) PageMetrics {
	contentWidth := utils.MaxF(st.params.pageWidthPx-st.params.margins.Left-st.params.margins.Right, 0)
	return PageMetrics{
		PageHeightPx:    lay.pageHeightPx,
		PageWidthPx:     st.params.pageWidthPx,
		MarginTopPx:     lay.marginTopPx,
		MarginBottomPx:  lay.marginBottomPx,
		MarginLeftPx:    st.params.margins.Left,
		MarginRightPx:   st.params.margins.Right,
		ContentHeightPx: lay.usableHeightPx,
		ContentWidthPx:  contentWidth,
		HeaderHeightPx:  lay.areas.Header.ReservedHeightPx,
		FooterHeightPx:  lay.areas.Footer.ReservedHeightPx,
		PageGapPx:       lay.pageGapPx,
	}
}

// recordBreak closes the open page at the given break and opens the next
// one. Break coordinates are clamped to the open page's content boundary;
// the next page's layout is resolved anew, since header/footer
// reservation can differ per page.
func (st *state) recordBreak(breakTop, breakBottom Fl, breakPos int, breakY Fl, lastFitTop Fl) {
	limit := st.pageLimit()
	safeTop := utils.Clamp(breakTop, st.pageStart, limit)
	safeBottom := utils.Clamp(breakBottom, safeTop, limit)

	y := breakY
	entry := &st.pages[st.pageIndex]
	entry.Break.Pos = breakPos
	entry.Break.Top = utils.FirstFinite(lastFitTop, safeTop)
	entry.Break.Bottom = safeBottom
	entry.Break.FittedTop = safeTop
	entry.Break.FittedBottom = safeBottom
	entry.Break.BreakY = &y

	st.lastBreakPos = breakPos
	st.pageIndex++
	st.layout = resolvePageLayoutForIndex(st.pageIndex, false, st.params)
	st.pageStart = safeTop
	st.openPage()
}
