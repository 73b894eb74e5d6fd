package pagination

// Finalization: the last page's layout is resolved again with the
// last-page flag (header/footer content can differ on the final page),
// then the inter-page spacing of every other page is computed.

import (
	"github.com/harbour-enterprises/pageflow/utils"
)

// finalize stamps the last page and computes spacing for every page.
func (st *state) finalize() {
	if len(st.pages) == 0 {
		return
	}
	last := len(st.pages) - 1

	// rebuild the last entry against its final layout
	lay := resolvePageLayoutForIndex(last, true, st.params)
	st.layout = lay
	entry := &st.pages[last]
	entry.Metrics = st.pageMetrics(lay)
	entry.PageGapPx = lay.pageGapPx
	entry.HeaderFooterAreas = lay.areas
	entry.ContentArea = ContentArea{
		StartPx:        entry.Break.StartOffsetPx,
		EndPx:          entry.Break.StartOffsetPx + lay.usableHeightPx,
		UsableHeightPx: lay.usableHeightPx,
	}

	// the last page ends at the document end, at the fitted content edge
	endEdge := utils.Clamp(st.currentFittedBottom, entry.Break.StartOffsetPx, entry.ContentArea.EndPx)
	entry.Break.Pos = st.docEndPos
	entry.Break.Top = endEdge
	entry.Break.Bottom = endEdge
	entry.Break.FittedTop = endEdge
	entry.Break.FittedBottom = endEdge

	for i := range st.pages {
		st.computeSpacing(i, i == last)
	}
}

// computeSpacing fills pageBottomSpacingPx, spacingAfterPx and the
// spacing segments of one page.
//
// The unused height of a page is retained as pageBottomSpacingPx and
// drawn as part of the gap after the page, but it is never added to the
// next page's start offset: unused space is absorbed within each page's
// own layout, which keeps flow coordinates from drifting across many
// pages.
func (st *state) computeSpacing(i int, isLast bool) {
	entry := &st.pages[i]
	used := utils.MaxF(entry.Break.FittedBottom-entry.Break.StartOffsetPx, 0)
	unused := utils.MaxF(entry.ContentArea.UsableHeightPx-used, 0)
	entry.PageBottomSpacingPx = unused

	if isLast {
		// nothing follows the last page
		return
	}

	next := st.pages[i+1]
	spacing := unused +
		entry.HeaderFooterAreas.Footer.ReservedHeightPx +
		next.HeaderFooterAreas.Header.ReservedHeightPx +
		entry.PageGapPx
	entry.SpacingAfterPx = spacing

	if spacing > 0 && entry.Break.BreakY != nil {
		entry.SpacingSegments = []SpacingSegment{{
			YPx:      *entry.Break.BreakY,
			HeightPx: spacing,
			Pos:      entry.Break.Pos,
		}}
	}
}

// fieldSegments maps every inline field marker of the document to the
// page it landed on.
func (st *state) fieldSegments() []FieldSegment {
	out := []FieldSegment{}
	for _, f := range st.doc.Fields {
		out = append(out, FieldSegment{
			ID:        f.ID,
			Pos:       f.Pos,
			PageIndex: st.pageIndexForPos(f.Pos),
		})
	}
	return out
}

// pageIndexForPos returns the index of the first page whose end break
// position reaches pos.
func (st *state) pageIndexForPos(pos int) int {
	for i, p := range st.pages {
		if pos <= p.Break.Pos {
			return i
		}
	}
	return utils.MaxInt(len(st.pages)-1, 0)
}
