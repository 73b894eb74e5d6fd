package pagination

// Row-level continuation inside tabular content: a row crossing the page
// boundary moves to the next page whole, unless it is itself taller than
// the page, in which case the regular descent splits inside its cells.

import (
	"github.com/harbour-enterprises/pageflow/document"
	"github.com/harbour-enterprises/pageflow/utils"
)

var tabularTags = utils.NewSet("table", "thead", "tbody", "tfoot")

func isTabular(n *document.Node) bool {
	return n.IsContainer() && tabularTags.Has(n.Tag)
}

func isRow(n *document.Node) bool { return n.Tag == "tr" }

// findRowContinuation reports the break for the first row crossing the
// boundary, or nil when rows do not drive the break (no crossing row, a
// row taller than the page, or the crossing row already starts the page).
func (st *state) findRowContinuation(table *document.Node, boundary Fl) *BreakResult {
	for _, row := range tableRows(table) {
		rect, ok := st.blockRect(row)
		if !ok {
			continue
		}
		top, bottom := st.flowY(rect.Top), st.flowY(rect.Bottom)
		if !(top <= boundary && boundary < bottom) {
			continue
		}
		if bottom-top > st.layout.usableHeightPx {
			// the row alone exceeds a page: it has to be split inside
			return nil
		}
		if top <= st.pageStart {
			// already the first content of the page: pushing it would
			// make no progress
			return nil
		}
		return st.breakBefore(row, top, boundary)
	}
	return nil
}

// tableRows flattens the rows of a table, looking through row groups.
func tableRows(table *document.Node) []*document.Node {
	var out []*document.Node
	for _, child := range table.Children() {
		if isRow(child) {
			out = append(out, child)
			continue
		}
		if tabularTags.Has(child.Tag) {
			for _, row := range child.Children() {
				if isRow(row) {
					out = append(out, row)
				}
			}
		}
	}
	return out
}
