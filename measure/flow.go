// Package measure provides a deterministic reference measurement host.
//
// A Flow lays out a parsed snapshot by simple vertical stacking: leaves
// are stacks of fixed-height lines, containers wrap their children plus
// padding. Style hints come from snapshot attributes (data-height,
// data-lines, data-pad). The result implements pagination.GeometryProvider,
// so the engine, the preview painters and the tests all run without a
// live render surface.
package measure

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/harbour-enterprises/pageflow/document"
	"github.com/harbour-enterprises/pageflow/geometry"
	"github.com/harbour-enterprises/pageflow/utils"
)

type Fl = utils.Fl

// Style hint attributes understood by the flow measurer.
const (
	AttrHeight = "data-height"
	AttrLines  = "data-lines"
	AttrPad    = "data-pad"
)

// Options tune the synthetic layout.
type Options struct {
	// LineHeightPx is the height of one text line. Defaults to 20.
	LineHeightPx Fl
	// WidthPx is the content width of the surface. Defaults to 624.
	WidthPx Fl
	// RunesPerLine controls how many text runes fill a line when a leaf
	// has no explicit data-lines hint. Defaults to 80.
	RunesPerLine int
}

func (o Options) withDefaults() Options {
	if o.LineHeightPx <= 0 {
		o.LineHeightPx = 20
	}
	if o.WidthPx <= 0 {
		o.WidthPx = 624
	}
	if o.RunesPerLine <= 0 {
		o.RunesPerLine = 80
	}
	return o
}

// Flow is a laid out snapshot serving synchronous geometry queries.
type Flow struct {
	doc  *document.Document
	opts Options

	surface geometry.Rect
	rects   map[*document.Node]geometry.Rect
	// lines holds the per-leaf line rectangles, top to bottom
	lines map[*document.Node][]geometry.Rect

	// Unmeasurable simulates elements whose live rectangle cannot be
	// resolved; used to exercise the engine's fallback chains.
	Unmeasurable map[*document.Node]bool
}

// NewFlow lays out doc and returns its measurement host.
func NewFlow(doc *document.Document, opts Options) *Flow {
	f := &Flow{
		doc:          doc,
		opts:         opts.withDefaults(),
		rects:        map[*document.Node]geometry.Rect{},
		lines:        map[*document.Node][]geometry.Rect{},
		Unmeasurable: map[*document.Node]bool{},
	}
	bottom := Fl(0)
	for _, block := range doc.Blocks() {
		bottom = f.layoutNode(block, bottom)
	}
	f.surface = geometry.FromEdges(0, 0, bottom, f.opts.WidthPx)
	f.rects[doc.Root] = f.surface
	return f
}

// layoutNode stacks n at flow offset y and returns its bottom edge.
func (f *Flow) layoutNode(n *document.Node, y Fl) Fl {
	pad := f.hint(n, AttrPad, 0)
	if n.IsContainer() {
		bottom := y + pad
		for _, c := range n.Children() {
			bottom = f.layoutNode(c, bottom)
		}
		bottom += pad
		f.rects[n] = geometry.FromEdges(y, 0, bottom, f.opts.WidthPx)
		return bottom
	}

	height := f.leafHeight(n)
	f.rects[n] = geometry.FromEdges(y+pad, 0, y+pad+height, f.opts.WidthPx)
	lineCount := f.leafLines(n)
	lineHeight := height / Fl(lineCount)
	rows := make([]geometry.Rect, lineCount)
	for i := range rows {
		top := y + pad + Fl(i)*lineHeight
		rows[i] = geometry.FromEdges(top, 0, top+lineHeight, f.opts.WidthPx)
	}
	f.lines[n] = rows
	return y + pad + height + pad
}

func (f *Flow) leafLines(n *document.Node) int {
	if v := f.hint(n, AttrLines, 0); v > 0 {
		return int(v)
	}
	runes := utf8.RuneCountInString(n.Text)
	lines := (runes + f.opts.RunesPerLine - 1) / f.opts.RunesPerLine
	return utils.MaxInt(lines, 1)
}

func (f *Flow) leafHeight(n *document.Node) Fl {
	if v := f.hint(n, AttrHeight, 0); v > 0 {
		return v
	}
	if n.Tag == "hr" {
		return 0
	}
	return Fl(f.leafLines(n)) * f.opts.LineHeightPx
}

func (f *Flow) hint(n *document.Node, attr string, def Fl) Fl {
	raw, ok := n.Attr(attr)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

// ResolveElementRect returns the laid out rectangle of n.
func (f *Flow) ResolveElementRect(n *document.Node) (geometry.Rect, error) {
	if f.Unmeasurable[n] {
		return geometry.Rect{}, fmt.Errorf("measure: element %s is not rendered", n)
	}
	r, ok := f.rects[n]
	if !ok {
		return geometry.Rect{}, fmt.Errorf("measure: unknown element %s", n)
	}
	return r, nil
}

// ElementMetrics serves box-model offsets even for unmeasurable elements,
// so the engine's synthetic-rectangle fallback has something to work with.
func (f *Flow) ElementMetrics(n *document.Node) (geometry.ElementMetrics, bool) {
	r, ok := f.rects[n]
	if !ok {
		return geometry.ElementMetrics{}, false
	}
	return geometry.ElementMetrics{
		OffsetTop:    r.Top,
		OffsetLeft:   r.Left,
		OffsetWidth:  r.Width,
		OffsetHeight: r.Height,
	}, true
}

// ResolvePositionFromElement maps an element to its document position.
func (f *Flow) ResolvePositionFromElement(n *document.Node, offset int) (int, error) {
	if f.Unmeasurable[n] {
		return 0, fmt.Errorf("measure: element %s is not rendered", n)
	}
	return n.Pos + offset, nil
}

// ResolvePositionFromPoint hit-tests a probe point against the laid out
// leaves.
func (f *Flow) ResolvePositionFromPoint(p geometry.Point) (int, bool) {
	for _, n := range document.Descendants(f.doc.Root) {
		if n.Kind != document.Leaf {
			continue
		}
		rows, ok := f.lines[n]
		if !ok || f.Unmeasurable[n] {
			continue
		}
		for i, row := range rows {
			if p.Y >= row.Top && p.Y < row.Bottom {
				return f.linePos(n, i), true
			}
		}
	}
	return 0, false
}

// ResolveNodeAtPosition delegates to the document index.
func (f *Flow) ResolveNodeAtPosition(pos int) *document.Node {
	return f.doc.NodeAt(pos)
}

// ResolveRectAtPosition returns the caret rectangle at pos: the line
// holding it inside a leaf, or the node's own rectangle.
func (f *Flow) ResolveRectAtPosition(pos int) (geometry.Rect, bool) {
	n := f.doc.NodeAt(pos)
	if n == nil || f.Unmeasurable[n] {
		return geometry.Rect{}, false
	}
	if n.Kind == document.Leaf {
		if rows, ok := f.lines[n]; ok && len(rows) > 0 {
			return rows[f.lineIndex(n, pos)], true
		}
	}
	r, ok := f.rects[n]
	return r, ok
}

// lineIndex maps a position inside a leaf to its line.
func (f *Flow) lineIndex(n *document.Node, pos int) int {
	rows := f.lines[n]
	runes := utf8.RuneCountInString(n.Text)
	offset := utils.MaxInt(pos-(n.Pos+1), 0)
	if runes == 0 || len(rows) == 0 {
		return 0
	}
	perLine := (runes + len(rows) - 1) / len(rows)
	return utils.MinInt(offset/utils.MaxInt(perLine, 1), len(rows)-1)
}

// linePos is the inverse of lineIndex: the first position on a line.
func (f *Flow) linePos(n *document.Node, line int) int {
	rows := f.lines[n]
	runes := utf8.RuneCountInString(n.Text)
	if len(rows) == 0 {
		return n.Pos + 1
	}
	perLine := (runes + len(rows) - 1) / len(rows)
	return n.Pos + 1 + line*utils.MaxInt(perLine, 1)
}
