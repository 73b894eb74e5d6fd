// Compute page breaks for a continuous flow of rendered document blocks.
//
// The engine walks the snapshot's top-level blocks in order and decides
// where each page ends: an explicit break marker wins, otherwise the exact
// overflow point is located by recursive descent into block containers,
// otherwise the block's bottom extends the current page. All geometry is
// obtained through the GeometryProvider interface, so the engine runs
// against any measurement host, live or synthetic.
//
// Every run is synchronous and self contained: one invocation owns its
// accumulator, walks the block list once and returns a complete page set.
// Re-running after each edit is the expected usage.
package pagination

import (
	"github.com/harbour-enterprises/pageflow/document"
	"github.com/harbour-enterprises/pageflow/geometry"
	"github.com/harbour-enterprises/pageflow/logger"
	"github.com/harbour-enterprises/pageflow/utils"
)

type Fl = utils.Fl

// Default page geometry: US Letter at 96 dpi.
const (
	DefaultPageHeightPx Fl = 1056
	DefaultPageWidthPx  Fl = 816
	DefaultMarginPx     Fl = 96
	DefaultPageGapPx    Fl = 24

	// MinMarginPx is enforced even when the document specifies no margin,
	// so content never touches the page edge and header/footer space is
	// always reserved.
	MinMarginPx Fl = 24
)

// GeometryProvider is the measurement collaborator. Rectangles are in the
// render surface's own coordinate space; the engine normalizes them
// against the root element's rectangle. Implementations may fail or
// return non finite values freely: every consumer degrades through a
// fallback chain and never propagates measurement errors.
type GeometryProvider interface {
	ResolveElementRect(n *document.Node) (geometry.Rect, error)
	ResolvePositionFromElement(n *document.Node, offset int) (int, error)
	ResolvePositionFromPoint(p geometry.Point) (pos int, ok bool)
	ResolveNodeAtPosition(pos int) *document.Node
	ResolveRectAtPosition(pos int) (geometry.Rect, bool)
}

// ElementMetricser is an optional extension of GeometryProvider: hosts
// that track box-model offsets can serve a synthetic rectangle when the
// live one is unavailable (see geometry.FallbackRect).
type ElementMetricser interface {
	ElementMetrics(n *document.Node) (geometry.ElementMetrics, bool)
}

// Margins are page margins, in pixels.
type Margins struct {
	Top    Fl `json:"top"`
	Right  Fl `json:"right"`
	Bottom Fl `json:"bottom"`
	Left   Fl `json:"left"`
}

// HeaderFooterOptions qualifies a header/footer resolution request.
type HeaderFooterOptions struct {
	IsLastPage bool
}

// HeaderFooterResolver returns the header/footer measurement summaries
// for a page. It may return nil when the page has neither; margin
// reservation then falls back to the page margins. The resolver is called
// again for the final page with IsLastPage set, since last-page content
// can differ.
type HeaderFooterResolver func(pageIndex int, opts HeaderFooterOptions) *HeaderFooterSections

// Params configure a pagination run. Zero or negative dimensions mean
// "use the default".
type Params struct {
	PageHeightPx Fl
	PageWidthPx  Fl
	PageGapPx    Fl
	MarginsPx    *Margins

	ResolveHeaderFooter HeaderFooterResolver
}

type resolvedParams struct {
	pageHeightPx Fl
	pageWidthPx  Fl
	pageGapPx    Fl
	margins      Margins
	resolve      HeaderFooterResolver
}

func dimOr(v, def Fl) Fl {
	if !utils.IsFinite(v) || v <= 0 {
		return def
	}
	return v
}

func resolveParams(p *Params) resolvedParams {
	if p == nil {
		p = &Params{}
	}
	out := resolvedParams{
		pageHeightPx: dimOr(p.PageHeightPx, DefaultPageHeightPx),
		pageWidthPx:  dimOr(p.PageWidthPx, DefaultPageWidthPx),
		pageGapPx:    DefaultPageGapPx,
		margins:      Margins{Top: DefaultMarginPx, Right: DefaultMarginPx, Bottom: DefaultMarginPx, Left: DefaultMarginPx},
		resolve:      p.ResolveHeaderFooter,
	}
	if utils.IsFinite(p.PageGapPx) && p.PageGapPx >= 0 && p.PageGapPx != 0 {
		out.pageGapPx = p.PageGapPx
	}
	if m := p.MarginsPx; m != nil {
		out.margins = Margins{
			Top:    utils.FirstFinite(m.Top, DefaultMarginPx),
			Right:  utils.FirstFinite(m.Right, DefaultMarginPx),
			Bottom: utils.FirstFinite(m.Bottom, DefaultMarginPx),
			Left:   utils.FirstFinite(m.Left, DefaultMarginPx),
		}
	}
	return out
}

// Units describe the unit system of every pixel field in a Result.
type Units struct {
	Unit string `json:"unit"`
	DPI  int    `json:"dpi"`
}

// BreakRecord stamps where a page's content ends.
//
// Top and Bottom are the fitted content edge when the break was recorded;
// FittedTop and FittedBottom are the break coordinates clamped to the
// page's content boundary. BreakY preserves the unclamped flow Y of the
// break, which spacing-segment derivation needs.
type BreakRecord struct {
	StartOffsetPx Fl  `json:"startOffsetPx"`
	Pos           int `json:"pos"`
	Top           Fl  `json:"top"`
	Bottom        Fl  `json:"bottom"`
	FittedTop     Fl  `json:"fittedTop"`
	FittedBottom  Fl  `json:"fittedBottom"`
	BreakY        *Fl `json:"breakY,omitempty"`
}

// PageMetrics are the resolved box metrics of one page.
type PageMetrics struct {
	PageHeightPx    Fl `json:"pageHeightPx"`
	PageWidthPx     Fl `json:"pageWidthPx"`
	MarginTopPx     Fl `json:"marginTopPx"`
	MarginBottomPx  Fl `json:"marginBottomPx"`
	MarginLeftPx    Fl `json:"marginLeftPx"`
	MarginRightPx   Fl `json:"marginRightPx"`
	ContentHeightPx Fl `json:"contentHeightPx"`
	ContentWidthPx  Fl `json:"contentWidthPx"`
	HeaderHeightPx  Fl `json:"headerHeightPx"`
	FooterHeightPx  Fl `json:"footerHeightPx"`
	PageGapPx       Fl `json:"pageGapPx"`
}

// ContentArea is the flow range a page's content occupies.
type ContentArea struct {
	StartPx        Fl `json:"startPx"`
	EndPx          Fl `json:"endPx"`
	UsableHeightPx Fl `json:"usableHeightPx"`
}

// SpacingSegment is a marker the renderer uses to draw the visual gap
// after a page. YPx is the unclamped break Y in flow coordinates.
type SpacingSegment struct {
	YPx      Fl  `json:"yPx"`
	HeightPx Fl  `json:"heightPx"`
	Pos      int `json:"pos"`
}

// PageEntry is one page of the paginated result. Field names and units
// (px, dpi 96) are a renderer contract and must not change.
type PageEntry struct {
	PageIndex           int               `json:"pageIndex"`
	Break               BreakRecord       `json:"break"`
	Metrics             PageMetrics       `json:"metrics"`
	PageTopOffsetPx     Fl                `json:"pageTopOffsetPx"`
	PageGapPx           Fl                `json:"pageGapPx"`
	PageBottomSpacingPx Fl                `json:"pageBottomSpacingPx"`
	HeaderFooterAreas   HeaderFooterAreas `json:"headerFooterAreas"`
	ContentArea         ContentArea       `json:"contentArea"`
	SpacingAfterPx      Fl                `json:"spacingAfterPx"`
	SpacingSegments     []SpacingSegment  `json:"spacingSegments,omitempty"`
}

// FieldSegment reports which page an inline field marker landed on.
type FieldSegment struct {
	ID        string `json:"id"`
	Pos       int    `json:"pos"`
	PageIndex int    `json:"pageIndex"`
}

// Result is a complete pagination of one snapshot.
type Result struct {
	Document      string         `json:"document"`
	Units         Units          `json:"units"`
	Pages         []PageEntry    `json:"pages"`
	FieldSegments []FieldSegment `json:"fieldSegments"`
}

// GeneratePageBreaks paginates a document snapshot against the given
// measurement host.
//
// A nil provider (no render surface) or an unmeasurable root yields an
// empty, well formed result carrying the snapshot unchanged. No error is
// ever returned: every failure mode inside the engine degrades locally
// (see the package documentation).
func GeneratePageBreaks(doc *document.Document, provider GeometryProvider, params *Params) Result {
	res := Result{
		Units:         Units{Unit: "px", DPI: 96},
		Pages:         []PageEntry{},
		FieldSegments: []FieldSegment{},
	}
	if doc != nil {
		res.Document = doc.HTML
	}
	if doc == nil || provider == nil {
		return res
	}
	surface, err := provider.ResolveElementRect(doc.Root)
	if err != nil {
		logger.WarningLogger.Printf("pagination: render surface unavailable: %s", err)
		return res
	}

	logger.ProgressLogger.Printf("paginating %d blocks", len(doc.Blocks()))

	st := newState(doc, provider, surface, resolveParams(params))
	st.run()

	res.Pages = st.pages
	res.FieldSegments = st.fieldSegments()
	return res
}
