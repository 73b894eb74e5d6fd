package pagination

// Layout resolution: turn a raw, possibly partial layout descriptor into
// a fully populated one. Never fails; every non finite input falls back
// to the next candidate, terminating at a hard coded default.

import (
	"github.com/harbour-enterprises/pageflow/utils"
)

// layoutInput is a raw layout descriptor. Unset fields are NaN.
type layoutInput struct {
	marginTopPx    Fl
	marginBottomPx Fl
	usableHeightPx Fl
	pageHeightPx   Fl
	pageGapPx      Fl
}

func unsetLayoutInput() layoutInput {
	n := utils.NaN()
	return layoutInput{marginTopPx: n, marginBottomPx: n, usableHeightPx: n, pageHeightPx: n, pageGapPx: n}
}

// pageLayout is a normalized, immutable layout descriptor for one page.
// It is recomputed per page index because header/footer reservation can
// vary by page (first/default/last).
type pageLayout struct {
	sections *HeaderFooterSections
	areas    HeaderFooterAreas

	marginTopPx    Fl
	marginBottomPx Fl
	usableHeightPx Fl
	pageHeightPx   Fl
	pageGapPx      Fl
}

// normalizeLayout resolves raw against the base margins and page height.
// Margins resolve from the explicit value, then the base margin, then the
// default, each floor-clamped at MinMarginPx. The usable height is the
// explicit value when present, else page height minus margins, floored
// at 0.
func normalizeLayout(raw layoutInput, base Margins, pageHeightPx Fl) pageLayout {
	marginTop := utils.MaxF(utils.FirstFinite(raw.marginTopPx, base.Top, DefaultMarginPx), MinMarginPx)
	marginBottom := utils.MaxF(utils.FirstFinite(raw.marginBottomPx, base.Bottom, DefaultMarginPx), MinMarginPx)
	pageHeight := utils.FirstFinite(raw.pageHeightPx, pageHeightPx, DefaultPageHeightPx)
	gap := utils.FirstFinite(raw.pageGapPx, DefaultPageGapPx)
	usable := utils.FirstFinite(raw.usableHeightPx, pageHeight-marginTop-marginBottom)
	if usable < 0 {
		usable = 0
	}
	return pageLayout{
		marginTopPx:    marginTop,
		marginBottomPx: marginBottom,
		usableHeightPx: usable,
		pageHeightPx:   pageHeight,
		pageGapPx:      gap,
	}
}

// resolvePageLayoutForIndex computes the full layout of one page:
// header/footer summaries are resolved for the index, converted to
// reserved areas, and the reservations become the effective margins.
// A fixed minimum margin is enforced independently of header/footer
// presence.
func resolvePageLayoutForIndex(pageIndex int, isLast bool, params resolvedParams) pageLayout {
	var sections *HeaderFooterSections
	if params.resolve != nil {
		sections = params.resolve(pageIndex, HeaderFooterOptions{IsLastPage: isLast})
	}
	areas := buildHeaderFooterAreas(sections, params.margins)

	raw := unsetLayoutInput()
	raw.marginTopPx = utils.Maxs(params.margins.Top, areas.Header.ReservedHeightPx, MinMarginPx)
	raw.marginBottomPx = utils.Maxs(params.margins.Bottom, areas.Footer.ReservedHeightPx, MinMarginPx)
	raw.pageGapPx = params.pageGapPx

	lay := normalizeLayout(raw, params.margins, params.pageHeightPx)
	lay.sections = sections
	lay.areas = areas
	return lay
}
