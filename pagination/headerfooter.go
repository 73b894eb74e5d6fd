package pagination

// Header/footer measurement summaries are converted into reserved-area
// descriptors used for margin reservation. The measured content never
// shrinks the reservation below the page margin, so a page always keeps
// its header and footer space even when both are empty.

import (
	"github.com/harbour-enterprises/pageflow/utils"
)

// SectionMetrics are the measured extents of one header or footer
// section, as reported by the host. Unset values are NaN; use
// UnsetSectionMetrics to start from an all-unset value.
type SectionMetrics struct {
	// OffsetPx is the distance from the page edge to the section slot.
	OffsetPx Fl
	// DistancePx is a legacy alias consulted when OffsetPx is unset.
	DistancePx        Fl
	ContentHeightPx   Fl
	EffectiveHeightPx Fl
}

// UnsetSectionMetrics returns metrics with every field unset.
func UnsetSectionMetrics() SectionMetrics {
	n := utils.NaN()
	return SectionMetrics{OffsetPx: n, DistancePx: n, ContentHeightPx: n, EffectiveHeightPx: n}
}

// SectionMeasurement is one header or footer summary for one page.
type SectionMeasurement struct {
	ID       string
	HeightPx Fl
	Metrics  SectionMetrics
}

// HeaderFooterSections carries the per-page summaries returned by a
// HeaderFooterResolver.
type HeaderFooterSections struct {
	Header *SectionMeasurement
	Footer *SectionMeasurement
}

// AreaMetrics echo the resolved section metrics on an area descriptor.
type AreaMetrics struct {
	OffsetPx          Fl `json:"offsetPx"`
	ContentHeightPx   Fl `json:"contentHeightPx"`
	EffectiveHeightPx Fl `json:"effectiveHeightPx"`
}

// HeaderFooterArea is a reserved area descriptor: how much of the page is
// withheld from the content flow for one role, and where the section's
// slot sits inside that reservation.
type HeaderFooterArea struct {
	HeightPx         Fl          `json:"heightPx"`
	ReservedHeightPx Fl          `json:"reservedHeightPx"`
	Metrics          AreaMetrics `json:"metrics"`
	SlotTopPx        Fl          `json:"slotTopPx"`
	SlotHeightPx     Fl          `json:"slotHeightPx"`
	SlotMaxHeightPx  Fl          `json:"slotMaxHeightPx"`
	SlotLeftPx       Fl          `json:"slotLeftPx"`
	SlotRightPx      Fl          `json:"slotRightPx"`
	ID               string      `json:"id,omitempty"`
	Role             string      `json:"role"`
}

// HeaderFooterAreas groups the two reserved areas of one page.
type HeaderFooterAreas struct {
	Header HeaderFooterArea `json:"header"`
	Footer HeaderFooterArea `json:"footer"`
}

const (
	roleHeader = "header"
	roleFooter = "footer"
)

// buildHeaderFooterAreas resolves both roles for one page. A nil sections
// value still yields fully populated areas, reserved at the fallback
// margins.
func buildHeaderFooterAreas(sections *HeaderFooterSections, margins Margins) HeaderFooterAreas {
	var header, footer *SectionMeasurement
	if sections != nil {
		header, footer = sections.Header, sections.Footer
	}
	return HeaderFooterAreas{
		Header: buildArea(header, roleHeader, margins),
		Footer: buildArea(footer, roleFooter, margins),
	}
}

// buildArea resolves one role. The reservation rule is
//
//	reserved = max(height, effective, fallbackMargin, 0)
//
// where every input degrades through a first-finite chain. Slot geometry
// differs by role: a footer slot grows upward from the page bottom, a
// header slot downward from the page top.
func buildArea(section *SectionMeasurement, role string, margins Margins) HeaderFooterArea {
	fallbackMargin := margins.Top
	if role == roleFooter {
		fallbackMargin = margins.Bottom
	}

	metrics := UnsetSectionMetrics()
	height := utils.NaN()
	id := ""
	if section != nil {
		metrics = section.Metrics
		height = section.HeightPx
		id = section.ID
	}

	offset := utils.MaxF(utils.FirstFinite(metrics.OffsetPx, metrics.DistancePx, fallbackMargin), 0)
	contentHeight := utils.MaxF(utils.FirstFinite(metrics.ContentHeightPx, 0), 0)
	effective := utils.FirstFinite(metrics.EffectiveHeightPx, height, contentHeight+offset, fallbackMargin)
	heightPx := utils.FirstFinite(height, contentHeight)
	reserved := utils.Maxs(heightPx, effective, fallbackMargin, 0)

	slotHeight := contentHeight
	slotMax := utils.MaxF(reserved-offset, 0)
	var slotTop Fl
	if role == roleFooter {
		slotTop = reserved - offset - slotHeight
	} else {
		slotTop = utils.MinF(offset, reserved)
	}

	return HeaderFooterArea{
		HeightPx:         heightPx,
		ReservedHeightPx: reserved,
		Metrics: AreaMetrics{
			OffsetPx:          offset,
			ContentHeightPx:   contentHeight,
			EffectiveHeightPx: effective,
		},
		SlotTopPx:       slotTop,
		SlotHeightPx:    slotHeight,
		SlotMaxHeightPx: slotMax,
		SlotLeftPx:      margins.Left,
		SlotRightPx:     margins.Right,
		ID:              id,
		Role:            role,
	}
}
