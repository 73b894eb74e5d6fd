package pagination

import (
	"testing"

	"github.com/harbour-enterprises/pageflow/utils"
	tu "github.com/harbour-enterprises/pageflow/utils/testutils"
)

var testMargins = Margins{Top: 96, Right: 96, Bottom: 96, Left: 96}

func TestBuildAreaEmpty(t *testing.T) {
	// no section at all: the reservation is still the fallback margin
	areas := buildHeaderFooterAreas(nil, testMargins)
	tu.AssertEqual(t, areas.Header.ReservedHeightPx, 96.0)
	tu.AssertEqual(t, areas.Header.Role, "header")
	tu.AssertEqual(t, areas.Footer.ReservedHeightPx, 96.0)
	tu.AssertEqual(t, areas.Footer.Role, "footer")
	tu.AssertEqual(t, areas.Header.Metrics.ContentHeightPx, 0.0)
	tu.AssertEqual(t, areas.Header.Metrics.OffsetPx, 96.0)
}

func TestBuildAreaHeaderSlot(t *testing.T) {
	m := UnsetSectionMetrics()
	m.OffsetPx = 30
	m.ContentHeightPx = 40
	areas := buildHeaderFooterAreas(&HeaderFooterSections{
		Header: &SectionMeasurement{ID: "h1", Metrics: m, HeightPx: utils.NaN()},
	}, testMargins)

	h := areas.Header
	tu.AssertEqual(t, h.ID, "h1")
	tu.AssertEqual(t, h.Metrics.EffectiveHeightPx, 70.0)
	tu.AssertEqual(t, h.HeightPx, 40.0)
	// reserved >= max(content+offset, fallback margin)
	tu.AssertEqual(t, h.ReservedHeightPx, 96.0)
	// the header slot grows downward from the page top
	tu.AssertEqual(t, h.SlotTopPx, 30.0)
	tu.AssertEqual(t, h.SlotHeightPx, 40.0)
	tu.AssertEqual(t, h.SlotMaxHeightPx, 66.0)
	tu.AssertEqual(t, h.SlotLeftPx, 96.0)
}

func TestBuildAreaFooterSlot(t *testing.T) {
	m := UnsetSectionMetrics()
	m.OffsetPx = 30
	m.ContentHeightPx = 40
	areas := buildHeaderFooterAreas(&HeaderFooterSections{
		Footer: &SectionMeasurement{Metrics: m, HeightPx: utils.NaN()},
	}, testMargins)

	f := areas.Footer
	// the footer slot grows upward from the page bottom
	tu.AssertEqual(t, f.ReservedHeightPx, 96.0)
	tu.AssertEqual(t, f.SlotTopPx, 96-30-40.0)
	tu.AssertEqual(t, f.SlotHeightPx, 40.0)
}

func TestBuildAreaTallSection(t *testing.T) {
	m := UnsetSectionMetrics()
	m.ContentHeightPx = 150
	areas := buildHeaderFooterAreas(&HeaderFooterSections{
		Header: &SectionMeasurement{Metrics: m, HeightPx: utils.NaN()},
	}, testMargins)
	// content + offset beats the fallback margin
	tu.AssertEqual(t, areas.Header.Metrics.OffsetPx, 96.0)
	tu.AssertEqual(t, areas.Header.Metrics.EffectiveHeightPx, 246.0)
	tu.AssertEqual(t, areas.Header.ReservedHeightPx, 246.0)
}

func TestBuildAreaDistanceAlias(t *testing.T) {
	m := UnsetSectionMetrics()
	m.DistancePx = 12
	areas := buildHeaderFooterAreas(&HeaderFooterSections{
		Header: &SectionMeasurement{Metrics: m, HeightPx: utils.NaN()},
	}, testMargins)
	tu.AssertEqual(t, areas.Header.Metrics.OffsetPx, 12.0)
}

func TestBuildAreaExplicitHeight(t *testing.T) {
	areas := buildHeaderFooterAreas(&HeaderFooterSections{
		Footer: &SectionMeasurement{Metrics: UnsetSectionMetrics(), HeightPx: 120},
	}, testMargins)
	tu.AssertEqual(t, areas.Footer.HeightPx, 120.0)
	tu.AssertEqual(t, areas.Footer.ReservedHeightPx, 120.0)
}

func TestBuildAreaNegativeOffset(t *testing.T) {
	m := UnsetSectionMetrics()
	m.OffsetPx = -50
	areas := buildHeaderFooterAreas(&HeaderFooterSections{
		Header: &SectionMeasurement{Metrics: m, HeightPx: utils.NaN()},
	}, testMargins)
	// offsets never go negative
	tu.AssertEqual(t, areas.Header.Metrics.OffsetPx, 0.0)
}
