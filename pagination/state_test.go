package pagination

import (
	"testing"

	"github.com/harbour-enterprises/pageflow/document"
	"github.com/harbour-enterprises/pageflow/measure"
	"github.com/harbour-enterprises/pageflow/utils"
	tu "github.com/harbour-enterprises/pageflow/utils/testutils"
)

func TestNextVisualTop(t *testing.T) {
	tu.AssertEqual(t, nextVisualTop(100, 600, 20), 720.0)
	tu.AssertEqual(t, nextVisualTop(0, 600, 20), 620.0)
	// a non finite top counts as 0
	tu.AssertEqual(t, nextVisualTop(utils.NaN(), 600, 20), 620.0)
	tu.AssertEqual(t, nextVisualTop(100, utils.NaN(), utils.NaN()), 100.0)
}

func newTestState(t *testing.T, snapshot string, params *Params) *state {
	t.Helper()
	doc, err := document.Parse(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	host := measure.NewFlow(doc, measure.Options{})
	surface, err := host.ResolveElementRect(doc.Root)
	if err != nil {
		t.Fatal(err)
	}
	return newState(doc, host, surface, resolveParams(params))
}

func TestRecordBreak(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	// margins 96 + 96 on a 572px page leave 380px of usable height
	st := newTestState(t, `<p data-height="500">content</p>`, &Params{PageHeightPx: 572})
	st.layout = resolvePageLayoutForIndex(0, false, st.params)
	st.openPage()
	tu.AssertEqual(t, st.layout.usableHeightPx, 380.0)

	st.recordBreak(300, 300, 42, 300, 280)

	tu.AssertEqual(t, st.pages[0].Break.Pos, 42)
	tu.AssertEqual(t, st.pages[0].Break.Top, 280.0)
	tu.AssertEqual(t, st.pages[0].Break.Bottom, 300.0)
	tu.AssertEqual(t, st.pages[0].Break.FittedTop, 300.0)
	tu.AssertEqual(t, st.pages[0].Break.FittedBottom, 300.0)
	tu.AssertEqual(t, *st.pages[0].Break.BreakY, 300.0)

	tu.AssertEqual(t, st.pageIndex, 1)
	tu.AssertEqual(t, len(st.pages), 2)
	tu.AssertEqual(t, st.pageStart, 300.0)
	tu.AssertEqual(t, st.lastBreakPos, 42)

	// the new entry is built from the next-resolved layout
	tu.AssertEqual(t, st.pages[1].Metrics.PageHeightPx, 572.0)
	tu.AssertEqual(t, st.pages[1].Metrics.PageGapPx, DefaultPageGapPx)
	tu.AssertEqual(t, st.pages[1].Break.StartOffsetPx, 300.0)
	tu.AssertEqual(t, st.pages[1].ContentArea.StartPx, 300.0)
}

func TestRecordBreakClamping(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	st := newTestState(t, `<p data-height="500">content</p>`, &Params{PageHeightPx: 572})
	st.layout = resolvePageLayoutForIndex(0, false, st.params)
	st.openPage()

	// out of range coordinates are clamped to the content boundary
	st.recordBreak(-50, 9999, 7, 9999, utils.NaN())
	tu.AssertEqual(t, st.pages[0].Break.FittedTop, 0.0)
	tu.AssertEqual(t, st.pages[0].Break.FittedBottom, 380.0)
	// with no fitted edge, top falls back to the clamped break top
	tu.AssertEqual(t, st.pages[0].Break.Top, 0.0)
	// the raw break Y survives unclamped for spacing derivation
	tu.AssertEqual(t, *st.pages[0].Break.BreakY, 9999.0)
}

func TestVisualStacking(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	st := newTestState(t, `<p data-height="500">content</p>`, &Params{PageHeightPx: 572, PageGapPx: 20})
	st.layout = resolvePageLayoutForIndex(0, false, st.params)
	st.openPage()
	st.recordBreak(300, 300, 42, 300, 280)
	st.recordBreak(500, 500, 43, 500, 480)

	tu.AssertEqual(t, st.pages[0].PageTopOffsetPx, 0.0)
	tu.AssertEqual(t, st.pages[1].PageTopOffsetPx, 592.0)
	tu.AssertEqual(t, st.pages[2].PageTopOffsetPx, 1184.0)
}

func TestResolveParamsDefaults(t *testing.T) {
	p := resolveParams(nil)
	tu.AssertEqual(t, p.pageHeightPx, DefaultPageHeightPx)
	tu.AssertEqual(t, p.pageWidthPx, DefaultPageWidthPx)
	tu.AssertEqual(t, p.margins, Margins{Top: 96, Right: 96, Bottom: 96, Left: 96})

	p = resolveParams(&Params{PageHeightPx: -5, PageWidthPx: utils.NaN()})
	tu.AssertEqual(t, p.pageHeightPx, DefaultPageHeightPx)
	tu.AssertEqual(t, p.pageWidthPx, DefaultPageWidthPx)

	p = resolveParams(&Params{MarginsPx: &Margins{Top: 10, Right: utils.NaN(), Bottom: 20, Left: 30}})
	tu.AssertEqual(t, p.margins, Margins{Top: 10, Right: 96, Bottom: 20, Left: 30})
}
