package geometry

import (
	"math"
	"testing"

	tu "github.com/harbour-enterprises/pageflow/utils/testutils"
)

func TestFallbackRect(t *testing.T) {
	got := FallbackRect(ElementMetrics{
		OffsetTop: 5, OffsetLeft: 10, OffsetWidth: 20, OffsetHeight: 30,
	})
	tu.AssertEqual(t, got, Rect{Top: 5, Bottom: 35, Left: 10, Right: 30, Width: 20, Height: 30})
}

func TestFallbackRectNonFinite(t *testing.T) {
	got := FallbackRect(ElementMetrics{
		OffsetTop: math.NaN(), OffsetLeft: 10, OffsetWidth: math.Inf(1), OffsetHeight: 30,
	})
	tu.AssertEqual(t, got, Rect{Top: 0, Bottom: 30, Left: 10, Right: 10, Width: 0, Height: 30})
}

func TestFromEdges(t *testing.T) {
	got := FromEdges(10, 20, 50, 120)
	tu.AssertEqual(t, got, Rect{Top: 10, Bottom: 50, Left: 20, Right: 120, Width: 100, Height: 40})
}
