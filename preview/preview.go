// Package preview paints a paginated result as stacked page previews.
//
// It consumes only the renderer contract of pagination.Result: each
// page's metrics, contentArea, headerFooterAreas and spacingSegments.
// The output is a proof image, not a document rendering: content is
// suggested by hatching the fitted flow range.
package preview

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/harbour-enterprises/pageflow/pagination"
	"github.com/harbour-enterprises/pageflow/utils"
)

type Fl = utils.Fl

// Style collects the preview colors. Zero value means the default style.
type Style struct {
	// Scale maps result pixels to image pixels. Defaults to 0.5.
	Scale Fl
	// MarginPx is the blank border around the stacked previews.
	// Defaults to 16.
	MarginPx Fl
}

func (s Style) withDefaults() Style {
	if s.Scale <= 0 {
		s.Scale = 0.5
	}
	if s.MarginPx <= 0 {
		s.MarginPx = 16
	}
	return s
}

// Render paints every page of res stacked vertically, separated by the
// page gap, and returns the image.
func Render(res pagination.Result, style Style) image.Image {
	style = style.withDefaults()
	w, h := canvasSize(res, style)
	dc := gg.NewContext(w, h)
	dc.SetRGB(0.93, 0.93, 0.93) // desk background
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for i := range res.Pages {
		drawPage(dc, &res.Pages[i], style)
	}
	return dc.Image()
}

// RenderPNG paints res and writes it to path.
func RenderPNG(res pagination.Result, style Style, path string) error {
	img := Render(res, style)
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("preview: saving %s: %s", path, err)
	}
	return nil
}

func canvasSize(res pagination.Result, style Style) (int, int) {
	width, bottom := Fl(0), Fl(0)
	for _, p := range res.Pages {
		width = utils.MaxF(width, p.Metrics.PageWidthPx)
		bottom = utils.MaxF(bottom, p.PageTopOffsetPx+p.Metrics.PageHeightPx)
	}
	w := int((width*style.Scale + 2*style.MarginPx) + 0.5)
	h := int((bottom*style.Scale + 2*style.MarginPx) + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func drawPage(dc *gg.Context, p *pagination.PageEntry, style Style) {
	s := style.Scale
	x := style.MarginPx
	y := style.MarginPx + p.PageTopOffsetPx*s
	pw := p.Metrics.PageWidthPx * s
	ph := p.Metrics.PageHeightPx * s

	// page box
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(x, y, pw, ph)
	dc.Fill()
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, pw, ph)
	dc.Stroke()

	// header and footer reservations
	drawReservedArea(dc, p.HeaderFooterAreas.Header, x, y, pw, ph, s)
	drawReservedArea(dc, p.HeaderFooterAreas.Footer, x, y, pw, ph, s)

	// content extent: the fitted flow range mapped into the page box
	fitted := p.Break.FittedBottom - p.Break.StartOffsetPx
	if fitted > 0 {
		cx := x + p.Metrics.MarginLeftPx*s
		cy := y + p.Metrics.MarginTopPx*s
		cw := p.Metrics.ContentWidthPx * s
		ch := fitted * s
		dc.SetRGBA(0.2, 0.4, 0.8, 0.15)
		dc.DrawRectangle(cx, cy, cw, ch)
		dc.Fill()
	}

	// page number label
	dc.SetRGB(0.3, 0.3, 0.3)
	label := fmt.Sprintf("page %d", p.PageIndex+1)
	dc.DrawStringAnchored(label, x+pw/2, y+ph-8, 0.5, 0.5)

	// spacing segments: the visual gap drawn after the page
	for range p.SpacingSegments {
		dc.SetRGBA(0, 0, 0, 0.08)
		dc.DrawRectangle(x, y+ph, pw, p.PageGapPx*s)
		dc.Fill()
	}
}

func drawReservedArea(dc *gg.Context, area pagination.HeaderFooterArea, x, y, pw, ph, s Fl) {
	h := area.ReservedHeightPx * s
	if h <= 0 {
		return
	}
	ay := y
	if area.Role == "footer" {
		ay = y + ph - h
	}
	dc.SetRGBA(0.8, 0.6, 0.2, 0.12)
	dc.DrawRectangle(x, ay, pw, h)
	dc.Fill()

	// slot outline inside the reservation
	slotY := ay + area.SlotTopPx*s
	slotH := area.SlotHeightPx * s
	if slotH > 0 {
		dc.SetRGBA(0.8, 0.6, 0.2, 0.5)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x+area.SlotLeftPx*s, slotY, pw-(area.SlotLeftPx+area.SlotRightPx)*s, slotH)
		dc.Stroke()
	}
}
