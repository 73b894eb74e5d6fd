// Package pdfproof exports a paginated result as a PDF proof sheet:
// one PDF page per page entry, with the margins, header/footer
// reservations and the fitted content extent drawn as guides. The proof
// lets print geometry be checked without rendering any document content.
package pdfproof

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/harbour-enterprises/pageflow/pagination"
	"github.com/harbour-enterprises/pageflow/utils"
)

type Fl = utils.Fl

// pxToPt converts result pixels (dpi 96) to PDF points (dpi 72).
func pxToPt(px Fl) float64 {
	return px * 72 / 96
}

// Options configure the proof export.
type Options struct {
	Title string
	// DrawLabels toggles the page-number and metric labels.
	DrawLabels bool
}

// Write exports res to path.
func Write(res pagination.Result, opts Options, path string) error {
	if len(res.Pages) == 0 {
		return fmt.Errorf("pdfproof: empty page set")
	}

	first := res.Pages[0].Metrics
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: pxToPt(first.PageWidthPx), Ht: pxToPt(first.PageHeightPx)},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(opts.Title, true)
	pdf.SetFont("Helvetica", "", 9)

	for i := range res.Pages {
		drawPage(pdf, &res.Pages[i], opts)
	}
	return pdf.OutputFileAndClose(path)
}

func drawPage(pdf *fpdf.Fpdf, p *pagination.PageEntry, opts Options) {
	m := p.Metrics
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: pxToPt(m.PageWidthPx), Ht: pxToPt(m.PageHeightPx)})

	w, h := pxToPt(m.PageWidthPx), pxToPt(m.PageHeightPx)

	// margin frame
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.5)
	pdf.Rect(pxToPt(m.MarginLeftPx), pxToPt(m.MarginTopPx),
		pxToPt(m.ContentWidthPx), pxToPt(m.ContentHeightPx), "D")

	// header and footer reservations
	pdf.SetFillColor(245, 232, 200)
	if hh := pxToPt(m.HeaderHeightPx); hh > 0 {
		pdf.Rect(0, 0, w, hh, "F")
	}
	if fh := pxToPt(m.FooterHeightPx); fh > 0 {
		pdf.Rect(0, h-fh, w, fh, "F")
	}

	// fitted content extent
	fitted := p.Break.FittedBottom - p.Break.StartOffsetPx
	if fitted > 0 {
		pdf.SetFillColor(222, 232, 248)
		pdf.Rect(pxToPt(m.MarginLeftPx), pxToPt(m.MarginTopPx),
			pxToPt(m.ContentWidthPx), pxToPt(fitted), "F")
	}

	if opts.DrawLabels {
		pdf.SetTextColor(90, 90, 90)
		label := fmt.Sprintf("page %d  break@%d  %gx%g px", p.PageIndex+1, p.Break.Pos,
			m.PageWidthPx, m.PageHeightPx)
		pdf.Text(pxToPt(m.MarginLeftPx), h-pxToPt(m.FooterHeightPx)/2, label)
	}
}
