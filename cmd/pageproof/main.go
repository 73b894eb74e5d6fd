// Command pageproof paginates a document snapshot against the flow
// measurer and writes the result as JSON, a PNG preview and/or a PDF
// proof sheet.
//
//	pageproof -in doc.html -json out.json -png out.png -pdf out.pdf
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/harbour-enterprises/pageflow/document"
	"github.com/harbour-enterprises/pageflow/logger"
	"github.com/harbour-enterprises/pageflow/measure"
	"github.com/harbour-enterprises/pageflow/pagination"
	"github.com/harbour-enterprises/pageflow/pdfproof"
	"github.com/harbour-enterprises/pageflow/preview"
)

func main() {
	var (
		in         = flag.String("in", "", "snapshot HTML file (required)")
		jsonOut    = flag.String("json", "", "write the pagination result as JSON")
		pngOut     = flag.String("png", "", "write a stacked page preview PNG")
		pdfOut     = flag.String("pdf", "", "write a PDF proof sheet")
		pageHeight = flag.Float64("page-height", 0, "page height in px (default US Letter)")
		pageWidth  = flag.Float64("page-width", 0, "page width in px (default US Letter)")
		margin     = flag.Float64("margin", 0, "uniform page margin in px (default 96)")
	)
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*in, *jsonOut, *pngOut, *pdfOut, *pageHeight, *pageWidth, *margin); err != nil {
		fmt.Fprintln(os.Stderr, "pageproof:", err)
		os.Exit(1)
	}
}

func run(in, jsonOut, pngOut, pdfOut string, pageHeight, pageWidth, margin float64) error {
	snapshot, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	doc, err := document.Parse(string(snapshot))
	if err != nil {
		return err
	}

	params := &pagination.Params{PageHeightPx: pageHeight, PageWidthPx: pageWidth}
	if margin > 0 {
		params.MarginsPx = &pagination.Margins{Top: margin, Right: margin, Bottom: margin, Left: margin}
	}

	host := measure.NewFlow(doc, measure.Options{})
	res := pagination.GeneratePageBreaks(doc, host, params)
	logger.ProgressLogger.Printf("%d pages", len(res.Pages))

	if jsonOut != "" {
		buf, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(jsonOut, buf, 0o644); err != nil {
			return err
		}
	}
	if pngOut != "" {
		if err := preview.RenderPNG(res, preview.Style{}, pngOut); err != nil {
			return err
		}
	}
	if pdfOut != "" {
		if err := pdfproof.Write(res, pdfproof.Options{Title: in, DrawLabels: true}, pdfOut); err != nil {
			return err
		}
	}
	return nil
}
