package tables

import (
	"fmt"

	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/ocr"
)

// PageRenderer rasterizes a page to an encoded image (PNG/JPEG), for the
// scanned-page OCR fallback. Rasterization is a PDF-rendering concern and
// is deliberately out of scope for this module (§1) just as it is for the
// core pipeline, so PDFPageSource never rasterizes on its own; a caller
// that wants OCR fallback for scanned pages supplies one, typically
// backed by whatever renderer their integration already uses.
type PageRenderer func() ([]byte, error)

// SetRenderer sets the PageRenderer that, alongside AllowOCRFallback, is
// invoked by ExtractPrimitives when a page yields zero native Char primitives.
func (p *PDFPageSource) SetRenderer(r PageRenderer) {
	p.renderer = r
}

// ocrFallback runs the OCR package over a rendered page image and
// synthesizes one Char run per recognized line, spaced evenly across the
// full page width. This is coarser than native glyph positions (the OCR
// client used here returns recognized text only, not per-word boxes) but
// still lets the word-reconstruction and text-assignment stages run
// end-to-end on a scanned page rather than producing no table at all.
func (p *PDFPageSource) ocrFallback() ([]Char, error) {
	if p.renderer == nil {
		return nil, fmt.Errorf("tables: no PageRenderer configured for OCR fallback")
	}
	imageData, err := p.renderer()
	if err != nil {
		return nil, fmt.Errorf("tables: rendering page for OCR: %w", err)
	}

	client, err := ocr.New()
	if err != nil {
		return nil, fmt.Errorf("tables: starting OCR client: %w", err)
	}
	defer client.Close()

	recognized, err := client.RecognizeImage(imageData)
	if err != nil {
		return nil, fmt.Errorf("tables: OCR recognition: %w", err)
	}

	return synthesizeOCRChars(recognized, p.width, p.height), nil
}

// synthesizeOCRChars lays recognized text out as a single top-line run
// spanning the page width; real line breaks in the OCR output become
// stacked runs at evenly spaced baselines, coarse but bounded.
func synthesizeOCRChars(recognized string, pageWidth, pageHeight float64) []Char {
	lines := splitLines(recognized)
	if len(lines) == 0 {
		return nil
	}

	lineHeight := pageHeight / float64(len(lines)+1)
	var chars []Char
	for i, line := range lines {
		runes := []rune(line)
		if len(runes) == 0 {
			continue
		}
		y := pageHeight - lineHeight*float64(i+1)
		charWidth := pageWidth / float64(len(runes)+1)
		for j, r := range runes {
			x := float64(j) * charWidth
			chars = append(chars, Char{
				Rune:     r,
				Valid:    true,
				BBox:     model.BBox{X: x, Y: y, Width: charWidth, Height: lineHeight * 0.8},
				Rotation: 0,
				Upright:  true,
			})
		}
	}
	return chars
}

func splitLines(s string) []string {
	var lines []string
	var cur []rune
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, string(cur))
			cur = nil
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
