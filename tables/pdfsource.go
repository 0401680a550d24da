package tables

import (
	"fmt"

	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/font"
	"github.com/tsawler/tabula/graphicsstate"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/pages"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/text"
)

// PDFPageSource binds PageSource to this module's own PDF stack
// (reader/pages/graphicsstate/text/font), the only production
// implementation; tests use small struct-literal fakes instead.
//
// Text extraction here is word-fragment level, not true per-glyph: each
// text.TextFragment's characters are distributed across the fragment's
// width proportionally to each rune's advance width (via font.Font.GetWidth
// when a font was registered, falling back to equal spacing otherwise).
// Rotation defaults to 0 and Upright to true, since the text extractor
// does not expose per-glyph rotation; this is a deliberate simplification
// of the PageSource contract's general Char.Rotation field, acceptable
// because the table-finding pipeline's rotation handling only matters for
// rotated text runs, which this adapter does not yet encounter in
// practice for the upright-page PDFs it targets.
type PDFPageSource struct {
	reader *reader.Reader
	page   *pages.Page

	width, height float64
	state         PageState

	chars []Char
	lines []LinePath
	rects []RectPrim

	// AllowOCRFallback enables scanned-page text recovery: when a page has
	// zero native Char primitives, ExtractPrimitives calls the renderer set
	// with SetRenderer and runs the OCR package over the image. Without a
	// renderer, or when OCR fails, the page keeps an empty Char slice.
	AllowOCRFallback bool

	renderer PageRenderer
}

// NewPDFPageSource builds a PageSource over one page of an already-open
// reader, in the PageLoaded state. Call ExtractPrimitives before handing
// it to the table-finding pipeline.
func NewPDFPageSource(r *reader.Reader, page *pages.Page) (*PDFPageSource, error) {
	w, err := page.Width()
	if err != nil {
		return nil, fmt.Errorf("tables: reading page width: %w", err)
	}
	h, err := page.Height()
	if err != nil {
		return nil, fmt.Errorf("tables: reading page height: %w", err)
	}
	return &PDFPageSource{
		reader: r,
		page:   page,
		width:  w,
		height: h,
		state:  PageLoaded,
	}, nil
}

// State reports the PageSource lifecycle state (Stateful interface).
func (p *PDFPageSource) State() PageState { return p.state }

// Width returns the page width in points.
func (p *PDFPageSource) Width() float64 { return p.width }

// Height returns the page height in points.
func (p *PDFPageSource) Height() float64 { return p.height }

// IsValid reports false once the page has been released.
func (p *PDFPageSource) IsValid() bool { return p.state != PageCleared }

// Chars returns the cached per-rune primitives; call ExtractPrimitives first.
func (p *PDFPageSource) Chars() ([]Char, error) {
	if p.state == PageCleared {
		return nil, newPageStateError("page has been cleared")
	}
	return p.chars, nil
}

// Lines returns the cached line-path primitives.
func (p *PDFPageSource) Lines() ([]LinePath, error) {
	if p.state == PageCleared {
		return nil, newPageStateError("page has been cleared")
	}
	return p.lines, nil
}

// Rects returns the cached rectangle primitives.
func (p *PDFPageSource) Rects() ([]RectPrim, error) {
	if p.state == PageCleared {
		return nil, newPageStateError("page has been cleared")
	}
	return p.rects, nil
}

// Clear releases this page's cached primitives and moves it to the
// terminal PageCleared state.
func (p *PDFPageSource) Clear() {
	p.chars = nil
	p.lines = nil
	p.rects = nil
	p.state = PageCleared
}

// ExtractPrimitives decodes this page's content stream once, populating
// chars/lines/rects and advancing the state machine to
// PagePrimitivesExtracted (§9's unloaded->loaded->extracted->cleared).
func (p *PDFPageSource) ExtractPrimitives() error {
	if p.state == PageCleared {
		return newPageStateError("cannot re-extract a cleared page")
	}

	data, err := p.decodeContents()
	if err != nil {
		return err
	}

	if err := p.extractGraphics(data); err != nil {
		return err
	}
	if err := p.extractChars(data); err != nil {
		return err
	}

	if len(p.chars) == 0 && p.AllowOCRFallback {
		// A scanned page has no extractable glyphs; the OCR fallback is a
		// bounded, opt-in path and is wired separately (see ocrfallback.go)
		// so the core adapter stays usable without the OCR dependency.
		words, ocrErr := p.ocrFallback()
		if ocrErr == nil {
			p.chars = words
		}
	}

	p.state = PagePrimitivesExtracted
	return nil
}

func (p *PDFPageSource) decodeContents() ([]byte, error) {
	contents, err := p.page.Contents()
	if err != nil {
		return nil, fmt.Errorf("tables: reading page contents: %w", err)
	}
	var data []byte
	for _, obj := range contents {
		stream, ok := obj.(*core.Stream)
		if !ok {
			continue
		}
		decoded, err := stream.Decode()
		if err != nil {
			return nil, fmt.Errorf("tables: decoding content stream: %w", err)
		}
		data = append(data, decoded...)
	}
	return data, nil
}

func (p *PDFPageSource) extractGraphics(data []byte) error {
	ge := graphicsstate.NewGraphicsExtractor()
	if err := ge.ExtractFromBytes(data); err != nil {
		return fmt.Errorf("tables: extracting graphics: %w", err)
	}

	for _, l := range ge.GetLines() {
		if !isFiniteBBox(l.BBox) {
			continue
		}
		p.lines = append(p.lines, LinePath{
			Points: []PathPoint{{Point: l.Start}, {Point: l.End}},
			Width:  l.Width,
			Color:  l.Color,
		})
	}
	for _, r := range ge.GetRectangles() {
		if !isFiniteBBox(r.BBox) {
			continue
		}
		p.rects = append(p.rects, RectPrim{
			BBox:        r.BBox,
			FillColor:   r.FillColor,
			StrokeColor: r.StrokeColor,
			StrokeWidth: r.StrokeWidth,
			Filled:      r.IsFilled,
			Stroked:     r.IsStroked,
		})
	}
	return nil
}

func (p *PDFPageSource) extractChars(data []byte) error {
	ex := text.NewExtractor()
	resolver := func(ref core.IndirectRef) (core.Object, error) {
		return p.reader.ResolveReference(ref)
	}
	_ = ex.RegisterFontsFromPage(p.page, resolver) // best effort; fall back to estimated widths

	fragments, err := ex.ExtractFromBytes(data)
	if err != nil {
		return fmt.Errorf("tables: extracting text: %w", err)
	}

	fonts := ex.GetFonts()
	for _, f := range fragments {
		p.chars = append(p.chars, synthesizeChars(f, fonts[f.FontName])...)
	}
	return nil
}

// synthesizeChars distributes a word-level fragment's runes across its
// bbox proportionally to each rune's advance width, since the text
// extractor reports fragments rather than individual glyph positions.
func synthesizeChars(f text.TextFragment, fnt *font.Font) []Char {
	runes := []rune(f.Text)
	if len(runes) == 0 {
		return nil
	}

	widths := make([]float64, len(runes))
	total := 0.0
	for i, r := range runes {
		w := 1.0
		if fnt != nil {
			if gw := fnt.GetWidth(r); gw > 0 {
				w = gw
			}
		}
		widths[i] = w
		total += w
	}
	if total <= 0 {
		total = float64(len(runes))
		for i := range widths {
			widths[i] = 1.0
		}
	}

	chars := make([]Char, 0, len(runes))
	cursor := f.X
	for i, r := range runes {
		share := widths[i] / total * f.Width
		bbox := model.BBox{X: cursor, Y: f.Y, Width: share, Height: f.Height}
		if isFiniteBBox(bbox) {
			chars = append(chars, Char{
				Rune:     r,
				Valid:    true,
				BBox:     bbox,
				Rotation: 0,
				Upright:  true,
			})
		}
		cursor += share
	}
	return chars
}
