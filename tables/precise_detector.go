package tables

import (
	"context"
	"fmt"

	"github.com/tsawler/tabula/model"
)

// PreciseDetector wraps the geometry-pipeline table finder (4.A-4.H) as
// a Detector, the only detector implementation this package registers.
type PreciseDetector struct {
	settings TfSettings
}

// NewPreciseDetector builds a PreciseDetector with the spec's default settings.
func NewPreciseDetector() *PreciseDetector {
	return &PreciseDetector{settings: DefaultTfSettings()}
}

// Name identifies this detector in the registry.
func (d *PreciseDetector) Name() string {
	return "precise"
}

// Configure maps the shared Config knobs onto TfSettings.
func (d *PreciseDetector) Configure(cfg Config) error {
	s := d.settings
	if cfg.MinRows > 0 {
		s.MinRows = &cfg.MinRows
	}
	if cfg.MinCols > 0 {
		s.MinColumns = &cfg.MinCols
	}
	s.SnapXTolerance = cfg.AlignmentTolerance
	s.SnapYTolerance = cfg.AlignmentTolerance
	if !cfg.UseLines {
		s.VerticalStrategy = StrategyText
		s.HorizontalStrategy = StrategyText
	}
	if err := s.validate(); err != nil {
		return newSettingsError("detector config", err)
	}
	d.settings = s
	return nil
}

// Detect requires page to be a Stateful PDFPageSource-backed page; plain
// model.Page values (which carry no raw primitives) are not supported by
// this detector, since its pipeline works from drawn lines, rects, and
// chars rather than already-extracted text fragments.
func (d *PreciseDetector) Detect(page *model.Page) ([]*model.Table, error) {
	return nil, fmt.Errorf("tables: PreciseDetector requires a tables.PageSource (use tables.FindTables directly, or FindTablesInDocument for the model.Page-based entry point); got a bare model.Page with no raw geometry")
}

// DetectFromSource runs the full precise pipeline over an explicit
// PageSource and converts the result into model.Table, for callers that
// do have raw primitives available (the Detector interface itself is
// keyed to model.Page, which does not carry them).
func (d *PreciseDetector) DetectFromSource(ctx context.Context, page PageSource, extractText bool) ([]*model.Table, error) {
	found, err := FindTables(ctx, page, extractText, d.settings)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Table, len(found))
	for i, t := range found {
		out[i] = toModelTable(t)
	}
	return out, nil
}

// toModelTable renders a precise-pipeline Table into the row-major
// model.Table shape the rest of this module's export/RAG formatters
// already understand.
func toModelTable(t Table) *model.Table {
	grid := model.NewTable(len(t.Rows), len(t.Columns))
	grid.BBox = t.BBox
	grid.HasGrid = true
	grid.Confidence = 1.0

	for ri, row := range t.Rows {
		for ci, cell := range row.Cells {
			if cell == nil {
				continue
			}
			_ = grid.SetCell(ri, ci, model.Cell{Text: cell.Text, BBox: cell.BBox})
		}
	}
	return grid
}

func init() {
	RegisterDetector(NewPreciseDetector())
}
