// Package tables provides table detection and extraction from PDF pages.
//
// This package implements algorithms for detecting tabular data in PDFs,
// even when tables lack explicit gridlines.
//
// # Detectors
//
// Table detection is performed by types implementing the [Detector] interface.
// The package registers one implementation, [PreciseDetector], which uses
// the edge/intersection/cell pipeline described below. Its Detect method
// returns an error for a bare [model.Page], which carries no raw geometry;
// [PreciseDetector.DetectFromSource] takes a [PageSource] instead:
//
//	detector := tables.NewPreciseDetector()
//	found, err := detector.DetectFromSource(ctx, source, true)
//
// # Configuration
//
// Detector behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.MinRows = 3
//	config.AlignmentTolerance = 3.0
//	detector.Configure(config)
//
// Configuration options include:
//
//   - MinRows, MinCols - minimum table dimensions
//   - UseLines - whether to use drawn lines (vs. aligned text runs) for detection
//   - AlignmentTolerance - tolerance for row/column alignment
//
// # Precise Detection
//
// [PreciseDetector] wraps a separate, lower-level pipeline that works
// directly from a page's drawn lines, filled rectangles, and characters
// ([PageSource]) rather than from already-extracted text fragments:
//
//  1. Derive raw horizontal/vertical edges from lines and rects ([GetEdges])
//  2. Optionally synthesize pseudo-edges from aligned runs of word text,
//     for borderless tables (the [StrategyText] strategy)
//  3. Snap near-identical edges together and join collinear segments
//  4. Enumerate minimal rectangular cells from edge intersections
//     ([FindAllCellsBboxes]), using an R-tree spatial index
//  5. Group adjacent cells that share a full edge into tables
//     ([FindTablesFromCells]), deriving row/column bands by interval overlap
//  6. Optionally assign each cell the text whose bounding-box center falls
//     within it
//
// [FindTables] runs the whole pipeline; [PreciseDetector.DetectFromSource]
// adapts its result into the shared [model.Table] shape used by the rest
// of this module. [FindTablesInDocument] (in the root package) runs it over
// every page of a document concurrently.
//
// Behavior is controlled by [TfSettings], built via [NewTfSettings] and its
// functional options; [Config] maps onto a subset of it, and TfSettings adds a
// richer set of knobs (independent strategies and tolerances per axis,
// minimum edge length, minimum aligned-word count for text-based edges).
package tables
