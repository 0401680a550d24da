package tables

import (
	"math"

	"github.com/tsawler/tabula/model"
)

// axisEpsilon is the sub-point tolerance used to classify a line segment
// as horizontal or vertical (4.B); anything outside this is a diagonal
// and is dropped, per spec. This is tighter than the 0.5-point
// AngleTolerance that graphicsstate.PathExtractor uses for its own
// horizontal/vertical classification.
const axisEpsilon = 0.1

// Char is one unicode scalar positioned on the page (4.A), the atomic
// input to word reconstruction (4.C).
type Char struct {
	// Rune is the decoded scalar value; Valid is false for unmapped glyphs.
	Rune  rune
	Valid bool

	BBox model.BBox

	// Rotation in degrees; typically one of 0, 90, 180, 270, but arbitrary
	// values are allowed and fall back to the 0-degree bucket for sorting.
	Rotation float64

	// Upright mirrors the PDF "upright" flag a renderer would report for this glyph.
	Upright bool
}

// PathPoint is one vertex of a LinePath, with a flag distinguishing a
// straight segment (drawn with l/re) from one reached by a curve (c/v/y).
type PathPoint struct {
	Point  model.Point
	Curved bool
}

// LinePath is a sequence of points forming one subpath from the content
// stream. Only straight segments contribute to edges (4.B).
type LinePath struct {
	Points []PathPoint
	Width  float64
	Color  [3]float64
}

// RectPrim is a rectangle primitive with independent fill/stroke state
// (4.A/4.B): a rect with non-transparent stroke contributes four border
// edges; fill-only rects contribute under the `lines` strategy only.
type RectPrim struct {
	BBox        model.BBox
	FillColor   [3]float64
	StrokeColor [3]float64
	StrokeWidth float64
	Filled      bool
	Stroked     bool
}

// Orientation classifies an Edge or Intersection member along an axis.
type Orientation int

const (
	// Horizontal edges have a constant Y coordinate.
	Horizontal Orientation = iota
	// Vertical edges have a constant X coordinate.
	Vertical
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// edgeSource distinguishes edges derived from drawn primitives (4.B) from
// pseudo-edges synthesized from word alignment (4.D); purely informational,
// it does not affect downstream behavior.
type edgeSource int

const (
	sourceDrawn edgeSource = iota
	sourceText
)

// Edge is an axis-aligned line segment: a table-border candidate.
// Invariant: a Horizontal edge has Y0 == Y1; a Vertical edge has X0 == X1.
type Edge struct {
	Orientation Orientation
	X0, Y0      float64
	X1, Y1      float64
	Width       float64
	Color       [3]float64

	source edgeSource
}

// Length returns |X1-X0| for a horizontal edge, |Y1-Y0| for a vertical one.
func (e Edge) Length() float64 {
	if e.Orientation == Horizontal {
		return math.Abs(e.X1 - e.X0)
	}
	return math.Abs(e.Y1 - e.Y0)
}

// constCoord returns the off-axis coordinate that must be equal on both
// endpoints: Y for a horizontal edge, X for a vertical one.
func (e Edge) constCoord() float64 {
	if e.Orientation == Horizontal {
		return e.Y0
	}
	return e.X0
}

// axisStart and axisEnd return the coordinates along the edge's own
// length axis (X for horizontal, Y for vertical), start <= end.
func (e Edge) axisStart() float64 {
	if e.Orientation == Horizontal {
		return math.Min(e.X0, e.X1)
	}
	return math.Min(e.Y0, e.Y1)
}

func (e Edge) axisEnd() float64 {
	if e.Orientation == Horizontal {
		return math.Max(e.X0, e.X1)
	}
	return math.Max(e.Y0, e.Y1)
}

func newHEdge(x0, x1, y, width float64, color [3]float64, src edgeSource) Edge {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	return Edge{Orientation: Horizontal, X0: x0, Y0: y, X1: x1, Y1: y, Width: width, Color: color, source: src}
}

func newVEdge(y0, y1, x, width float64, color [3]float64, src edgeSource) Edge {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Edge{Orientation: Vertical, X0: x, Y0: y0, X1: x, Y1: y1, Width: width, Color: color, source: src}
}

// Intersection is a point where exactly one H-edge and one V-edge meet
// within axis tolerances (4.F).
type Intersection struct {
	Point model.Point
	H     Edge
	V     Edge
}

// PageState models the lifecycle of the one stateful collaborator the
// core observes (§9): transitions are irreversible within one call.
type PageState int

const (
	PageUnloaded PageState = iota
	PageLoaded
	PagePrimitivesExtracted
	PageCleared
)

func (s PageState) String() string {
	switch s {
	case PageUnloaded:
		return "unloaded"
	case PageLoaded:
		return "loaded"
	case PagePrimitivesExtracted:
		return "primitives-extracted"
	case PageCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// PageSource is the abstract capability the core pipeline consumes (§6.1).
// Implementations are borrowed for the duration of one call; sequences
// may be iterated at most once per call.
type PageSource interface {
	Width() float64
	Height() float64
	Chars() ([]Char, error)
	Lines() ([]LinePath, error)
	Rects() ([]RectPrim, error)
	// IsValid reports false once the page has been released by the host.
	IsValid() bool
}

// Stateful is implemented by a PageSource that tracks the lifecycle state
// machine from §9; FindTables checks it when present and fails with
// InvalidPageState if the page is not yet primitives-extracted.
type Stateful interface {
	State() PageState
}

func requirePrimitivesExtracted(page PageSource) error {
	if page == nil {
		return nil
	}
	if !page.IsValid() {
		return newPageStateError("page has been released by its host")
	}
	if sp, ok := page.(Stateful); ok {
		if sp.State() != PagePrimitivesExtracted {
			return newPageStateError("page must be in primitives-extracted state, got " + sp.State().String())
		}
	}
	return nil
}

// isFiniteBBox reports whether every coordinate of b is finite, rejecting
// NaN/Inf primitives at ingest (4.A).
func isFiniteBBox(b model.BBox) bool {
	return isFinite(b.X) && isFinite(b.Y) && isFinite(b.Width) && isFinite(b.Height)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
