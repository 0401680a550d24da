package tables

import (
	"sort"

	"github.com/tidwall/rtree"
	"github.com/tsawler/tabula/model"
)

// computeIntersections implements 4.F's first step: an H-edge h
// intersects a V-edge v iff v.x lies within [h.x0-εx, h.x1+εx] and h.y
// lies within [v.y0-εy, v.y1+εy]. Each Intersection buckets its H and V
// member by that member's own orientation (the reference pushes the
// vertical edge into both buckets; this is not replicated, see DESIGN.md).
//
// V-edges are indexed in an R-tree so a page with many edges doesn't pay
// an O(len(h)*len(v)) scan; the candidate set per H-edge is bounded by
// its own horizontal span expanded by the intersection tolerance.
func computeIntersections(hEdges, vEdges []Edge, xTol, yTol float64) []Intersection {
	tr := &rtree.RTree{}
	for i, v := range vEdges {
		min := [2]float64{v.X0 - xTol, v.Y0 - yTol}
		max := [2]float64{v.X0 + xTol, v.Y1 + yTol}
		tr.Insert(min, max, i)
	}

	var out []Intersection
	for _, h := range hEdges {
		min := [2]float64{h.X0 - xTol, h.Y0 - yTol}
		max := [2]float64{h.X1 + xTol, h.Y0 + yTol}
		tr.Search(min, max, func(_, _ [2]float64, data interface{}) bool {
			v := vEdges[data.(int)]
			if v.X0 < h.X0-xTol || v.X0 > h.X1+xTol {
				return true
			}
			if h.Y0 < v.Y0-yTol || h.Y0 > v.Y1+yTol {
				return true
			}
			out = append(out, Intersection{
				Point: model.Point{X: v.X0, Y: h.Y0},
				H:     h,
				V:     v,
			})
			return true
		})
	}
	return out
}

// findAllCellsBboxes implements the remainder of 4.F: builds a grid view
// from the unique intersection coordinates and emits the minimal
// rectangles whose four corners exist and whose four boundary segments
// are covered by H*/V*.
func findAllCellsBboxes(hEdges, vEdges []Edge, intersections []Intersection, snapXTol, snapYTol float64) []model.BBox {
	if len(intersections) == 0 {
		return nil
	}

	xSet := map[float64]bool{}
	ySet := map[float64]bool{}
	for _, it := range intersections {
		xSet[it.Point.X] = true
		ySet[it.Point.Y] = true
	}
	xs := sortedKeys(xSet)
	ys := sortedKeys(ySet)

	hasIntersection := make(map[[2]float64]bool, len(intersections))
	for _, it := range intersections {
		hasIntersection[[2]float64{it.Point.X, it.Point.Y}] = true
	}

	var cells []model.BBox
	for j := 0; j+1 < len(ys); j++ {
		y0, y1 := ys[j], ys[j+1]
		for i := 0; i+1 < len(xs); i++ {
			x0, x1 := xs[i], xs[i+1]

			corners := [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}}
			allCorners := true
			for _, c := range corners {
				if !hasIntersection[c] {
					allCorners = false
					break
				}
			}
			if !allCorners {
				continue
			}

			if !segmentCovered(hEdges, x0, x1, y0, snapXTol, true) ||
				!segmentCovered(hEdges, x0, x1, y1, snapXTol, true) ||
				!segmentCovered(vEdges, y0, y1, x0, snapYTol, false) ||
				!segmentCovered(vEdges, y0, y1, x1, snapYTol, false) {
				continue
			}

			if anyIntersectionStrictlyInside(intersections, x0, x1, y0, y1) {
				continue
			}

			cells = append(cells, model.BBox{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0})
		}
	}

	// Screen order: top->bottom, left->right, independent of axis
	// convention, after internal normalization the caller applies.
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y > cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// segmentCovered reports whether the span [a,b] along the edge's own
// length axis, at the given constant coordinate, is covered by
// concatenation of one or more same-axis edges in edges (gaps up to
// tolerance are already closed by normalization, so only containment is
// checked here).
func segmentCovered(edges []Edge, a, b, constCoord, tol float64, horizontal bool) bool {
	var spans [][2]float64
	for _, e := range edges {
		if horizontal && e.Orientation != Horizontal {
			continue
		}
		if !horizontal && e.Orientation != Vertical {
			continue
		}
		if absf(e.constCoord()-constCoord) > tol {
			continue
		}
		spans = append(spans, [2]float64{e.axisStart(), e.axisEnd()})
	}
	if len(spans) == 0 {
		return false
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	covered := spans[0]
	for _, s := range spans[1:] {
		if s[0] <= covered[1]+tol {
			if s[1] > covered[1] {
				covered[1] = s[1]
			}
		} else {
			if covered[0] <= a+tol && covered[1] >= b-tol {
				return true
			}
			covered = s
		}
	}
	return covered[0] <= a+tol && covered[1] >= b-tol
}

// anyIntersectionStrictlyInside enforces the CellBox invariant: no other
// intersection lies strictly inside the candidate rectangle (otherwise it
// is not minimal).
func anyIntersectionStrictlyInside(intersections []Intersection, x0, x1, y0, y1 float64) bool {
	for _, it := range intersections {
		if it.Point.X > x0 && it.Point.X < x1 && it.Point.Y > y0 && it.Point.Y < y1 {
			return true
		}
	}
	return false
}

func sortedKeys(set map[float64]bool) []float64 {
	out := make([]float64, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Float64s(out)
	return out
}
