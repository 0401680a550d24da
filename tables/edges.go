package tables

import (
	"math"
	"sort"
)

// deriveEdges implements 4.B: turns lines and rects into axis-aligned
// edges for one axis's chosen strategy, then applies the length prefilter.
func deriveEdges(lines []LinePath, rects []RectPrim, strategy StrategyType, minLengthPrefilter float64) []Edge {
	var edges []Edge

	for _, lp := range lines {
		edges = append(edges, edgesFromLinePath(lp)...)
	}

	for _, r := range rects {
		edges = append(edges, edgesFromRect(r, strategy)...)
	}

	if minLengthPrefilter <= 0 {
		return edges
	}
	out := edges[:0]
	for _, e := range edges {
		if e.Length() >= minLengthPrefilter {
			out = append(out, e)
		}
	}
	return out
}

// edgesFromLinePath classifies each straight segment of lp as horizontal,
// vertical, or diagonal (dropped). Curved segments never contribute.
func edgesFromLinePath(lp LinePath) []Edge {
	var edges []Edge
	for i := 1; i < len(lp.Points); i++ {
		p, q := lp.Points[i-1], lp.Points[i]
		if p.Curved || q.Curved {
			continue
		}
		if !isFinite(p.Point.X) || !isFinite(p.Point.Y) || !isFinite(q.Point.X) || !isFinite(q.Point.Y) {
			continue
		}
		dy := math.Abs(p.Point.Y - q.Point.Y)
		dx := math.Abs(p.Point.X - q.Point.X)
		switch {
		case dy <= axisEpsilon:
			y := (p.Point.Y + q.Point.Y) / 2
			edges = append(edges, newHEdge(p.Point.X, q.Point.X, y, lp.Width, lp.Color, sourceDrawn))
		case dx <= axisEpsilon:
			x := (p.Point.X + q.Point.X) / 2
			edges = append(edges, newVEdge(p.Point.Y, q.Point.Y, x, lp.Width, lp.Color, sourceDrawn))
		default:
			// diagonal: not contributed, per spec's open question on
			// diagonal-line handling.
		}
	}
	return edges
}

// edgesFromRect emits the four border edges of a stroked rect, and,
// under the `lines` strategy only, of a filled-but-unstroked rect too.
func edgesFromRect(r RectPrim, strategy StrategyType) []Edge {
	if !isFiniteBBox(r.BBox) || r.BBox.Width <= 0 || r.BBox.Height <= 0 {
		return nil
	}
	contributes := r.Stroked || (r.Filled && strategy == StrategyLines)
	if !contributes {
		return nil
	}

	width := r.StrokeWidth
	color := r.StrokeColor
	if !r.Stroked {
		color = r.FillColor
	}

	x0, x1 := r.BBox.Left(), r.BBox.Right()
	y0, y1 := r.BBox.Bottom(), r.BBox.Top()
	return []Edge{
		newHEdge(x0, x1, y0, width, color, sourceDrawn),
		newHEdge(x0, x1, y1, width, color, sourceDrawn),
		newVEdge(y0, y1, x0, width, color, sourceDrawn),
		newVEdge(y0, y1, x1, width, color, sourceDrawn),
	}
}

// normalizeEdges implements 4.E: snap, join, and final-length-filter one
// axis's edge set.
func normalizeEdges(edges []Edge, snapTol, joinTol, minLength float64) []Edge {
	edges = snapEdges(edges, snapTol)
	edges = joinEdges(edges, joinTol)

	if minLength <= 0 {
		return edges
	}
	out := edges[:0]
	for _, e := range edges {
		if e.Length() >= minLength {
			out = append(out, e)
		}
	}
	return out
}

// snapEdges groups edges whose constant coordinate lies within tolerance
// and replaces that coordinate with the group mean (4.E.1).
func snapEdges(edges []Edge, tolerance float64) []Edge {
	if len(edges) == 0 {
		return edges
	}
	groups := clusterObjects(edges, func(e Edge) float64 { return e.constCoord() }, tolerance, true)

	out := make([]Edge, 0, len(edges))
	for _, group := range groups {
		coords := make([]float64, len(group))
		for i, e := range group {
			coords[i] = e.constCoord()
		}
		snapped := mean(coords)
		for _, e := range group {
			out = append(out, withConstCoord(e, snapped))
		}
	}
	return out
}

func withConstCoord(e Edge, coord float64) Edge {
	if e.Orientation == Horizontal {
		e.Y0, e.Y1 = coord, coord
	} else {
		e.X0, e.X1 = coord, coord
	}
	return e
}

// joinEdges merges collinear edges (same constant coordinate, already
// snapped) whose gap along the length axis is within tolerance (4.E.2).
// The joined edge inherits the wider stroke and the first contributor's color.
func joinEdges(edges []Edge, tolerance float64) []Edge {
	if len(edges) == 0 {
		return edges
	}

	byCoord := make(map[float64][]Edge)
	var coordOrder []float64
	for _, e := range edges {
		c := e.constCoord()
		if _, ok := byCoord[c]; !ok {
			coordOrder = append(coordOrder, c)
		}
		byCoord[c] = append(byCoord[c], e)
	}
	sort.Float64s(coordOrder)

	var out []Edge
	for _, c := range coordOrder {
		group := byCoord[c]
		sort.SliceStable(group, func(i, j int) bool { return group[i].axisStart() < group[j].axisStart() })

		merged := group[0]
		for _, e := range group[1:] {
			if e.axisStart()-merged.axisEnd() <= tolerance {
				merged = mergeTwoEdges(merged, e)
			} else {
				out = append(out, merged)
				merged = e
			}
		}
		out = append(out, merged)
	}
	return out
}

func mergeTwoEdges(a, b Edge) Edge {
	start := math.Min(a.axisStart(), b.axisStart())
	end := math.Max(a.axisEnd(), b.axisEnd())
	width := a.Width
	if b.Width > width {
		width = b.Width
	}
	merged := a
	merged.Width = width
	if merged.Orientation == Horizontal {
		merged.X0, merged.X1 = start, end
	} else {
		merged.Y0, merged.Y1 = start, end
	}
	return merged
}
