package tables

import (
	"context"
	"sort"
	"strings"

	"github.com/tsawler/tabula/model"
)

// TableCell is a BBox plus its assigned text (empty if text was not
// extracted).
type TableCell struct {
	BBox model.BBox
	Text string
}

// CellGroup is a row or column view over a Table: an ordered list of
// cells sharing an axis band, with explicit gaps for axis positions the
// table has but this group does not, plus the group's own BBox.
type CellGroup struct {
	// Cells holds one entry per axis position in the table; nil marks a gap.
	Cells []*TableCell
	BBox  model.BBox
}

// Table is a connected component of CellBoxes sharing full edges (4.G),
// partitioned into ordered cells, rows, and columns.
type Table struct {
	BBox          model.BBox
	Cells         []TableCell
	Rows          []CellGroup
	Columns       []CellGroup
	PageIndex     int
	TextExtracted bool
}

// GetEdges runs 4.A, 4.B, 4.E (without text synthesis) and returns the
// normalized horizontal and vertical edge sets.
func GetEdges(ctx context.Context, page PageSource, settings TfSettings) (h, v []Edge, err error) {
	if err := settings.validate(); err != nil {
		return nil, nil, newSettingsError("table finder settings", err)
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, nil, err
	}
	return getEdgesNoValidate(ctx, page, settings)
}

func getEdgesNoValidate(ctx context.Context, page PageSource, settings TfSettings) (h, v []Edge, err error) {
	if err := requirePrimitivesExtracted(page); err != nil {
		return nil, nil, err
	}

	lines, err := page.Lines()
	if err != nil {
		return nil, nil, err
	}
	rects, err := page.Rects()
	if err != nil {
		return nil, nil, err
	}

	hRaw := deriveEdges(lines, rects, settings.HorizontalStrategy, settings.EdgeMinLengthPrefilter)
	vRaw := deriveEdges(lines, rects, settings.VerticalStrategy, settings.EdgeMinLengthPrefilter)
	hRaw = onlyOrientation(hRaw, Horizontal)
	vRaw = onlyOrientation(vRaw, Vertical)

	if settings.HorizontalStrategy == StrategyText || settings.VerticalStrategy == StrategyText {
		if err := checkCancelled(ctx); err != nil {
			return nil, nil, err
		}
		chars, cerr := page.Chars()
		if cerr != nil {
			return nil, nil, cerr
		}
		words := NewWordExtractor(settings.TextSettings).Extract(chars)
		if settings.HorizontalStrategy == StrategyText {
			hRaw = append(hRaw, wordsToEdgesH(words, settings.SnapYTolerance, settings.MinWordsHorizontal)...)
		}
		if settings.VerticalStrategy == StrategyText {
			vRaw = append(vRaw, wordsToEdgesV(words, settings.SnapXTolerance, settings.MinWordsVertical)...)
		}
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, nil, err
	}

	h = normalizeEdges(hRaw, settings.SnapYTolerance, settings.JoinXTolerance, settings.EdgeMinLength)
	v = normalizeEdges(vRaw, settings.SnapXTolerance, settings.JoinYTolerance, settings.EdgeMinLength)
	return h, v, nil
}

func onlyOrientation(edges []Edge, o Orientation) []Edge {
	out := edges[:0]
	for _, e := range edges {
		if e.Orientation == o {
			out = append(out, e)
		}
	}
	return out
}

// FindAllCellsBboxes runs 4.A-4.F: it returns the minimal cell rectangles
// without assembling them into tables.
func FindAllCellsBboxes(ctx context.Context, page PageSource, settings TfSettings) ([]model.BBox, error) {
	if err := settings.validate(); err != nil {
		return nil, newSettingsError("table finder settings", err)
	}
	h, v, err := getEdgesNoValidate(ctx, page, settings)
	if err != nil {
		return nil, err
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	intersections := computeIntersections(h, v, settings.IntersectionXTolerance, settings.IntersectionYTolerance)
	return findAllCellsBboxes(h, v, intersections, settings.SnapXTolerance, settings.SnapYTolerance), nil
}

// FindTablesFromCells runs 4.G (assembly, filtering); it additionally
// runs 4.C and 4.H when extractText is true. Fails with MissingPage if
// extractText is true and page is nil.
func FindTablesFromCells(ctx context.Context, cells []model.BBox, extractText bool, page PageSource, settings TfSettings) ([]Table, error) {
	if err := settings.validate(); err != nil {
		return nil, newSettingsError("table finder settings", err)
	}
	if extractText && page == nil {
		return nil, newMissingPageError("extractText requires a page")
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	tables := assembleTables(cells, settings)

	if extractText {
		if err := requirePrimitivesExtracted(page); err != nil {
			return nil, err
		}
		chars, err := page.Chars()
		if err != nil {
			return nil, err
		}
		words := NewWordExtractor(settings.TextSettings).Extract(chars)
		for i := range tables {
			assignText(&tables[i], words, settings.TextSettings.NeedStrip)
			tables[i].TextExtracted = true
		}
	}

	return tables, nil
}

// FindTables runs the full pipeline: 4.A-4.H.
func FindTables(ctx context.Context, page PageSource, extractText bool, settings TfSettings) ([]Table, error) {
	if err := settings.validate(); err != nil {
		return nil, newSettingsError("table finder settings", err)
	}
	cells, err := FindAllCellsBboxes(ctx, page, settings)
	if err != nil {
		return nil, err
	}
	return FindTablesFromCells(ctx, cells, extractText, page, settings)
}

func checkCancelled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return newCancelledError("pipeline")
	default:
		return nil
	}
}

// assembleTables implements 4.G: connects CellBoxes sharing a full edge
// into connected components, derives row/column CellGroups, and applies
// the include_single_cell/min_rows/min_columns filters.
func assembleTables(cells []model.BBox, settings TfSettings) []Table {
	n := len(cells)
	if n == 0 {
		return nil
	}

	adj := make([][]int, n)
	tol := minPositive(settings.SnapXTolerance, settings.SnapYTolerance)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if shareFullEdge(cells[i], cells[j], tol) {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}

	visited := make([]bool, n)
	var components [][]int
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		var stack []int
		stack = append(stack, i)
		visited[i] = true
		var comp []int
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, nb := range adj[cur] {
				if !visited[nb] {
					visited[nb] = true
					stack = append(stack, nb)
				}
			}
		}
		sort.Ints(comp)
		components = append(components, comp)
	}

	var tables []Table
	for _, comp := range components {
		compCells := make([]model.BBox, len(comp))
		for i, idx := range comp {
			compCells[i] = cells[idx]
		}
		t := buildTable(compCells)

		if len(t.Cells) == 1 && !settings.IncludeSingleCell {
			continue
		}
		if settings.MinRows != nil && len(t.Rows) < *settings.MinRows {
			continue
		}
		if settings.MinColumns != nil && len(t.Columns) < *settings.MinColumns {
			continue
		}
		tables = append(tables, t)
	}

	sort.SliceStable(tables, func(i, j int) bool {
		if tables[i].BBox.Y != tables[j].BBox.Y {
			return tables[i].BBox.Y > tables[j].BBox.Y
		}
		return tables[i].BBox.X < tables[j].BBox.X
	})
	return tables
}

// shareFullEdge reports whether a and b touch along one complete shared
// boundary (left/right adjacency with matching y-span, or top/bottom
// adjacency with matching x-span), within tolerance.
func shareFullEdge(a, b model.BBox, tol float64) bool {
	sameYSpan := absf(a.Bottom()-b.Bottom()) <= tol && absf(a.Top()-b.Top()) <= tol
	if sameYSpan && (absf(a.Right()-b.Left()) <= tol || absf(b.Right()-a.Left()) <= tol) {
		return true
	}
	sameXSpan := absf(a.Left()-b.Left()) <= tol && absf(a.Right()-b.Right()) <= tol
	if sameXSpan && (absf(a.Top()-b.Bottom()) <= tol || absf(b.Top()-a.Bottom()) <= tol) {
		return true
	}
	return false
}

func minPositive(a, b float64) float64 {
	if a <= 0 {
		return b
	}
	if b <= 0 {
		return a
	}
	if a < b {
		return a
	}
	return b
}

// buildTable derives a Table's outer bbox and its row/column CellGroups
// from a connected set of CellBoxes (4.G). Rows share a y-band when
// y-intervals overlap by >=50% of the shorter interval; symmetric for
// columns on x.
func buildTable(cells []model.BBox) Table {
	outer := cells[0]
	tableCells := make([]TableCell, len(cells))
	for i, c := range cells {
		if i > 0 {
			outer = outer.Union(c)
		}
		tableCells[i] = TableCell{BBox: c}
	}

	rowBands := groupByOverlap(cells, func(b model.BBox) (float64, float64) { return b.Bottom(), b.Top() })
	colBands := groupByOverlap(cells, func(b model.BBox) (float64, float64) { return b.Left(), b.Right() })

	xPositions := axisPositions(cells, func(b model.BBox) float64 { return b.Left() })
	yPositions := axisPositions(cells, func(b model.BBox) float64 { return b.Bottom() })

	cellAt := make(map[[2]int]*TableCell, len(cells))
	colIndex := indexFor(xPositions)
	rowIndex := indexFor(yPositions)
	for i := range tableCells {
		ci := colIndex[tableCells[i].BBox.Left()]
		ri := rowIndex[tableCells[i].BBox.Bottom()]
		cellAt[[2]int{ri, ci}] = &tableCells[i]
	}

	rows := make([]CellGroup, 0, len(rowBands))
	for _, band := range rowBands {
		ri := rowIndex[band[0].Bottom()]
		group := CellGroup{Cells: make([]*TableCell, len(xPositions))}
		bbox := band[0]
		for _, c := range band {
			ci := colIndex[c.Left()]
			group.Cells[ci] = cellAt[[2]int{ri, ci}]
			bbox = bbox.Union(c)
		}
		group.BBox = bbox
		rows = append(rows, group)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].BBox.Bottom() > rows[j].BBox.Bottom() })

	cols := make([]CellGroup, 0, len(colBands))
	for _, band := range colBands {
		ci := colIndex[band[0].Left()]
		group := CellGroup{Cells: make([]*TableCell, len(yPositions))}
		bbox := band[0]
		for _, c := range band {
			ri := rowIndex[c.Bottom()]
			group.Cells[ri] = cellAt[[2]int{ri, ci}]
			bbox = bbox.Union(c)
		}
		group.BBox = bbox
		cols = append(cols, group)
	}
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].BBox.Left() < cols[j].BBox.Left() })

	return Table{BBox: outer, Cells: tableCells, Rows: rows, Columns: cols}
}

// groupByOverlap clusters bboxes whose [lo,hi) interval (as returned by
// axis) overlaps by at least 50% of the shorter interval with another
// member of the group.
func groupByOverlap(cells []model.BBox, axis func(model.BBox) (float64, float64)) [][]model.BBox {
	type item struct {
		b      model.BBox
		lo, hi float64
	}
	items := make([]item, len(cells))
	for i, c := range cells {
		lo, hi := axis(c)
		items[i] = item{c, lo, hi}
	}
	sort.SliceStable(items, func(i, j int) bool {
		ci := (items[i].lo + items[i].hi) / 2
		cj := (items[j].lo + items[j].hi) / 2
		return ci < cj
	})

	var bands [][]item
	for _, it := range items {
		placed := false
		for bi := range bands {
			rep := bands[bi][0]
			shorter := minPositive(rep.hi-rep.lo, it.hi-it.lo)
			overlap := minF(rep.hi, it.hi) - maxF(rep.lo, it.lo)
			if shorter > 0 && overlap >= 0.5*shorter {
				bands[bi] = append(bands[bi], it)
				placed = true
				break
			}
		}
		if !placed {
			bands = append(bands, []item{it})
		}
	}

	out := make([][]model.BBox, len(bands))
	for i, band := range bands {
		bs := make([]model.BBox, len(band))
		for j, it := range band {
			bs[j] = it.b
		}
		out[i] = bs
	}
	return out
}

// axisPositions returns the sorted, deduplicated set of axis start
// coordinates across cells.
func axisPositions(cells []model.BBox, axis func(model.BBox) float64) []float64 {
	set := map[float64]bool{}
	for _, c := range cells {
		set[axis(c)] = true
	}
	return sortedKeys(set)
}

func indexFor(positions []float64) map[float64]int {
	idx := make(map[float64]int, len(positions))
	for i, p := range positions {
		idx[p] = i
	}
	return idx
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// assignText implements 4.H: each cell takes every word whose BBox
// center lies inside the cell (inclusive on min edges, exclusive on max
// edges), sorted in reading order and space-joined.
func assignText(t *Table, words []Word, stripText bool) {
	for i := range t.Cells {
		cell := &t.Cells[i]
		var matched []Word
		for _, w := range words {
			c := w.BBox.Center()
			if c.X >= cell.BBox.Left() && c.X < cell.BBox.Right() &&
				c.Y >= cell.BBox.Bottom() && c.Y < cell.BBox.Top() {
				matched = append(matched, w)
			}
		}
		sort.SliceStable(matched, func(a, b int) bool {
			ta, tb := matched[a].BBox.Top(), matched[b].BBox.Top()
			if ta != tb {
				return ta > tb
			}
			return matched[a].BBox.Left() < matched[b].BBox.Left()
		})

		parts := make([]string, len(matched))
		for i, w := range matched {
			parts[i] = w.Text
		}
		text := strings.Join(parts, " ")
		if stripText {
			text = strings.TrimSpace(text)
		}
		cell.Text = text
	}
}
