package tables

// wordsToEdgesV synthesizes vertical pseudo-edges from word alignment
// (4.D): words are clustered by x-start, x-end, and x-center; any
// cluster with at least minWords distinct member words emits one V edge
// spanning the full vertical extent of its members at the cluster's
// representative x.
func wordsToEdgesV(words []Word, snapXTolerance float64, minWords int) []Edge {
	if len(words) == 0 {
		return nil
	}

	type candidate struct {
		idx int
		x   float64
	}
	var candidates []candidate
	for i, w := range words {
		candidates = append(candidates,
			candidate{i, w.BBox.Left()},
			candidate{i, w.BBox.Right()},
			candidate{i, w.BBox.Center().X},
		)
	}

	groups := clusterObjects(candidates, func(c candidate) float64 { return c.x }, snapXTolerance, false)

	var edges []Edge
	for _, group := range groups {
		uniq := uniqueIndices(group, func(c candidate) int { return c.idx })
		if len(uniq) < minWords {
			continue
		}
		xs := make([]float64, len(group))
		top, bottom := words[uniq[0]].BBox.Top(), words[uniq[0]].BBox.Bottom()
		for i, c := range group {
			xs[i] = c.x
		}
		for _, idx := range uniq {
			if words[idx].BBox.Top() > top {
				top = words[idx].BBox.Top()
			}
			if words[idx].BBox.Bottom() < bottom {
				bottom = words[idx].BBox.Bottom()
			}
		}
		x := mean(xs)
		edges = append(edges, newVEdge(bottom, top, x, 1, [3]float64{}, sourceText))
	}
	return edges
}

// wordsToEdgesH is symmetric to wordsToEdgesV over the reading baseline.
func wordsToEdgesH(words []Word, snapYTolerance float64, minWords int) []Edge {
	if len(words) == 0 {
		return nil
	}

	type candidate struct {
		idx int
		y   float64
	}
	var candidates []candidate
	for i, w := range words {
		candidates = append(candidates,
			candidate{i, w.BBox.Top()},
			candidate{i, w.BBox.Bottom()},
			candidate{i, w.BBox.Center().Y},
		)
	}

	groups := clusterObjects(candidates, func(c candidate) float64 { return c.y }, snapYTolerance, false)

	var edges []Edge
	for _, group := range groups {
		uniq := uniqueIndices(group, func(c candidate) int { return c.idx })
		if len(uniq) < minWords {
			continue
		}
		ys := make([]float64, len(group))
		left, right := words[uniq[0]].BBox.Left(), words[uniq[0]].BBox.Right()
		for i, c := range group {
			ys[i] = c.y
		}
		for _, idx := range uniq {
			if words[idx].BBox.Left() < left {
				left = words[idx].BBox.Left()
			}
			if words[idx].BBox.Right() > right {
				right = words[idx].BBox.Right()
			}
		}
		y := mean(ys)
		edges = append(edges, newHEdge(left, right, y, 1, [3]float64{}, sourceText))
	}
	return edges
}

// uniqueIndices returns the distinct keys among group in first-seen order,
// since one word contributes up to three candidates to a clustering pass
// (start/end/center) and min_words thresholds the word count, not the
// candidate count.
func uniqueIndices[C any](group []C, keyFn func(C) int) []int {
	seen := make(map[int]bool, len(group))
	var out []int
	for _, c := range group {
		k := keyFn(c)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
