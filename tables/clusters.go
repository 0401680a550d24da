package tables

import "sort"

// clusterFloats groups values by a chain tolerance: sorted ascending,
// each value joins the current cluster if it lies within tolerance of the
// immediately preceding (not the cluster average) sorted value. This is
// the exact semantics of the reference's cluster_list, not a
// distance-from-cluster-average scheme.
func clusterFloats(xs []float64, tolerance float64) [][]float64 {
	if tolerance == 0 || len(xs) < 2 {
		sorted := append([]float64(nil), xs...)
		sort.Float64s(sorted)
		groups := make([][]float64, len(sorted))
		for i, x := range sorted {
			groups[i] = []float64{x}
		}
		return groups
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	var groups [][]float64
	current := []float64{sorted[0]}
	last := sorted[0]

	for _, x := range sorted[1:] {
		if x <= last+tolerance {
			current = append(current, x)
		} else {
			groups = append(groups, current)
			current = []float64{x}
		}
		last = x
	}
	groups = append(groups, current)
	return groups
}

// mean returns the arithmetic average of xs; the panic-free zero-value
// for an empty slice is never exercised since clusterFloats never emits
// an empty group.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// clusterObjects clusters items by a numeric key, returning groups in
// ascending key order (preserveOrder=false) or in original input order
// (preserveOrder=true, only the grouping changes). Mirrors the
// reference's cluster_objects: clustering itself is always computed over
// the deduplicated sorted key set, then items are re-attached to their
// cluster.
func clusterObjects[T any](items []T, keyFn func(T) float64, tolerance float64, preserveOrder bool) [][]T {
	if len(items) == 0 {
		return nil
	}

	keys := make([]float64, len(items))
	seen := make(map[float64]bool, len(items))
	var uniqueKeys []float64
	for i, it := range items {
		k := keyFn(it)
		keys[i] = k
		if !seen[k] {
			seen[k] = true
			uniqueKeys = append(uniqueKeys, k)
		}
	}

	clusters := clusterFloats(uniqueKeys, tolerance)
	clusterOf := make(map[float64]int, len(uniqueKeys))
	for idx, group := range clusters {
		for _, v := range group {
			clusterOf[v] = idx
		}
	}

	type tagged struct {
		item T
		id   int
	}
	tuples := make([]tagged, len(items))
	for i, it := range items {
		tuples[i] = tagged{item: it, id: clusterOf[keys[i]]}
	}

	if !preserveOrder {
		sort.SliceStable(tuples, func(i, j int) bool { return tuples[i].id < tuples[j].id })
	}

	var result [][]T
	i := 0
	for i < len(tuples) {
		j := i + 1
		for j < len(tuples) && tuples[j].id == tuples[i].id {
			j++
		}
		group := make([]T, 0, j-i)
		for _, t := range tuples[i:j] {
			group = append(group, t.item)
		}
		result = append(result, group)
		i = j
	}
	return result
}
