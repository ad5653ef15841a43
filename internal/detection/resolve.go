package detection

import "sort"

// ResolveOverlaps selects a non-overlapping subset of candidate circles,
// preferring higher scores.
//
// Candidates are walked in score order (descending, stable so input order
// breaks ties) and accepted when their center is at least minDistance from
// every circle accepted so far. The result is a greedy packing under score
// priority, not a globally optimal maximum-score independent set.
//
// Every pair of returned circles is ≥ minDistance apart (Euclidean).
func ResolveOverlaps(candidates []Circle, minDistance float64) []Circle {
	ordered := make([]Circle, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	accepted := make([]Circle, 0, len(ordered))
	for _, c := range ordered {
		ok := true
		for _, a := range accepted {
			if distance(c, a) < minDistance {
				ok = false
				break
			}
		}
		if ok {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

// ExcludeOverlapping removes target circles that geometrically overlap any
// circle of excludeBy.
//
// A target circle is dropped entirely, never adjusted or re-scored, when
// its center lies closer than rTarget + rExclude + margin to some excludeBy
// circle. This keeps one physical cell from being counted in both classes.
// An empty excludeBy passes target through unchanged.
func ExcludeOverlapping(target, excludeBy []Circle, margin float64) []Circle {
	if len(excludeBy) == 0 {
		return target
	}

	kept := make([]Circle, 0, len(target))
	for _, t := range target {
		overlaps := false
		for _, e := range excludeBy {
			if distance(t, e) < float64(t.Radius)+float64(e.Radius)+margin {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, t)
		}
	}
	return kept
}
