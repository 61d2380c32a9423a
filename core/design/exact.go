package design

import (
	"math"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

// searchExact exhaustively enumerates every partition of a single-exposure
// pool (12 statements, 3 blocks) and returns the provably optimal feasible
// candidate. Fixing the lowest unplaced statement as each block's anchor
// breaks block-order symmetry, leaving 5775 partitions. Returns ok=false if
// the deadline expires before enumeration completes, in which case the caller
// falls back to the heuristic result.
func searchExact(ev *evaluator, deadline time.Time) (chainResult, bool) {
	n := len(ev.pool)
	if n != schema.NumFacets {
		return chainResult{}, false
	}

	res := chainResult{variance: math.Inf(1), exact: true}

	first := combinations(1, n) // companions of statement 0
	for _, c1 := range first {
		if time.Now().After(deadline) {
			return chainResult{}, false
		}

		used := make([]bool, n)
		used[0] = true
		block1 := [schema.BlockSize]int{0, c1[0], c1[1], c1[2]}
		for _, idx := range c1 {
			used[idx] = true
		}

		// Anchor block two on the lowest statement not yet placed.
		anchor := -1
		var rest []int
		for i := 1; i < n; i++ {
			if used[i] {
				continue
			}
			if anchor < 0 {
				anchor = i
			} else {
				rest = append(rest, i)
			}
		}

		for _, c2 := range chooseThree(rest) {
			block2 := [schema.BlockSize]int{anchor, c2[0], c2[1], c2[2]}

			var block3 [schema.BlockSize]int
			slot := 0
			for _, i := range rest {
				if i != c2[0] && i != c2[1] && i != c2[2] {
					block3[slot] = i
					slot++
				}
			}

			cand := candidate{blocks: [][schema.BlockSize]int{block1, block2, block3}}
			if ev.penalty(&cand) != 0 {
				continue
			}
			if v := ev.variance(&cand); v < res.variance {
				res.best = cand.clone()
				res.feasible = true
				res.variance = v
			}
		}
	}

	return res, true
}

// combinations returns every 3-element combination of start..n-1.
func combinations(start, n int) [][3]int {
	var out [][3]int
	for a := start; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				out = append(out, [3]int{a, b, c})
			}
		}
	}
	return out
}

// chooseThree returns every 3-element combination of the given indices.
func chooseThree(indices []int) [][3]int {
	var out [][3]int
	for a := 0; a < len(indices); a++ {
		for b := a + 1; b < len(indices); b++ {
			for c := b + 1; c < len(indices); c++ {
				out = append(out, [3]int{indices[a], indices[b], indices[c]})
			}
		}
	}
	return out
}
