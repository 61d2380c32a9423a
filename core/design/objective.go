package design

import (
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

// hardPenaltyWeight dominates the variance objective so the search always
// prefers repairing a hard-constraint violation over improving balance.
const hardPenaltyWeight = 1000.0

// candidate is one full assignment of the selected statements into blocks.
// blocks[b][s] indexes into the selected pool. Search state is an explicit
// value so chains can be compared, logged and resumed.
type candidate struct {
	blocks [][schema.BlockSize]int
}

func (c *candidate) clone() candidate {
	blocks := make([][schema.BlockSize]int, len(c.blocks))
	copy(blocks, c.blocks)
	return candidate{blocks: blocks}
}

// evaluator scores candidates against one selected pool. It is read-only
// after construction and shared by all chains.
type evaluator struct {
	pool      []schema.Statement
	facets    []int // facet index per pool statement
	domains   []int // domain index per pool statement
	tolerance float64
}

func newEvaluator(pool []schema.Statement, tolerance float64) *evaluator {
	ev := &evaluator{
		pool:      pool,
		facets:    make([]int, len(pool)),
		domains:   make([]int, len(pool)),
		tolerance: tolerance,
	}
	for i, s := range pool {
		ev.facets[i] = schema.FacetIndex(s.Facet)
		for d, id := range schema.AllDomains {
			if id == s.Domain() {
				ev.domains[i] = d
			}
		}
	}
	return ev
}

// penalty counts hard-constraint violations: repeated facets inside a block,
// blocks spanning fewer than MinDomainsPerBlock domains, and blocks whose
// desirability spread exceeds the tolerance.
func (ev *evaluator) penalty(c *candidate) int {
	total := 0
	for i := range c.blocks {
		total += ev.blockPenalty(&c.blocks[i])
	}
	return total
}

func (ev *evaluator) blockPenalty(block *[schema.BlockSize]int) int {
	var facetSeen [schema.NumFacets]bool
	var domainSeen [schema.NumDomains]bool

	penalty := 0
	domains := 0
	minDes, maxDes := ev.pool[block[0]].Desirability, ev.pool[block[0]].Desirability
	for _, idx := range block {
		f := ev.facets[idx]
		if facetSeen[f] {
			penalty++ // repeated facet in one block
		}
		facetSeen[f] = true

		d := ev.domains[idx]
		if !domainSeen[d] {
			domainSeen[d] = true
			domains++
		}

		des := ev.pool[idx].Desirability
		if des < minDes {
			minDes = des
		}
		if des > maxDes {
			maxDes = des
		}
	}

	if domains < schema.MinDomainsPerBlock {
		penalty += schema.MinDomainsPerBlock - domains
	}
	if maxDes-minDes > ev.tolerance {
		penalty++
	}
	return penalty
}

// variance is the soft objective: the summed variance of facet-pair and
// domain-pair co-occurrence counts across all blocks. Perfect pairwise
// balance is generally unattainable (lambda is non-integer), so lower is
// simply better.
func (ev *evaluator) variance(c *candidate) float64 {
	const facetPairs = schema.NumFacets * (schema.NumFacets - 1) / 2
	const domainPairs = schema.NumDomains * (schema.NumDomains + 1) / 2

	var fCounts [facetPairs]float64
	var dCounts [domainPairs]float64

	for i := range c.blocks {
		block := &c.blocks[i]
		for a := 0; a < schema.BlockSize; a++ {
			for b := a + 1; b < schema.BlockSize; b++ {
				fa, fb := ev.facets[block[a]], ev.facets[block[b]]
				if fa != fb {
					fCounts[pairIndex(fa, fb, schema.NumFacets)]++
				}
				da, db := ev.domains[block[a]], ev.domains[block[b]]
				dCounts[selfPairIndex(da, db)]++
			}
		}
	}

	return populationVariance(fCounts[:]) + populationVariance(dCounts[:])
}

// energy combines the hard penalty and the soft objective into a single
// value the annealer can minimize.
func (ev *evaluator) energy(c *candidate) float64 {
	return hardPenaltyWeight*float64(ev.penalty(c)) + ev.variance(c)
}

// feasible reports whether the candidate satisfies every hard constraint.
// Feasibility is decided from the penalty count, never from the energy: a
// valid candidate's variance alone can exceed hardPenaltyWeight at large
// exposure targets.
func (ev *evaluator) feasible(c *candidate) bool {
	return ev.penalty(c) == 0
}

// pairIndex maps an unordered pair a<b out of n to a flat index.
func pairIndex(a, b, n int) int {
	if a > b {
		a, b = b, a
	}
	return a*n - a*(a+1)/2 + (b - a - 1)
}

// selfPairIndex maps an unordered domain pair, including same-domain pairs,
// to a flat index over NumDomains*(NumDomains+1)/2 slots.
func selfPairIndex(a, b int) int {
	if a > b {
		a, b = b, a
	}
	return a*schema.NumDomains - a*(a-1)/2 + (b - a)
}

func populationVariance(values []float64) float64 {
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return variance / float64(len(values))
}
