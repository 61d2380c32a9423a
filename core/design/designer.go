// Package design partitions a statement pool into forced-choice blocks under
// combinatorial balance constraints.
//
// Hard constraints: four distinct statements per block, no repeated facet,
// at least three distinct domains, and social-desirability ratings matched
// within a tolerance. The soft objective minimizes the joint variance of
// facet-pair and domain-pair co-occurrence counts. Small instances are solved
// by exhaustive enumeration; larger ones fall back to simulated annealing
// with parallel independent chains under a wall-clock budget.
package design

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

// Annealing schedule constants.
const (
	initialTemperature = 1.0
	finalTemperature   = 1e-3
	budgetCheckEvery   = 64 // iterations between deadline checks
)

// Request configures one design generation.
type Request struct {
	Pool                  []schema.Statement
	Version               string
	ExposureTarget        int           // r: blocks each facet appears in; 0 means the default
	DesirabilityTolerance float64       // 0 means the default
	Budget                time.Duration // 0 means the default
	Chains                int           // 0 means the default
	Seed                  int64         // 0 derives a seed from the clock
}

// chainResult is the best candidate one search chain found.
type chainResult struct {
	best     candidate
	feasible bool
	variance float64
	exact    bool
}

// Generate produces a complete, hard-constraint-valid block design or fails
// with a configuration error. It never returns a partially valid design; a
// heuristic (non-exact) solution is marked Approximate with its achieved
// variance so the caller can decide whether to regenerate with more budget.
func Generate(req *Request) (*schema.BlockDesign, error) {
	r := req.ExposureTarget
	if r <= 0 {
		r = contract.DefaultExposureTarget
	}
	tolerance := req.DesirabilityTolerance
	if tolerance <= 0 {
		tolerance = contract.DefaultDesirabilityTolerance
	}
	budget := req.Budget
	if budget <= 0 {
		budget = contract.DefaultDesignBudget
	}
	chains := req.Chains
	if chains <= 0 {
		chains = contract.DefaultChains
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	selected, err := selectStatements(req.Pool, r)
	if err != nil {
		return nil, err
	}

	ev := newEvaluator(selected, tolerance)
	deadline := time.Now().Add(budget)

	best := searchParallel(ev, r, chains, seed, deadline)
	if !best.feasible {
		return nil, contract.NewConfigError(
			"no constraint-satisfying design found for exposure %d within %s; relax the desirability tolerance or enlarge the pool", r, budget)
	}

	design := &schema.BlockDesign{
		Version:        req.Version,
		Statements:     selected,
		ExposureTarget: r,
		Approximate:    !best.exact,
		Objective:      best.variance,
	}
	for i, block := range best.best.blocks {
		var ids [schema.BlockSize]string
		for s, idx := range block {
			ids[s] = selected[idx].ID
		}
		design.Blocks = append(design.Blocks, schema.Block{ID: i, StatementIDs: ids})
	}

	if err := Check(design, tolerance); err != nil {
		// The search only reports feasible candidates, so a failure here is
		// a bug, not a data problem. Refuse to return an invalid design.
		return nil, fmt.Errorf("generated design failed validation: %w", err)
	}
	return design, nil
}

// selectStatements picks exactly r statements per facet, choosing for each
// facet the contiguous desirability window with the smallest spread so that
// within-block matching has room to succeed. Fails naming the first facet
// whose pool is short.
func selectStatements(pool []schema.Statement, r int) ([]schema.Statement, error) {
	byFacet := make(map[schema.FacetID][]schema.Statement, schema.NumFacets)
	for _, s := range pool {
		if schema.FacetIndex(s.Facet) < 0 {
			return nil, contract.NewConfigError("statement %s has unknown facet %q", s.ID, s.Facet)
		}
		byFacet[s.Facet] = append(byFacet[s.Facet], s)
	}

	selected := make([]schema.Statement, 0, schema.NumFacets*r)
	for _, facet := range schema.AllFacets {
		stmts := byFacet[facet]
		if len(stmts) < r {
			return nil, contract.NewConfigError("facet %s has %d statements in the pool, need at least %d", facet, len(stmts), r)
		}
		sort.Slice(stmts, func(i, j int) bool {
			if stmts[i].Desirability != stmts[j].Desirability {
				return stmts[i].Desirability < stmts[j].Desirability
			}
			return stmts[i].ID < stmts[j].ID
		})

		bestStart, bestSpread := 0, math.Inf(1)
		for start := 0; start+r <= len(stmts); start++ {
			spread := stmts[start+r-1].Desirability - stmts[start].Desirability
			if spread < bestSpread {
				bestStart, bestSpread = start, spread
			}
		}
		selected = append(selected, stmts[bestStart:bestStart+r]...)
	}
	return selected, nil
}

// searchParallel runs independent search chains and returns the best result.
// Chains share only the read-only evaluator; each owns its RNG and candidate.
func searchParallel(ev *evaluator, r, chains int, seed int64, deadline time.Time) chainResult {
	results := make([]chainResult, chains)
	var wg sync.WaitGroup
	for i := range chains {
		wg.Add(1)
		go func(chain int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(chain)))
			if r == 1 && chain == 0 {
				// Small instance: one chain attempts the exhaustive solve,
				// the rest anneal in case the budget runs out first.
				if res, ok := searchExact(ev, deadline); ok {
					results[chain] = res
					return
				}
			}
			results[chain] = anneal(ev, r, rng, deadline)
		}(i)
	}
	wg.Wait()

	best := results[0]
	for _, res := range results[1:] {
		if betterResult(res, best) {
			best = res
		}
	}
	return best
}

// betterResult prefers feasible over infeasible, exact over heuristic, then
// lower variance.
func betterResult(a, b chainResult) bool {
	if a.feasible != b.feasible {
		return a.feasible
	}
	if a.exact != b.exact {
		return a.exact
	}
	return a.variance < b.variance
}

// anneal runs one simulated-annealing chain: random initial assignment, then
// pairwise statement swaps, accepting improvements always and worsening moves
// with a probability that cools over time.
func anneal(ev *evaluator, r int, rng *rand.Rand, deadline time.Time) chainResult {
	current := randomCandidate(r, rng)
	energy := ev.energy(&current)

	res := chainResult{variance: math.Inf(1)}
	record := func(c *candidate, e float64) {
		if !ev.feasible(c) {
			return
		}
		// Zero penalty, so e is pure variance.
		if !res.feasible || e < res.variance {
			res.best = c.clone()
			res.feasible = true
			res.variance = e
		}
	}
	record(&current, energy)

	blocks := len(current.blocks)
	temperature := initialTemperature
	cooling := coolingFactor(blocks)

	for iter := 0; ; iter++ {
		if iter%budgetCheckEvery == 0 && time.Now().After(deadline) {
			return res
		}

		// Swap two statements between distinct blocks.
		b1 := rng.Intn(blocks)
		b2 := rng.Intn(blocks - 1)
		if b2 >= b1 {
			b2++
		}
		s1 := rng.Intn(schema.BlockSize)
		s2 := rng.Intn(schema.BlockSize)

		current.blocks[b1][s1], current.blocks[b2][s2] = current.blocks[b2][s2], current.blocks[b1][s1]
		next := ev.energy(&current)

		if next <= energy || rng.Float64() < math.Exp((energy-next)/temperature) {
			energy = next
			record(&current, energy)
		} else {
			// Revert the swap.
			current.blocks[b1][s1], current.blocks[b2][s2] = current.blocks[b2][s2], current.blocks[b1][s1]
		}

		temperature *= cooling
		if temperature < finalTemperature {
			temperature = finalTemperature
		}
	}
}

// coolingFactor scales the schedule length with the instance size.
func coolingFactor(blocks int) float64 {
	steps := float64(4000 * blocks)
	return math.Pow(finalTemperature/initialTemperature, 1.0/steps)
}

// randomCandidate deals the selected statements into blocks uniformly at
// random. Hard constraints are repaired by the search itself.
func randomCandidate(r int, rng *rand.Rand) candidate {
	n := schema.NumFacets * r
	perm := rng.Perm(n)

	blocks := make([][schema.BlockSize]int, n/schema.BlockSize)
	for i, idx := range perm {
		blocks[i/schema.BlockSize][i%schema.BlockSize] = idx
	}
	return candidate{blocks: blocks}
}

// Check validates a design against every hard constraint plus the per-facet
// exposure target. It returns nil for a fully valid design and a descriptive
// configuration error for the first violation found.
func Check(design *schema.BlockDesign, tolerance float64) error {
	if design == nil || len(design.Blocks) == 0 {
		return contract.NewConfigError("design has no blocks")
	}
	if tolerance <= 0 {
		tolerance = contract.DefaultDesirabilityTolerance
	}

	exposure := make(map[schema.FacetID]int, schema.NumFacets)
	for _, block := range design.Blocks {
		seenIDs := make(map[string]bool, schema.BlockSize)
		seenFacets := make(map[schema.FacetID]bool, schema.BlockSize)
		domains := make(map[schema.DomainID]bool, schema.BlockSize)
		minDes, maxDes := math.Inf(1), math.Inf(-1)

		for _, id := range block.StatementIDs {
			if id == "" {
				return contract.NewConfigError("block %d has fewer than %d statements", block.ID, schema.BlockSize)
			}
			if seenIDs[id] {
				return contract.NewConfigError("block %d repeats statement %s", block.ID, id)
			}
			seenIDs[id] = true

			stmt, ok := design.StatementByID(id)
			if !ok {
				return contract.NewConfigError("block %d references statement %s not in the design pool", block.ID, id)
			}
			if seenFacets[stmt.Facet] {
				return contract.NewConfigError("block %d repeats facet %s", block.ID, stmt.Facet)
			}
			seenFacets[stmt.Facet] = true
			domains[stmt.Domain()] = true
			exposure[stmt.Facet]++

			minDes = math.Min(minDes, stmt.Desirability)
			maxDes = math.Max(maxDes, stmt.Desirability)
		}

		if len(domains) < schema.MinDomainsPerBlock {
			return contract.NewConfigError("block %d spans %d domains, need at least %d", block.ID, len(domains), schema.MinDomainsPerBlock)
		}
		if maxDes-minDes > tolerance {
			return contract.NewConfigError("block %d desirability spread %.2f exceeds tolerance %.2f", block.ID, maxDes-minDes, tolerance)
		}
	}

	for _, facet := range schema.AllFacets {
		if exposure[facet] != design.ExposureTarget {
			return contract.NewConfigError("facet %s appears in %d blocks, expected %d", facet, exposure[facet], design.ExposureTarget)
		}
	}
	return nil
}
