package design

import (
	"fmt"
	"testing"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool builds a pool with `perFacet` statements per facet, desirability
// clustered tightly around 4.0 so constraint-valid designs exist.
func testPool(perFacet int) []schema.Statement {
	var pool []schema.Statement
	for fi, facet := range schema.AllFacets {
		for c := range perFacet {
			pool = append(pool, schema.Statement{
				ID:           fmt.Sprintf("%s-%d", facet, c),
				Text:         fmt.Sprintf("statement %d for %s", c, facet),
				Facet:        facet,
				Desirability: 4.0 + 0.05*float64((fi+c)%5),
			})
		}
	}
	return pool
}

// TestGenerateExactSmallPool checks the single-exposure path solves exactly.
func TestGenerateExactSmallPool(t *testing.T) {
	design, err := Generate(&Request{
		Pool:           testPool(1),
		Version:        "v-test",
		ExposureTarget: 1,
		Budget:         2 * time.Second,
		Chains:         1,
		Seed:           7,
	})
	require.NoError(t, err)

	assert.False(t, design.Approximate, "exhaustive solve must not be flagged approximate")
	assert.Len(t, design.Blocks, 3)
	assert.Equal(t, 1, design.ExposureTarget)
	assert.NoError(t, Check(design, contract.DefaultDesirabilityTolerance))
}

// TestGenerateHeuristicPool checks a multi-exposure design anneals into a
// valid, flagged-approximate design.
func TestGenerateHeuristicPool(t *testing.T) {
	design, err := Generate(&Request{
		Pool:           testPool(2),
		Version:        "v-test",
		ExposureTarget: 2,
		Budget:         500 * time.Millisecond,
		Chains:         2,
		Seed:           42,
	})
	require.NoError(t, err)

	assert.True(t, design.Approximate)
	assert.GreaterOrEqual(t, design.Objective, 0.0)
	assert.Len(t, design.Blocks, 6)
	assert.NoError(t, Check(design, contract.DefaultDesirabilityTolerance))
}

// TestGenerateSelectsTightDesirabilityWindow checks pool statements with
// outlier desirability are left out when enough alternatives exist.
func TestGenerateSelectsTightDesirabilityWindow(t *testing.T) {
	pool := testPool(2)
	pool = append(pool, schema.Statement{
		ID:           "achiever-outlier",
		Facet:        schema.FacetAchiever,
		Desirability: 9.9,
	})

	design, err := Generate(&Request{
		Pool:           pool,
		Version:        "v-test",
		ExposureTarget: 2,
		Budget:         500 * time.Millisecond,
		Chains:         1,
		Seed:           3,
	})
	require.NoError(t, err)

	_, found := design.StatementByID("achiever-outlier")
	assert.False(t, found)
}

// TestGenerateShortFacet checks the failure names the short facet.
func TestGenerateShortFacet(t *testing.T) {
	pool := testPool(1)
	kept := pool[:0]
	for _, s := range pool {
		if s.Facet != schema.FacetHarmony {
			kept = append(kept, s)
		}
	}

	_, err := Generate(&Request{Pool: kept, ExposureTarget: 1, Chains: 1, Budget: time.Second})
	require.Error(t, err)
	assert.True(t, contract.IsConfigError(err))
	assert.Contains(t, err.Error(), "harmony")
}

// TestGenerateInfeasible checks an unsatisfiable pool fails with an
// infeasibility error instead of an invalid design.
func TestGenerateInfeasible(t *testing.T) {
	var pool []schema.Statement
	for i, facet := range schema.AllFacets {
		pool = append(pool, schema.Statement{
			ID:           string(facet) + "-0",
			Facet:        facet,
			Desirability: float64(i) * 10, // no 4 statements can be within tolerance
		})
	}

	_, err := Generate(&Request{
		Pool:                  pool,
		ExposureTarget:        1,
		DesirabilityTolerance: 1.0,
		Budget:                200 * time.Millisecond,
		Chains:                1,
	})
	require.Error(t, err)
	assert.True(t, contract.IsConfigError(err))
	assert.Contains(t, err.Error(), "no constraint-satisfying design")
}

// TestCheckViolations covers the validator against hand-built bad designs.
func TestCheckViolations(t *testing.T) {
	base, err := Generate(&Request{
		Pool:           testPool(1),
		ExposureTarget: 1,
		Budget:         2 * time.Second,
		Chains:         1,
		Seed:           11,
	})
	require.NoError(t, err)

	t.Run("valid design passes", func(t *testing.T) {
		assert.NoError(t, Check(base, contract.DefaultDesirabilityTolerance))
	})

	t.Run("repeated statement", func(t *testing.T) {
		bad := *base
		bad.Blocks = append([]schema.Block{}, base.Blocks...)
		ids := bad.Blocks[0].StatementIDs
		ids[1] = ids[0]
		bad.Blocks[0] = schema.Block{ID: bad.Blocks[0].ID, StatementIDs: ids}
		assert.ErrorContains(t, Check(&bad, 1.0), "repeats statement")
	})

	t.Run("unknown statement", func(t *testing.T) {
		bad := *base
		bad.Blocks = append([]schema.Block{}, base.Blocks...)
		ids := bad.Blocks[0].StatementIDs
		ids[0] = "ghost"
		bad.Blocks[0] = schema.Block{ID: bad.Blocks[0].ID, StatementIDs: ids}
		assert.ErrorContains(t, Check(&bad, 1.0), "not in the design pool")
	})

	t.Run("wrong exposure", func(t *testing.T) {
		bad := *base
		bad.Blocks = base.Blocks[:2]
		assert.ErrorContains(t, Check(&bad, 1.0), "expected 1")
	})

	t.Run("empty design", func(t *testing.T) {
		assert.Error(t, Check(&schema.BlockDesign{}, 1.0))
	})
}

// TestGenerateBlockProperties pins the per-block invariants the rest of the
// pipeline relies on.
func TestGenerateBlockProperties(t *testing.T) {
	design, err := Generate(&Request{
		Pool:           testPool(3),
		ExposureTarget: 3,
		Budget:         500 * time.Millisecond,
		Chains:         2,
		Seed:           99,
	})
	require.NoError(t, err)
	assert.Len(t, design.Blocks, 9)

	for _, block := range design.Blocks {
		ids := make(map[string]bool)
		domains := make(map[schema.DomainID]bool)
		for _, id := range block.StatementIDs {
			ids[id] = true
			stmt, ok := design.StatementByID(id)
			require.True(t, ok)
			domains[stmt.Domain()] = true
		}
		assert.Len(t, ids, schema.BlockSize, "block %d statement ids must be distinct", block.ID)
		assert.GreaterOrEqual(t, len(domains), schema.MinDomainsPerBlock, "block %d", block.ID)
	}
}
