package irt

import (
	"fmt"
	"testing"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testInstrument builds a design with `repeats` passes over the 12 facets
// (three blocks per pass, each spanning all four domains) and a matching
// calibration set with unit discriminations and zero locations.
func testInstrument(repeats int) (*schema.BlockDesign, *schema.CalibrationSet) {
	calib := &schema.CalibrationSet{
		Version: "test",
		Params:  make(map[string]schema.ItemParameter),
	}
	design := &schema.BlockDesign{Version: "test", ExposureTarget: repeats}

	blockID := 0
	for rep := range repeats {
		// Facet i of each domain goes into block i of this pass.
		for i := range 3 {
			var ids [schema.BlockSize]string
			for d, domain := range schema.AllDomains {
				facet := schema.DomainFacets(domain)[i]
				id := fmt.Sprintf("%s-%d", facet, rep)
				ids[d] = id
				stmt := schema.Statement{ID: id, Text: string(facet), Facet: facet, Desirability: 4.0}
				calib.Statements = append(calib.Statements, stmt)
				calib.Params[id] = schema.ItemParameter{StatementID: id, Discrimination: 1.0, Location: 0.0}
			}
			design.Blocks = append(design.Blocks, schema.Block{ID: blockID, StatementIDs: ids})
			design.Statements = append(design.Statements, calib.Statements[len(calib.Statements)-4:]...)
			blockID++
		}
	}
	return design, calib
}

// respond generates a response per block, picking the statement whose facet
// domain matches most as "most like me" and least as "least like me".
func respond(design *schema.BlockDesign, calib *schema.CalibrationSet, most, least schema.DomainID) []schema.BlockResponse {
	responses := make([]schema.BlockResponse, 0, len(design.Blocks))
	for _, block := range design.Blocks {
		var mostID, leastID string
		for _, id := range block.StatementIDs {
			stmt, _ := calib.StatementByID(id)
			switch stmt.Domain() {
			case most:
				mostID = id
			case least:
				leastID = id
			}
		}
		responses = append(responses, schema.BlockResponse{BlockID: block.ID, MostID: mostID, LeastID: leastID})
	}
	return responses
}

// TestFitDirectionalPattern checks a respondent who always prefers one domain
// and always rejects another ends up ordered accordingly.
func TestFitDirectionalPattern(t *testing.T) {
	design, calib := testInstrument(4)
	responses := respond(design, calib, schema.DomainExecuting, schema.DomainThinking)

	est, err := Fit(&Request{Design: design, Calib: calib, Responses: responses})
	require.NoError(t, err)
	assert.True(t, est.Converged)
	assert.LessOrEqual(t, est.Iterations, contract.DefaultMaxIterations)

	for _, f := range schema.DomainFacets(schema.DomainExecuting) {
		assert.Positive(t, est.Thetas[f], "facet %s", f)
	}
	for _, f := range schema.DomainFacets(schema.DomainThinking) {
		assert.Negative(t, est.Thetas[f], "facet %s", f)
	}
	assert.Greater(t, est.Etas[schema.DomainExecuting], est.Etas[schema.DomainThinking])

	// The two middle domains should sit between the extremes.
	assert.Greater(t, est.Etas[schema.DomainExecuting], est.Etas[schema.DomainInfluencing])
	assert.Less(t, est.Etas[schema.DomainThinking], est.Etas[schema.DomainRelationship])
}

// TestFitIdempotent checks the solve is fully deterministic for fixed inputs.
func TestFitIdempotent(t *testing.T) {
	design, calib := testInstrument(3)
	responses := respond(design, calib, schema.DomainInfluencing, schema.DomainRelationship)

	first, err := Fit(&Request{Design: design, Calib: calib, Responses: responses})
	require.NoError(t, err)
	second, err := Fit(&Request{Design: design, Calib: calib, Responses: responses})
	require.NoError(t, err)

	assert.Equal(t, first.Thetas, second.Thetas)
	assert.Equal(t, first.StdErrs, second.StdErrs)
	assert.Equal(t, first.Etas, second.Etas)
	assert.Equal(t, first.Iterations, second.Iterations)
}

// TestFitMissingBlocks checks the incomplete-data failure names the blocks.
func TestFitMissingBlocks(t *testing.T) {
	design, calib := testInstrument(2)
	responses := respond(design, calib, schema.DomainExecuting, schema.DomainThinking)
	responses = responses[:len(responses)-2] // drop the last two blocks

	_, err := Fit(&Request{Design: design, Calib: calib, Responses: responses})
	require.Error(t, err)
	assert.True(t, contract.IsIncompleteDataError(err))

	var ie *contract.IncompleteDataError
	require.ErrorAs(t, err, &ie)
	assert.ElementsMatch(t, []int{4, 5}, ie.MissingBlocks)
}

// TestFitResponseInvariants rejects malformed picks.
func TestFitResponseInvariants(t *testing.T) {
	design, calib := testInstrument(1)
	responses := respond(design, calib, schema.DomainExecuting, schema.DomainThinking)

	t.Run("most equals least", func(t *testing.T) {
		bad := append([]schema.BlockResponse{}, responses...)
		bad[0].LeastID = bad[0].MostID
		_, err := Fit(&Request{Design: design, Calib: calib, Responses: bad})
		assert.ErrorContains(t, err, "most and least")
	})

	t.Run("pick outside block", func(t *testing.T) {
		bad := append([]schema.BlockResponse{}, responses...)
		bad[1].MostID = "nope"
		_, err := Fit(&Request{Design: design, Calib: calib, Responses: bad})
		assert.ErrorContains(t, err, "not in the block")
	})

	t.Run("duplicate block response", func(t *testing.T) {
		bad := append([]schema.BlockResponse{}, responses...)
		bad = append(bad, bad[0])
		_, err := Fit(&Request{Design: design, Calib: calib, Responses: bad})
		assert.ErrorContains(t, err, "duplicate response")
	})

	t.Run("missing item parameters", func(t *testing.T) {
		stripped := &schema.CalibrationSet{
			Version:    calib.Version,
			Statements: calib.Statements,
			Params:     map[string]schema.ItemParameter{},
		}
		_, err := Fit(&Request{Design: design, Calib: stripped, Responses: responses})
		assert.True(t, contract.IsConfigError(err))
	})
}

// TestFitIterationCap checks hitting the cap degrades instead of failing:
// the last iterate comes back with Converged=false and intervals at least as
// wide as the prior's, never narrower than the converged solve's.
func TestFitIterationCap(t *testing.T) {
	design, calib := testInstrument(4)
	responses := respond(design, calib, schema.DomainExecuting, schema.DomainThinking)

	capped, err := Fit(&Request{Design: design, Calib: calib, Responses: responses, MaxIterations: 1})
	require.NoError(t, err)
	assert.False(t, capped.Converged)
	assert.Equal(t, 1, capped.Iterations)
	assert.Len(t, capped.Thetas, schema.NumFacets)

	full, err := Fit(&Request{Design: design, Calib: calib, Responses: responses})
	require.NoError(t, err)
	require.True(t, full.Converged)

	for _, f := range schema.AllFacets {
		assert.GreaterOrEqual(t, capped.StdErrs[f], 1.0, "facet %s", f)
		assert.Greater(t, capped.StdErrs[f], full.StdErrs[f], "facet %s", f)
	}
	for _, d := range schema.AllDomains {
		assert.Greater(t, capped.EtaErrs[d], full.EtaErrs[d], "domain %s", d)
	}
}

// TestFitUninformedFacetWidensError checks a facet absent from every block
// still gets a point estimate, with a clearly wider standard error.
func TestFitUninformedFacetWidensError(t *testing.T) {
	design, calib := testInstrument(3)

	// Remove every block containing strategic statements from the design.
	var kept []schema.Block
	for _, block := range design.Blocks {
		contains := false
		for _, id := range block.StatementIDs {
			stmt, _ := calib.StatementByID(id)
			if stmt.Facet == schema.FacetStrategic {
				contains = true
			}
		}
		if !contains {
			kept = append(kept, block)
		}
	}
	design.Blocks = kept
	responses := respond(design, calib, schema.DomainExecuting, schema.DomainInfluencing)

	est, err := Fit(&Request{Design: design, Calib: calib, Responses: responses})
	require.NoError(t, err)

	// Prior-only estimate: centered, with the prior standard error.
	assert.Zero(t, est.Thetas[schema.FacetStrategic])
	assert.InDelta(t, 1.0, est.StdErrs[schema.FacetStrategic], 0.001)
	assert.Less(t, est.StdErrs[schema.FacetAchiever], est.StdErrs[schema.FacetStrategic])
}

// TestFitSeedsWarmStart checks a warm start lands on the same solution.
func TestFitSeedsWarmStart(t *testing.T) {
	design, calib := testInstrument(4)
	responses := respond(design, calib, schema.DomainExecuting, schema.DomainThinking)

	cold, err := Fit(&Request{Design: design, Calib: calib, Responses: responses})
	require.NoError(t, err)

	weights, err := schema.GetSeedWeights(schema.DefaultSeedWeightsVersion)
	require.NoError(t, err)
	seeds := weights.SeedThetas(map[schema.SourceFactor]float64{
		schema.FactorConscientiousness: 1.0,
		schema.FactorOpenness:          -1.0,
	})

	warm, err := Fit(&Request{Design: design, Calib: calib, Responses: responses, Seeds: seeds})
	require.NoError(t, err)
	require.True(t, warm.Converged)

	for _, f := range schema.AllFacets {
		assert.InDelta(t, cold.Thetas[f], warm.Thetas[f], 0.01, "facet %s", f)
	}
}

// BenchmarkFit benchmarks a full solve on a four-exposure instrument.
func BenchmarkFit(b *testing.B) {
	design, calib := testInstrument(4)
	responses := respond(design, calib, schema.DomainExecuting, schema.DomainThinking)
	req := &Request{Design: design, Calib: calib, Responses: responses}

	for b.Loop() {
		if _, err := Fit(req); err != nil {
			b.Fatal(err)
		}
	}
}
