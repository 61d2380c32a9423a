package schema

import "fmt"

// Broad personality factors that seed-weight tables may draw on.
const (
	FactorOpenness          SourceFactor = "openness"
	FactorConscientiousness SourceFactor = "conscientiousness"
	FactorExtraversion      SourceFactor = "extraversion"
	FactorAgreeableness     SourceFactor = "agreeableness"
	FactorStability         SourceFactor = "stability" // Reversed neuroticism
)

// SeedWeights maps each facet to the broad-factor weights used to warm-start
// the estimator from an optional screener profile. The table is versioned so
// weights can be audited and swapped without touching estimation code.
type SeedWeights map[FacetID]map[SourceFactor]float64

// DefaultSeedWeightsVersion is the seed-weight table used when no version is
// requested explicitly.
const DefaultSeedWeightsVersion = "v1"

// AllFactors lists the broad factors in canonical order.
var AllFactors = []SourceFactor{
	FactorOpenness, FactorConscientiousness, FactorExtraversion,
	FactorAgreeableness, FactorStability,
}

// seedWeightTables holds every published seed-weight table by version.
var seedWeightTables = map[string]SeedWeights{
	"v1": {
		FacetAchiever:       {FactorConscientiousness: 0.70, FactorExtraversion: 0.15, FactorStability: 0.15},
		FacetDiscipline:     {FactorConscientiousness: 0.85, FactorStability: 0.15},
		FacetResponsibility: {FactorConscientiousness: 0.60, FactorAgreeableness: 0.40},

		FacetActivator:     {FactorExtraversion: 0.65, FactorOpenness: 0.20, FactorStability: 0.15},
		FacetCommunication: {FactorExtraversion: 0.75, FactorOpenness: 0.25},
		FacetMaximizer:     {FactorConscientiousness: 0.40, FactorExtraversion: 0.35, FactorOpenness: 0.25},

		FacetEmpathy: {FactorAgreeableness: 0.80, FactorOpenness: 0.20},
		FacetHarmony: {FactorAgreeableness: 0.70, FactorStability: 0.30},
		FacetRelator: {FactorAgreeableness: 0.55, FactorExtraversion: 0.25, FactorStability: 0.20},

		FacetAnalytical: {FactorOpenness: 0.50, FactorConscientiousness: 0.50},
		FacetIdeation:   {FactorOpenness: 0.90, FactorExtraversion: 0.10},
		FacetStrategic:  {FactorOpenness: 0.65, FactorConscientiousness: 0.35},
	},
}

// GetSeedWeights returns the seed-weight table for the given version.
func GetSeedWeights(version string) (SeedWeights, error) {
	table, ok := seedWeightTables[version]
	if !ok {
		return nil, fmt.Errorf("unknown seed-weight version %q", version)
	}
	return table, nil
}

// SeedThetas converts screener factor scores (standardized, mean 0) into
// initial facet theta values using the weight table. Facets with no usable
// factor information seed at 0, the prior mean.
func (w SeedWeights) SeedThetas(factors map[SourceFactor]float64) map[FacetID]float64 {
	seeds := make(map[FacetID]float64, NumFacets)
	for _, facet := range AllFacets {
		var theta, total float64
		for factor, weight := range w[facet] {
			score, ok := factors[factor]
			if !ok {
				continue
			}
			theta += weight * score
			total += weight
		}
		if total > 0 {
			seeds[facet] = theta / total
		} else {
			seeds[facet] = 0
		}
	}
	return seeds
}
