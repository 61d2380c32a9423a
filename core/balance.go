package core

import (
	"math"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

// varianceMax is the population variance of the maximally unbalanced
// percentile vector [1,0,0,0] on the unit scale.
const varianceMax = 3.0 / 16.0

// ComputeBalance derives all three evenness indicators from the four domain
// percentiles. Pure and stateless; safe for any percentile vector in [0,100].
func ComputeBalance(percentiles [schema.NumDomains]float64) schema.BalanceMetrics {
	return schema.BalanceMetrics{
		DBI:             DBI(percentiles),
		RelativeEntropy: RelativeEntropy(percentiles),
		Gini:            Gini(percentiles),
	}
}

// DBI is the Domain Balance Index: 1 minus the variance of the unit-scaled
// percentiles relative to the variance of [1,0,0,0]. 1.0 means perfectly
// even. Vectors like [1,1,0,0] exceed the reference variance, so the result
// is clamped into [0,1].
func DBI(percentiles [schema.NumDomains]float64) float64 {
	var mean float64
	for _, p := range percentiles {
		mean += p / 100.0
	}
	mean /= schema.NumDomains

	var variance float64
	for _, p := range percentiles {
		d := p/100.0 - mean
		variance += d * d
	}
	variance /= schema.NumDomains

	return clamp01(1.0 - variance/varianceMax)
}

// RelativeEntropy is the Shannon entropy of the percentile vector normalized
// to a probability distribution, divided by ln(4). 1.0 means maximal
// evenness. An all-zero vector is treated as uniform by convention.
func RelativeEntropy(percentiles [schema.NumDomains]float64) float64 {
	var sum float64
	for _, p := range percentiles {
		sum += p
	}

	var h float64
	if sum == 0 {
		h = math.Log(schema.NumDomains) // uniform by convention
	} else {
		for _, p := range percentiles {
			q := p / sum
			if q > 0 { // 0*ln(0) = 0
				h -= q * math.Log(q)
			}
		}
	}

	return clamp01(h / math.Log(schema.NumDomains))
}

// Gini is the Gini coefficient of the four percentiles: the normalized mean
// absolute difference between all pairs. 0.0 means perfectly equal; an
// all-zero vector is defined as 0 by convention.
func Gini(percentiles [schema.NumDomains]float64) float64 {
	var sum float64
	for _, p := range percentiles {
		sum += p
	}
	if sum == 0 {
		return 0
	}

	var diffSum float64
	for i := range percentiles {
		for j := range percentiles {
			diffSum += math.Abs(percentiles[i] - percentiles[j])
		}
	}

	return clamp01(diffSum / (2 * schema.NumDomains * sum))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
