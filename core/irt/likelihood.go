package irt

import (
	"math"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

// item is one statement within a block, resolved against the calibration set.
type item struct {
	id    string
	facet int // canonical facet index
	disc  float64
	loc   float64
}

// observation is one block's items plus the respondent's most/least picks,
// expressed as indices into items.
type observation struct {
	items [schema.BlockSize]item
	most  int
	least int
}

// softmax fills p with the normalized exponentials of u, using the max-shift
// trick for numeric stability. Entries where mask is false are excluded.
func softmax(u, p []float64, mask []bool) {
	maxU := math.Inf(-1)
	for i, v := range u {
		if mask[i] && v > maxU {
			maxU = v
		}
	}

	var sum float64
	for i, v := range u {
		if !mask[i] {
			p[i] = 0
			continue
		}
		p[i] = math.Exp(v - maxU)
		sum += p[i]
	}
	for i := range p {
		p[i] /= sum
	}
}

// accumulate adds one observation's contribution to the gradient and the
// observed-information diagonal of the most/least choice likelihood.
//
// The "most like me" pick is a softmax over the block's four latent
// utilities; "least like me" is a softmax over the negated utilities of the
// three remaining statements. The per-facet information term is the variance
// of the facet-restricted discrimination under the choice distribution.
func accumulate(obs *observation, theta []float64, grad, info []float64) {
	var u [schema.BlockSize]float64
	var p [schema.BlockSize]float64
	var mask [schema.BlockSize]bool

	for i, it := range obs.items {
		u[i] = it.disc*theta[it.facet] + it.loc
		mask[i] = true
	}

	// Most pick: softmax over all four.
	softmax(u[:], p[:], mask[:])
	addChoiceTerms(obs, p[:], mask[:], obs.most, +1, grad, info)

	// Least pick: softmax over negated utilities of the remaining three.
	var v [schema.BlockSize]float64
	for i := range u {
		v[i] = -u[i]
	}
	mask[obs.most] = false
	softmax(v[:], p[:], mask[:])
	addChoiceTerms(obs, p[:], mask[:], obs.least, -1, grad, info)
}

// addChoiceTerms adds the gradient and information contribution of a single
// categorical choice. sign is +1 for the most pick (utilities as-is) and -1
// for the least pick (negated utilities).
func addChoiceTerms(obs *observation, p []float64, mask []bool, chosen int, sign float64, grad, info []float64) {
	// Group the effective coefficients by facet. A block never repeats a
	// facet, but grouping keeps the math correct regardless.
	var g1 [schema.NumFacets]float64 // E[coef * indicator(facet)]
	var g2 [schema.NumFacets]float64 // E[coef^2 * indicator(facet)]
	var seen [schema.NumFacets]bool

	for i, it := range obs.items {
		if !mask[i] {
			continue
		}
		coef := sign * it.disc

		indicator := 0.0
		if i == chosen {
			indicator = 1.0
		}
		grad[it.facet] += coef * (indicator - p[i])

		seen[it.facet] = true
		g1[it.facet] += coef * p[i]
		g2[it.facet] += coef * coef * p[i]
	}

	for f, ok := range seen {
		if !ok {
			continue
		}
		term := g2[f] - g1[f]*g1[f]
		if term > 0 {
			info[f] += term
		}
	}
}
