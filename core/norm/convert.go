// Package norm converts latent trait values into normative percentiles using
// versioned empirical reference distributions.
package norm

import (
	"math"
	"sort"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

// Converter maps theta/eta values to integer percentiles against one frozen
// norm version. It holds sorted copies of the reference samples, so lookups
// are read-only and safe to share across concurrent scoring calls.
type Converter struct {
	version string
	facets  map[schema.FacetID][]float64
	domains map[schema.DomainID][]float64
}

// NewConverter validates a norm table and prepares it for lookup. Every facet
// and every domain must have a non-empty reference sample; the samples are
// copied and sorted once here.
func NewConverter(table *schema.NormTable) (*Converter, error) {
	if table == nil {
		return nil, contract.NewConfigError("norm table is nil")
	}

	c := &Converter{
		version: table.Version,
		facets:  make(map[schema.FacetID][]float64, schema.NumFacets),
		domains: make(map[schema.DomainID][]float64, schema.NumDomains),
	}

	for _, f := range schema.AllFacets {
		refs, ok := table.Facets[f]
		if !ok || len(refs) == 0 {
			return nil, contract.NewConfigError("norm version %q has no reference sample for facet %s", table.Version, f)
		}
		c.facets[f] = sortedCopy(refs)
	}
	for _, d := range schema.AllDomains {
		refs, ok := table.Domains[d]
		if !ok || len(refs) == 0 {
			return nil, contract.NewConfigError("norm version %q has no reference sample for domain %s", table.Version, d)
		}
		c.domains[d] = sortedCopy(refs)
	}
	return c, nil
}

// Version returns the norm version this converter was built from.
func (c *Converter) Version() string {
	return c.version
}

// FacetPercentile converts a facet theta into a percentile in [0,100].
func (c *Converter) FacetPercentile(f schema.FacetID, theta float64) (int, error) {
	refs, ok := c.facets[f]
	if !ok {
		return 0, contract.NewConfigError("norm version %q has no facet %s", c.version, f)
	}
	return percentileRank(refs, theta), nil
}

// DomainPercentile converts a domain eta into a percentile in [0,100].
func (c *Converter) DomainPercentile(d schema.DomainID, eta float64) (int, error) {
	refs, ok := c.domains[d]
	if !ok {
		return 0, contract.NewConfigError("norm version %q has no domain %s", c.version, d)
	}
	return percentileRank(refs, eta), nil
}

// percentileRank is the midpoint empirical percentile: (below + equal/2) / n.
// Values outside the reference range clamp to 0 and 100, never out-of-range.
// The mapping is monotonic non-decreasing in x by construction.
func percentileRank(refs []float64, x float64) int {
	n := len(refs)
	if x < refs[0] {
		return 0
	}
	if x > refs[n-1] {
		return 100
	}

	below := sort.SearchFloat64s(refs, x) // first index >= x
	equalEnd := sort.Search(n, func(i int) bool { return refs[i] > x })
	equal := equalEnd - below

	rank := (float64(below) + float64(equal)/2.0) / float64(n) * 100.0
	p := int(math.Round(rank))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}

// NormalReference builds a synthetic reference sample of size n drawn as
// evenly spaced quantiles of a normal distribution. Used for seeding demo
// norms and for benchmarks; production norms come from the calibration batch.
func NormalReference(n int, mean, sd float64) []float64 {
	refs := make([]float64, n)
	for i := range n {
		p := (float64(i) + 0.5) / float64(n)
		refs[i] = mean + sd*math.Sqrt2*math.Erfinv(2*p-1)
	}
	return refs
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}
