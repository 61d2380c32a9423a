// Package irt jointly estimates the 12 facet thetas and 4 domain etas from a
// respondent's forced-choice block responses.
//
// The model is a comparative-judgment one: each statement's latent utility is
// its discrimination times the respondent's theta on that statement's facet,
// plus its calibrated location. Within a block the "most like me" pick is a
// logistic-link choice of the highest utility among the four statements, and
// "least like me" is the symmetric choice of the lowest utility among the
// remaining three. Thetas are found by maximum a posteriori estimation under
// a standard-normal prior with a bounded Newton iteration; domain etas are a
// deterministic precision-weighted aggregate of the three member facet thetas,
// computed after the facet solve.
package irt

import (
	"fmt"
	"math"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

// maxStep bounds a single Newton update so early iterations with poor
// curvature estimates cannot overshoot.
const maxStep = 1.0

// priorStdErr is the standard error of the standard-normal prior alone. A
// solve that hits the iteration cap reports intervals no narrower than this.
const priorStdErr = 1.0

// Request bundles everything one estimation needs. All referenced data is
// read-only; concurrent Fit calls may share the same design and calibration.
type Request struct {
	Design    *schema.BlockDesign
	Calib     *schema.CalibrationSet
	Responses []schema.BlockResponse

	// Seeds optionally warm-starts the solve, e.g. from a screener profile
	// via schema.SeedWeights. Missing facets start at the prior mean.
	Seeds map[schema.FacetID]float64

	MaxIterations int     // Hard iteration cap; 0 means the default
	Tolerance     float64 // Convergence tolerance on the theta vector; 0 means the default
}

// Estimate is the solved latent profile for one respondent.
type Estimate struct {
	Thetas  map[schema.FacetID]float64
	StdErrs map[schema.FacetID]float64
	Etas    map[schema.DomainID]float64
	EtaErrs map[schema.DomainID]float64

	Converged  bool
	Iterations int
}

// Fit estimates the latent profile from a complete response set. A response
// set missing blocks the design requires yields an IncompleteDataError; a
// solve that hits the iteration cap still returns its last iterate with
// Converged=false and standard errors widened to at least priorStdErr so
// downstream processing can continue degraded.
func Fit(req *Request) (*Estimate, error) {
	maxIter := req.MaxIterations
	if maxIter <= 0 {
		maxIter = contract.DefaultMaxIterations
	}
	tol := req.Tolerance
	if tol <= 0 {
		tol = contract.DefaultTolerance
	}

	obs, err := buildObservations(req)
	if err != nil {
		return nil, err
	}

	theta := make([]float64, schema.NumFacets)
	for f, seed := range req.Seeds {
		if idx := schema.FacetIndex(f); idx >= 0 {
			theta[idx] = seed
		}
	}

	grad := make([]float64, schema.NumFacets)
	info := make([]float64, schema.NumFacets)

	converged := false
	iterations := 0
	for iter := 1; iter <= maxIter; iter++ {
		iterations = iter
		for f := range schema.NumFacets {
			grad[f] = -theta[f] // standard-normal prior
			info[f] = 0
		}
		for i := range obs {
			accumulate(&obs[i], theta, grad, info)
		}

		maxDelta := 0.0
		for f := range schema.NumFacets {
			delta := grad[f] / (info[f] + 1.0) // +1 from the prior curvature
			if delta > maxStep {
				delta = maxStep
			} else if delta < -maxStep {
				delta = -maxStep
			}
			theta[f] += delta
			if d := math.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			converged = true
			break
		}
	}

	// Recompute curvature at the final iterate for the standard errors. A
	// facet the responses never inform keeps info=0 and gets the prior-only
	// standard error of 1, substantially wider than any informed facet.
	for f := range schema.NumFacets {
		grad[f] = -theta[f]
		info[f] = 0
	}
	for i := range obs {
		accumulate(&obs[i], theta, grad, info)
	}

	est := &Estimate{
		Thetas:     make(map[schema.FacetID]float64, schema.NumFacets),
		StdErrs:    make(map[schema.FacetID]float64, schema.NumFacets),
		Etas:       make(map[schema.DomainID]float64, schema.NumDomains),
		EtaErrs:    make(map[schema.DomainID]float64, schema.NumDomains),
		Converged:  converged,
		Iterations: iterations,
	}
	for f, id := range schema.AllFacets {
		est.Thetas[id] = theta[f]
		se := 1.0 / math.Sqrt(info[f]+1.0)
		if !converged && se < priorStdErr {
			// The curvature at a non-stationary iterate overstates precision.
			se = priorStdErr
		}
		est.StdErrs[id] = se
	}
	aggregateDomains(est)
	return est, nil
}

// aggregateDomains derives each domain eta as the precision-weighted mean of
// its three facet thetas, with the combined precision giving the eta error.
func aggregateDomains(est *Estimate) {
	for _, d := range schema.AllDomains {
		var weighted, totalPrecision float64
		for _, f := range schema.DomainFacets(d) {
			se := est.StdErrs[f]
			precision := 1.0 / (se * se)
			weighted += precision * est.Thetas[f]
			totalPrecision += precision
		}
		est.Etas[d] = weighted / totalPrecision
		est.EtaErrs[d] = 1.0 / math.Sqrt(totalPrecision)
	}
}

// buildObservations resolves responses against the design and calibration,
// checking completeness and per-response invariants.
func buildObservations(req *Request) ([]observation, error) {
	if req.Design == nil || len(req.Design.Blocks) == 0 {
		return nil, contract.NewConfigError("block design is empty")
	}
	if req.Calib == nil {
		return nil, contract.NewConfigError("calibration set is nil")
	}

	byBlock := make(map[int]schema.BlockResponse, len(req.Responses))
	for _, r := range req.Responses {
		if _, dup := byBlock[r.BlockID]; dup {
			return nil, fmt.Errorf("duplicate response for block %d", r.BlockID)
		}
		byBlock[r.BlockID] = r
	}

	var missing []int
	obs := make([]observation, 0, len(req.Design.Blocks))
	for _, block := range req.Design.Blocks {
		resp, ok := byBlock[block.ID]
		if !ok {
			missing = append(missing, block.ID)
			continue
		}
		o, err := buildObservation(req.Calib, block, resp)
		if err != nil {
			return nil, err
		}
		obs = append(obs, o)
	}
	if len(missing) > 0 {
		return nil, &contract.IncompleteDataError{MissingBlocks: missing}
	}
	return obs, nil
}

// buildObservation resolves one block's statements and the respondent's picks.
func buildObservation(calib *schema.CalibrationSet, block schema.Block, resp schema.BlockResponse) (observation, error) {
	var o observation
	o.most, o.least = -1, -1

	if resp.MostID == resp.LeastID {
		return o, fmt.Errorf("block %d: most and least picks are both %q", block.ID, resp.MostID)
	}

	for i, id := range block.StatementIDs {
		stmt, ok := calib.StatementByID(id)
		if !ok {
			return o, contract.NewConfigError("calibration %q has no statement %s (block %d)", calib.Version, id, block.ID)
		}
		param, ok := calib.Params[id]
		if !ok {
			return o, contract.NewConfigError("calibration %q has no item parameters for statement %s", calib.Version, id)
		}
		facet := schema.FacetIndex(stmt.Facet)
		if facet < 0 {
			return o, contract.NewConfigError("statement %s has unknown facet %q", id, stmt.Facet)
		}
		o.items[i] = item{id: id, facet: facet, disc: param.Discrimination, loc: param.Location}

		if id == resp.MostID {
			o.most = i
		}
		if id == resp.LeastID {
			o.least = i
		}
	}

	if o.most < 0 {
		return o, fmt.Errorf("block %d: most pick %q is not in the block", block.ID, resp.MostID)
	}
	if o.least < 0 {
		return o, fmt.Errorf("block %d: least pick %q is not in the block", block.ID, resp.LeastID)
	}
	return o, nil
}
