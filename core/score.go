package core

import (
	"errors"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core/irt"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core/norm"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

// Scorer scores completed sessions against one frozen instrument version.
// All referenced data is immutable after construction, so a single Scorer is
// safe for any number of concurrent ScoreSession calls.
type Scorer struct {
	design *schema.BlockDesign
	calib  *schema.CalibrationSet
	conv   *norm.Converter

	maxIterations int
	tolerance     float64
	seedWeights   schema.SeedWeights
}

// NewScorer validates the instrument artifacts and prepares a scorer. The
// cfg may be nil, in which case all estimator defaults apply and no seed
// weights are loaded.
func NewScorer(design *schema.BlockDesign, calib *schema.CalibrationSet, norms *schema.NormTable, cfg *contract.Config) (*Scorer, error) {
	if design == nil || len(design.Blocks) == 0 {
		return nil, contract.NewConfigError("block design is empty")
	}
	if calib == nil || len(calib.Params) == 0 {
		return nil, contract.NewConfigError("calibration set is empty")
	}

	conv, err := norm.NewConverter(norms)
	if err != nil {
		return nil, err
	}

	s := &Scorer{design: design, calib: calib, conv: conv}
	if cfg != nil {
		s.maxIterations = cfg.MaxIterations
		s.tolerance = cfg.Tolerance
		if cfg.SeedWeightsVersion != "" {
			weights, err := schema.GetSeedWeights(cfg.SeedWeightsVersion)
			if err != nil {
				return nil, contract.NewConfigError("%v", err)
			}
			s.seedWeights = weights
		}
	}
	return s, nil
}

// ScoreSession scores one completed session. The optional factors argument
// carries standardized screener factor scores used only to warm-start the
// estimator; it never changes the converged solution, only how fast it is
// reached. The returned profile is a freshly allocated immutable snapshot.
func (s *Scorer) ScoreSession(session *schema.Session, factors map[schema.SourceFactor]float64) (*schema.TieredProfile, error) {
	var seeds map[schema.FacetID]float64
	if len(factors) > 0 && s.seedWeights != nil {
		seeds = s.seedWeights.SeedThetas(factors)
	}

	est, err := irt.Fit(&irt.Request{
		Design:        s.design,
		Calib:         s.calib,
		Responses:     session.Responses,
		Seeds:         seeds,
		MaxIterations: s.maxIterations,
		Tolerance:     s.tolerance,
	})
	if err != nil {
		var ie *contract.IncompleteDataError
		if errors.As(err, &ie) {
			ie.SessionID = session.SessionID
		}
		return nil, err
	}

	profile := &schema.TieredProfile{
		SessionID:          session.SessionID,
		CalibrationVersion: s.calib.Version,
		NormVersion:        s.conv.Version(),
		DesignVersion:      s.design.Version,
		CreatedAt:          time.Now().UTC(),
		Iterations:         est.Iterations,
	}

	// Facet scores in canonical order: grouped by domain, facet id ascending.
	for _, facet := range schema.AllFacets {
		percentile, err := s.conv.FacetPercentile(facet, est.Thetas[facet])
		if err != nil {
			return nil, err
		}
		profile.Facets = append(profile.Facets, schema.FacetScore{
			Facet:      facet,
			Theta:      est.Thetas[facet],
			StdErr:     est.StdErrs[facet],
			Percentile: percentile,
			Tier:       schema.ClassifyTier(percentile),
		})
	}

	var domainPercentiles [schema.NumDomains]float64
	for i, domain := range schema.AllDomains {
		percentile, err := s.conv.DomainPercentile(domain, est.Etas[domain])
		if err != nil {
			return nil, err
		}
		domainPercentiles[i] = float64(percentile)
		profile.Domains = append(profile.Domains, schema.DomainScore{
			Domain:     domain,
			Eta:        est.Etas[domain],
			StdErr:     est.EtaErrs[domain],
			Percentile: percentile,
			Tier:       schema.ClassifyTier(percentile),
		})
	}

	profile.Balance = ComputeBalance(domainPercentiles)

	if !est.Converged {
		profile.Flags = append(profile.Flags, schema.FlagNonConverged)
	}
	if s.design.Approximate {
		profile.Flags = append(profile.Flags, schema.FlagApproximateDesign)
	}
	return profile, nil
}
