// Package schema has models, constants and weight tables for all parts of the
// strengths scoring core.
package schema

import "time"

// Statement is a single assessment statement in the bank. Its domain is
// derived from the facet via the fixed facet->domain mapping and is not
// stored separately.
type Statement struct {
	ID           string  `json:"id"`           // Unique statement identifier
	Text         string  `json:"text"`         // Statement text shown to the respondent
	Facet        FacetID `json:"facet"`        // The one facet this statement measures
	Desirability float64 `json:"desirability"` // Social-desirability rating (calibrated, roughly 1-7)
}

// Domain returns the higher-order domain this statement belongs to.
func (s Statement) Domain() DomainID {
	return FacetDomain[s.Facet]
}

// Block is an ordered group of exactly BlockSize distinct statements
// presented together. The respondent picks one "most like me" and one
// "least like me".
type Block struct {
	ID           int               `json:"id"`
	StatementIDs [BlockSize]string `json:"statement_ids"`
}

// BlockDesign is a complete, constraint-valid partition of a statement pool
// into blocks. Generated once per instrument version and reused across all
// respondents of that version.
type BlockDesign struct {
	Version        string      `json:"version"`
	Blocks         []Block     `json:"blocks"`
	Statements     []Statement `json:"statements"`      // The pool the design was built from
	ExposureTarget int         `json:"exposure_target"` // Blocks each facet appears in
	Approximate    bool        `json:"approximate"`     // True when only a heuristic solution was found
	Objective      float64     `json:"objective"`       // Achieved co-occurrence variance
}

// StatementByID returns the pool statement with the given id.
func (d *BlockDesign) StatementByID(id string) (Statement, bool) {
	for _, s := range d.Statements {
		if s.ID == id {
			return s, true
		}
	}
	return Statement{}, false
}

// BlockResponse records a respondent's most/least choice for one block.
type BlockResponse struct {
	BlockID int    `json:"block_id"`
	MostID  string `json:"most_id"`
	LeastID string `json:"least_id"`
}

// Session is one respondent's completed response set, as delivered by the
// external response collector.
type Session struct {
	SessionID string          `json:"session_id"`
	Responses []BlockResponse `json:"responses"`
}

// ItemParameter holds the frozen calibration values for one statement.
// Owned by the offline calibration pipeline; the scoring core only reads it.
type ItemParameter struct {
	StatementID    string  `json:"statement_id"`
	Location       float64 `json:"location"`       // Utility intercept (higher = more endorsable)
	Discrimination float64 `json:"discrimination"` // Loading of the facet theta on the utility
}

// CalibrationSet is a versioned, immutable bundle of statements and their
// item parameters. Loaded once and shared read-only across scoring calls;
// version switches swap the whole object, never edit it in place.
type CalibrationSet struct {
	Version    string                   `json:"version"`
	Statements []Statement              `json:"statements"`
	Params     map[string]ItemParameter `json:"params"` // Keyed by statement id
}

// StatementByID returns the calibrated statement with the given id.
func (c *CalibrationSet) StatementByID(id string) (Statement, bool) {
	for _, s := range c.Statements {
		if s.ID == id {
			return s, true
		}
	}
	return Statement{}, false
}

// NormTable is a versioned empirical reference distribution. Each entry is
// the sorted slice of reference-sample latent values for one facet or domain;
// percentiles come from rank lookup against it.
type NormTable struct {
	Version string                 `json:"version"`
	Facets  map[FacetID][]float64  `json:"facets"`
	Domains map[DomainID][]float64 `json:"domains"`
}

// FacetScore is the scored result for one facet.
type FacetScore struct {
	Facet      FacetID `json:"facet"`
	Theta      float64 `json:"theta"`
	StdErr     float64 `json:"std_err"`
	Percentile int     `json:"percentile"`
	Tier       Tier    `json:"tier"`
}

// DomainScore is the scored result for one domain.
type DomainScore struct {
	Domain     DomainID `json:"domain"`
	Eta        float64  `json:"eta"`
	StdErr     float64  `json:"std_err"`
	Percentile int      `json:"percentile"`
	Tier       Tier     `json:"tier"`
}

// BalanceMetrics holds the three evenness indicators computed from the four
// domain percentiles. Each value lies in [0,1].
type BalanceMetrics struct {
	DBI             float64 `json:"dbi"`              // 1.0 = perfectly even
	RelativeEntropy float64 `json:"relative_entropy"` // 1.0 = maximal evenness
	Gini            float64 `json:"gini"`             // 0.0 = perfectly equal
}

// TieredProfile is the immutable output of scoring one completed session.
// A recomputation produces a new object; nothing here is ever mutated.
type TieredProfile struct {
	SessionID          string         `json:"session_id"`
	CalibrationVersion string         `json:"calibration_version"`
	NormVersion        string         `json:"norm_version"`
	DesignVersion      string         `json:"design_version"`
	CreatedAt          time.Time      `json:"created_at"`
	Facets             []FacetScore   `json:"facets"`  // Grouped by domain, facet id as secondary sort
	Domains            []DomainScore  `json:"domains"` // In canonical domain order
	Balance            BalanceMetrics `json:"balance"`
	Flags              []QualityFlag  `json:"flags,omitempty"` // Non-fatal degradations, if any
	Iterations         int            `json:"iterations"`      // Estimator iterations used
}

// HasFlag reports whether the profile carries the given quality flag.
func (p *TieredProfile) HasFlag(flag QualityFlag) bool {
	for _, f := range p.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// StoreStatus summarizes the contents of a calibration store backend.
type StoreStatus struct {
	Backend             StoreBackend
	Location            string
	CalibrationVersions []string
	NormVersions        []string
	DesignVersions      []string
	ProfileCount        int
}
