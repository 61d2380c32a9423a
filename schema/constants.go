package schema

// Custom string types for type safety.
type (
	// FacetID identifies one of the 12 fine-grained talent facets.
	FacetID string

	// DomainID identifies one of the 4 higher-order domains.
	DomainID string

	// Tier is the categorical strength label derived from a percentile.
	Tier string

	// QualityFlag marks a non-fatal degradation attached to a result.
	QualityFlag string

	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the database backend for the calibration store.
	StoreBackend string

	// SourceFactor is a broad personality factor used by the seed-weight table.
	SourceFactor string
)

// Structural constants of the instrument.
const (
	BlockSize  = 4  // Statements per block
	NumFacets  = 12 // Fine-grained facets
	NumDomains = 4  // Higher-order domains

	MinDomainsPerBlock = 3 // Every block must span at least this many domains
)

// Tier thresholds on the 0-100 percentile scale. Both bounds are inclusive
// for Supporting: exactly 75 and exactly 25 classify as Supporting.
const (
	DominantThreshold = 75
	LesserThreshold   = 25
)

// The 12 facets.
const (
	FacetAchiever       FacetID = "achiever"
	FacetDiscipline     FacetID = "discipline"
	FacetResponsibility FacetID = "responsibility"

	FacetActivator     FacetID = "activator"
	FacetCommunication FacetID = "communication"
	FacetMaximizer     FacetID = "maximizer"

	FacetEmpathy FacetID = "empathy"
	FacetHarmony FacetID = "harmony"
	FacetRelator FacetID = "relator"

	FacetAnalytical FacetID = "analytical"
	FacetIdeation   FacetID = "ideation"
	FacetStrategic  FacetID = "strategic"
)

// The 4 domains.
const (
	DomainExecuting    DomainID = "executing"
	DomainInfluencing  DomainID = "influencing"
	DomainRelationship DomainID = "relationship"
	DomainThinking     DomainID = "thinking"
)

// Tier labels.
const (
	TierDominant   Tier = "dominant"   // Percentile strictly above 75
	TierSupporting Tier = "supporting" // Percentile in [25, 75]
	TierLesser     Tier = "lesser"     // Percentile strictly below 25
)

// Quality flags attached to results instead of raising errors.
const (
	FlagNonConverged      QualityFlag = "non-converged"      // Estimator hit its iteration cap
	FlagApproximateDesign QualityFlag = "approximate-design" // Designer exhausted its budget without an exact solve
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// AllFacets lists the facets in canonical order: grouped by domain, facet id
// ascending within each domain. Used as the deterministic presentation order.
var AllFacets = []FacetID{
	FacetAchiever, FacetDiscipline, FacetResponsibility,
	FacetActivator, FacetCommunication, FacetMaximizer,
	FacetEmpathy, FacetHarmony, FacetRelator,
	FacetAnalytical, FacetIdeation, FacetStrategic,
}

// AllDomains lists the domains in canonical order.
var AllDomains = []DomainID{
	DomainExecuting, DomainInfluencing, DomainRelationship, DomainThinking,
}

// FacetDomain is the fixed 12->4 mapping. Every facet belongs to exactly one
// domain and every domain has exactly 3 facets.
var FacetDomain = map[FacetID]DomainID{
	FacetAchiever:       DomainExecuting,
	FacetDiscipline:     DomainExecuting,
	FacetResponsibility: DomainExecuting,

	FacetActivator:     DomainInfluencing,
	FacetCommunication: DomainInfluencing,
	FacetMaximizer:     DomainInfluencing,

	FacetEmpathy: DomainRelationship,
	FacetHarmony: DomainRelationship,
	FacetRelator: DomainRelationship,

	FacetAnalytical: DomainThinking,
	FacetIdeation:   DomainThinking,
	FacetStrategic:  DomainThinking,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DomainFacets returns the three facets of a domain, in canonical order.
func DomainFacets(d DomainID) []FacetID {
	out := make([]FacetID, 0, 3)
	for _, f := range AllFacets {
		if FacetDomain[f] == d {
			out = append(out, f)
		}
	}
	return out
}

// FacetIndex returns the canonical position of a facet, or -1 if unknown.
func FacetIndex(f FacetID) int {
	for i, id := range AllFacets {
		if id == f {
			return i
		}
	}
	return -1
}

// ClassifyTier buckets a percentile into its tier. Thresholds are strict
// numeric comparisons with inclusive Supporting bounds.
func ClassifyTier(percentile int) Tier {
	switch {
	case percentile > DominantThreshold:
		return TierDominant
	case percentile < LesserThreshold:
		return TierLesser
	default:
		return TierSupporting
	}
}
