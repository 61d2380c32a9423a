// Package parquet provides data structures and functions for exporting scored
// strengths profiles to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/parquet-go/parquet-go"
)

// ProfileRow represents one scored profile with its balance metrics and the
// four domain percentiles flattened into columns. This struct maps to the
// strengths_profiles database table.
type ProfileRow struct {
	// SessionID is the respondent session this profile was scored from
	SessionID string `parquet:"session_id,snappy"`

	// CreatedAt is when the profile was scored (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// CalibrationVersion is the item-parameter set used for scoring
	CalibrationVersion string `parquet:"calibration_version,snappy"`

	// NormVersion is the normative reference table used for percentiles
	NormVersion string `parquet:"norm_version,snappy"`

	// DesignVersion is the block design the session was administered with
	DesignVersion string `parquet:"design_version,snappy"`

	// Iterations is the number of estimator iterations used
	Iterations int32 `parquet:"iterations,snappy"`

	// Flags holds comma-joined quality flags (nullable)
	Flags *string `parquet:"flags,optional,snappy"`

	// ExecutingPercentile is the executing domain percentile
	ExecutingPercentile int32 `parquet:"executing_percentile,snappy"`

	// InfluencingPercentile is the influencing domain percentile
	InfluencingPercentile int32 `parquet:"influencing_percentile,snappy"`

	// RelationshipPercentile is the relationship domain percentile
	RelationshipPercentile int32 `parquet:"relationship_percentile,snappy"`

	// ThinkingPercentile is the thinking domain percentile
	ThinkingPercentile int32 `parquet:"thinking_percentile,snappy"`

	// DBI is the domain balance index (1 = perfectly even)
	DBI float64 `parquet:"dbi,snappy"`

	// RelativeEntropy is the normalized entropy of the domain percentiles
	RelativeEntropy float64 `parquet:"relative_entropy,snappy"`

	// Gini measures domain percentile inequality (0 = perfectly equal)
	Gini float64 `parquet:"gini,snappy"`
}

// FacetScoreRow represents one facet score within a profile.
type FacetScoreRow struct {
	// SessionID references the parent profile
	SessionID string `parquet:"session_id,snappy"`

	// CreatedAt is when the parent profile was scored
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// Facet is the facet identifier
	Facet string `parquet:"facet,snappy"`

	// Domain is the facet's higher-order domain
	Domain string `parquet:"domain,snappy"`

	// Theta is the latent facet score
	Theta float64 `parquet:"theta,snappy"`

	// StdErr is the posterior standard error of theta
	StdErr float64 `parquet:"std_err,snappy"`

	// Percentile is the normative percentile on the 0-100 scale
	Percentile int32 `parquet:"percentile,snappy"`

	// Tier is the categorical strength label
	Tier string `parquet:"tier,snappy"`
}

// WriteProfilesParquet writes a slice of ProfileRow structs to a Parquet file.
func WriteProfilesParquet(data []ProfileRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ProfileRow struct tags
	writer := parquet.NewGenericWriter[ProfileRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteFacetScoresParquet writes a slice of FacetScoreRow structs to a Parquet file.
func WriteFacetScoresParquet(data []FacetScoreRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the FacetScoreRow struct tags
	writer := parquet.NewGenericWriter[FacetScoreRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertProfiles converts scored profiles into flat Parquet rows. It returns
// one ProfileRow per profile and one FacetScoreRow per facet score.
func ConvertProfiles(profiles []schema.TieredProfile) ([]ProfileRow, []FacetScoreRow) {
	rows := make([]ProfileRow, len(profiles))
	var facetRows []FacetScoreRow

	for i, p := range profiles {
		row := ProfileRow{
			SessionID:          p.SessionID,
			CreatedAt:          p.CreatedAt,
			CalibrationVersion: p.CalibrationVersion,
			NormVersion:        p.NormVersion,
			DesignVersion:      p.DesignVersion,
			Iterations:         int32(p.Iterations),
			DBI:                p.Balance.DBI,
			RelativeEntropy:    p.Balance.RelativeEntropy,
			Gini:               p.Balance.Gini,
		}

		if len(p.Flags) > 0 {
			flags := make([]string, len(p.Flags))
			for j, flag := range p.Flags {
				flags[j] = string(flag)
			}
			joined := strings.Join(flags, ",")
			row.Flags = &joined
		}

		for _, ds := range p.Domains {
			switch ds.Domain {
			case schema.DomainExecuting:
				row.ExecutingPercentile = int32(ds.Percentile)
			case schema.DomainInfluencing:
				row.InfluencingPercentile = int32(ds.Percentile)
			case schema.DomainRelationship:
				row.RelationshipPercentile = int32(ds.Percentile)
			case schema.DomainThinking:
				row.ThinkingPercentile = int32(ds.Percentile)
			}
		}

		for _, fs := range p.Facets {
			facetRows = append(facetRows, FacetScoreRow{
				SessionID:  p.SessionID,
				CreatedAt:  p.CreatedAt,
				Facet:      string(fs.Facet),
				Domain:     string(schema.FacetDomain[fs.Facet]),
				Theta:      fs.Theta,
				StdErr:     fs.StdErr,
				Percentile: int32(fs.Percentile),
				Tier:       string(fs.Tier),
			})
		}

		rows[i] = row
	}

	return rows, facetRows
}

// MockFetchProfiles generates sample profile data for demonstration.
func MockFetchProfiles() []schema.TieredProfile {
	now := time.Now()

	balanced := schema.TieredProfile{
		SessionID:          "demo-balanced",
		CalibrationVersion: "calib-v1",
		NormVersion:        "norm-v1",
		DesignVersion:      "design-v1",
		CreatedAt:          now.Add(-1 * time.Hour),
		Iterations:         9,
		Balance:            schema.BalanceMetrics{DBI: 0.97, RelativeEntropy: 0.99, Gini: 0.04},
	}
	spiky := schema.TieredProfile{
		SessionID:          "demo-spiky",
		CalibrationVersion: "calib-v1",
		NormVersion:        "norm-v1",
		DesignVersion:      "design-v1",
		CreatedAt:          now.Add(-10 * time.Minute),
		Iterations:         14,
		Flags:              []schema.QualityFlag{schema.FlagApproximateDesign},
		Balance:            schema.BalanceMetrics{DBI: 0.41, RelativeEntropy: 0.72, Gini: 0.38},
	}

	balancedPcts := []int{55, 48, 52, 50}
	spikyPcts := []int{92, 35, 22, 61}
	for i, d := range schema.AllDomains {
		balanced.Domains = append(balanced.Domains, schema.DomainScore{
			Domain: d, Eta: 0.1, StdErr: 0.3,
			Percentile: balancedPcts[i], Tier: schema.ClassifyTier(balancedPcts[i]),
		})
		spiky.Domains = append(spiky.Domains, schema.DomainScore{
			Domain: d, Eta: 0.5, StdErr: 0.4,
			Percentile: spikyPcts[i], Tier: schema.ClassifyTier(spikyPcts[i]),
		})
	}
	for i, f := range schema.AllFacets {
		pct := 40 + (i*7)%30
		balanced.Facets = append(balanced.Facets, schema.FacetScore{
			Facet: f, Theta: 0.05, StdErr: 0.35,
			Percentile: pct, Tier: schema.ClassifyTier(pct),
		})
		spikyPct := (i * 17) % 100
		spiky.Facets = append(spiky.Facets, schema.FacetScore{
			Facet: f, Theta: 0.6, StdErr: 0.45,
			Percentile: spikyPct, Tier: schema.ClassifyTier(spikyPct),
		})
	}

	return []schema.TieredProfile{balanced, spiky}
}
