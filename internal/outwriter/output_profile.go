package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/parquet"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteProfileResult outputs a scored profile, dispatching based on the output format configured.
func WriteProfileResult(profile *schema.TieredProfile, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileJSON(w, profile)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileCSV(w, profile, fmtFloat)
		}, "CSV")
	case schema.ParquetOut:
		return writeProfilesParquet([]schema.TieredProfile{*profile}, cfg)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileTable(w, profile, cfg, fmtFloat, duration)
		}, "table")
	}
}

// tierLabel returns the tier label, colored for console output when enabled.
func tierLabel(tier schema.Tier, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorTierLabel(tier)
	}
	return contract.GetPlainTierLabel(tier)
}

// writeProfileTable generates and writes the human-readable profile tables.
func writeProfileTable(w io.Writer, profile *schema.TieredProfile, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Session %s scored at %s\n", profile.SessionID, profile.CreatedAt.Format(contract.DateTimeFormat)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Calibration %s | Norms %s | Design %s\n", profile.CalibrationVersion, profile.NormVersion, profile.DesignVersion); err != nil {
		return err
	}

	// 1. Facet table
	facetTable := tablewriter.NewWriter(w)
	facetTable.Header([]string{"Facet", "Domain", "Theta", "SE", "Pct", "Tier"})
	facetTable.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var facetData [][]string
	for _, fs := range profile.Facets {
		facetData = append(facetData, []string{
			string(fs.Facet),
			string(schema.FacetDomain[fs.Facet]),
			fmtFloat(fs.Theta),
			fmtFloat(fs.StdErr),
			strconv.Itoa(fs.Percentile),
			tierLabel(fs.Tier, cfg),
		})
	}
	if err := facetTable.Bulk(facetData); err != nil {
		return err
	}
	if err := facetTable.Render(); err != nil {
		return err
	}

	// 2. Domain table
	domainTable := tablewriter.NewWriter(w)
	domainTable.Header([]string{"Domain", "Eta", "SE", "Pct", "Tier"})
	domainTable.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var domainData [][]string
	for _, ds := range profile.Domains {
		domainData = append(domainData, []string{
			string(ds.Domain),
			fmtFloat(ds.Eta),
			fmtFloat(ds.StdErr),
			strconv.Itoa(ds.Percentile),
			tierLabel(ds.Tier, cfg),
		})
	}
	if err := domainTable.Bulk(domainData); err != nil {
		return err
	}
	if err := domainTable.Render(); err != nil {
		return err
	}

	// 3. Balance summary and flags
	if _, err := fmt.Fprintf(w, "Balance: DBI %s, relative entropy %s, Gini %s\n",
		fmtFloat(profile.Balance.DBI), fmtFloat(profile.Balance.RelativeEntropy), fmtFloat(profile.Balance.Gini)); err != nil {
		return err
	}
	if len(profile.Flags) > 0 {
		if _, err := fmt.Fprintf(w, "Flags: %s\n", formatFlags(profile.Flags)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Scored in %v with %d estimator iterations\n", duration, profile.Iterations); err != nil {
		return err
	}
	return nil
}

// writeProfileCSV writes the facet and domain scores in CSV format. Facet rows
// carry an empty eta column and domain rows an empty theta column.
func writeProfileCSV(w io.Writer, profile *schema.TieredProfile, fmtFloat func(float64) string) error {
	header := []string{
		"session_id",
		"level",
		"name",
		"domain",
		"score",
		"std_err",
		"percentile",
		"tier",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, fs := range profile.Facets {
			rec := []string{
				profile.SessionID,
				"facet",
				string(fs.Facet),
				string(schema.FacetDomain[fs.Facet]),
				fmtFloat(fs.Theta),
				fmtFloat(fs.StdErr),
				strconv.Itoa(fs.Percentile),
				contract.GetPlainTierLabel(fs.Tier),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		for _, ds := range profile.Domains {
			rec := []string{
				profile.SessionID,
				"domain",
				string(ds.Domain),
				string(ds.Domain),
				fmtFloat(ds.Eta),
				fmtFloat(ds.StdErr),
				strconv.Itoa(ds.Percentile),
				contract.GetPlainTierLabel(ds.Tier),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeProfileJSON writes the scored profile in JSON format with display
// labels added.
func writeProfileJSON(w io.Writer, profile *schema.TieredProfile) error {
	type JSONProfile struct {
		*schema.TieredProfile
		TierLabels map[string]string `json:"tier_labels"`
	}

	labels := make(map[string]string, len(profile.Facets)+len(profile.Domains))
	for _, fs := range profile.Facets {
		labels[string(fs.Facet)] = contract.GetPlainTierLabel(fs.Tier)
	}
	for _, ds := range profile.Domains {
		labels[string(ds.Domain)] = contract.GetPlainTierLabel(ds.Tier)
	}

	return writeJSON(w, JSONProfile{TieredProfile: profile, TierLabels: labels})
}

// writeProfilesParquet flattens profiles to Parquet rows and writes them to
// a pair of files next to cfg.OutputFile.
func writeProfilesParquet(profiles []schema.TieredProfile, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("output-file is required for parquet output")
	}

	rows, facetRows := parquet.ConvertProfiles(profiles)

	profilesFile := cfg.OutputFile + ".profiles.parquet"
	if err := parquet.WriteProfilesParquet(rows, profilesFile); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}

	facetsFile := cfg.OutputFile + ".facet_scores.parquet"
	if err := parquet.WriteFacetScoresParquet(facetRows, facetsFile); err != nil {
		return fmt.Errorf("failed to write facet scores: %w", err)
	}

	fmt.Printf("Exported %d profiles to: %s\n", len(rows), profilesFile)
	fmt.Printf("Exported %d facet scores to: %s\n", len(facetRows), facetsFile)
	return nil
}

// WriteProfileListResult outputs stored profile summaries, dispatching based on the output format configured.
func WriteProfileListResult(profiles []schema.TieredProfile, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, profiles)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileListCSV(w, profiles, fmtFloat)
		}, "CSV")
	case schema.ParquetOut:
		return writeProfilesParquet(profiles, cfg)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileListTable(w, profiles, cfg, fmtFloat)
		}, "table")
	}
}

// writeProfileListTable generates and writes the human-readable summary table.
func writeProfileListTable(w io.Writer, profiles []schema.TieredProfile, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Session", "Scored", "Exec", "Infl", "Rel", "Think", "DBI", "Flags"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, p := range profiles {
		pcts := domainPercentiles(&p)
		data = append(data, []string{
			strconv.Itoa(i + 1),
			p.SessionID,
			p.CreatedAt.Format(contract.DateTimeFormat),
			strconv.Itoa(pcts[schema.DomainExecuting]),
			strconv.Itoa(pcts[schema.DomainInfluencing]),
			strconv.Itoa(pcts[schema.DomainRelationship]),
			strconv.Itoa(pcts[schema.DomainThinking]),
			fmtFloat(p.Balance.DBI),
			formatFlags(p.Flags),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d profiles. Store backend: %s\n", len(profiles), cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeProfileListCSV writes the profile summaries in CSV format.
func writeProfileListCSV(w io.Writer, profiles []schema.TieredProfile, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"session_id",
		"created_at",
		"calibration_version",
		"executing",
		"influencing",
		"relationship",
		"thinking",
		"dbi",
		"relative_entropy",
		"gini",
		"flags",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, p := range profiles {
			pcts := domainPercentiles(&p)
			rec := []string{
				strconv.Itoa(i + 1),
				p.SessionID,
				p.CreatedAt.Format(contract.DateTimeFormat),
				p.CalibrationVersion,
				strconv.Itoa(pcts[schema.DomainExecuting]),
				strconv.Itoa(pcts[schema.DomainInfluencing]),
				strconv.Itoa(pcts[schema.DomainRelationship]),
				strconv.Itoa(pcts[schema.DomainThinking]),
				fmtFloat(p.Balance.DBI),
				fmtFloat(p.Balance.RelativeEntropy),
				fmtFloat(p.Balance.Gini),
				formatFlags(p.Flags),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// domainPercentiles indexes a profile's domain percentiles by domain id.
func domainPercentiles(p *schema.TieredProfile) map[schema.DomainID]int {
	out := make(map[schema.DomainID]int, len(p.Domains))
	for _, ds := range p.Domains {
		out[ds.Domain] = ds.Percentile
	}
	return out
}

// formatFlags joins quality flags for display.
func formatFlags(flags []schema.QualityFlag) string {
	if len(flags) == 0 {
		return ""
	}
	parts := make([]string, len(flags))
	for i, f := range flags {
		parts[i] = string(f)
	}
	return strings.Join(parts, "|")
}
