package cmd

import (
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd flattens stored profiles to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored profiles to Parquet files",
	Long: `Flatten stored profiles into two Parquet files for analytics:
one row per profile (domain percentiles plus balance metrics) and one row
per facet score.

Requires --output-file as the path prefix; the files are written as
<prefix>.profiles.parquet and <prefix>.facet_scores.parquet.

Examples:
  # Export the most recent 100 profiles
  strengths export --limit 100 --output-file ./exports/strengths

  # Export everything the store allows in one call
  strengths export --limit 1000 --output-file ./exports/strengths`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExportProfiles(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot export profiles", err)
		}
	},
}
