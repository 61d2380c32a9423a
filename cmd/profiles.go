package cmd

import (
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/spf13/cobra"
)

// profilesCmd lists stored profiles.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List stored strengths profiles, newest first",
	Long: `Show a summary line per stored profile: domain percentiles, balance
index, and any quality flags.

Examples:
  # Most recent profiles
  strengths profiles --limit 10

  # Full profile summaries as CSV for a spreadsheet
  strengths profiles --output csv --output-file profiles.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteListProfiles(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list profiles", err)
		}
	},
}
