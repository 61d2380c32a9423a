package cmd

import (
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions behind scoring output.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display balance metric formulas, tier bands, and seed weights",
	Long: `Show the formal definitions behind every number in a profile.

Covers the three balance metrics (domain balance index, relative entropy,
Gini), the percentile bands for the Dominant/Supporting/Lesser tiers, and
the active seed-weight table used for estimator warm starts.

No session data is read - this is purely informational.

Examples:
  # Show the definitions
  strengths metrics

  # Inspect a specific seed-weight table version
  strengths metrics --seed-weights-version v1`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
