package cmd

import (
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/spf13/cobra"
)

// designCmd generates a forced-choice block design from a calibrated pool.
var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Generate a forced-choice block design from the calibrated statement pool",
	Long: `Partition the calibrated statement pool into four-statement blocks.

Every block holds four distinct facets spanning at least three domains, with
social-desirability ratings matched within tolerance. Each facet appears in
exactly the requested number of blocks, and the optimizer minimizes how
unevenly facet and domain pairs share blocks.

Small pools are solved exactly; larger pools run parallel annealing chains
under a wall-clock budget, and a non-exact result is flagged as approximate
together with its achieved co-occurrence variance.

The generated design is stored under --design-version for later scoring.

Examples:
  # Generate and store a design from the default calibration
  strengths design --calibration-version calib-2026q1 --design-version design-v1

  # Tighter desirability matching with a longer search
  strengths design --design-version design-v2 --desirability-tolerance 0.5 --design-budget 10s

  # Export the block layout for the survey platform
  strengths design --design-version design-v1 --output csv --output-file blocks.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGenerateDesign(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot generate design", err)
		}
	},
}
