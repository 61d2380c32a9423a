package cmd

import (
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd re-validates a stored design, for pipeline gating.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Re-validate a stored block design (fails on constraint violations)",
	Long: `Load a stored block design and re-check every hard constraint.

Verifies block sizes, facet uniqueness, domain coverage, per-facet exposure
counts, and the desirability tolerance. Exits non-zero on the first
violation, making this suitable as a deployment gate before a design version
goes live on the survey platform.

Examples:
  # Validate the design before rollout
  strengths check --design-version design-v1

  # Validate against a stricter tolerance than it was built with
  strengths check --design-version design-v1 --desirability-tolerance 0.5`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheckDesign(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Design check failed", err)
		}
	},
}
