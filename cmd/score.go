package cmd

import (
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd scores one completed session into a tiered profile.
var scoreCmd = &cobra.Command{
	Use:   "score [session-file]",
	Short: "Score a completed session into a tiered strengths profile",
	Long: `Score one respondent's most/least block responses.

Loads the configured design, calibration, and norm versions from the store,
estimates the twelve facet scores with their standard errors, converts them
to percentiles, aggregates the four domains, computes the balance metrics,
and assigns Dominant/Supporting/Lesser tiers. The resulting profile is
recorded in the store and printed.

The session file is JSON with session_id and one most/least pair per block.
Pass "-" to read it from stdin. An optional --factors-file with standardized
screener factor scores warm-starts the estimator; it changes how fast the
solution is reached, never the solution itself.

A session missing any block fails with the missing block ids. Estimator
non-convergence and approximate designs are reported as quality flags on the
profile, not as failures.

Examples:
  # Score a session with the configured artifact versions
  strengths score session.json --design-version design-v1 --calibration-version calib-2026q1 --norm-version norms-2026q1

  # Pipe a session in and get JSON out
  cat session.json | strengths score - --output json

  # Warm-start from a screener profile
  strengths score session.json --factors-file screener.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScoreSession(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot score session", err)
		}
	},
}
