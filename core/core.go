// Package core orchestrates the scoring pipeline: it turns one respondent's
// completed block responses into an immutable tiered profile, using a frozen
// block design, calibration set and norm version.
package core
