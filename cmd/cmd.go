// Package cmd defines the command-line interface for strengths.
package cmd

import (
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(designCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeImportCalibrationCmd)
	storeCmd.AddCommand(storeImportNormsCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Int("exposure", contract.DefaultExposureTarget, "Number of blocks each facet appears in")
	rootCmd.PersistentFlags().Float64("desirability-tolerance", contract.DefaultDesirabilityTolerance, "Maximum social-desirability spread within a block")
	rootCmd.PersistentFlags().String("design-budget", "", "Wall-clock budget for design search (e.g. 2s, 500ms)")
	rootCmd.PersistentFlags().Int("chains", contract.DefaultChains, "Number of parallel design search chains")
	rootCmd.PersistentFlags().Int("max-iterations", contract.DefaultMaxIterations, "Estimator iteration cap")
	rootCmd.PersistentFlags().Float64("tolerance", contract.DefaultTolerance, "Estimator convergence tolerance")
	rootCmd.PersistentFlags().String("calibration-version", "", "Calibration set version to load from the store")
	rootCmd.PersistentFlags().String("norm-version", "", "Normative reference table version to load from the store")
	rootCmd.PersistentFlags().String("design-version", "", "Block design version to load from or save to the store")
	rootCmd.PersistentFlags().String("seed-weights-version", "", "Seed-weight table version for estimator warm starts")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultProfileLimit, "Number of profiles to list or export")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored tier labels in output (yes/no)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emoji in diagnostics (yes/no)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().String("factors-file", "", "Optional JSON file with standardized screener factor scores")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
