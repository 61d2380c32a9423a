package cmd

import (
	"fmt"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/calibstore"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.StoreBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-connect")

	// Basic validation for database backends
	if err := contract.ValidateStoreConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize persistence with the loaded config
	if err := calibstore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.StoreBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-connect")

	if err := contract.ValidateStoreConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup for PreRunE.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on instrument artifact and profile persistence.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by scoring commands. This avoids designer and
// estimator config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the calibration, norm, design, and profile store",
	Long: `Manage the persistence layer holding versioned instrument artifacts
(calibration sets, norm tables, block designs) and scored profiles.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status              - Show stored artifact versions and profile counts
  clear               - Remove all stored data
  migrate             - Run schema migrations
  import-calibration  - Load a calibration set JSON file
  import-norms        - Load a normative reference table JSON file

Examples:
  # Check store contents
  strengths store status

  # Load this quarter's instrument artifacts
  strengths store import-calibration calib-2026q1.json
  strengths store import-norms norms-2026q1.json`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display stored artifact versions and profile counts",
	Long: `Show detailed information about the artifact and profile store.

Displays:
- Backend type and location
- Stored calibration, norm, and design versions
- Number of recorded profiles

Examples:
  # Check store status
  strengths store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		calibstore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored artifacts and profiles",
	Long: `Delete all stored data from the configured backend.

Use this when:
- Rebuilding the store from fresh artifact imports
- A migration left the store in an unwanted state
- Testing against an empty store

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the store tables

Examples:
  # Clear the SQLite store (default)
  strengths store clear

  # Clear a MySQL store (set connection string via env variable)
  STRENGTHS_STORE_BACKEND=mysql STRENGTHS_STORE_CONNECT="..." strengths store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := calibstore.ClearStore(cfg.StoreBackend, contract.GetStoreDBFilePath(), cfg.StoreConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run store schema migrations",
	Long: `Apply embedded schema migrations to the configured store backend.

By default migrates to the latest version. Use --target-version to migrate
to a specific version, or 0 to roll back to the initial state.

Examples:
  # Migrate to the latest schema
  strengths store migrate

  # Roll everything back
  strengths store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := calibstore.MigrateStore(cfg.StoreBackend, cfg.StoreConnect, targetVersion); err != nil {
			contract.LogFatal("Migration failed", err)
		}
	},
}

// storeImportCalibrationCmd loads a calibration set into the store.
var storeImportCalibrationCmd = &cobra.Command{
	Use:   "import-calibration [file]",
	Short: "Load a calibration set JSON file into the store",
	Long: `Import a versioned calibration set produced by the offline
calibration pipeline: the statement pool plus per-statement location and
discrimination parameters. Re-importing an existing version replaces it.

Examples:
  strengths store import-calibration calib-2026q1.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteImportCalibration(rootCtx, cfg, storeManager, args[0]); err != nil {
			contract.LogFatal("Cannot import calibration", err)
		}
	},
}

// storeImportNormsCmd loads a norm table into the store.
var storeImportNormsCmd = &cobra.Command{
	Use:   "import-norms [file]",
	Short: "Load a normative reference table JSON file into the store",
	Long: `Import a versioned normative reference table: sorted reference
score samples per facet and per domain, used for percentile conversion.
Re-importing an existing version replaces it.

Examples:
  strengths store import-norms norms-2026q1.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteImportNorms(rootCtx, cfg, storeManager, args[0]); err != nil {
			contract.LogFatal("Cannot import norms", err)
		}
	},
}
