package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

// Default values for configuration.
const (
	DefaultExposureTarget        = 4   // Blocks each facet appears in
	DefaultDesirabilityTolerance = 1.0 // Max desirability spread within a block
	DefaultDesignBudget          = 2 * time.Second
	DefaultMaxIterations         = 50   // Estimator iteration cap
	DefaultTolerance             = 1e-4 // Estimator convergence tolerance
	DefaultPrecision             = 1
	DefaultProfileLimit          = 25
	MaxProfileLimit              = 1000
)

// DefaultChains is the default number of parallel designer search chains.
var DefaultChains = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	ExposureTarget        int     `mapstructure:"exposure"`
	DesirabilityTolerance float64 `mapstructure:"desirability-tolerance"`
	DesignBudgetStr       string  `mapstructure:"design-budget"`
	Chains                int     `mapstructure:"chains"`
	MaxIterations         int     `mapstructure:"max-iterations"`
	Tolerance             float64 `mapstructure:"tolerance"`

	CalibrationVersion string `mapstructure:"calibration-version"`
	NormVersion        string `mapstructure:"norm-version"`
	DesignVersion      string `mapstructure:"design-version"`
	SeedWeightsVersion string `mapstructure:"seed-weights-version"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Limit      int    `mapstructure:"limit"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`
	Emoji      string `mapstructure:"emoji"`

	StoreBackend string `mapstructure:"store-backend"`
	StoreConnect string `mapstructure:"store-connect"`

	SessionFileStr string `mapstructure:"-"` // set from the positional argument
	FactorsFile    string `mapstructure:"factors-file"`
}

// Config holds the validated, final runtime configuration.
type Config struct {
	// Block designer.
	ExposureTarget        int           // r: blocks each facet appears in
	DesirabilityTolerance float64       // Max desirability spread within a block
	DesignBudget          time.Duration // Wall-clock budget for the optimizer
	Chains                int           // Parallel independent search chains

	// Estimator.
	MaxIterations int     // Hard iteration cap
	Tolerance     float64 // Convergence tolerance on the parameter vector

	// Versioned artifacts.
	CalibrationVersion string
	NormVersion        string
	DesignVersion      string
	SeedWeightsVersion string

	// Output.
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Limit      int // Max profiles listed/exported
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	UseEmojis  bool

	// Store.
	StoreBackend schema.StoreBackend
	StoreConnect string // Please use env var as this is plaintext

	// Scoring inputs.
	SessionFile string // Session JSON path ("-" means stdin)
	FactorsFile string // Optional screener factor scores JSON path
}

// Clone returns a copy of the configuration. Handlers mutate the copy with
// per-request overrides without touching the base configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate runs all validation and parsing, populating cfg from input.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateDesignerInputs(cfg, input); err != nil {
		return err
	}
	if err := validateEstimatorInputs(cfg, input); err != nil {
		return err
	}
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreInputs(cfg, input); err != nil {
		return err
	}

	cfg.CalibrationVersion = input.CalibrationVersion
	cfg.NormVersion = input.NormVersion
	cfg.DesignVersion = input.DesignVersion
	cfg.SeedWeightsVersion = input.SeedWeightsVersion
	if cfg.SeedWeightsVersion == "" {
		cfg.SeedWeightsVersion = schema.DefaultSeedWeightsVersion
	}

	cfg.SessionFile = input.SessionFileStr
	cfg.FactorsFile = input.FactorsFile
	return nil
}

// validateDesignerInputs checks the block-designer knobs.
func validateDesignerInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.ExposureTarget = input.ExposureTarget
	if cfg.ExposureTarget <= 0 {
		cfg.ExposureTarget = DefaultExposureTarget
	}

	cfg.DesirabilityTolerance = input.DesirabilityTolerance
	if cfg.DesirabilityTolerance <= 0 {
		cfg.DesirabilityTolerance = DefaultDesirabilityTolerance
	}

	cfg.DesignBudget = DefaultDesignBudget
	if input.DesignBudgetStr != "" {
		budget, err := time.ParseDuration(input.DesignBudgetStr)
		if err != nil {
			return fmt.Errorf("invalid design-budget %q: %w", input.DesignBudgetStr, err)
		}
		if budget <= 0 {
			return fmt.Errorf("design-budget must be positive, got %q", input.DesignBudgetStr)
		}
		cfg.DesignBudget = budget
	}

	cfg.Chains = input.Chains
	if cfg.Chains <= 0 {
		cfg.Chains = DefaultChains
	}
	return nil
}

// validateEstimatorInputs checks the estimator knobs.
func validateEstimatorInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.MaxIterations = input.MaxIterations
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}

	cfg.Tolerance = input.Tolerance
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.Tolerance >= 1 {
		return fmt.Errorf("tolerance must be below 1, got %g", cfg.Tolerance)
	}
	return nil
}

// validateOutputInputs checks output format and presentation knobs.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode %q", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	cfg.Precision = input.Precision
	if cfg.Precision < 1 || cfg.Precision > 4 {
		cfg.Precision = DefaultPrecision
	}

	cfg.Limit = input.Limit
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultProfileLimit
	}
	if cfg.Limit > MaxProfileLimit {
		return fmt.Errorf("limit cannot exceed %d profiles", MaxProfileLimit)
	}

	cfg.Width = input.Width
	cfg.UseColors = !strings.EqualFold(input.Color, "no")
	cfg.UseEmojis = !strings.EqualFold(input.Emoji, "no")
	return nil
}

// validateStoreInputs checks the store backend configuration.
func validateStoreInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend %q", input.StoreBackend)
	}
	cfg.StoreConnect = input.StoreConnect
	return ValidateStoreConnectionString(cfg.StoreBackend, cfg.StoreConnect)
}

// ValidateStoreConnectionString validates the format of database connection
// strings for the MySQL and PostgreSQL backends.
func ValidateStoreConnectionString(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
