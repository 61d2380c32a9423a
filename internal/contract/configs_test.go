package contract

import (
	"testing"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProcessAndValidateDefaults checks that an empty input resolves to all
// documented defaults.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	err := ProcessAndValidate(cfg, &ConfigRawInput{})
	require.NoError(t, err)

	assert.Equal(t, DefaultExposureTarget, cfg.ExposureTarget)
	assert.Equal(t, DefaultDesirabilityTolerance, cfg.DesirabilityTolerance)
	assert.Equal(t, DefaultDesignBudget, cfg.DesignBudget)
	assert.Equal(t, DefaultChains, cfg.Chains)
	assert.Equal(t, DefaultMaxIterations, cfg.MaxIterations)
	assert.Equal(t, DefaultTolerance, cfg.Tolerance)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.Equal(t, schema.DefaultSeedWeightsVersion, cfg.SeedWeightsVersion)
	assert.True(t, cfg.UseColors)
	assert.True(t, cfg.UseEmojis)
}

// TestProcessAndValidateRejects covers invalid raw inputs.
func TestProcessAndValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		input ConfigRawInput
	}{
		{"bad design budget", ConfigRawInput{DesignBudgetStr: "soon"}},
		{"negative design budget", ConfigRawInput{DesignBudgetStr: "-5s"}},
		{"tolerance too large", ConfigRawInput{Tolerance: 2.0}},
		{"bad output mode", ConfigRawInput{Output: "xml"}},
		{"limit too large", ConfigRawInput{Limit: MaxProfileLimit + 1}},
		{"bad store backend", ConfigRawInput{StoreBackend: "oracle"}},
		{"mysql without connect", ConfigRawInput{StoreBackend: "mysql"}},
		{"postgres without connect", ConfigRawInput{StoreBackend: "postgresql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ProcessAndValidate(&Config{}, &tt.input)
			assert.Error(t, err)
		})
	}
}

// TestProcessAndValidateOverrides checks explicit values survive validation.
func TestProcessAndValidateOverrides(t *testing.T) {
	cfg := &Config{}
	err := ProcessAndValidate(cfg, &ConfigRawInput{
		ExposureTarget:     6,
		DesignBudgetStr:    "500ms",
		Chains:             2,
		MaxIterations:      100,
		CalibrationVersion: "2026.1",
		NormVersion:        "2026.1",
		Output:             "json",
		Color:              "no",
		StoreBackend:       "none",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.ExposureTarget)
	assert.Equal(t, 500*time.Millisecond, cfg.DesignBudget)
	assert.Equal(t, 2, cfg.Chains)
	assert.Equal(t, 100, cfg.MaxIterations)
	assert.Equal(t, "2026.1", cfg.CalibrationVersion)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, schema.NoneBackend, cfg.StoreBackend)
	assert.False(t, cfg.UseColors)
}

// TestValidateStoreConnectionString pins the per-backend format checks.
func TestValidateStoreConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.StoreBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty ok", schema.SQLiteBackend, "", false},
		{"none empty ok", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/strengths", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/strengths", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=strengths", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStoreConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
