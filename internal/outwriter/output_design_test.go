package outwriter

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDesign() *schema.BlockDesign {
	statements := []schema.Statement{
		{ID: "achiever-0", Text: "I push until the work is finished", Facet: schema.FacetAchiever, Desirability: 4.2},
		{ID: "activator-0", Text: "I get things moving", Facet: schema.FacetActivator, Desirability: 4.1},
		{ID: "empathy-0", Text: "I sense how others feel", Facet: schema.FacetEmpathy, Desirability: 4.3},
		{ID: "ideation-0", Text: "I connect distant ideas", Facet: schema.FacetIdeation, Desirability: 4.0},
	}
	return &schema.BlockDesign{
		Version: "design-v1",
		Blocks: []schema.Block{
			{ID: 1, StatementIDs: [schema.BlockSize]string{"achiever-0", "activator-0", "empathy-0", "ideation-0"}},
		},
		Statements:     statements,
		ExposureTarget: 1,
		Approximate:    false,
		Objective:      0.25,
	}
}

func TestWriteDesignResultText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "design.txt")
	design := sampleDesign()

	require.NoError(t, WriteDesignResult(design, cfg, 100*time.Millisecond))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "Design design-v1: 1 blocks, exposure target 1, exact solution")
	assert.Contains(t, text, "achiever-0")
	assert.Contains(t, text, "relationship")
	assert.Contains(t, text, "Co-occurrence variance: 0.25")
}

func TestWriteDesignResultApproximateLabel(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "design.txt")
	design := sampleDesign()
	design.Approximate = true

	require.NoError(t, WriteDesignResult(design, cfg, time.Millisecond))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "approximate solution")
}

func TestWriteDesignResultCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "design.csv")
	design := sampleDesign()

	require.NoError(t, WriteDesignResult(design, cfg, time.Millisecond))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")

	// Header plus one row per block slot.
	require.Len(t, lines, 1+schema.BlockSize)
	assert.Equal(t, "block_id,position,statement_id,facet,domain,desirability", lines[0])
	assert.Equal(t, "1,1,achiever-0,achiever,executing,4.20", lines[1])
}

func TestWriteDesignResultParquetUnsupported(t *testing.T) {
	cfg := testConfig(t, schema.ParquetOut, "design")

	err := WriteDesignResult(sampleDesign(), cfg, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestWriteMetricsDefinitionsText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "metrics.txt")
	cfg.SeedWeightsVersion = schema.DefaultSeedWeightsVersion

	require.NoError(t, WriteMetricsDefinitions(cfg))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "Balance Metrics")
	assert.Contains(t, text, "dbi")
	assert.Contains(t, text, "relative_entropy")
	assert.Contains(t, text, "gini")
	assert.Contains(t, text, "Dominant: percentile > 75")
	assert.Contains(t, text, "Lesser: percentile < 25")
	assert.Contains(t, text, "Seed Weights (version v1)")
	assert.Contains(t, text, "discipline <- conscientiousness: 0.85")
}

func TestWriteMetricsDefinitionsCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "metrics.csv")

	require.NoError(t, WriteMetricsDefinitions(cfg))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")

	// Header plus three metrics plus three tiers.
	require.Len(t, lines, 7)
	assert.Equal(t, "kind,name,detail,description", lines[0])
}
