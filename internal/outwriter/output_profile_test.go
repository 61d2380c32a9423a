package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/parquet"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig returns a config set up for file-backed output assertions.
func testConfig(t *testing.T, output schema.OutputMode, filename string) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:       output,
		OutputFile:   filepath.Join(t.TempDir(), filename),
		Precision:    2,
		Chains:       2,
		Width:        120,
		StoreBackend: schema.SQLiteBackend,
	}
}

func sampleProfile() *schema.TieredProfile {
	profiles := parquet.MockFetchProfiles()
	return &profiles[1]
}

func TestWriteProfileResultText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "profile.txt")
	profile := sampleProfile()

	require.NoError(t, WriteProfileResult(profile, cfg, 25*time.Millisecond))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, profile.SessionID)
	assert.Contains(t, text, "Balance: DBI 0.41")
	assert.Contains(t, text, "Flags: approximate-design")
	assert.Contains(t, text, "achiever")
	assert.Contains(t, text, "thinking")
	// Colors are off without UseColors, so labels are plain.
	assert.NotContains(t, text, "\x1b[")
}

func TestWriteProfileResultCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "profile.csv")
	profile := sampleProfile()

	require.NoError(t, WriteProfileResult(profile, cfg, time.Millisecond))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")

	// Header plus 12 facet rows plus 4 domain rows.
	require.Len(t, lines, 1+schema.NumFacets+schema.NumDomains)
	assert.Equal(t, "session_id,level,name,domain,score,std_err,percentile,tier", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], profile.SessionID+",facet,achiever,executing,"))
	assert.True(t, strings.HasPrefix(lines[13], profile.SessionID+",domain,executing,executing,"))
}

func TestWriteProfileResultJSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut, "profile.json")
	profile := sampleProfile()

	require.NoError(t, WriteProfileResult(profile, cfg, time.Millisecond))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var decoded struct {
		SessionID  string            `json:"session_id"`
		TierLabels map[string]string `json:"tier_labels"`
	}
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, profile.SessionID, decoded.SessionID)
	assert.Len(t, decoded.TierLabels, schema.NumFacets+schema.NumDomains)
	assert.Equal(t, "Dominant", decoded.TierLabels["executing"])
}

func TestWriteProfileResultParquet(t *testing.T) {
	cfg := testConfig(t, schema.ParquetOut, "profile")
	profile := sampleProfile()

	require.NoError(t, WriteProfileResult(profile, cfg, time.Millisecond))

	for _, suffix := range []string{".profiles.parquet", ".facet_scores.parquet"} {
		info, err := os.Stat(cfg.OutputFile + suffix)
		require.NoError(t, err, "expected %s to exist", suffix)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestWriteProfileResultParquetRequiresFile(t *testing.T) {
	cfg := testConfig(t, schema.ParquetOut, "profile")
	cfg.OutputFile = ""

	err := WriteProfileResult(sampleProfile(), cfg, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output-file is required")
}

func TestWriteProfileListResultText(t *testing.T) {
	cfg := testConfig(t, schema.TextOut, "profiles.txt")
	profiles := parquet.MockFetchProfiles()

	require.NoError(t, WriteProfileListResult(profiles, cfg))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "demo-balanced")
	assert.Contains(t, text, "demo-spiky")
	assert.Contains(t, text, "Showing 2 profiles. Store backend: sqlite")
}

func TestWriteProfileListResultCSV(t *testing.T) {
	cfg := testConfig(t, schema.CSVOut, "profiles.csv")
	profiles := parquet.MockFetchProfiles()

	require.NoError(t, WriteProfileListResult(profiles, cfg))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")

	require.Len(t, lines, 1+len(profiles))
	assert.Contains(t, lines[0], "relative_entropy")
	assert.Contains(t, lines[2], "approximate-design")
}

func TestFormatFlags(t *testing.T) {
	assert.Equal(t, "", formatFlags(nil))
	assert.Equal(t, "non-converged", formatFlags([]schema.QualityFlag{schema.FlagNonConverged}))
	assert.Equal(t, "non-converged|approximate-design",
		formatFlags([]schema.QualityFlag{schema.FlagNonConverged, schema.FlagApproximateDesign}))
}
