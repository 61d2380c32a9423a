//go:build basic

package integration

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStrengthsEndToEndSQLite drives the full instrument lifecycle against
// the default SQLite backend: import artifacts, generate and validate a
// design, score a session, then list and export profiles.
func TestStrengthsEndToEndSQLite(t *testing.T) {
	dir := t.TempDir()
	calibPath, normsPath := writeInstrumentFixtures(t, dir)

	require.NoError(t, runStrengthsCommand(t, dir, "store", "clear"))
	require.NoError(t, runStrengthsCommand(t, dir, "store", "import-calibration", calibPath))
	require.NoError(t, runStrengthsCommand(t, dir, "store", "import-norms", normsPath))

	// Generate the design and capture it as JSON so a session can be built
	designPath := filepath.Join(dir, "design.json")
	require.NoError(t, runStrengthsCommand(t, dir,
		"design", "--calibration-version", "calib-it", "--design-version", "design-it",
		"--exposure", "2", "--output", "json", "--output-file", designPath))
	require.NoError(t, runStrengthsCommand(t, dir, "check", "--design-version", "design-it"))

	data, err := os.ReadFile(designPath)
	require.NoError(t, err)
	var design schema.BlockDesign
	require.NoError(t, json.Unmarshal(data, &design))
	require.NotEmpty(t, design.Blocks)

	// Answer every block with the first statement as most and the last as least
	session := &schema.Session{SessionID: "session-it"}
	for _, block := range design.Blocks {
		session.Responses = append(session.Responses, schema.BlockResponse{
			BlockID: block.ID,
			MostID:  block.StatementIDs[0],
			LeastID: block.StatementIDs[len(block.StatementIDs)-1],
		})
	}
	sessionPath := writeJSONFixture(t, dir, "session.json", session)

	profilePath := filepath.Join(dir, "profile.json")
	require.NoError(t, runStrengthsCommand(t, dir,
		"score", sessionPath,
		"--design-version", "design-it", "--calibration-version", "calib-it", "--norm-version", "norms-it",
		"--output", "json", "--output-file", profilePath))

	profileData, err := os.ReadFile(profilePath)
	require.NoError(t, err)
	var profile schema.TieredProfile
	require.NoError(t, json.Unmarshal(profileData, &profile))
	assert.Equal(t, "session-it", profile.SessionID)
	assert.Len(t, profile.Facets, schema.NumFacets)
	assert.Len(t, profile.Domains, schema.NumDomains)

	// The recorded profile shows up in the listing
	require.NoError(t, runStrengthsCommand(t, dir, "profiles"))

	// Export the profile to Parquet
	exportPrefix := filepath.Join(dir, "export")
	require.NoError(t, runStrengthsCommand(t, dir, "export", "--output-file", exportPrefix))
	for _, suffix := range []string{".profiles.parquet", ".facet_scores.parquet"} {
		info, err := os.Stat(exportPrefix + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	require.NoError(t, runStrengthsCommand(t, dir, "store", "status"))
}

// TestStrengthsVersion smoke-tests the built binary.
func TestStrengthsVersion(t *testing.T) {
	out, err := exec.Command(getStrengthsBinary(), "version").Output()
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), "strengths CLI"))
}
