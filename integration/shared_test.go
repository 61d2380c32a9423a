//go:build basic || database

package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core/norm"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

var (
	// sharedBinaryPath holds the path to a shared strengths binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getStrengthsBinary returns the path to the strengths binary, building it once if needed.
func getStrengthsBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "strengths-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "strengths")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build strengths: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// runStrengthsCommand runs the shared binary with the given args from the
// given working directory.
func runStrengthsCommand(t *testing.T, dir string, args ...string) error {
	t.Helper()
	cmd := exec.Command(getStrengthsBinary(), args...)
	cmd.Dir = dir
	// Keep the default SQLite store file out of the real home directory.
	cmd.Env = append(os.Environ(), "HOME="+dir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}

// writeInstrumentFixtures generates a synthetic calibration set and norm
// table and writes them as JSON files into dir, returning their paths.
func writeInstrumentFixtures(t *testing.T, dir string) (calibPath, normsPath string) {
	t.Helper()

	calib := &schema.CalibrationSet{
		Version: "calib-it",
		Params:  make(map[string]schema.ItemParameter),
	}
	for fi, facet := range schema.AllFacets {
		for c := range 2 {
			id := fmt.Sprintf("%s-%d", facet, c)
			calib.Statements = append(calib.Statements, schema.Statement{
				ID:           id,
				Text:         fmt.Sprintf("statement %d for %s", c, facet),
				Facet:        facet,
				Desirability: 4.0 + 0.05*float64((fi+c)%4),
			})
			calib.Params[id] = schema.ItemParameter{
				StatementID:    id,
				Discrimination: 1.0 + 0.1*float64((fi+c)%3),
				Location:       -0.2 + 0.1*float64((fi+c)%5),
			}
		}
	}

	norms := &schema.NormTable{
		Version: "norms-it",
		Facets:  make(map[schema.FacetID][]float64),
		Domains: make(map[schema.DomainID][]float64),
	}
	for _, f := range schema.AllFacets {
		norms.Facets[f] = norm.NormalReference(200, 0, 1)
	}
	for _, d := range schema.AllDomains {
		norms.Domains[d] = norm.NormalReference(200, 0, 0.8)
	}

	calibPath = writeJSONFixture(t, dir, "calib-it.json", calib)
	normsPath = writeJSONFixture(t, dir, "norms-it.json", norms)
	return calibPath, normsPath
}

func writeJSONFixture(t *testing.T, dir, name string, v any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture %s: %v", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}
