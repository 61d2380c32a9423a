package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core/design"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/outwriter"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

// ExecuteGenerateDesign builds a block design from the stored calibration
// pool, persists it under the configured design version, and prints it.
// It serves as the main entry point for the 'design' command.
func ExecuteGenerateDesign(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.DesignVersion == "" {
		return fmt.Errorf("--design-version is required")
	}

	start := time.Now()
	store := mgr.GetStore()
	calib, err := store.GetCalibration(cfg.CalibrationVersion)
	if err != nil {
		return err
	}

	d, err := design.Generate(&design.Request{
		Pool:                  calib.Statements,
		Version:               cfg.DesignVersion,
		ExposureTarget:        cfg.ExposureTarget,
		DesirabilityTolerance: cfg.DesirabilityTolerance,
		Budget:                cfg.DesignBudget,
		Chains:                cfg.Chains,
	})
	if err != nil {
		return err
	}

	if err := store.PutDesign(d); err != nil {
		contract.LogWarn("could not persist design", err)
	}

	return outwriter.WriteDesignResult(d, cfg, time.Since(start))
}

// ExecuteCheckDesign re-validates a stored design against the hard block
// constraints and the desirability tolerance. A violation is returned as an
// error so the command exits non-zero, making it usable as a CI gate.
func ExecuteCheckDesign(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	d, err := mgr.GetStore().GetDesign(cfg.DesignVersion)
	if err != nil {
		return err
	}

	if err := design.Check(d, cfg.DesirabilityTolerance); err != nil {
		return fmt.Errorf("design %s failed validation: %w", d.Version, err)
	}

	label := "exact"
	if d.Approximate {
		label = "approximate"
	}
	fmt.Printf("Design %s passed all constraint checks (%d blocks, %s solution).\n",
		d.Version, len(d.Blocks), label)
	return nil
}

// ExecuteScoreSession scores one session file against the configured
// instrument artifacts, records the profile, and prints it.
// It serves as the main entry point for the 'score' command.
func ExecuteScoreSession(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	session, err := readSessionFile(cfg.SessionFile)
	if err != nil {
		return err
	}
	factors, err := readFactorsFile(cfg.FactorsFile)
	if err != nil {
		return err
	}

	start := time.Now()
	store := mgr.GetStore()
	d, err := store.GetDesign(cfg.DesignVersion)
	if err != nil {
		return err
	}
	calib, err := store.GetCalibration(cfg.CalibrationVersion)
	if err != nil {
		return err
	}
	norms, err := store.GetNorms(cfg.NormVersion)
	if err != nil {
		return err
	}

	scorer, err := NewScorer(d, calib, norms, cfg)
	if err != nil {
		return err
	}
	profile, err := scorer.ScoreSession(session, factors)
	if err != nil {
		return err
	}

	if err := store.RecordProfile(profile); err != nil {
		contract.LogWarn("could not record profile", err)
	}

	return outwriter.WriteProfileResult(profile, cfg, time.Since(start))
}

// ExecuteListProfiles prints stored profile summaries, newest first.
func ExecuteListProfiles(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	profiles, err := mgr.GetStore().ListProfiles(cfg.Limit)
	if err != nil {
		return err
	}
	return outwriter.WriteProfileListResult(profiles, cfg)
}

// ExecuteExportProfiles flattens stored profiles to Parquet files regardless
// of the configured output mode.
func ExecuteExportProfiles(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	profiles, err := mgr.GetStore().ListProfiles(cfg.Limit)
	if err != nil {
		return err
	}

	exportCfg := cfg.Clone()
	exportCfg.Output = schema.ParquetOut
	return outwriter.WriteProfileListResult(profiles, exportCfg)
}

// ExecuteMetrics displays the balance metric definitions, tier bands, and the
// active seed-weight table. No store access is performed.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.WriteMetricsDefinitions(cfg)
}

// ExecuteImportCalibration loads a calibration set JSON file into the store.
// The file carries its own version label; importing an existing version
// replaces it wholesale.
func ExecuteImportCalibration(_ context.Context, _ *contract.Config, mgr contract.StoreManager, path string) error {
	var calib schema.CalibrationSet
	if err := decodeJSONFile(path, &calib); err != nil {
		return err
	}
	if calib.Version == "" || len(calib.Params) == 0 {
		return fmt.Errorf("calibration file %s must carry a version and item parameters", path)
	}

	if err := mgr.GetStore().PutCalibration(&calib); err != nil {
		return err
	}
	fmt.Printf("Imported calibration %s (%d statements, %d item parameters).\n",
		calib.Version, len(calib.Statements), len(calib.Params))
	return nil
}

// ExecuteImportNorms loads a normative reference table JSON file into the
// store.
func ExecuteImportNorms(_ context.Context, _ *contract.Config, mgr contract.StoreManager, path string) error {
	var norms schema.NormTable
	if err := decodeJSONFile(path, &norms); err != nil {
		return err
	}
	if norms.Version == "" {
		return fmt.Errorf("norm file %s must carry a version", path)
	}

	if err := mgr.GetStore().PutNorms(&norms); err != nil {
		return err
	}
	fmt.Printf("Imported norms %s (%d facet tables, %d domain tables).\n",
		norms.Version, len(norms.Facets), len(norms.Domains))
	return nil
}

func decodeJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return nil
}

// readSessionFile decodes a session from the given path, with "-" meaning
// stdin.
func readSessionFile(path string) (*schema.Session, error) {
	if path == "" {
		return nil, fmt.Errorf("a session file argument is required")
	}

	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open session file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var session schema.Session
	if err := json.NewDecoder(r).Decode(&session); err != nil {
		return nil, fmt.Errorf("invalid session JSON in %s: %w", path, err)
	}
	if session.SessionID == "" {
		return nil, fmt.Errorf("session in %s is missing session_id", path)
	}
	return &session, nil
}

// readFactorsFile decodes optional screener factor scores used to warm-start
// the estimator. An empty path means no factors.
func readFactorsFile(path string) (map[schema.SourceFactor]float64, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read factors file: %w", err)
	}

	var factors map[schema.SourceFactor]float64
	if err := json.Unmarshal(data, &factors); err != nil {
		return nil, fmt.Errorf("invalid factors JSON in %s: %w", path, err)
	}
	return factors, nil
}
