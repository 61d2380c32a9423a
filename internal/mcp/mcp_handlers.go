package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/core/design"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleGenerateDesign(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if v := request.GetString("calibration_version", ""); v != "" {
		cfg.CalibrationVersion = v
	}
	if e := request.GetInt("exposure", 0); e > 0 {
		cfg.ExposureTarget = e
	}
	if tol := request.GetFloat("desirability_tolerance", 0); tol > 0 {
		cfg.DesirabilityTolerance = tol
	}

	version := request.GetString("design_version", "")
	if version == "" {
		return mcp.NewToolResultError("design_version is required"), nil
	}

	store := h.mgr.GetStore()
	calib, err := store.GetCalibration(cfg.CalibrationVersion)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("calibration load failed: %v", err)), nil
	}

	d, err := design.Generate(&design.Request{
		Pool:                  calib.Statements,
		Version:               version,
		ExposureTarget:        cfg.ExposureTarget,
		DesirabilityTolerance: cfg.DesirabilityTolerance,
		Budget:                cfg.DesignBudget,
		Chains:                cfg.Chains,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("design generation failed: %v", err)), nil
	}

	if err := store.PutDesign(d); err != nil {
		contract.LogWarn("store design", err)
	}

	jsonData, _ := json.MarshalIndent(d, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if v := request.GetString("design_version", ""); v != "" {
		cfg.DesignVersion = v
	}
	if v := request.GetString("calibration_version", ""); v != "" {
		cfg.CalibrationVersion = v
	}
	if v := request.GetString("norm_version", ""); v != "" {
		cfg.NormVersion = v
	}

	var session schema.Session
	if err := json.Unmarshal([]byte(request.GetString("session_json", "")), &session); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid session JSON: %v", err)), nil
	}
	if session.SessionID == "" {
		return mcp.NewToolResultError("session JSON is missing session_id"), nil
	}

	store := h.mgr.GetStore()
	d, err := store.GetDesign(cfg.DesignVersion)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("design load failed: %v", err)), nil
	}
	calib, err := store.GetCalibration(cfg.CalibrationVersion)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("calibration load failed: %v", err)), nil
	}
	norms, err := store.GetNorms(cfg.NormVersion)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("norms load failed: %v", err)), nil
	}

	scorer, err := core.NewScorer(d, calib, norms, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scorer setup failed: %v", err)), nil
	}
	profile, err := scorer.ScoreSession(&session, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	if err := store.RecordProfile(profile); err != nil {
		contract.LogWarn("record profile", err)
	}

	jsonData, _ := json.MarshalIndent(profile, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleComputeBalance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var percentiles [schema.NumDomains]float64
	for i, key := range []string{"executing", "influencing", "relationship", "thinking"} {
		v := request.GetFloat(key, -1)
		if v < 0 || v > 100 {
			return mcp.NewToolResultError(fmt.Sprintf("%s must be a percentile in [0, 100]", key)), nil
		}
		percentiles[i] = v
	}

	metrics := core.ComputeBalance(percentiles)
	jsonData, _ := json.MarshalIndent(metrics, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListProfiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", h.baseCfg.Limit)

	profiles, err := h.mgr.GetStore().ListProfiles(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("profile listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(profiles, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
