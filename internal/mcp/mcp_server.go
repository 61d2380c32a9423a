// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the strengths MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Strengths Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: generate_design ---
	s.AddTool(mcp.NewTool("generate_design",
		mcp.WithDescription("Generate a constraint-valid forced-choice block design from a calibrated statement pool."),
		mcp.WithString("calibration_version", mcp.Description("Calibration set whose statements form the pool (defaults to the configured version).")),
		mcp.WithString("design_version", mcp.Description("Version label to store the generated design under."), mcp.Required()),
		mcp.WithNumber("exposure", mcp.Description("Number of blocks each facet appears in (defaults to the configured target).")),
		mcp.WithNumber("desirability_tolerance", mcp.Description("Maximum desirability spread allowed within a block.")),
	), h.handleGenerateDesign)

	// --- 2. Tool: score_session ---
	s.AddTool(mcp.NewTool("score_session",
		mcp.WithDescription("Score a completed forced-choice session into a tiered strengths profile."),
		mcp.WithString("session_json", mcp.Description("JSON-encoded session with session_id and block responses."), mcp.Required()),
		mcp.WithString("design_version", mcp.Description("Block design the session was administered with.")),
		mcp.WithString("calibration_version", mcp.Description("Item-parameter set to score with.")),
		mcp.WithString("norm_version", mcp.Description("Normative reference table for percentiles.")),
	), h.handleScoreSession)

	// --- 3. Tool: compute_balance ---
	s.AddTool(mcp.NewTool("compute_balance",
		mcp.WithDescription("Compute the balance metrics (DBI, relative entropy, Gini) for four domain percentiles."),
		mcp.WithNumber("executing", mcp.Description("Executing domain percentile (0-100)."), mcp.Required()),
		mcp.WithNumber("influencing", mcp.Description("Influencing domain percentile (0-100)."), mcp.Required()),
		mcp.WithNumber("relationship", mcp.Description("Relationship domain percentile (0-100)."), mcp.Required()),
		mcp.WithNumber("thinking", mcp.Description("Thinking domain percentile (0-100)."), mcp.Required()),
	), h.handleComputeBalance)

	// --- 4. Tool: list_profiles ---
	s.AddTool(mcp.NewTool("list_profiles",
		mcp.WithDescription("List stored strengths profiles, newest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of profiles returned.")),
	), h.handleListProfiles)

	return s
}

// StartMCPServer starts the strengths MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
