package cmd

import (
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the strengths MCP server",
	Long:  `Launch an MCP server that allows AI agents to generate designs, score sessions, and inspect profiles via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep setup output off stdout, which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
