package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neilberkman/leaddesk/cmd/leaddesk/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server over the lead console",
	Long: `Start an MCP (Model Context Protocol) server on stdio that lets an
assistant list, update and convert the leads of the configured source.

Edits and opportunities live in memory until the server exits.

Example client configuration:
  {
    "mcpServers": {
      "leaddesk": {
        "command": "leaddesk",
        "args": ["serve-mcp", "--source", "/path/to/leads.json"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src, err := openSource(cfg)
	if err != nil {
		return err
	}

	if err := mcp.StartServer(cmd.Context(), cfg, src); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
