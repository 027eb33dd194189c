package main

import (
	"fmt"

	"github.com/panbanda/strata/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP (Model Context Protocol) server for LLM tool integration",
	Long: `Starts an MCP server over stdio transport that exposes strata's analyzers
as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "strata": {
        "command": "strata",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_history   Longitudinal quality metrics per commit
  - extract_commits   Commit history as a JSON document
  - search_keywords   Keyword scan over files at HEAD`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().Bool("manifest", false, "Print the server manifest (server.json) and exit")

	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	if manifest, _ := cmd.Flags().GetBool("manifest"); manifest {
		data, err := mcpserver.GenerateManifest(version)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	server := mcpserver.NewServer(version)
	return server.Run(cmd.Context())
}
