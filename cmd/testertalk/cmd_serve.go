package main

import (
	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"testertalk/internal/logging"
	mcpserver "testertalk/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve issue lookups to MCP clients over stdio",
	Long: "Starts an MCP server over stdin/stdout exposing read-only issue\n" +
		"lookup tools, so coding agents can pull failure context from\n" +
		"Tester Talk while investigating.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	srv := mcpserver.NewServer(a.client)
	logging.New("mcp").Info("starting testertalk MCP server over stdio", "server", a.client.BaseURL())
	return srv.MCPServer.Run(cmd.Context(), &sdkmcp.StdioTransport{})
}
