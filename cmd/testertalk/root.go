package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	server    string
	config    string
	logLevel  string
	logFormat string
	markdown  bool
}

var rootCmd = &cobra.Command{
	Use:   "testertalk",
	Short: "Browse and report test-case issues on a Tester Talk server",
	Long: "Tester Talk tracks defects found in automated test cases.\n" +
		"This client searches and reports issues, votes, comments, verifies\n" +
		"solutions, and can serve the issue database to MCP clients.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.server, "server", "", "Server base URL (overrides config)")
	pf.StringVar(&rootFlags.config, "config", "", "Config file (default ~/.config/testertalk/config.yaml)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text or json")
	pf.BoolVar(&rootFlags.markdown, "markdown", false, "Render tables as Markdown instead of ASCII")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(ccrCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(metaCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
