package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"testertalk/internal/browse"
	"testertalk/internal/logging"
)

var browseCmd = &cobra.Command{
	Use:   "browse [route]",
	Short: "Browse issues interactively",
	Long: "Opens the interactive issue browser. An optional route argument\n" +
		"jumps straight to one issue: either an ID or a web path like\n" +
		"/issues/42.",
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	openID := 0
	if len(args) == 1 {
		id, ok := browse.ParseRoute(args[0])
		if !ok {
			return fmt.Errorf("unrecognized route %q", args[0])
		}
		openID = id
	}

	model := browse.New(a.client, a.gate, a.cfg.PageSize, openID, logging.New("browse"))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	return nil
}
