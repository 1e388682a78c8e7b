package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"testertalk/internal/api"
)

var ccrCmd = &cobra.Command{
	Use:   "ccr <issue-id> <ccr-number>",
	Short: "Move an issue to CCR status",
	Long: "Records the CCR number on the issue and changes its status to\n" +
		"ccr. Resolved issues cannot be moved.",
	Args: cobra.ExactArgs(2),
	RunE: runCCR,
}

func runCCR(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid issue id %q", args[0])
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	if _, err := a.gate.Require(cmd.Context()); err != nil {
		return err
	}

	// Same guard the server applies, but checked up front so the
	// failure names the reason instead of echoing an HTTP error.
	issue, err := a.client.Issues().Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	if issue.Status == api.StatusResolved {
		return fmt.Errorf("issue #%d is resolved and cannot be moved to CCR", id)
	}

	issue, err = a.client.Issues().MoveToCCR(cmd.Context(), id, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "issue #%d moved to CCR (%s)\n", issue.ID, issue.CCRNumber)
	return nil
}
