package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment <issue-id> <text>...",
	Short: "Add a comment to an issue",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runComment,
}

func runComment(cmd *cobra.Command, args []string) error {
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

	comment, err := a.client.Issues().AddComment(cmd.Context(), id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "comment %d added to issue #%d\n", comment.ID, id)
	return nil
}
