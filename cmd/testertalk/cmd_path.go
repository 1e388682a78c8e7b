package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"testertalk/internal/pathinfo"
)

var pathAddFlags struct {
	force bool
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Manage the extra testcase paths on an issue",
}

var pathAddCmd = &cobra.Command{
	Use:   "add <issue-id> <testcase-path>",
	Short: "Attach another testcase path to an issue",
	Args:  cobra.ExactArgs(2),
	RunE:  runPathAdd,
}

var pathRemoveCmd = &cobra.Command{
	Use:   "remove <issue-id> <path-id>",
	Short: "Detach a previously added testcase path",
	Long: "Detaches a path by its path ID, shown in brackets by\n" +
		"`testertalk show`.",
	Args: cobra.ExactArgs(2),
	RunE: runPathRemove,
}

func init() {
	pathAddCmd.Flags().BoolVar(&pathAddFlags.force, "force", false, "Add even when the path is not recognized")
	pathCmd.AddCommand(pathAddCmd)
	pathCmd.AddCommand(pathRemoveCmd)
}

func runPathAdd(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid issue id %q", args[0])
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	user, err := a.gate.Require(cmd.Context())
	if err != nil {
		return err
	}

	if _, recognized := pathinfo.ExtractInfo(args[1]); !recognized && !pathAddFlags.force {
		return fmt.Errorf("path does not match the known testcase layout; re-run with --force to add anyway")
	}

	tp, err := a.client.Issues().AddTestcasePath(cmd.Context(), id, args[1], user.Username)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "path [%d] added to issue #%d (%s/%s)\n",
		tp.ID, id, tp.Release, tp.PlatformDisplay)
	if bucket, ok := pathinfo.ExtractBucketName(args[1]); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "bucket tag: %s\n", bucket)
	}
	return nil
}

func runPathRemove(cmd *cobra.Command, args []string) error {
	issueID, err := strconv.Atoi(args[0])
	if err != nil || issueID <= 0 {
		return fmt.Errorf("invalid issue id %q", args[0])
	}
	pathID, err := strconv.Atoi(args[1])
	if err != nil || pathID <= 0 {
		return fmt.Errorf("invalid path id %q", args[1])
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	if _, err := a.gate.Require(cmd.Context()); err != nil {
		return err
	}

	if err := a.client.Issues().RemoveTestcasePath(cmd.Context(), issueID, pathID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "path [%d] removed from issue #%d\n", pathID, issueID)
	return nil
}
