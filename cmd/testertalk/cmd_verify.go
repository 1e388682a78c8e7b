package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"testertalk/internal/api"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <issue-id> <comment-id>",
	Short: "Mark a comment as the verified solution",
	Long: "Marks a comment as the verified solution, which resolves its\n" +
		"issue. Any previously verified comment on the issue loses the\n" +
		"mark. Refused when the issue is already resolved.",
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	issueID, err := strconv.Atoi(args[0])
	if err != nil || issueID <= 0 {
		return fmt.Errorf("invalid issue id %q", args[0])
	}
	commentID, err := strconv.Atoi(args[1])
	if err != nil || commentID <= 0 {
		return fmt.Errorf("invalid comment id %q", args[1])
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	if _, err := a.gate.Require(cmd.Context()); err != nil {
		return err
	}

	issue, err := a.client.Issues().Get(cmd.Context(), issueID)
	if err != nil {
		return err
	}
	if issue.Status == api.StatusResolved {
		return fmt.Errorf("issue #%d is already resolved with a verified solution", issue.ID)
	}
	comments, err := a.client.Issues().Comments(cmd.Context(), issueID)
	if err != nil {
		return err
	}
	found := false
	for _, c := range comments {
		if c.ID == commentID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("comment %d is not on issue #%d", commentID, issueID)
	}

	comment, err := a.client.Comments().Verify(cmd.Context(), commentID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "comment %d marked as verified solution, issue #%d resolved\n",
		comment.ID, comment.IssueID)
	return nil
}
