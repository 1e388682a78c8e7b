package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"testertalk/internal/format"
)

var voteFlags struct {
	comment bool
}

var voteCmd = &cobra.Command{
	Use:   "vote <id> <up|down>",
	Short: "Vote on an issue, or on a comment with --comment",
	Long: "Casts an upvote or downvote. Votes are anonymous tallies; every\n" +
		"vote counts.",
	Args: cobra.ExactArgs(2),
	RunE: runVote,
}

func init() {
	voteCmd.Flags().BoolVar(&voteFlags.comment, "comment", false, "Vote on a comment instead of an issue")
}

func runVote(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", args[0])
	}
	direction, err := parseVoteDirection(args[1])
	if err != nil {
		return err
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	if _, err := a.gate.Require(cmd.Context()); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if voteFlags.comment {
		comment, err := a.client.Comments().Vote(cmd.Context(), id, direction)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "comment %d score: %s\n", comment.ID, format.Score(comment.Score))
		return nil
	}

	issue, err := a.client.Issues().Vote(cmd.Context(), id, direction)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "issue #%d score: %s (%d up, %d down)\n",
		issue.ID, format.Score(issue.Score), issue.Upvotes, issue.Downvotes)
	return nil
}
