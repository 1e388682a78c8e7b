package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"testertalk/internal/api"
	"testertalk/internal/format"
)

var showCmd = &cobra.Command{
	Use:   "show <issue-id>",
	Short: "Show one issue with its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid issue id %q", args[0])
	}
	a, err := loadApp()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	var issue *api.Issue
	var comments []api.Comment
	g.Go(func() error {
		var err error
		issue, err = a.client.Issues().Get(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = a.client.Issues().Comments(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	now := time.Now()

	fmt.Fprintf(out, "#%d %s\n", issue.ID, issue.TestcaseTitle)
	fmt.Fprintf(out, "severity: %s   status: %s   score: %s\n",
		issue.Severity, issue.Status, format.Score(issue.Score))
	fmt.Fprintf(out, "path:     %s\n", issue.TestcasePath)
	fmt.Fprintf(out, "release:  %s   platform: %s\n", issue.Release, issue.PlatformDisplay)
	if issue.Build != "" {
		fmt.Fprintf(out, "build:    %s", issue.Build)
		if issue.Target != "" {
			fmt.Fprintf(out, "   target: %s", issue.Target)
		}
		fmt.Fprintln(out)
	}
	if issue.TestCaseIDs != "" {
		fmt.Fprintf(out, "test ids: %s\n", issue.TestCaseIDs)
	}
	if len(issue.Tags) > 0 {
		fmt.Fprintf(out, "tags:     %s\n", strings.Join(issue.Tags, ", "))
	}
	if issue.ReviewerName != "" {
		fmt.Fprintf(out, "reviewer: %s\n", issue.ReviewerName)
	}
	if issue.CCRNumber != "" {
		fmt.Fprintf(out, "ccr:      %s\n", issue.CCRNumber)
	}
	fmt.Fprintf(out, "reported: by %s %s\n", issue.ReporterName,
		format.TimeAgo(issue.CreatedAt.Time(), now))

	fmt.Fprintf(out, "\n%s\n", issue.Description)
	if issue.AdditionalComments != "" {
		fmt.Fprintf(out, "\n%s\n", issue.AdditionalComments)
	}

	if len(issue.AdditionalTestcasePaths) > 0 {
		fmt.Fprintln(out, "\nalso seen at:")
		for _, tp := range issue.AdditionalTestcasePaths {
			fmt.Fprintf(out, "  [%d] %s (%s/%s, added by %s)\n",
				tp.ID, tp.Path, tp.Release, tp.PlatformDisplay, tp.AddedBy)
		}
	}

	if len(issue.Attachments) > 0 {
		fmt.Fprintln(out, "\nattachments:")
		for _, at := range issue.Attachments {
			fmt.Fprintf(out, "  %s (%s)\n", at.Filename, format.FileSize(at.FileSize))
		}
	}

	fmt.Fprintf(out, "\ncomments (%d):\n", len(comments))
	for _, c := range comments {
		head := fmt.Sprintf("[%d] %s · %s · %s", c.ID, c.CommenterName,
			format.Score(c.Score), format.TimeAgo(c.CreatedAt.Time(), now))
		if c.IsVerifiedSolution {
			head += "  ✓ verified solution"
		}
		fmt.Fprintln(out, head)
		for _, line := range strings.Split(c.Content, "\n") {
			fmt.Fprintf(out, "    %s\n", line)
		}
	}
	return nil
}
