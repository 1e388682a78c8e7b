package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"testertalk/internal/api"
	"testertalk/internal/format"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative operations (admin role required)",
}

// --- users ---

var adminUsersFlags struct {
	role       string
	activate   bool
	deactivate bool
}

var adminUsersCmd = &cobra.Command{
	Use:   "users [user-id]",
	Short: "List users, or update one with --role/--activate/--deactivate",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAdminUsers,
}

// --- issues ---

var adminDeleteFlags struct {
	all bool
	yes bool
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete-issue <issue-id>...",
	Short: "Delete issues with their comments and attachments",
	RunE:  runAdminDelete,
}

var adminEditFlags struct {
	title       string
	description string
	testCaseIDs string
	status      string
	reporter    string
	tags        []string
}

var adminEditCmd = &cobra.Command{
	Use:   "edit-issue <issue-id>",
	Short: "Edit issue fields, bypassing ownership checks",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminEdit,
}

var adminDeleteCommentCmd = &cobra.Command{
	Use:   "delete-comment <comment-id>",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDeleteComment,
}

// --- bucket reviewers ---

var adminReviewersCmd = &cobra.Command{
	Use:   "reviewers",
	Short: "Manage bucket-to-reviewer assignments",
	RunE:  runAdminReviewersList,
}

var adminReviewersSetCmd = &cobra.Command{
	Use:   "set <bucket> <reviewer>",
	Short: "Assign a reviewer to a bucket",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminReviewersSet,
}

var adminReviewersRemoveCmd = &cobra.Command{
	Use:   "remove <assignment-id>",
	Short: "Remove a bucket assignment",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminReviewersRemove,
}

var adminReviewersAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "List users eligible for bucket assignment",
	RunE:  runAdminReviewersAvailable,
}

func init() {
	f := adminUsersCmd.Flags()
	f.StringVar(&adminUsersFlags.role, "role", "", "Set the user's role (user or admin)")
	f.BoolVar(&adminUsersFlags.activate, "activate", false, "Activate the user")
	f.BoolVar(&adminUsersFlags.deactivate, "deactivate", false, "Deactivate the user")

	df := adminDeleteCmd.Flags()
	df.BoolVar(&adminDeleteFlags.all, "all", false, "Delete every issue")
	df.BoolVar(&adminDeleteFlags.yes, "yes", false, "Skip the confirmation for --all")

	ef := adminEditCmd.Flags()
	ef.StringVar(&adminEditFlags.title, "title", "", "New testcase title")
	ef.StringVar(&adminEditFlags.description, "description", "", "New description")
	ef.StringVar(&adminEditFlags.testCaseIDs, "ids", "", "New comma-separated test case IDs")
	ef.StringVar(&adminEditFlags.status, "status", "", "New status")
	ef.StringVar(&adminEditFlags.reporter, "reporter", "", "New reporter name")
	ef.StringArrayVar(&adminEditFlags.tags, "tag", nil, "Replacement tag (repeatable; replaces the whole tag list)")

	adminReviewersCmd.AddCommand(adminReviewersSetCmd)
	adminReviewersCmd.AddCommand(adminReviewersRemoveCmd)
	adminReviewersCmd.AddCommand(adminReviewersAvailableCmd)

	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminDeleteCmd)
	adminCmd.AddCommand(adminEditCmd)
	adminCmd.AddCommand(adminDeleteCommentCmd)
	adminCmd.AddCommand(adminReviewersCmd)
}

func runAdminUsers(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if _, err := a.gate.Require(cmd.Context()); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		if adminUsersFlags.activate && adminUsersFlags.deactivate {
			return fmt.Errorf("--activate and --deactivate are mutually exclusive")
		}
		var update api.UserUpdate
		if adminUsersFlags.role != "" {
			update.Role = &adminUsersFlags.role
		}
		if adminUsersFlags.activate || adminUsersFlags.deactivate {
			active := adminUsersFlags.activate
			update.IsActive = &active
		}
		user, err := a.client.Admin().UpdateUser(cmd.Context(), id, update)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "user %s: role=%s active=%s\n",
			user.Username, user.Role, format.BoolMark(user.IsActive))
		return nil
	}

	users, err := a.client.Admin().Users(cmd.Context())
	if err != nil {
		return err
	}
	tb := format.NewTable(tableMode())
	tb.Header("ID", "Username", "Email", "Role", "Active", "Last login")
	now := time.Now()
	for _, u := range users {
		tb.Row(u.ID, u.Username, u.Email, u.Role,
			format.BoolMark(u.IsActive),
			format.TimeAgo(u.LastLogin.Time(), now))
	}
	fmt.Fprintln(out, tb.String())
	return nil
}

func runAdminDelete(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if _, err := a.gate.Require(cmd.Context()); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if adminDeleteFlags.all {
		if !adminDeleteFlags.yes {
			return fmt.Errorf("--all deletes every issue; re-run with --yes to confirm")
		}
		refs, err := a.client.Admin().IssueRefs(cmd.Context())
		if err != nil {
			return err
		}
		if len(refs) == 0 {
			fmt.Fprintln(out, "no issues to delete")
			return nil
		}
		ids := make([]int, len(refs))
		for i, ref := range refs {
			ids[i] = ref.ID
		}
		deleted, err := a.client.Admin().BulkDeleteIssues(cmd.Context(), ids)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %d issues\n", deleted)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("give issue ids, or --all")
	}
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid issue id %q", arg)
		}
		ids = append(ids, id)
	}
	if len(ids) == 1 {
		if err := a.client.Admin().DeleteIssue(cmd.Context(), ids[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted issue #%d\n", ids[0])
		return nil
	}
	deleted, err := a.client.Admin().BulkDeleteIssues(cmd.Context(), ids)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted %d issues\n", deleted)
	return nil
}

func runAdminEdit(cmd *cobra.Command, args []string) error {
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

	var update api.IssueUpdate
	if adminEditFlags.title != "" {
		update.TestcaseTitle = &adminEditFlags.title
	}
	if adminEditFlags.description != "" {
		update.Description = &adminEditFlags.description
	}
	if adminEditFlags.testCaseIDs != "" {
		update.TestCaseIDs = &adminEditFlags.testCaseIDs
	}
	if adminEditFlags.status != "" {
		st := api.Status(adminEditFlags.status)
		if !st.Valid() {
			return fmt.Errorf("invalid status %q", adminEditFlags.status)
		}
		update.Status = &st
	}
	if adminEditFlags.reporter != "" {
		update.ReporterName = &adminEditFlags.reporter
	}
	if len(adminEditFlags.tags) > 0 {
		update.Tags = adminEditFlags.tags
	}

	issue, err := a.client.Admin().EditIssue(cmd.Context(), id, update)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "issue #%d updated\n", issue.ID)
	return nil
}

func runAdminDeleteComment(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid comment id %q", args[0])
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	if _, err := a.gate.Require(cmd.Context()); err != nil {
		return err
	}

	if err := a.client.Admin().DeleteComment(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted comment %d\n", id)
	return nil
}

func runAdminReviewersList(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if _, err := a.gate.Require(cmd.Context()); err != nil {
		return err
	}

	reviewers, err := a.client.Admin().BucketReviewers(cmd.Context())
	if err != nil {
		return err
	}
	tb := format.NewTable(tableMode())
	tb.Header("ID", "Bucket", "Reviewer")
	for _, r := range reviewers {
		tb.Row(r.ID, r.BucketName, r.ReviewerName)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tb.String())
	return nil
}

func runAdminReviewersSet(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if _, err := a.gate.Require(cmd.Context()); err != nil {
		return err
	}

	msg, err := a.client.Admin().SetBucketReviewer(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func runAdminReviewersRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid assignment id %q", args[0])
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	if _, err := a.gate.Require(cmd.Context()); err != nil {
		return err
	}

	if err := a.client.Admin().DeleteBucketReviewer(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "assignment %d removed\n", id)
	return nil
}

func runAdminReviewersAvailable(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if _, err := a.gate.Require(cmd.Context()); err != nil {
		return err
	}

	names, err := a.client.Admin().AvailableReviewers(cmd.Context())
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}
	return nil
}
