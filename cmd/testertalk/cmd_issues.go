package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"testertalk/internal/api"
	"testertalk/internal/logging"
	"testertalk/internal/search"
)

var issuesFlags struct {
	query    string
	status   string
	severity string
	build    string
	platform string
	release  string
	target   string
	size     int
	page     int
	perPage  int
}

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "List or search issues",
	Long: "Without filters, lists issues page by page. With any filter the\n" +
		"server-side search is used and pagination flags are ignored.",
	RunE: runIssues,
}

func init() {
	f := issuesCmd.Flags()
	f.StringVarP(&issuesFlags.query, "query", "q", "", "Free-text search over title, path and description")
	f.StringVar(&issuesFlags.status, "status", "", "Filter by status (open, in_progress, resolved, closed, ccr)")
	f.StringVar(&issuesFlags.severity, "severity", "", "Filter by severity (Critical, High, Medium, Low)")
	f.StringVar(&issuesFlags.build, "build", "", "Filter by build")
	f.StringVar(&issuesFlags.platform, "platform", "", "Filter by platform code")
	f.StringVar(&issuesFlags.release, "release", "", "Filter by release")
	f.StringVar(&issuesFlags.target, "target", "", "Filter by target (release-specific)")
	f.IntVar(&issuesFlags.size, "size", 0, "Max search results (server default when 0)")
	f.IntVar(&issuesFlags.page, "page", 1, "Page number for unfiltered listing")
	f.IntVar(&issuesFlags.perPage, "per-page", 0, "Page size for unfiltered listing")
}

func runIssues(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	// Release before target: a release change resets the target filter.
	state := search.NewFilterState(issuesFlags.size)
	for _, f := range []struct{ field, value string }{
		{search.FieldSearch, issuesFlags.query},
		{search.FieldStatus, issuesFlags.status},
		{search.FieldSeverity, issuesFlags.severity},
		{search.FieldBuild, issuesFlags.build},
		{search.FieldPlatform, issuesFlags.platform},
		{search.FieldRelease, issuesFlags.release},
		{search.FieldTarget, issuesFlags.target},
	} {
		if err := state.Set(f.field, f.value); err != nil {
			return err
		}
	}

	if state.Active() {
		ctrl := search.NewController(a.client.Issues(), state, nil, logging.New("search"))
		resp, err := ctrl.SearchNow(cmd.Context())
		if err != nil {
			return err
		}
		if len(resp.Issues) == 0 {
			fmt.Fprintln(out, "no issues match")
			return nil
		}
		fmt.Fprintln(out, issueTable(resp.Issues))
		fmt.Fprintf(out, "%d of %d matching issues\n", len(resp.Issues), resp.Total)
		return nil
	}

	opts := []api.ListIssuesOption{api.WithPage(issuesFlags.page)}
	perPage := issuesFlags.perPage
	if perPage == 0 {
		perPage = a.cfg.PageSize
	}
	if perPage > 0 {
		opts = append(opts, api.WithPerPage(perPage))
	}
	page, err := a.client.Issues().List(cmd.Context(), opts...)
	if err != nil {
		return err
	}
	if len(page.Issues) == 0 {
		fmt.Fprintln(out, "no issues")
		return nil
	}
	fmt.Fprintln(out, issueTable(page.Issues))
	fmt.Fprintf(out, "page %d/%d, %d issues total\n", page.CurrentPage, page.Pages, page.Total)
	return nil
}
