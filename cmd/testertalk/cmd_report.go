package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"testertalk/internal/api"
	"testertalk/internal/pathinfo"
	"testertalk/internal/tagset"
)

var reportFlags struct {
	title           string
	path            string
	severity        string
	testCaseIDs     string
	description     string
	descriptionFile string
	notes           string
	build           string
	target          string
	tags            []string
	attachments     []string
	force           bool
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report a new issue",
	Long: "Reports a new issue. Release and platform are derived from the\n" +
		"testcase path, and its bucket name becomes the primary tag. Paths\n" +
		"outside the recognized layout need --force.",
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportFlags.title, "title", "t", "", "Testcase title")
	f.StringVar(&reportFlags.path, "path", "", "Testcase path")
	f.StringVarP(&reportFlags.severity, "severity", "s", "", "Severity: Critical, High, Medium, Low")
	f.StringVar(&reportFlags.testCaseIDs, "ids", "", "Comma-separated test case IDs")
	f.StringVarP(&reportFlags.description, "description", "d", "", "Issue description")
	f.StringVar(&reportFlags.descriptionFile, "description-file", "", "Read the description from a file")
	f.StringVar(&reportFlags.notes, "notes", "", "Additional comments")
	f.StringVar(&reportFlags.build, "build", "", "Build the failure was seen on")
	f.StringVar(&reportFlags.target, "target", "", "Target (release-specific)")
	f.StringArrayVar(&reportFlags.tags, "tag", nil, "Extra tag (repeatable)")
	f.StringArrayVar(&reportFlags.attachments, "attach", nil, "File to attach (repeatable)")
	f.BoolVar(&reportFlags.force, "force", false, "Report even when the path is not recognized")

	_ = reportCmd.MarkFlagRequired("title")
	_ = reportCmd.MarkFlagRequired("path")
	_ = reportCmd.MarkFlagRequired("severity")
}

func runReport(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	user, err := a.gate.Require(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	description := reportFlags.description
	if reportFlags.descriptionFile != "" {
		data, err := os.ReadFile(reportFlags.descriptionFile)
		if err != nil {
			return fmt.Errorf("read description: %w", err)
		}
		description = string(data)
	}

	// Path recognition is advisory: unknown layouts are reportable,
	// but only deliberately.
	info, recognized := pathinfo.ExtractInfo(reportFlags.path)
	if recognized {
		fmt.Fprintf(out, "path recognized: release %s, platform %s\n", info.Release, info.Platform)
	} else if !reportFlags.force {
		return fmt.Errorf("path does not match the known testcase layout; re-run with --force to report anyway")
	}

	tags := tagset.New()
	if bucket, ok := pathinfo.ExtractBucketName(reportFlags.path); ok {
		tags.SetAuto(bucket)
	}
	for _, t := range reportFlags.tags {
		tags.AddManual(t)
	}

	issue, err := a.client.Issues().Create(cmd.Context(), api.IssueDraft{
		TestcaseTitle:      reportFlags.title,
		TestcasePath:       reportFlags.path,
		Severity:           api.Severity(reportFlags.severity),
		ReporterName:       user.Username,
		TestCaseIDs:        reportFlags.testCaseIDs,
		Description:        description,
		AdditionalComments: reportFlags.notes,
		Build:              reportFlags.build,
		Target:             reportFlags.target,
		Tags:               tags.Serialize(),
		AttachmentPaths:    reportFlags.attachments,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "reported issue #%d\n", issue.ID)
	if issue.ReviewerName != "" {
		fmt.Fprintf(out, "assigned reviewer: %s\n", issue.ReviewerName)
	}
	return nil
}
