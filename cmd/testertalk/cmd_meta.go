package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"testertalk/internal/format"
	"testertalk/internal/pathinfo"
)

var metaTargetsFlags struct {
	release string
}

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Show the dropdown values the server knows about",
}

var metaBuildsCmd = &cobra.Command{
	Use:   "builds",
	Short: "List known builds",
	RunE:  runMetaBuilds,
}

var metaTargetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List targets for a release",
	RunE:  runMetaTargets,
}

var metaReleasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "List known releases",
	RunE:  runMetaReleases,
}

var metaPlatformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List platforms with their display names",
	RunE:  runMetaPlatforms,
}

var metaTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags in use",
	RunE:  runMetaTags,
}

func init() {
	metaTargetsCmd.Flags().StringVarP(&metaTargetsFlags.release, "release", "r", "", "Release to list targets for")
	metaCmd.AddCommand(metaBuildsCmd)
	metaCmd.AddCommand(metaTargetsCmd)
	metaCmd.AddCommand(metaReleasesCmd)
	metaCmd.AddCommand(metaPlatformsCmd)
	metaCmd.AddCommand(metaTagsCmd)
}

func runMetaBuilds(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	builds, err := a.client.Meta().Builds(cmd.Context())
	if err != nil {
		return err
	}
	// A server with no reported builds yet still offers the standard
	// build names.
	if len(builds) == 0 {
		builds = pathinfo.FallbackBuilds()
	}
	for _, b := range builds {
		fmt.Fprintln(cmd.OutOrStdout(), b)
	}
	return nil
}

func runMetaTargets(cmd *cobra.Command, _ []string) error {
	if metaTargetsFlags.release == "" {
		return fmt.Errorf("targets are release-specific; pass --release")
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	targets, err := a.client.Meta().Targets(cmd.Context(), metaTargetsFlags.release)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		targets = pathinfo.TargetsForRelease(metaTargetsFlags.release)
	}
	for _, t := range targets {
		fmt.Fprintln(cmd.OutOrStdout(), t)
	}
	return nil
}

func runMetaReleases(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	releases, err := a.client.Meta().Releases(cmd.Context())
	if err != nil {
		return err
	}
	if len(releases) == 0 {
		releases = pathinfo.Releases()
	}
	for _, r := range releases {
		fmt.Fprintln(cmd.OutOrStdout(), r)
	}
	return nil
}

func runMetaPlatforms(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	platforms, err := a.client.Meta().Platforms(cmd.Context())
	if err != nil {
		return err
	}
	tb := format.NewTable(tableMode())
	tb.Header("Code", "Display")
	for _, p := range platforms {
		tb.Row(p.Code, p.Display)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tb.String())
	return nil
}

func runMetaTags(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	tags, err := a.client.Meta().Tags(cmd.Context())
	if err != nil {
		return err
	}
	for _, t := range tags {
		fmt.Fprintln(cmd.OutOrStdout(), t.Name)
	}
	return nil
}
