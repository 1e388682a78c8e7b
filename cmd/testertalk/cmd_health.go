package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is reachable",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if err := a.client.Meta().Health(cmd.Context()); err != nil {
		return fmt.Errorf("server unhealthy: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is healthy\n", a.client.BaseURL())
	return nil
}
