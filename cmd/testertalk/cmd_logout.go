package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"testertalk/internal/api"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and drop the stored cookie",
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	// An expired session still counts as logged out.
	if err := a.client.Auth().Logout(cmd.Context()); err != nil && !api.IsUnauthorized(err) {
		a.logger.Warn("server logout failed, clearing local state anyway", "error", err)
	}
	if err := a.store.ClearProfile(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "signed out")
	return nil
}
