package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who the stored session belongs to",
	RunE:  runWhoami,
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	user, ok := a.gate.Check(cmd.Context())
	out := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintln(out, "not signed in")
		return nil
	}

	fmt.Fprintf(out, "user:  %s\n", user.Username)
	fmt.Fprintf(out, "email: %s\n", user.Email)
	fmt.Fprintf(out, "role:  %s\n", user.Role)
	return nil
}
