package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerFlags struct {
	username string
	email    string
	password string
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account and sign in",
	RunE:  runRegister,
}

func init() {
	f := registerCmd.Flags()
	f.StringVarP(&registerFlags.username, "username", "u", "", "Username")
	f.StringVarP(&registerFlags.email, "email", "e", "", "Email address")
	f.StringVarP(&registerFlags.password, "password", "p", "", "Password")

	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
}

func runRegister(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	if _, err := a.client.Auth().Register(cmd.Context(),
		registerFlags.username, registerFlags.email, registerFlags.password); err != nil {
		return err
	}

	// Registration does not start a session; sign in right away.
	user, err := a.client.Auth().Login(cmd.Context(), registerFlags.username, registerFlags.password)
	if err != nil {
		return fmt.Errorf("registered, but sign-in failed: %w", err)
	}
	if err := a.store.SaveProfile(user); err != nil {
		a.logger.Warn("failed to cache profile", "error", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "registered and signed in as %s\n", user.Username)
	return nil
}
