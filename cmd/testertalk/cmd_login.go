package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var loginFlags struct {
	username string
	password string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session for later commands",
	RunE:  runLogin,
}

func init() {
	f := loginCmd.Flags()
	f.StringVarP(&loginFlags.username, "username", "u", "", "Username")
	f.StringVarP(&loginFlags.password, "password", "p", "", "Password (prompted when omitted)")

	_ = loginCmd.MarkFlagRequired("username")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	password := loginFlags.password
	if password == "" {
		fmt.Fprint(cmd.OutOrStdout(), "password: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	user, err := a.client.Auth().Login(cmd.Context(), loginFlags.username, password)
	if err != nil {
		return err
	}
	if err := a.store.SaveProfile(user); err != nil {
		a.logger.Warn("failed to cache profile", "error", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", user.Username, user.Role)
	return nil
}
