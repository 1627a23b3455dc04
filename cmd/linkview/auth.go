package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/justkashish/linkview/internal/auth"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

func newLoginCmd(injector *do.Injector) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = prompt("Email: ")
			}

			if password == "" {
				password = prompt("Password: ")
			}

			flows := do.MustInvoke[*auth.Flows](injector)

			return flows.Login(cmd.Context(), email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func newSignupCmd(injector *do.Injector) *cobra.Command {
	var name, email, mobile, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flows := do.MustInvoke[*auth.Flows](injector)

			return flows.Signup(cmd.Context(), name, email, mobile, password)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&mobile, "mobile", "", "mobile number")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func newLogoutCmd(injector *do.Injector) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flows := do.MustInvoke[*auth.Flows](injector)

			return flows.Logout(cmd.Context())
		},
	}
}

func prompt(label string) string {
	fmt.Fprint(os.Stderr, label)

	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')

	return strings.TrimSpace(line)
}
