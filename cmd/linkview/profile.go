package main

import (
	"errors"
	"fmt"

	"github.com/justkashish/linkview/internal/api"
	"github.com/justkashish/linkview/internal/auth"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

func newProfileCmd(injector *do.Injector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the account profile",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return requireSession(injector)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			flows := do.MustInvoke[*auth.Flows](injector)

			p, err := flows.Profile(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Name:   %s\n", p.Name)
			fmt.Printf("Email:  %s\n", p.Email)
			fmt.Printf("Mobile: %s\n", p.Mobile)

			return nil
		},
	}

	cmd.AddCommand(newProfileUpdateCmd(injector), newProfileDeleteCmd(injector))

	return cmd
}

func newProfileUpdateCmd(injector *do.Injector) *cobra.Command {
	var name, email, mobile string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flows := do.MustInvoke[*auth.Flows](injector)

			// Unchanged fields keep their current values.
			current, err := flows.Profile(cmd.Context())
			if err != nil {
				return err
			}

			if name != "" {
				current.Name = name
			}

			if email != "" {
				current.Email = email
			}

			if mobile != "" {
				current.Mobile = mobile
			}

			return flows.UpdateProfile(cmd.Context(), api.Profile{
				Name:   current.Name,
				Email:  current.Email,
				Mobile: current.Mobile,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&mobile, "mobile", "", "mobile number")

	return cmd
}

func newProfileDeleteCmd(injector *do.Injector) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account permanently",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("account deletion cannot be undone; re-run with --yes to confirm")
			}

			flows := do.MustInvoke[*auth.Flows](injector)

			return flows.DeleteAccount(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deletion")

	return cmd
}
