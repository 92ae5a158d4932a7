package main

import (
	"context"
	"fmt"

	"github.com/snehalbaghel/badgr-server/internal/auth/app"
	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/internal/auth/store"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/spf13/cobra"
)

func newUserCmd(cfg *app.Config) *cobra.Command {
	c := cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
		Args:  cobra.NoArgs,
	}
	c.AddCommand(
		newUserCreateCmd(cfg),
		newUserPasswordCmd(cfg),
		newUserVerifyCmd(cfg),
	)
	return &c
}

func newUserCreateCmd(cfg *app.Config) *cobra.Command {
	var (
		password string
		verified bool
	)

	c := cobra.Command{
		Use:   "create <email>",
		Short: "Create a user; a random password is printed when none is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			generated := password == ""
			if generated {
				var err error
				if password, err = cryptox.GeneratePassword(); err != nil {
					return err
				}
			}

			return withStore(cmd.Context(), *cfg, func(ctx context.Context, st store.Store) error {
				u, err := (&service.UserService{Store: st}).CreateUser(ctx, args[0], password, verified)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "user_id=%s\n", u.ID)
				if generated {
					fmt.Fprintf(out, "password=%s\n", password)
				}
				return nil
			})
		},
	}
	c.Flags().StringVar(&password, "password", "", "initial password")
	c.Flags().BoolVar(&verified, "verified", false, "mark the email address as verified")
	return &c
}

func newUserPasswordCmd(cfg *app.Config) *cobra.Command {
	var password string

	c := cobra.Command{
		Use:   "set-password <email>",
		Short: "Replace a user's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), *cfg, func(ctx context.Context, st store.Store) error {
				return (&service.UserService{Store: st}).SetPassword(ctx, args[0], password)
			})
		},
	}
	c.Flags().StringVar(&password, "password", "", "new password")
	_ = c.MarkFlagRequired("password")
	return &c
}

func newUserVerifyCmd(cfg *app.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <email>",
		Short: "Mark a user's email address as verified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), *cfg, func(ctx context.Context, st store.Store) error {
				return (&service.UserService{Store: st}).VerifyEmail(ctx, args[0])
			})
		},
	}
}
