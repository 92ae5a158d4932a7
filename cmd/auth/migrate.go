package main

import (
	"fmt"

	"github.com/snehalbaghel/badgr-server/internal/auth/app"
	"github.com/spf13/cobra"
)

func newMigrateCmd(cfg *app.Config) *cobra.Command {
	c := cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
		Args:  cobra.NoArgs,
	}

	up := cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := app.OpenStore(*cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.ApplyMigrations(); err != nil {
				return err
			}
			return printVersion(cmd, db.MigrationVersion)
		},
	}

	var steps int
	down := cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := app.OpenStore(*cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.RollbackMigrations(steps); err != nil {
				return err
			}
			return printVersion(cmd, db.MigrationVersion)
		},
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")

	version := cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := app.OpenStore(*cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			return printVersion(cmd, db.MigrationVersion)
		},
	}

	c.AddCommand(&up, &down, &version)
	return &c
}

func printVersion(cmd *cobra.Command, current func() (uint, bool, error)) error {
	v, dirty, err := current()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
	return err
}
