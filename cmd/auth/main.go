package main

import (
	"context"
	"fmt"
	"os"

	"github.com/snehalbaghel/badgr-server/internal/auth/app"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg     app.Config
		envFile = ".env"
	)

	c := cobra.Command{
		Use:           "auth",
		Short:         "Badgr authorization service",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.LoadEnv(cmd.Context(), envFile)
			cfg = app.LoadConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	c.PersistentFlags().StringVar(&envFile, "env-file", envFile, "env file loaded when ENV_FILE_PATH is unset")
	c.AddCommand(
		newServeCmd(&cfg),
		newMigrateCmd(&cfg),
		newClientCmd(&cfg),
		newUserCmd(&cfg),
	)
	return &c
}

func newServeCmd(cfg *app.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *cfg)
		},
	}
}

func serve(ctx context.Context, cfg app.Config) error {
	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}
