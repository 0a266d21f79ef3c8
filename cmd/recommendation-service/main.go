package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"recommendation-service/internal"

	"github.com/spf13/cobra"
)

func main() {
	var envPath string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := internal.NewApp(envPath)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			applied, err := internal.Migrate(ctx, envPath)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pending migrations.")
				return nil
			}
			for _, version := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", version)
			}
			return nil
		},
	}

	rootCmd := &cobra.Command{
		Use:           "recommendation-service",
		Short:         "Rental property recommendation service",
		SilenceUsage:  true,
		SilenceErrors: true,
		// without a subcommand the service is started
		RunE: serveCmd.RunE,
	}
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "", "path to a .env file (defaults to ./.env)")
	rootCmd.AddCommand(serveCmd, migrateCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
