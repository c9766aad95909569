package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/app"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				return a.Serve(ctx)
			})
		},
	}
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// migrations run while the app is built
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				return printLine(cmd.OutOrStdout(), "migrations applied")
			})
		},
	}
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := opts.build
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "docqa %s (commit %s, built %s)\n", b.Version, b.Commit, b.BuildDate)
			return err
		},
	}
}
