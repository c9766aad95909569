// Package cli implements the docqa command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/docqa/internal/app"
	"github.com/dmitrijs2005/docqa/internal/config"
	"github.com/spf13/cobra"
)

// BuildInfo is printed by the version command.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

type rootOptions struct {
	configPath string
	build      BuildInfo
}

// NewRootCommand returns the docqa command tree.
func NewRootCommand(build BuildInfo) *cobra.Command {
	opts := &rootOptions{build: build}

	root := &cobra.Command{
		Use:   "docqa",
		Short: "docqa - ask questions about your documents",
		Long: `docqa stores accounts and extracted document text, and answers
questions about uploaded PDF or text documents.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to a JSON config file")
	config.RegisterFlags(pf)

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newSignupCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newAskCmd(opts),
		newAdminCmd(opts),
		newVersionCmd(opts),
	)

	return root
}

// withApp loads the configuration for cmd, builds the app and runs fn.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// startup runs to completion; ctx only bounds the command itself
	a, err := app.New(context.WithoutCancel(ctx), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func printLine(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}
