package cli

import (
	"context"

	"github.com/dmitrijs2005/docqa/internal/app"
	"github.com/spf13/cobra"
)

func newSignupCmd(opts *rootOptions) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "signup <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(password, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				msg, err := a.Chatbot.Signup(ctx, args[0], pw)
				if err != nil {
					return err
				}
				return printLine(cmd.OutOrStdout(), msg)
			})
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when empty)")
	return cmd
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Check an email and password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(password, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				msg, err := a.Chatbot.Login(ctx, args[0], pw)
				if err != nil {
					return err
				}
				return printLine(cmd.OutOrStdout(), msg)
			})
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when empty)")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout <email>",
		Short: "Log out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				return printLine(cmd.OutOrStdout(), a.Chatbot.Logout(ctx, args[0]))
			})
		},
	}
}
