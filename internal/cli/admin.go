package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/docqa/internal/app"
	"github.com/spf13/cobra"
)

func newAdminCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Read-only views of stored accounts and documents",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "users",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				users, err := a.Admin.ListUsers(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "IDENTITY\tSECRET")
				for _, u := range users {
					fmt.Fprintf(tw, "%s\t%s\n", u.Identity, base64.StdEncoding.EncodeToString(u.Secret))
				}
				return tw.Flush()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "documents",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				docs, err := a.Admin.ListDocuments(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tOWNER\tNAME\tCHARS")
				for _, d := range docs {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", d.ID, d.Owner, d.Name, d.TextLength)
				}
				return tw.Flush()
			})
		},
	})

	return cmd
}
