package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/docqa/internal/app"
	"github.com/dmitrijs2005/docqa/internal/extract"
	"github.com/spf13/cobra"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var file, question string
	cmd := &cobra.Command{
		Use:   "ask <email>",
		Short: "Ask a question about a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" || question == "" {
				return errors.New("--file and --question are required")
			}
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			doc := extract.Document{Name: file, Content: content}

			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				msg, err := a.Chatbot.Ask(ctx, args[0], doc, question)
				if err != nil {
					return err
				}
				return printLine(cmd.OutOrStdout(), msg)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "PDF or text document")
	cmd.Flags().StringVarP(&question, "question", "q", "", "question to ask")
	return cmd
}
