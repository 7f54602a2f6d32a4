package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/txus/jjigae/pkg/prestudy"
	"github.com/txus/jjigae/pkg/vocab"
)

func (c *cli) unknownCmd() *cobra.Command {
	var flags termFlags

	cmd := &cobra.Command{
		Use:   "unknown [file]",
		Short: "List the frequent words of a passage missing from your collection",
		Long: `List the terms "extract" would report, minus every word the collection
shows you have already studied. A word whose cards are all suspended counts
as already studied.

Examples:
  jjigae unknown article.html
  jjigae unknown --min-difficulty A < notes.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			terms, err := c.unknownTerms(cmd.Context(), text, flags.options(cmd, c.app.StudyOptions()))
			if err != nil {
				return err
			}
			return writeTerms(cmd.OutOrStdout(), terms, flags.plain)
		},
	}
	flags.register(cmd, true)
	flags.registerOutput(cmd)
	return cmd
}

func (c *cli) unknownTerms(ctx context.Context, text string, opts prestudy.Options) ([]vocab.Term, error) {
	coll, err := c.app.OpenCollection()
	if err != nil {
		return nil, err
	}
	defer coll.Close()

	return c.app.Engine.NewSession(text, coll).UnknownWords(ctx, opts)
}
