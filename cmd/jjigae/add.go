package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func (c *cli) addCmd() *cobra.Command {
	var (
		flags termFlags
		deck  string
		tags  []string
	)

	cmd := &cobra.Command{
		Use:   "add [file]",
		Short: "Add the unknown words of a passage to your collection",
		Long: `Add every term "unknown" would report as a new note with a recognition
and a recall card. Terms without hanja get it from the collection's hanja
table when one is recorded. Adding a word twice updates its note.

Examples:
  jjigae add article.html --deck "Korean::Prestudy" --tags news,prestudy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if deck == "" {
				deck = c.app.Config.Collection.Deck
			}

			coll, err := c.app.OpenCollection()
			if err != nil {
				return err
			}
			defer coll.Close()

			ctx := cmd.Context()
			terms, err := c.app.Engine.NewSession(text, coll).UnknownWords(ctx, flags.options(cmd, c.app.StudyOptions()))
			if err != nil {
				return err
			}

			b := c.app.NewBuilder(coll)
			b.OnProgress = func(current, total int) {
				c.app.Logger.Debug("progress", slog.Int("current", current), slog.Int("total", total))
			}
			n, err := b.AddTerms(ctx, terms, deck, tags)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %d notes to %s.\n", n, deck)
			return nil
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&deck, "deck", "", "deck to add the notes to (default from config)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma-separated tags for the new notes")
	return cmd
}
