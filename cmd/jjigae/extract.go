package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) extractCmd() *cobra.Command {
	var flags termFlags

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "List the frequent vocabulary found in a passage",
		Long: `List, in rank order, the reference-vocabulary terms found in a passage
that are among the most frequent words and meet the minimum difficulty.

Examples:
  jjigae extract article.html
  jjigae extract notes.txt --max-vocab 1000 --min-difficulty B`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			terms, err := c.app.Engine.Extract(text, flags.options(cmd, c.app.ExtractOptions()))
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
