package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/txus/jjigae/pkg/vocab"
)

func (c *cli) lookupCmd() *cobra.Command {
	var flags termFlags

	cmd := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look a word up in the reference vocabulary",
		Long: `Look up the rank-earliest entry for a base word among the most frequent
words of the reference vocabulary.

Examples:
  jjigae lookup 감정
  jjigae lookup 감정 --max-vocab 1000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.app.ExtractOptions())

			term, ok := c.app.Store.Lookup(args[0], opts.MaxVocab)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not among the %d most frequent words.\n", args[0], opts.MaxVocab)
				return nil
			}
			return writeTerms(cmd.OutOrStdout(), []vocab.Term{term}, flags.plain)
		},
	}
	flags.register(cmd, false)
	flags.registerOutput(cmd)
	return cmd
}
