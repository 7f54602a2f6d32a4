package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) wordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words [file]",
		Short: "Print the base forms of the content words in a passage",
		Long: `Print, one per line and sorted, the base forms of the nouns, verbs and
adjectives found in a passage, before any vocabulary filtering.

Examples:
  jjigae words article.txt
  echo "모든 사람은 ..." | jjigae words`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			words, err := c.app.Engine.ExtractWords(text)
			if err != nil {
				return err
			}
			for _, w := range words.Sorted() {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		},
	}
}
