package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/txus/jjigae/pkg/prestudy"
	"github.com/txus/jjigae/pkg/textsource"
	"github.com/txus/jjigae/pkg/vocab"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// termFlags are the flags shared by the commands that filter terms.
type termFlags struct {
	maxVocab      string
	minDifficulty string
	plain         bool
}

func (f *termFlags) register(cmd *cobra.Command, withDifficulty bool) {
	cmd.Flags().StringVarP(&f.maxVocab, "max-vocab", "n", "", "only consider the N most frequent words (default from config)")
	if withDifficulty {
		cmd.Flags().StringVarP(&f.minDifficulty, "min-difficulty", "d", "", "lowest difficulty to keep: A, B or C (default from config)")
	}
}

func (f *termFlags) registerOutput(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.plain, "plain", false, "print tab-separated rows instead of a table")
}

// options overrides defaults with the flags the user set.
func (f *termFlags) options(cmd *cobra.Command, defaults prestudy.Options) prestudy.Options {
	opts := defaults
	if cmd.Flags().Changed("max-vocab") {
		opts.MaxVocab = prestudy.ParseVocabSize(f.maxVocab)
	}
	if cmd.Flags().Changed("min-difficulty") {
		opts.MinDifficulty = vocab.Difficulty(strings.ToUpper(strings.TrimSpace(f.minDifficulty)))
	}
	return opts
}

// readInput loads the passage named by args, or stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	path := "-"
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}
	return textsource.Load(path, cmd.InOrStdin())
}

func writeTerms(w io.Writer, terms []vocab.Term, plain bool) error {
	if len(terms) == 0 {
		_, err := fmt.Fprintln(w, "No words found.")
		return err
	}

	if plain {
		for _, t := range terms {
			if _, err := fmt.Fprintln(w, strings.Join(termRow(t), "\t")); err != nil {
				return err
			}
		}
		return nil
	}

	rows := make([][]string, len(terms))
	for i, t := range terms {
		rows[i] = termRow(t)
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("RANK", "WORD", "LEVEL", "HANJA", "NOTES").
		Rows(rows...)

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func termRow(t vocab.Term) []string {
	notes := t.Notes
	if t.Ambiguous {
		notes = strings.TrimSpace(notes + " (amb)")
	}
	return []string{t.Rank.String(), t.Word, string(t.Difficulty), t.Hanja, notes}
}
