package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/txus/jjigae/pkg/hanja"
)

func (c *cli) hanjaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hanja <dictionary>",
		Short: "Import a hanja dictionary into your collection",
		Long: `Import a hanja dictionary into the collection's hanja table, then fill in
the hanja of every note that has none.

The dictionary is a SQLite file with a hanjas(hanja, hangul) table, or a
JSON file holding {"entries": [{"hanja": ..., "hangul": ...}]} or a bare
array of such entries.

Examples:
  jjigae hanja hanjadic.sqlite
  jjigae hanja readings.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := hanja.LoadFile(args[0])
			if err != nil {
				return err
			}

			coll, err := c.app.OpenCollection()
			if err != nil {
				return err
			}
			defer coll.Close()

			im := hanja.NewImporter(coll.DB, entries)
			im.Logger = c.app.Logger

			ctx := cmd.Context()
			added, err := im.Import(ctx)
			if err != nil {
				return err
			}
			updated, err := im.ProcessUpdates(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new readings, filled hanja for %d notes.\n", added, updated)
			return nil
		},
	}
}
