package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/txus/jjigae/internal/app"
	"github.com/txus/jjigae/internal/config"
)

// cli carries the state shared by the subcommands of one invocation.
type cli struct {
	configPath string
	app        *app.App

	// newApp builds the application once the config is loaded.
	newApp func(cfg *config.Config, logger *slog.Logger) (*app.App, error)
}

func newRootCmd() *cobra.Command {
	c := &cli{newApp: app.New}
	return c.rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jjigae",
		Short: "Find the words of a Korean passage worth studying first",
		Long: `jjigae analyzes a Korean passage, keeps the words that appear among the
most frequent words of a reference vocabulary, and tells you which of them
are not yet in your collection.

Input is a file argument or stdin. HTML files are reduced to their main
article before analysis.`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip initialization for help commands
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.Log)
			logger.Debug("starting", slog.String("version", app.BuildVersion()))

			a, err := c.newApp(cfg, logger)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to the config file (default $JJIGAE_CONFIG or "+config.DefaultPath+")")

	root.AddCommand(
		c.lookupCmd(),
		c.wordsCmd(),
		c.extractCmd(),
		c.unknownCmd(),
		c.addCmd(),
		c.hanjaCmd(),
	)
	return root
}

// Execute runs the root command and exits 1 on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
