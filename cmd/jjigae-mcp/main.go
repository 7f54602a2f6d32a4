// Command jjigae-mcp serves the prestudy tools over MCP on stdio.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/txus/jjigae/internal/app"
	"github.com/txus/jjigae/internal/config"
	"github.com/txus/jjigae/internal/mcptools"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file (default $JJIGAE_CONFIG or "+config.DefaultPath+")")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("jjigae-mcp: %v", err)
	}
	logger := app.NewLogger(cfg.Log)
	logger.Info("starting jjigae-mcp", slog.String("version", app.BuildVersion()))

	a, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("jjigae-mcp: %v", err)
	}

	coll, err := a.OpenCollection()
	if err != nil {
		log.Fatalf("jjigae-mcp: %v", err)
	}
	defer coll.Close()

	mcpServer := server.NewMCPServer(
		"jjigae-mcp",
		app.Version,
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcptools.Register(mcpServer, mcptools.Tools{
		Engine:          a.Engine,
		Record:          coll,
		ExtractDefaults: a.ExtractOptions(),
		StudyDefaults:   a.StudyOptions(),
	})

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("serve", slog.Any("error", err))
	}
}
