// Command mcp serves the inbox tools over the MCP stdio transport.
//
// Usage:
//
//	inboxassist-mcp            # serve on stdin/stdout
//	inboxassist-mcp version    # print the version
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"inboxassist/internal/application/report"
	taskapp "inboxassist/internal/application/task"
	"inboxassist/internal/infrastructure/config"
	"inboxassist/internal/infrastructure/logger"
	"inboxassist/internal/infrastructure/persistence/sqlite"
	"inboxassist/internal/interfaces/mcptools"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("inboxassist-mcp v%s\n", mcptools.Version)
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
			os.Exit(1)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr; stdout carries the protocol.
	l := logger.Init(logger.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: false,
	})
	defer func() { _ = l.Sync() }()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tasks := taskapp.NewUseCase(l, sqlite.NewTaskRepository(db))
	reports := report.NewService(tasks, sqlite.NewEmailRepository(db))

	l.Infof(context.Background(), "MCP server %s ready on stdio, database %s", mcptools.Version, cfg.Database.Path)
	return server.ServeStdio(mcptools.NewServer(tasks, reports))
}
