// Package main provides the cnlgraph binary entry point.
// Cnlgraph compiles controlled natural language documents into a
// knowledge graph and keeps the graph synchronized across edits.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/cnlgraph/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "cnlgraph"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	app := &appOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Controlled natural language graph compiler",
		Long: `Cnlgraph compiles controlled natural language documents into a
knowledge graph.

Documents declare nodes, morphs, relations, attributes, and
transitions in constrained markdown. Each submission is diffed
against the previous text and the graph is mutated to match:
resubmitting an unchanged document is a no-op, and removing a
declaration removes the corresponding graph entity.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	cmd.PersistentFlags().StringVar(&app.graphID, "graph", "", "Graph ID (overrides config)")
	cmd.PersistentFlags().StringVar(&app.natsURL, "nats", "", "NATS server URL (overrides config; empty = in-memory)")
	cmd.PersistentFlags().StringVar(&app.schemaFile, "schema", "", "Strict schema definition file (overrides config)")
	cmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(compileCmd(app))
	cmd.AddCommand(renderCmd(app))
	cmd.AddCommand(exportCmd(app))
	cmd.AddCommand(importCmd())
	cmd.AddCommand(watchCmd(app))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// appOptions carries the resolved configuration shared by subcommands.
type appOptions struct {
	graphID    string
	natsURL    string
	schemaFile string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// setup configures logging, loads layered config, and applies flag
// overrides. It runs once before any subcommand.
func (a *appOptions) setup() error {
	level := slog.LevelInfo
	switch strings.ToLower(a.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	cfg, err := config.NewLoader(a.logger).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if a.graphID != "" {
		cfg.Graph.ID = a.graphID
	}
	if a.natsURL != "" {
		cfg.NATS.URL = a.natsURL
	}
	if a.schemaFile != "" {
		cfg.Graph.SchemaFile = a.schemaFile
		cfg.Graph.Strict = true
	}

	a.cfg = cfg
	return nil
}
