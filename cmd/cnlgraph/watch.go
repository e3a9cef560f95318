package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/c360studio/cnlgraph/compiler"
	"github.com/c360studio/cnlgraph/export"
	"github.com/c360studio/cnlgraph/graph"
)

func watchCmd(app *appOptions) *cobra.Command {
	var (
		debounce time.Duration
		publish  bool
	)

	cmd := &cobra.Command{
		Use:   "watch <file|glob>...",
		Short: "Recompile documents whenever they change",
		Long: `Watch compiles the documents once, then recompiles on every file
change. The previous text is kept in memory, so each recompile
produces only the operations for what actually changed. Runs until
interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if debounce <= 0 {
				debounce = app.cfg.Watch.DebounceDelay
			}
			return runWatch(cmd, app, args, debounce, publish)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Delay after the last change before recompiling")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish compiled entities after each recompile")
	return cmd
}

func runWatch(cmd *cobra.Command, app *appOptions, patterns []string, debounce time.Duration, publish bool) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sch, err := buildSchema(app)
	if err != nil {
		return err
	}
	store, nc, err := openStore(ctx, app)
	if err != nil {
		return err
	}
	if nc != nil {
		defer nc.Close(ctx)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatches(watcher, patterns); err != nil {
		return err
	}

	opts := compiler.Options{Schema: sch, Store: store, Logger: app.logger}

	// Initial compile so the watcher starts from the documents as they
	// are now.
	prevText := ""
	recompile := func() {
		newText, err := readDocuments(patterns)
		if err != nil {
			app.logger.Error("Read documents", "error", err)
			return
		}
		if newText == prevText {
			return
		}
		result, err := compiler.Compile(ctx, prevText, newText, opts)
		if err != nil {
			app.logger.Error("Compile failed", "error", err)
			return
		}
		prevText = newText
		printResult(cmd, result)
		if publish && nc != nil {
			publisher := graph.NewPublisher(nc, app.cfg.Graph.ID)
			if err := publisher.PublishSnapshot(ctx, result.Snapshot); err != nil {
				app.logger.Error("Publish snapshot", "error", err)
			} else if profile, perr := parseProfile(app.cfg.Export.Profile); perr == nil {
				if err := export.PublishTypeTriples(ctx, nc, app.cfg.Graph.ID, result.Snapshot, profile); err != nil {
					app.logger.Error("Publish type triples", "error", err)
				}
			}
		}
	}
	recompile()

	app.logger.Info("Watching for changes",
		"patterns", strings.Join(patterns, ", "),
		"debounce", debounce)

	// Debounce: a burst of writes triggers one recompile after the
	// timer drains.
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			app.logger.Info("Watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			app.logger.Error("Watcher error", "error", err)

		case <-timer.C:
			recompile()
		}
	}
}

// addWatches registers the directories containing the watched files.
// fsnotify watches directories, not globs, so each pattern's static
// prefix is watched and events are filtered by the recompile itself.
func addWatches(watcher *fsnotify.Watcher, patterns []string) error {
	dirs := make(map[string]bool)
	for _, pattern := range patterns {
		dir := staticDir(pattern)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("cannot watch %q: directory %s not found", pattern, dir)
		}
		dirs[dir] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return nil
}

// staticDir returns the longest directory prefix of a pattern with no
// glob metacharacters.
func staticDir(pattern string) string {
	dir := filepath.Dir(pattern)
	for strings.ContainsAny(dir, "*?[{") {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
	return dir
}

