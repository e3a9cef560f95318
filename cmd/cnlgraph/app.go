package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/spf13/cobra"

	"github.com/c360studio/cnlgraph/apply"
	"github.com/c360studio/cnlgraph/compiler"
	"github.com/c360studio/cnlgraph/export"
	"github.com/c360studio/cnlgraph/graph"
	"github.com/c360studio/cnlgraph/importer"
	"github.com/c360studio/cnlgraph/schema"
	"github.com/c360studio/cnlgraph/storage"
)

func compileCmd(app *appOptions) *cobra.Command {
	var (
		prevPath string
		publish  bool
	)

	cmd := &cobra.Command{
		Use:   "compile <file|glob>...",
		Short: "Compile documents and apply the resulting graph mutations",
		Long: `Compile reads the given documents, diffs them against the previous
submission, and applies the resulting operations to the graph store.

The --prev file holds the previously submitted text; after a
successful compile it is overwritten with the new text so the next
run diffs against the right baseline.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			newText, err := readDocuments(args)
			if err != nil {
				return err
			}
			prevText := ""
			if prevPath != "" {
				data, err := os.ReadFile(prevPath)
				if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("read previous text: %w", err)
				}
				prevText = string(data)
			}

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

			result, err := compiler.Compile(ctx, prevText, newText, compiler.Options{
				Schema: sch,
				Store:  store,
				Logger: app.logger,
			})
			if err != nil {
				return err
			}

			if publish && nc != nil {
				publisher := graph.NewPublisher(nc, app.cfg.Graph.ID)
				if err := publisher.PublishSnapshot(ctx, result.Snapshot); err != nil {
					return fmt.Errorf("publish snapshot: %w", err)
				}
				profile, err := parseProfile(app.cfg.Export.Profile)
				if err != nil {
					return err
				}
				if err := export.PublishTypeTriples(ctx, nc, app.cfg.Graph.ID, result.Snapshot, profile); err != nil {
					return fmt.Errorf("publish type triples: %w", err)
				}
			}

			if prevPath != "" {
				if err := os.WriteFile(prevPath, []byte(newText), 0644); err != nil {
					return fmt.Errorf("record previous text: %w", err)
				}
			}

			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&prevPath, "prev", "", "File holding the previously submitted text")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish compiled entities to the graph ingest stream")
	return cmd
}

func renderCmd(app *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render <file|glob>...",
		Short: "Compile documents and print the canonical text form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := compileInMemory(cmd.Context(), app, args)
			if err != nil {
				return err
			}
			reportErrors(cmd, result.Errors)
			fmt.Fprint(cmd.OutOrStdout(), export.Render(result.Snapshot))
			return nil
		},
	}
}

func exportCmd(app *appOptions) *cobra.Command {
	var (
		formatName  string
		profileName string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "export <file|glob>...",
		Short: "Compile documents and export the graph as RDF",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(firstNonEmpty(formatName, app.cfg.Export.Format))
			if err != nil {
				return err
			}
			profile, err := parseProfile(firstNonEmpty(profileName, app.cfg.Export.Profile))
			if err != nil {
				return err
			}

			result, err := compileInMemory(cmd.Context(), app, args)
			if err != nil {
				return err
			}
			reportErrors(cmd, result.Errors)

			exporter := export.NewRDFExporter(profile)
			exporter.AddSnapshot(app.cfg.Graph.ID, result.Snapshot, time.Now())
			output, err := exporter.Export(format)
			if err != nil {
				return err
			}

			if outputPath != "" {
				// Append the format's extension when the target has none.
				if info, ok := export.GetFormatInfo(format); ok && filepath.Ext(outputPath) == "" {
					outputPath += info.Extension
				}
				return os.WriteFile(outputPath, []byte(output), 0644)
			}
			fmt.Fprint(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "", "Output format: turtle, ntriples, jsonld")
	cmd.Flags().StringVar(&profileName, "profile", "", "Ontology profile: minimal, bfo, cco")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write output to file instead of stdout")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <url>",
		Short: "Fetch a web page and print a draft document for editing",
		Long: `Import fetches an HTTPS page, extracts its readable content, and
prints a draft in controlled-language form: one node block per
heading with the surrounding prose as its description. The draft is
a starting point and usually needs manual editing before compiling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := importer.ImportURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), draft)
			return nil
		},
	}
}

// compileInMemory runs a fresh compile with no persistence, for
// commands that only need the resulting snapshot.
func compileInMemory(ctx context.Context, app *appOptions, patterns []string) (*compiler.Result, error) {
	text, err := readDocuments(patterns)
	if err != nil {
		return nil, err
	}
	sch, err := buildSchema(app)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(ctx, "", text, compiler.Options{
		Schema: sch,
		Logger: app.logger,
	})
}

// readDocuments resolves the glob patterns and concatenates the matched
// files in sorted path order.
func readDocuments(patterns []string) (string, error) {
	var paths []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		// Use doublestar for ** support
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return "", fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			// A literal path that exists but matched nothing is an error
			// the user should see.
			if _, statErr := os.Stat(pattern); statErr != nil {
				return "", fmt.Errorf("no files match %q", pattern)
			}
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)

	var parts []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, "\n"), nil
}

func buildSchema(app *appOptions) (schema.Schema, error) {
	if !app.cfg.Graph.Strict {
		return schema.NewOpen(), nil
	}
	strict, err := schema.LoadStrict(app.cfg.Graph.SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return strict, nil
}

// openStore returns the configured store. Without a NATS URL the graph
// lives only in memory for the duration of the command.
func openStore(ctx context.Context, app *appOptions) (storage.Store, *natsclient.Client, error) {
	if app.cfg.NATS.URL == "" {
		return storage.NewMemoryStore(), nil, nil
	}

	nc, err := connectToNATS(ctx, app)
	if err != nil {
		return nil, nil, err
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close(ctx)
		return nil, nil, fmt.Errorf("jetstream: %w", err)
	}
	store, err := storage.NewKVStore(ctx, js)
	if err != nil {
		nc.Close(ctx)
		return nil, nil, err
	}
	return store, nc, nil
}

func connectToNATS(ctx context.Context, app *appOptions) (*natsclient.Client, error) {
	natsURL := app.cfg.NATS.URL
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		natsURL = envURL
	}

	app.logger.Info("Connecting to NATS", "url", natsURL)

	client, err := natsclient.NewClient(natsURL,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, wrapNATSError(err, natsURL)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, wrapNATSError(err, natsURL)
	}

	app.logger.Info("Connected to NATS", "url", natsURL)
	return client, nil
}

// wrapNATSError provides helpful guidance when NATS connection fails.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

To start NATS:
  docker compose up -d nats

Or set NATS_URL environment variable to point to your NATS server.`, err, url)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}

func parseFormat(name string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "turtle", "ttl":
		return export.FormatTurtle, nil
	case "ntriples", "nt":
		return export.FormatNTriples, nil
	case "jsonld", "json-ld":
		return export.FormatJSONLD, nil
	default:
		return "", fmt.Errorf("unknown format %q (supported: turtle, ntriples, jsonld)", name)
	}
}

func parseProfile(name string) (export.Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "minimal":
		return export.ProfileMinimal, nil
	case "bfo":
		return export.ProfileBFO, nil
	case "cco":
		return export.ProfileCCO, nil
	default:
		return "", fmt.Errorf("unknown profile %q (supported: minimal, bfo, cco)", name)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// printResult summarizes a compile run on stdout.
func printResult(cmd *cobra.Command, result *compiler.Result) {
	out := cmd.OutOrStdout()

	applied, failed := 0, 0
	for _, entry := range result.Audit {
		if entry.Status == apply.StatusApplied {
			applied++
		} else {
			failed++
		}
	}

	fmt.Fprintf(out, "submission %s: %d operations (%d applied, %d failed)\n",
		result.SubmissionID, len(result.Operations), applied, failed)

	for _, entry := range result.Audit {
		if entry.Status == apply.StatusFailed {
			fmt.Fprintf(out, "  failed %s %s: %s\n", entry.Kind, entry.EntityID, entry.Reason)
		}
	}
	reportErrors(cmd, result.Errors)
}

func reportErrors(cmd *cobra.Command, errs []error) {
	for _, err := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
}
