// Package compiler turns controlled-language text into graph mutations.
// A compile run parses the previous and new text, lowers both to
// snapshots, diffs them into a dependency-ordered operation list, and
// applies that list with schema enforcement. The same text always
// yields the same ids, so resubmitting a document is a no-op.
package compiler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/cnlgraph/apply"
	"github.com/c360studio/cnlgraph/cnl"
	"github.com/c360studio/cnlgraph/diff"
	"github.com/c360studio/cnlgraph/graph"
	"github.com/c360studio/cnlgraph/schema"
	"github.com/c360studio/cnlgraph/storage"
)

// Options configures a compile run. Zero-value fields fall back to an
// open schema, no persistence, and the default logger.
type Options struct {
	Schema schema.Schema
	Store  storage.Store
	Logger *slog.Logger
}

// Result is the full outcome of one submission.
type Result struct {
	// SubmissionID uniquely identifies this compile run.
	SubmissionID string

	// Snapshot is the graph state after applying the operations.
	Snapshot *graph.Snapshot

	// Operations is the dependency-ordered mutation list the diff
	// produced, including ones the applier later rejected.
	Operations []diff.Operation

	// Audit holds one entry per operation.
	Audit []apply.AuditEntry

	// Errors collects parse, lowering, and diff errors from the new
	// text. The compile still applies everything that was valid.
	Errors []error
}

// Compile processes a submission: newText replaces prevText as the
// source of truth, and the graph is mutated to match. prevText is
// empty for a fresh graph. The returned error covers only internal
// invariant breakage; per-line problems land in Result.Errors.
func Compile(ctx context.Context, prevText, newText string, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Schema == nil {
		opts.Schema = schema.NewOpen()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	res := &Result{SubmissionID: uuid.New().String()}

	// Errors in the previous text were reported when it was submitted;
	// only the new text's errors surface here.
	prevBlocks, _ := cnl.BuildTree(prevText)
	prevSnap, _ := lowerBlocks(prevBlocks)

	newBlocks, parseErrs := cnl.BuildTree(newText)
	newSnap, lowerErrs := lowerBlocks(newBlocks)
	res.Errors = append(res.Errors, parseErrs...)
	res.Errors = append(res.Errors, lowerErrs...)

	ops, diffErrs := diff.Compute(prevSnap, newSnap)
	res.Errors = append(res.Errors, diffErrs...)
	res.Operations = ops

	applier := apply.New(opts.Store, opts.Schema, opts.Logger)
	snap, audit, err := applier.Apply(ctx, prevSnap, ops)
	if err != nil {
		return nil, err
	}
	res.Snapshot = snap
	res.Audit = audit

	observeCompile(res, time.Since(start))
	opts.Logger.Info("compiled submission",
		"submission_id", res.SubmissionID,
		"operations", len(res.Operations),
		"errors", len(res.Errors),
		"duration", time.Since(start))

	return res, nil
}
