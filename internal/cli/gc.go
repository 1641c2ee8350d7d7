package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/schemagraph/internal/engine"
	"github.com/roach88/schemagraph/internal/gc"
	"github.com/roach88/schemagraph/internal/ir"
	"github.com/roach88/schemagraph/internal/reader"
)

// GCOptions holds flags for the gc command.
type GCOptions struct {
	*RootOptions
	Database           string
	Schema             string
	ConceptualDatabase string
	DryRun             bool
	SkipStructural     bool
}

// GCResult reports the passes that ran.
type GCResult struct {
	Schema     string     `json:"schema"`
	DryRun     bool       `json:"dry_run"`
	Structural *gc.Report `json:"structural,omitempty"`
	Conceptual *gc.Report `json:"conceptual,omitempty"`
}

// WriteText implements textWriter.
func (r GCResult) WriteText(w io.Writer, verbose bool) {
	verb := "deleted"
	if r.DryRun {
		verb = "would delete"
	}
	write := func(pass string, rep *gc.Report) {
		if rep == nil {
			return
		}
		fmt.Fprintf(w, "%s pass %s %d resources", pass, verb, len(rep.Deleted))
		if !r.DryRun {
			fmt.Fprintf(w, " in %d operations", rep.Operations)
		}
		fmt.Fprintln(w)
		if verbose {
			for _, iri := range rep.Deleted {
				fmt.Fprintf(w, "  - %s\n", iri)
			}
			for _, iri := range rep.Changed {
				fmt.Fprintf(w, "  ~ %s\n", iri)
			}
		}
	}
	write("Structural", r.Structural)
	write("Conceptual", r.Conceptual)
}

// NewGCCommand creates the gc command.
func NewGCCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GCOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gc",
		Short: "Remove resources a structural schema no longer uses",
		Long: `Collect garbage in a structural schema and, optionally, in the conceptual
model it interprets.

The structural pass deletes every class, or, class reference and external
root the schema roots cannot reach. The conceptual pass runs when a
conceptual database is given (or configured with gc.conceptual) and deletes
conceptual classes, attributes and associations no structural resource
interprets. Every deletion is an ordinary operation in the log.

With --dry-run nothing is written. The conceptual pass then plans against
the structural schema as it would look after the structural pass.

Exit codes:
  0 - Collection finished
  1 - The schema is not supported or an operation was rejected
  2 - Command error (database not found, etc.)

Examples:
  schemagraph gc --db ./model.db --schema https://example.org/schema
  schemagraph gc --db ./model.db --schema https://example.org/schema --conceptual-db ./concepts.db --dry-run`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGC(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the structural database (defaults to the configured database)")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "IRI of the structural schema (required)")
	_ = cmd.MarkFlagRequired("schema")
	cmd.Flags().StringVar(&opts.ConceptualDatabase, "conceptual-db", "", "path to the conceptual database")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "report what would be deleted without changing anything")
	cmd.Flags().BoolVar(&opts.SkipStructural, "skip-structural", false, "run only the conceptual pass")

	return cmd
}

func runGC(opts *GCOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	s, err := opts.openSession(ctx, cmd, opts.Database)
	if err != nil {
		return err
	}
	defer s.Close()

	gcOpts := []gc.Option{gc.WithLogger(s.logger)}
	if opts.DryRun {
		gcOpts = append(gcOpts, gc.WithDryRun())
	}
	result := GCResult{Schema: opts.Schema, DryRun: opts.DryRun}
	var structural ir.Reader = s.store

	if s.cfg.GC.Structural && !opts.SkipStructural {
		report, err := gc.CollectStructure(ctx, s.store, opts.Schema, gcOpts...)
		if report != nil && report.Operations > 0 {
			if serr := s.save(ctx); serr != nil {
				return serr
			}
		}
		if err != nil {
			return gcFailure(s, "structural", err)
		}
		result.Structural = report
		if opts.DryRun && len(report.Deleted) > 0 {
			snap, err := reader.NewSnapshotOf(ctx, s.store)
			if err != nil {
				return WrapExitError(ExitCommandError, "snapshot structural graph", err)
			}
			structural = snap.Without(report.Deleted...)
		}
	}

	conceptualDB := opts.ConceptualDatabase
	if conceptualDB == "" && s.cfg.GC.Conceptual {
		conceptualDB = s.cfg.ConceptualDatabase
	}
	if conceptualDB != "" {
		cs, err := opts.openSession(ctx, cmd, conceptualDB)
		if err != nil {
			return err
		}
		defer cs.Close()

		report, err := gc.CollectConceptual(ctx, cs.store, structural, gcOpts...)
		if report != nil && report.Operations > 0 {
			if serr := cs.save(ctx); serr != nil {
				return serr
			}
		}
		if err != nil {
			return gcFailure(s, "conceptual", err)
		}
		result.Conceptual = report
	}

	return s.out.Success(result)
}

// gcFailure reports a pass that stopped. Operations applied before the
// failure have already been saved.
func gcFailure(s *session, pass string, err error) error {
	code := ErrCodeGeneric
	var pe *engine.PreconditionError
	switch {
	case errors.Is(err, gc.ErrUnsupportedSchema):
		code = ErrCodeUnsupported
	case errors.As(err, &pe):
		code = ErrCodeRejected
	default:
		return WrapExitError(ExitCommandError, pass+" gc failed", err)
	}
	if oerr := s.out.Error(code, pass+" gc failed", err.Error()); oerr != nil {
		return oerr
	}
	return WrapExitError(ExitFailure, pass+" gc failed", err)
}
