package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/schemagraph/internal/ingest"
)

// IngestOptions holds flags for the ingest command.
type IngestOptions struct {
	*RootOptions
	Database string
	Sources  []string
	Root     string
}

// IngestResult reports an ingestion.
type IngestResult struct {
	Root      string   `json:"root"`
	Sources   []string `json:"sources"`
	Loaded    int      `json:"loaded"`
	Missing   []string `json:"missing"`
	Operation string   `json:"operation,omitempty"`
	Created   int      `json:"created"`
	Changed   int      `json:"changed"`
}

// WriteText implements textWriter.
func (r IngestResult) WriteText(w io.Writer, verbose bool) {
	fmt.Fprintf(w, "Ingested %s: %d resources (%d created, %d changed)\n", r.Root, r.Loaded, r.Created, r.Changed)
	if r.Operation != "" && verbose {
		fmt.Fprintf(w, "  Operation: %s\n", r.Operation)
	}
	if len(r.Missing) > 0 {
		fmt.Fprintf(w, "  %d referenced resources were not found:\n", len(r.Missing))
		for _, iri := range r.Missing {
			fmt.Fprintf(w, "    %s\n", iri)
		}
	}
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IngestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load a model from N-Triples sources into a database",
		Long: `Walk an RDF graph from a root resource and import every model resource
reachable from it as one operation.

Sources are N-Triples files or http(s) URLs. When --source is not given the
configured sources are used. References that no source describes are
reported but do not fail the ingestion.

Examples:
  schemagraph ingest --db ./model.db --source model.nt --root https://example.org/schema
  schemagraph ingest --db ./model.db --source https://example.org/model.nt --root https://example.org/schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to the configured database)")
	cmd.Flags().StringSliceVar(&opts.Sources, "source", nil, "N-Triples file or URL (repeatable)")
	cmd.Flags().StringVar(&opts.Root, "root", "", "IRI of the resource to start from (required)")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}

func runIngest(opts *IngestOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	s, err := opts.openSession(ctx, cmd, opts.Database)
	if err != nil {
		return err
	}
	defer s.Close()

	locations := opts.Sources
	if len(locations) == 0 {
		locations = s.cfg.Sources
	}
	if len(locations) == 0 {
		return NewExitError(ExitCommandError, "no sources: pass --source or configure sources")
	}
	sources := make(ingest.Sources, len(locations))
	for i, loc := range locations {
		sources[i] = ingest.Open(loc)
	}

	loaded, err := ingest.LoadWithOptions(ctx, sources, opts.Root, ingest.Options{Logger: s.logger}, ingest.DefaultLoaders()...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load sources", err)
	}

	out := IngestResult{
		Root:    opts.Root,
		Sources: locations,
		Loaded:  len(loaded.Resources),
		Missing: loaded.Missing,
	}

	merged, err := ingest.Merge(ctx, s.store, loaded)
	if err != nil {
		if rerr := s.out.Error(ErrCodeRejected, "import rejected", err.Error()); rerr != nil {
			return rerr
		}
		return WrapExitError(ExitFailure, "import rejected", err)
	}
	if merged != nil {
		out.Operation = merged.Operation.IRI()
		out.Created = len(merged.Created)
		out.Changed = len(merged.Changed)
		if err := s.save(ctx); err != nil {
			return err
		}
	}
	return s.out.Success(out)
}
