package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/schemagraph/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayResult reports a replay of the operation log.
type ReplayResult struct {
	Operations     int    `json:"operations"`
	Resources      int    `json:"resources"`
	SavedDigest    string `json:"saved_digest"`
	ReplayedDigest string `json:"replayed_digest"`
	Deterministic  bool   `json:"deterministic"`
}

// WriteText implements textWriter.
func (r ReplayResult) WriteText(w io.Writer, verbose bool) {
	fmt.Fprintf(w, "Replay Summary: %d operation(s), %d resource(s)\n", r.Operations, r.Resources)
	if verbose {
		fmt.Fprintf(w, "  Saved digest:    %s\n", r.SavedDigest)
		fmt.Fprintf(w, "  Replayed digest: %s\n", r.ReplayedDigest)
	}
	if r.Deterministic {
		fmt.Fprintln(w, "✓ Replayed graph matches the saved graph")
		return
	}
	fmt.Fprintln(w, "✗ Replayed graph differs from the saved graph")
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay the operation log and verify the saved graph",
		Long: `Rebuild the graph of a database by re-applying its operation log through
the executors, and compare the digest of the result with the digest saved
alongside the graph.

Exit codes:
  0 - The replayed graph matches
  1 - The log is broken or the replayed graph differs
  2 - Command error (database not found, etc.)

Examples:
  schemagraph replay --db ./model.db
  schemagraph replay --db ./model.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to the configured database)")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	s, err := opts.openSession(ctx, cmd, opts.Database)
	if err != nil {
		return err
	}
	defer s.Close()

	ops := s.store.Operations()
	if len(ops) == 0 {
		if opts.Format == "json" {
			return s.out.Success(ReplayResult{Deterministic: true})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No operations found in database.")
		return nil
	}

	saved, err := s.journal.SavedDigest(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read saved digest", err)
	}

	replayed, err := store.Replay(ctx, s.store.BaseIRI(), ops, store.WithLogger(s.logger))
	if err != nil {
		var chain *store.ChainError
		code := ErrCodeRejected
		if errors.As(err, &chain) {
			code = ErrCodeDatabase
		}
		if oerr := s.out.Error(code, "replay failed", err.Error()); oerr != nil {
			return oerr
		}
		return WrapExitError(ExitFailure, "replay failed", err)
	}
	digest, err := replayed.Digest()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to digest replayed graph", err)
	}

	result := ReplayResult{
		Operations:     len(ops),
		Resources:      len(replayed.Resources()),
		SavedDigest:    saved,
		ReplayedDigest: digest,
		Deterministic:  digest == saved,
	}
	if !result.Deterministic {
		if err := s.out.Failure(ErrCodeDigestMismatch, "determinism verification failed", result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return s.out.Success(result)
}
