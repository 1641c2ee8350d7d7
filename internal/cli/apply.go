package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/schemagraph/internal/harness"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Database string
	Script   string
	DryRun   bool
}

// ApplyResult reports a script run.
type ApplyResult struct {
	Script    string               `json:"script"`
	Steps     int                  `json:"steps"`
	Committed int                  `json:"committed"`
	Trace     []harness.TraceEvent `json:"trace"`
	Bindings  map[string]string    `json:"bindings,omitempty"`
	Errors    []string             `json:"errors,omitempty"`
	Saved     bool                 `json:"saved"`
}

// WriteText implements textWriter.
func (r ApplyResult) WriteText(w io.Writer, verbose bool) {
	fmt.Fprintf(w, "Applied %s: %d of %d steps committed\n", r.Script, r.Committed, r.Steps)
	for _, ev := range r.Trace {
		switch {
		case ev.Rejected != "":
			fmt.Fprintf(w, "  ✗ [%d] %s: %s\n", ev.Step, ev.Op, ev.Rejected)
		case verbose:
			fmt.Fprintf(w, "  ✓ [%d] %s %s (+%d ~%d -%d)\n", ev.Step, ev.Op, ev.Operation, len(ev.Created), len(ev.Changed), len(ev.Deleted))
		}
	}
	for _, msg := range r.Errors {
		fmt.Fprintf(w, "  %s\n", msg)
	}
	if !r.Saved {
		fmt.Fprintln(w, "Database not modified.")
	}
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a YAML operation script to a database",
		Long: `Apply the steps of a YAML script to the store saved in a database.

A script uses the scenario format: each step names an operation kind and its
arguments, and may bind the created IRIs to a name for later steps. A
rejected step stops the script. Operations committed before it are saved
unless --dry-run is set.

Exit codes:
  0 - All steps committed and all assertions held
  1 - A step was rejected or an assertion failed
  2 - Command error (unreadable script, database error)

Examples:
  schemagraph apply --db ./model.db --script edits.yaml
  schemagraph apply --db ./model.db --script edits.yaml --dry-run --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to the configured database)")
	cmd.Flags().StringVarP(&opts.Script, "script", "s", "", "path to the YAML script (required)")
	_ = cmd.MarkFlagRequired("script")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "run the script without saving")

	return cmd
}

func runApply(opts *ApplyOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	script, err := harness.LoadScript(opts.Script)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load script", err)
	}

	s, err := opts.openSession(ctx, cmd, opts.Database)
	if err != nil {
		return err
	}
	defer s.Close()

	runner := harness.NewRunner(s.store, s.logger)
	result := harness.NewResult()
	if err := runner.Execute(ctx, script.Steps, result); err != nil {
		return WrapExitError(ExitCommandError, "failed to run script", err)
	}
	if len(script.Assertions) > 0 && result.Pass {
		actx := &harness.AssertionContext{Ctx: ctx, Reader: s.store, Bindings: result.Bindings}
		for _, msg := range harness.EvaluateAssertions(result, script.Assertions, actx) {
			result.AddError(msg)
		}
	}

	out := ApplyResult{
		Script:   opts.Script,
		Steps:    len(script.Steps),
		Trace:    result.Trace,
		Bindings: result.Bindings,
		Errors:   result.Errors,
	}
	for _, ev := range result.Trace {
		if ev.Rejected == "" {
			out.Committed++
		}
	}

	if !opts.DryRun && out.Committed > 0 {
		if err := s.save(ctx); err != nil {
			return err
		}
		out.Saved = true
	}

	if !result.Pass {
		if err := s.out.Failure(ErrCodeRejected, "script failed", out); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "script failed")
	}
	return s.out.Success(out)
}
