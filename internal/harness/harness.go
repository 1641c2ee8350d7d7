package harness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/schemagraph/internal/engine"
	"github.com/roach88/schemagraph/internal/gc"
	"github.com/roach88/schemagraph/internal/ir"
	"github.com/roach88/schemagraph/internal/store"
	"github.com/roach88/schemagraph/internal/testutil"
)

// DefaultBaseIRI roots scenario IRIs when the scenario names none.
const DefaultBaseIRI = "https://example.org/model"

// Runner executes steps against a store and keeps the name bindings.
type Runner struct {
	rw       ir.ReadWriter
	bindings map[string]string
	logger   *slog.Logger
}

// NewRunner returns a runner over rw. A nil logger discards output.
func NewRunner(rw ir.ReadWriter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{rw: rw, bindings: make(map[string]string), logger: logger}
}

// Bindings returns a copy of the current name bindings.
func (r *Runner) Bindings() map[string]string {
	out := make(map[string]string, len(r.bindings))
	for k, v := range r.bindings {
		out[k] = v
	}
	return out
}

// Run executes a scenario in a fresh in-memory store and evaluates its
// assertions. The returned error is reserved for broken scenarios; failed
// expectations are reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()
	base := scenario.BaseIRI
	if base == "" {
		base = DefaultBaseIRI
	}
	logger := testutil.DiscardLogger()
	st := store.New(base,
		store.WithAllocator(testutil.NewSequentialAllocator(base)),
		store.WithLogger(logger))

	runner := NewRunner(st, logger)
	result := NewResult()
	if err := runner.Execute(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	actx := &AssertionContext{Ctx: ctx, Reader: st, Bindings: result.Bindings}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	iris, err := st.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	result.Resources = iris
	return result, nil
}

// Execute runs steps in order, appending to result. An unexpected
// rejection or a failed expectation is recorded in result and stops the
// run. Errors other than precondition failures are returned.
func (r *Runner) Execute(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		ok, err := r.executeStep(ctx, i+1, step, result)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		result.Bindings = r.Bindings()
		if !ok {
			return nil
		}
	}
	return nil
}

func (r *Runner) executeStep(ctx context.Context, n int, step Step, result *Result) (bool, error) {
	if step.GC != nil {
		return r.executeGC(ctx, n, step, result)
	}

	op, err := r.buildOperation(step)
	if err != nil {
		return false, err
	}
	kind := opName(op)
	ev := TraceEvent{Step: n, Op: kind}

	res, err := r.rw.ApplyOperation(ctx, op)
	var pe *engine.PreconditionError
	switch {
	case errors.As(err, &pe):
		ev.Rejected = pe.Message
		result.addTrace(ev)
		r.logger.Info("step rejected", "step", n, "op", kind, "message", pe.Message)
		if step.Expect == nil || !step.Expect.Rejected {
			result.AddError(fmt.Sprintf("step %d (%s) was rejected: %s", n, kind, pe.Message))
			return false, nil
		}
		if !strings.Contains(pe.Message, step.Expect.Message) {
			result.AddError(fmt.Sprintf("step %d (%s): rejection %q does not mention %q", n, kind, pe.Message, step.Expect.Message))
			return false, nil
		}
		return true, nil
	case err != nil:
		return false, err
	}

	ev.Operation = res.Operation.IRI()
	ev.Created = res.Created
	ev.Changed = res.Changed
	ev.Deleted = res.Deleted
	result.addTrace(ev)
	r.logger.Info("step committed", "step", n, "op", kind, "operation", ev.Operation)

	if step.As != "" && len(res.Created) > 0 {
		r.bindings[step.As] = res.Created[0]
		for j, iri := range res.Created {
			r.bindings[step.As+"."+strconv.Itoa(j)] = iri
		}
	}
	return r.checkExpect(n, kind, step.Expect, res.Deleted, result)
}

func (r *Runner) executeGC(ctx context.Context, n int, step Step, result *Result) (bool, error) {
	schema, err := r.resolveString(step.GC.Schema)
	if err != nil {
		return false, err
	}
	report, err := gc.CollectStructure(ctx, r.rw, schema, gc.WithLogger(r.logger))
	if err != nil {
		var pe *engine.PreconditionError
		if errors.As(err, &pe) {
			result.addTrace(TraceEvent{Step: n, Op: "gc/structure", Rejected: pe.Message})
			result.AddError(fmt.Sprintf("step %d (gc) was rejected: %s", n, pe.Message))
			return false, nil
		}
		return false, err
	}
	result.addTrace(TraceEvent{
		Step:    n,
		Op:      "gc/structure",
		Changed: report.Changed,
		Deleted: report.Deleted,
	})
	return r.checkExpect(n, "gc/structure", step.Expect, report.Deleted, result)
}

func (r *Runner) checkExpect(n int, kind string, expect *Expect, deleted []string, result *Result) (bool, error) {
	if expect == nil {
		return true, nil
	}
	if expect.Rejected {
		result.AddError(fmt.Sprintf("step %d (%s) was expected to be rejected but committed", n, kind))
		return false, nil
	}
	if expect.Deleted != nil {
		want, err := r.resolveStrings(expect.Deleted)
		if err != nil {
			return false, err
		}
		if !slices.Equal(want, deleted) && !(len(want) == 0 && len(deleted) == 0) {
			result.AddError(fmt.Sprintf("step %d (%s) deleted %v, expected %v", n, kind, deleted, want))
			return false, nil
		}
	}
	return true, nil
}

// buildOperation decodes step.Args into a zero operation of kind step.Op.
func (r *Runner) buildOperation(step Step) (ir.Operation, error) {
	tag := ir.Type(step.Op)
	if !strings.Contains(step.Op, "://") {
		tag = ir.Type(ir.NSOp + step.Op)
	}
	op, err := ir.NewOperation(tag)
	if err != nil {
		return nil, err
	}
	if len(step.Args) == 0 {
		return op, nil
	}
	args, err := r.resolve(step.Args)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode args: %w", err)
	}
	if err := json.Unmarshal(data, op); err != nil {
		return nil, fmt.Errorf("decode %s args: %w", step.Op, err)
	}
	return op, nil
}

// resolve replaces "$name" strings anywhere in v.
func (r *Runner) resolve(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return r.resolveString(val)
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			res, err := r.resolve(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = res
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			res, err := r.resolve(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = res
		}
		return out, nil
	default:
		return v, nil
	}
}

func (r *Runner) resolveString(s string) (string, error) {
	name, ok := strings.CutPrefix(s, "$")
	if !ok {
		return s, nil
	}
	iri, ok := r.bindings[name]
	if !ok {
		return "", fmt.Errorf("unknown reference %q", s)
	}
	return iri, nil
}

func (r *Runner) resolveStrings(list []string) ([]string, error) {
	out := make([]string, len(list))
	for i, s := range list {
		res, err := r.resolveString(s)
		if err != nil {
			return nil, err
		}
		out[i] = res
	}
	return out, nil
}

// opName returns the operation kind relative to the operation namespace.
func opName(op ir.Operation) string {
	tag, _ := ir.PrimaryTag(op.Types())
	return strings.TrimPrefix(string(tag), ir.NSOp)
}
