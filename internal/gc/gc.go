package gc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/schemagraph/internal/ir"
)

// ErrUnsupportedSchema is returned by the conceptual pass for structural
// schemas it cannot reason about: those with an Or or with several roots.
var ErrUnsupportedSchema = errors.New("unsupported schema")

// Report lists what a pass did.
type Report struct {
	// Operations is the number of operations applied.
	Operations int `json:"operations"`
	// Deleted holds the removed IRIs in deletion order.
	Deleted []string `json:"deleted"`
	// Changed holds IRIs that were updated and survived the pass.
	Changed []string `json:"changed"`
}

// Empty reports whether the pass applied nothing.
func (r *Report) Empty() bool { return r.Operations == 0 }

func (r *Report) record(res *ir.OperationResult) {
	r.Operations++
	r.Deleted = append(r.Deleted, res.Deleted...)
	for _, iri := range res.Changed {
		if !slices.Contains(r.Changed, iri) {
			r.Changed = append(r.Changed, iri)
		}
	}
}

func (r *Report) finish() {
	r.Changed = slices.DeleteFunc(r.Changed, func(iri string) bool {
		return slices.Contains(r.Deleted, iri)
	})
}

// Option configures a collection pass.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
	dryRun bool
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithDryRun makes the pass compute its decisions without applying any
// operation. The report then lists the IRIs that would be deleted.
func WithDryRun() Option {
	return func(s *settings) { s.dryRun = true }
}

func newSettings(opts []Option) settings {
	s := settings{logger: slog.Default()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// sweeper applies operations and records them in a report.
type sweeper struct {
	w      ir.Writer
	report *Report
	logger *slog.Logger
}

func (s *sweeper) apply(ctx context.Context, op ir.Operation) error {
	res, err := s.w.ApplyOperation(ctx, op)
	if err != nil {
		kind, _ := ir.PrimaryTag(op.Types())
		return fmt.Errorf("gc %s: %w", ir.LocalName(kind), err)
	}
	s.report.record(res)
	s.logger.Debug("gc applied operation", "iri", res.Operation.IRI(), "deleted", res.Deleted)
	return nil
}

// read returns the resource at iri as a T. ok is false when it is missing
// or has another kind.
func read[T ir.Resource](ctx context.Context, r ir.Reader, iri string) (T, bool, error) {
	var zero T
	res, err := r.ReadResource(ctx, iri)
	if err != nil {
		return zero, false, fmt.Errorf("read %s: %w", iri, err)
	}
	typed, ok := res.(T)
	return typed, ok, nil
}

// readAll returns every resource of kind t as a T, in listing order.
func readAll[T ir.Resource](ctx context.Context, r ir.Reader, t ir.Type) ([]T, error) {
	iris, err := r.ListResourcesOfType(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", ir.LocalName(t), err)
	}
	out := make([]T, 0, len(iris))
	for _, iri := range iris {
		res, ok, err := read[T](ctx, r, iri)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, res)
		}
	}
	return out, nil
}
