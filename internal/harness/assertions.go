package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/schemagraph/internal/ir"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Trace {
			status := ev.Operation
			if ev.Rejected != "" {
				status = "rejected: " + ev.Rejected
			}
			fmt.Fprintf(&buf, "  [%d] %s %s\n", ev.Step, ev.Op, status)
		}
	}
	return buf.String()
}

// AssertionContext is what graph assertions read from.
type AssertionContext struct {
	Ctx      context.Context
	Reader   ir.Reader
	Bindings map[string]string
}

// EvaluateAssertions checks every assertion and returns one message per
// failure.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluate(result, a, actx); err != nil {
			failures = append(failures, fmt.Sprintf("assertion %d (%s): %v", i, a.Type, err))
		}
	}
	return failures
}

func evaluate(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertExists, AssertAbsent:
		return assertPresence(a, actx)
	case AssertField:
		return assertField(a, actx)
	case AssertTraceOrder:
		return assertTraceOrder(result.Trace, a)
	case AssertTraceCount:
		return assertTraceCount(result.Trace, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func (c *AssertionContext) lookup(ref string) (string, error) {
	name, ok := strings.CutPrefix(ref, "$")
	if !ok {
		return ref, nil
	}
	iri, ok := c.Bindings[name]
	if !ok {
		return "", fmt.Errorf("unknown reference %q", ref)
	}
	return iri, nil
}

func assertPresence(a Assertion, actx *AssertionContext) error {
	iri, err := actx.lookup(a.Resource)
	if err != nil {
		return err
	}
	res, err := actx.Reader.ReadResource(actx.Ctx, iri)
	if err != nil {
		return err
	}
	switch {
	case a.Type == AssertExists && res == nil:
		return &AssertionError{Type: a.Type, Expected: iri + " in the graph", Actual: "not found"}
	case a.Type == AssertAbsent && res != nil:
		return &AssertionError{Type: a.Type, Expected: iri + " not in the graph", Actual: "found"}
	}
	return nil
}

// assertField compares one JSON member of a resource. Equals compares a
// list of strings, resolving refs; otherwise Value is compared with a
// string member. A missing member counts as empty.
func assertField(a Assertion, actx *AssertionContext) error {
	iri, err := actx.lookup(a.Resource)
	if err != nil {
		return err
	}
	res, err := actx.Reader.ReadResource(actx.Ctx, iri)
	if err != nil {
		return err
	}
	if res == nil {
		return &AssertionError{Type: a.Type, Expected: iri + " in the graph", Actual: "not found"}
	}
	data, err := ir.MarshalResource(res)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	raw := fields[a.Field]

	if a.Equals != nil {
		want := make([]string, len(a.Equals))
		for i, ref := range a.Equals {
			if want[i], err = actx.lookup(ref); err != nil {
				return err
			}
		}
		var got []string
		if raw != nil {
			if err := json.Unmarshal(raw, &got); err != nil {
				return fmt.Errorf("field %s is not a list of strings", a.Field)
			}
		}
		if !slices.Equal(want, got) && !(len(want) == 0 && len(got) == 0) {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%s.%s = %v", iri, a.Field, want),
				Actual:   fmt.Sprintf("%v", got),
			}
		}
		return nil
	}

	want, err := actx.lookup(a.Value)
	if err != nil {
		return err
	}
	var got string
	if raw != nil {
		if err := json.Unmarshal(raw, &got); err != nil {
			return fmt.Errorf("field %s is not a string", a.Field)
		}
	}
	if got != want {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s.%s = %q", iri, a.Field, want),
			Actual:   fmt.Sprintf("%q", got),
		}
	}
	return nil
}

// assertTraceOrder checks that committed steps of the given kinds appear in
// order. Other steps may come in between.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	next := 0
	for _, ev := range trace {
		if next == len(a.Ops) {
			break
		}
		if ev.Rejected == "" && ev.Op == a.Ops[next] {
			next++
		}
	}
	if next < len(a.Ops) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("ops in order %v", a.Ops),
			Actual:   fmt.Sprintf("%s not found after %v", a.Ops[next], a.Ops[:next]),
			Trace:    trace,
		}
	}
	return nil
}

// assertTraceCount counts committed steps of one kind.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, ev := range trace {
		if ev.Rejected == "" && ev.Op == a.Op {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d committed %s steps", a.Count, a.Op),
			Actual:   fmt.Sprintf("%d", count),
			Trace:    trace,
		}
	}
	return nil
}
