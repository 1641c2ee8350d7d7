package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/schemagraph/internal/ir"
)

// TraceSnapshot is the golden representation of a scenario run.
type TraceSnapshot struct {
	Scenario  string       `json:"scenario"`
	Trace     []TraceEvent `json:"trace"`
	Resources []string     `json:"resources"`
}

// RunWithGolden executes a scenario and compares its trace and final
// resource list against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		Scenario:  name,
		Trace:     result.Trace,
		Resources: result.Resources,
	}
	data, err := ir.MarshalCanonical(snapshot)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
