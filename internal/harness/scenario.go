package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named list of steps with assertions on the outcome.
type Scenario struct {
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// BaseIRI roots the sequential allocator. Defaults to DefaultBaseIRI.
	BaseIRI string `yaml:"base_iri,omitempty"`

	Steps []Step `yaml:"steps"`

	Assertions []Assertion `yaml:"assertions"`
}

// Step is either an operation (Op) or a collector run (GC).
type Step struct {
	// Op is the operation kind, e.g. "psm/create-class".
	Op string `yaml:"op,omitempty"`

	// As binds the IRIs the operation creates.
	As string `yaml:"as,omitempty"`

	// Args are the JSON members of the operation. "$name" strings are
	// replaced by bound IRIs.
	Args map[string]any `yaml:"args,omitempty"`

	GC *GCStep `yaml:"gc,omitempty"`

	// Expect is checked against the step outcome. Without it the step must
	// succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// GCStep runs the structural collector on one schema.
type GCStep struct {
	Schema string `yaml:"schema"`
}

// Expect describes the outcome of a step.
type Expect struct {
	Rejected bool `yaml:"rejected,omitempty"`

	// Message must be a substring of the rejection message.
	Message string `yaml:"message,omitempty"`

	// Deleted lists the IRIs (or refs) the step must delete, in order.
	Deleted []string `yaml:"deleted,omitempty"`
}

// Assertion validates the final graph or the trace.
type Assertion struct {
	Type string `yaml:"type"`

	// Resource is the IRI or ref checked by exists, absent and field.
	Resource string `yaml:"resource,omitempty"`

	// Field is the JSON member checked by field.
	Field string `yaml:"field,omitempty"`

	// Equals is the expected list value of Field.
	Equals []string `yaml:"equals,omitempty"`

	// Value is the expected string value of Field.
	Value string `yaml:"value,omitempty"`

	// Op is the operation kind counted by trace_count.
	Op string `yaml:"op,omitempty"`

	// Count is the expected number of committed Op steps.
	Count int `yaml:"count,omitempty"`

	// Ops is the expected order of operation kinds.
	Ops []string `yaml:"ops,omitempty"`
}

// Assertion type constants.
const (
	AssertExists     = "exists"
	AssertAbsent     = "absent"
	AssertField      = "field"
	AssertTraceOrder = "trace_order"
	AssertTraceCount = "trace_count"
)

// LoadScenario reads a scenario file. Unknown fields are rejected, and a
// scenario needs a name, a description, steps and assertions.
func LoadScenario(path string) (*Scenario, error) {
	scenario, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// LoadScript reads a file in the scenario format that only needs steps.
// The apply command runs scripts against a journal.
func LoadScript(path string) (*Scenario, error) {
	scenario, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("invalid script: steps list is required and must be non-empty")
	}
	if err := validateSteps(scenario.Steps); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	for i := range scenario.Assertions {
		if err := validateAssertion(i, &scenario.Assertions[i]); err != nil {
			return nil, fmt.Errorf("invalid script: %w", err)
		}
	}
	return scenario, nil
}

func decodeFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	if err := validateSteps(s.Steps); err != nil {
		return err
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateSteps(steps []Step) error {
	names := make(map[string]bool)
	for i, step := range steps {
		switch {
		case step.Op == "" && step.GC == nil:
			return fmt.Errorf("steps[%d]: op or gc is required", i)
		case step.Op != "" && step.GC != nil:
			return fmt.Errorf("steps[%d]: op and gc are exclusive", i)
		case step.GC != nil && step.GC.Schema == "":
			return fmt.Errorf("steps[%d]: gc.schema is required", i)
		case step.GC != nil && step.As != "":
			return fmt.Errorf("steps[%d]: a gc step creates nothing to bind", i)
		}
		if step.As != "" {
			if names[step.As] {
				return fmt.Errorf("steps[%d]: name %q is already bound", i, step.As)
			}
			names[step.As] = true
		}
		if step.Expect != nil && !step.Expect.Rejected && step.Expect.Message != "" {
			return fmt.Errorf("steps[%d].expect: message needs rejected: true", i)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertExists, AssertAbsent:
		if a.Resource == "" {
			return fmt.Errorf("assertions[%d]: resource is required for %s", index, a.Type)
		}
	case AssertField:
		if a.Resource == "" || a.Field == "" {
			return fmt.Errorf("assertions[%d]: resource and field are required for field", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
