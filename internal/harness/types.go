package harness

// TraceEvent records one executed step.
type TraceEvent struct {
	Step int `json:"step"`
	// Op is the operation kind relative to the operation namespace, or
	// "gc/structure" for a collector run.
	Op string `json:"op"`
	// Operation is the IRI of the logged operation.
	Operation string   `json:"operation,omitempty"`
	Created   []string `json:"created,omitempty"`
	Changed   []string `json:"changed,omitempty"`
	Deleted   []string `json:"deleted,omitempty"`
	// Rejected holds the precondition message of a rejected operation.
	Rejected string `json:"rejected,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	Trace []TraceEvent `json:"trace"`

	Errors []string `json:"errors,omitempty"`

	// Resources lists the IRIs of the final graph, sorted.
	Resources []string `json:"resources"`

	// Bindings maps step names to the IRIs they created.
	Bindings map[string]string `json:"bindings,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:      true,
		Trace:     []TraceEvent{},
		Errors:    []string{},
		Resources: []string{},
		Bindings:  make(map[string]string),
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) addTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
