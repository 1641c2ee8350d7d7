// Package config loads schemagraph settings from CUE files.
//
// A settings file is unified with the embedded #Config definition, so every
// field has a default and unknown fields are rejected:
//
//	base_iri: "https://data.example.org/"
//	database: "model.db"
//	sources: ["https://data.example.org/schema.nt"]
//	gc: conceptual: true
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaSource string

// Config is the decoded settings file.
type Config struct {
	BaseIRI            string   `json:"base_iri"`
	Database           string   `json:"database"`
	ConceptualDatabase string   `json:"conceptual_database"`
	Sources            []string `json:"sources"`
	LogLevel           string   `json:"log_level"`
	GC                 GC       `json:"gc"`
}

// GC selects the collection passes run by `schemagraph gc`.
type GC struct {
	Structural bool `json:"structural"`
	Conceptual bool `json:"conceptual"`
}

// Level maps LogLevel to a slog level.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Error is a configuration problem with its source position, if known.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	return Parse([]byte("{}"), "default.cue")
}

// Load reads and validates the CUE file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, path)
}

// Parse validates CUE source against #Config. filename is used in error
// positions.
func Parse(data []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	if err := checkFields(def, v); err != nil {
		return nil, err
	}
	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, formatCUEError(err)
	}
	if cfg.Sources == nil {
		cfg.Sources = []string{}
	}
	return &cfg, nil
}

// checkFields rejects fields that #Config does not declare.
func checkFields(def, v cue.Value) error {
	iter, err := v.Fields()
	if err != nil {
		return nil
	}
	for iter.Next() {
		sel := iter.Selector()
		field := def.LookupPath(cue.MakePath(sel))
		if !field.Exists() {
			return &Error{Message: fmt.Sprintf("unknown field %q", sel.String()), Pos: iter.Value().Pos()}
		}
		if iter.Value().IncompleteKind() == cue.StructKind {
			if err := checkFields(field, iter.Value()); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatCUEError keeps the first error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error()}
	}
	first := errs[0]
	out := &Error{Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		out.Pos = positions[0]
	}
	return out
}
