package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/schemagraph/internal/ir"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
	Type     string
	IRI      string
}

// ShowResult lists resources or carries one resource.
type ShowResult struct {
	Type       string          `json:"type,omitempty"`
	Resources  []string        `json:"resources,omitempty"`
	Resource   json.RawMessage `json:"resource,omitempty"`
	Operations int             `json:"operations"`
}

// WriteText implements textWriter.
func (r ShowResult) WriteText(w io.Writer, verbose bool) {
	if r.Resource != nil {
		var buf bytes.Buffer
		if err := json.Indent(&buf, r.Resource, "", "  "); err != nil {
			buf.Reset()
			buf.Write(r.Resource)
		}
		fmt.Fprintln(w, buf.String())
		return
	}
	for _, iri := range r.Resources {
		fmt.Fprintln(w, iri)
	}
	if verbose {
		fmt.Fprintf(w, "%d resources, %d operations\n", len(r.Resources), r.Operations)
	}
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List or print the resources of a database",
		Long: `List the IRIs of the resources in a database, optionally of one kind, or
print a single resource.

Kinds are given relative to the vocabulary, e.g. psm/Class or pim/Attribute,
or as full tag IRIs.

Examples:
  schemagraph show --db ./model.db
  schemagraph show --db ./model.db --type psm/Class
  schemagraph show --db ./model.db --iri https://example.org/schema --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to the configured database)")
	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "only list resources carrying this tag")
	cmd.Flags().StringVar(&opts.IRI, "iri", "", "print the resource with this IRI")
	cmd.MarkFlagsMutuallyExclusive("type", "iri")

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	s, err := opts.openSession(ctx, cmd, opts.Database)
	if err != nil {
		return err
	}
	defer s.Close()

	result := ShowResult{Operations: len(s.store.Operations())}

	if opts.IRI != "" {
		res, err := s.store.ReadResource(ctx, opts.IRI)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read resource", err)
		}
		if res == nil {
			return NewExitError(ExitFailure, fmt.Sprintf("resource %s not found", opts.IRI))
		}
		data, err := ir.MarshalResource(res)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to encode resource", err)
		}
		result.Resource = data
		return s.out.Success(result)
	}

	if opts.Type != "" {
		tag := resolveTag(opts.Type)
		result.Type = string(tag)
		result.Resources, err = s.store.ListResourcesOfType(ctx, tag)
	} else {
		result.Resources, err = s.store.ListResources(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list resources", err)
	}
	return s.out.Success(result)
}

// resolveTag expands a tag given relative to the vocabulary namespace.
func resolveTag(name string) ir.Type {
	if strings.Contains(name, "://") {
		return ir.Type(name)
	}
	return ir.Type(ir.NS + name)
}
