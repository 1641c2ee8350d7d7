package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/schemagraph/internal/ir"
	"github.com/roach88/schemagraph/internal/reader"
)

// Loader turns an accepted node into a resource and names the identifiers
// the resource references.
type Loader interface {
	CanLoad(n *Node) bool
	Load(n *Node) (ir.Resource, []string, error)
}

// Result is the outcome of one traversal.
type Result struct {
	// Resources in load order.
	Resources []ir.Resource
	// Missing lists identifiers that were referenced but that no loader
	// accepted, in discovery order.
	Missing []string
}

// Reader exposes the loaded resources as a read-only graph.
func (r *Result) Reader() *reader.Snapshot {
	return reader.NewSnapshot(r.Resources)
}

// Options tune a traversal.
type Options struct {
	Logger *slog.Logger
}

// Load walks src from root with the given loaders, tried in order.
func Load(ctx context.Context, src Source, root string, loaders ...Loader) (*Result, error) {
	return LoadWithOptions(ctx, src, root, Options{}, loaders...)
}

// LoadWithOptions is Load with explicit options.
func LoadWithOptions(ctx context.Context, src Source, root string, opts Options, loaders ...Loader) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	res := &Result{}
	res.Resources = []ir.Resource{}
	res.Missing = []string{}

	r := newResolver(src)
	visited := map[string]bool{root: true}
	queue := []string{root}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := queue[0]
		queue = queue[1:]

		node, err := r.node(ctx, id)
		if err != nil {
			return nil, err
		}
		if node == nil {
			logger.Debug("node not found", "id", id)
			res.Missing = append(res.Missing, id)
			continue
		}

		loader := pick(loaders, node)
		if loader == nil {
			logger.Debug("no loader accepts node", "id", id, "types", node.Types())
			res.Missing = append(res.Missing, id)
			continue
		}

		resource, refs, err := loader.Load(node)
		if err != nil {
			return nil, err
		}
		if resource == nil {
			res.Missing = append(res.Missing, id)
			continue
		}
		res.Resources = append(res.Resources, resource)

		for _, ref := range refs {
			if ref == "" || visited[ref] {
				continue
			}
			visited[ref] = true
			queue = append(queue, ref)
		}
	}

	logger.Info("ingestion finished", "root", root, "resources", len(res.Resources), "missing", len(res.Missing))
	return res, nil
}

func pick(loaders []Loader, n *Node) Loader {
	for _, l := range loaders {
		if l.CanLoad(n) {
			return l
		}
	}
	return nil
}

// Merge commits the loaded resources to w as one ImportResources operation.
// It returns nil when there is nothing to merge.
func Merge(ctx context.Context, w ir.Writer, res *Result) (*ir.OperationResult, error) {
	if res == nil || len(res.Resources) == 0 {
		return nil, nil
	}
	out, err := w.ApplyOperation(ctx, ir.NewImportResources(res.Resources...))
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return out, nil
}
