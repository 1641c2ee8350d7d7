package ingest

import (
	"context"
	"fmt"
)

// RDF vocabulary used for typing and collections.
const (
	RDFType  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFFirst = "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"
	RDFRest  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"
	RDFNil   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil"
)

// CorruptListError reports a malformed rdf:first/rdf:rest chain.
type CorruptListError struct {
	// Head is the list node the chain started from; Node is where it broke.
	Head   string
	Node   string
	Reason string
}

func (e *CorruptListError) Error() string {
	return fmt.Sprintf("corrupt list %s at %s: %s", e.Head, e.Node, e.Reason)
}

// Node is one subject with its outgoing triples. Collection-valued objects
// are already resolved.
type Node struct {
	ID      string
	triples []Triple
	lists   map[string][]Term
}

// Types returns the rdf:type IRIs of the node.
func (n *Node) Types() []string {
	var out []string
	for _, t := range n.triples {
		if t.Predicate == RDFType && t.Object.Kind == KindIRI {
			out = append(out, t.Object.Value)
		}
	}
	return out
}

// HasType reports whether the node is typed t.
func (n *Node) HasType(t string) bool {
	for _, typ := range n.Types() {
		if typ == t {
			return true
		}
	}
	return false
}

// Values returns the objects of pred. Collection objects are replaced by
// their members in order; rdf:nil contributes nothing.
func (n *Node) Values(pred string) []Term {
	var out []Term
	for _, t := range n.triples {
		if t.Predicate != pred {
			continue
		}
		if items, ok := n.lists[t.Object.Value]; ok && t.Object.IsNode() {
			out = append(out, items...)
			continue
		}
		out = append(out, t.Object)
	}
	return out
}

// Lists returns each collection object of pred as its own sequence.
// Non-collection objects are returned as one-element sequences.
func (n *Node) Lists(pred string) [][]Term {
	var out [][]Term
	for _, t := range n.triples {
		if t.Predicate != pred {
			continue
		}
		if items, ok := n.lists[t.Object.Value]; ok && t.Object.IsNode() {
			out = append(out, items)
			continue
		}
		out = append(out, []Term{t.Object})
	}
	return out
}

// IRIs returns the node-valued objects of pred (see Values).
func (n *Node) IRIs(pred string) []string {
	var out []string
	for _, v := range n.Values(pred) {
		if v.IsNode() && v.Value != "" {
			out = append(out, v.Value)
		}
	}
	return out
}

// Value returns the first value of pred, or "".
func (n *Node) Value(pred string) string {
	vals := n.Values(pred)
	if len(vals) == 0 {
		return ""
	}
	return vals[0].Value
}

// Literal returns the first literal object of pred.
func (n *Node) Literal(pred string) (Term, bool) {
	for _, v := range n.Values(pred) {
		if v.Kind == KindLiteral {
			return v, true
		}
	}
	return Term{}, false
}

// resolver describes nodes and resolves their collections, caching both.
type resolver struct {
	src       Source
	described map[string][]Triple
}

func newResolver(src Source) *resolver {
	return &resolver{src: src, described: make(map[string][]Triple)}
}

func (r *resolver) describe(ctx context.Context, id string) ([]Triple, error) {
	if triples, ok := r.described[id]; ok {
		return triples, nil
	}
	triples, err := r.src.Describe(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", id, err)
	}
	r.described[id] = triples
	return triples, nil
}

// node builds the Node for id. It returns nil when the source knows nothing
// about id.
func (r *resolver) node(ctx context.Context, id string) (*Node, error) {
	triples, err := r.describe(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(triples) == 0 {
		return nil, nil
	}
	n := &Node{ID: id, triples: triples, lists: make(map[string][]Term)}
	for _, t := range triples {
		if !t.Object.IsNode() || t.Predicate == RDFType {
			continue
		}
		if _, done := n.lists[t.Object.Value]; done {
			continue
		}
		items, isList, err := r.list(ctx, t.Object.Value)
		if err != nil {
			return nil, err
		}
		if isList {
			n.lists[t.Object.Value] = items
		}
	}
	return n, nil
}

// list walks the collection starting at head. isList is false when head is
// an ordinary node.
func (r *resolver) list(ctx context.Context, head string) (items []Term, isList bool, err error) {
	if head == RDFNil {
		return []Term{}, true, nil
	}
	visited := make(map[string]bool)
	items = []Term{}
	for cur := head; cur != RDFNil; {
		if visited[cur] {
			return nil, false, &CorruptListError{Head: head, Node: cur, Reason: "the chain loops back on itself"}
		}
		visited[cur] = true

		triples, err := r.describe(ctx, cur)
		if err != nil {
			return nil, false, err
		}
		var firsts, rests []Term
		for _, t := range triples {
			switch t.Predicate {
			case RDFFirst:
				firsts = append(firsts, t.Object)
			case RDFRest:
				rests = append(rests, t.Object)
			}
		}
		if cur == head && len(firsts) == 0 && len(rests) == 0 {
			return nil, false, nil
		}
		if len(firsts) != 1 {
			return nil, false, &CorruptListError{Head: head, Node: cur, Reason: fmt.Sprintf("%d rdf:first links", len(firsts))}
		}
		if len(rests) != 1 {
			return nil, false, &CorruptListError{Head: head, Node: cur, Reason: fmt.Sprintf("%d rdf:rest links", len(rests))}
		}
		if !rests[0].IsNode() {
			return nil, false, &CorruptListError{Head: head, Node: cur, Reason: "rdf:rest is a literal"}
		}
		items = append(items, firsts[0])
		cur = rests[0].Value
	}
	return items, true, nil
}
