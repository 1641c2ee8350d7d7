package ingest

import (
	"errors"
	"fmt"
	"io"

	"github.com/knakk/rdf"
)

// TermKind tells IRIs, blank nodes and literals apart.
type TermKind int

const (
	KindIRI TermKind = iota
	KindBlank
	KindLiteral
)

// Term is an RDF term. Value is the IRI, the blank node label ("_:b0") or
// the literal's lexical form.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	Lang     string
}

// IRI returns an IRI term.
func IRI(v string) Term { return Term{Kind: KindIRI, Value: v} }

// Blank returns a blank node term; label may include the "_:" prefix.
func Blank(label string) Term {
	if len(label) < 2 || label[:2] != "_:" {
		label = "_:" + label
	}
	return Term{Kind: KindBlank, Value: label}
}

// Literal returns a plain string literal.
func Literal(v string) Term { return Term{Kind: KindLiteral, Value: v} }

// LangLiteral returns a language-tagged literal.
func LangLiteral(v, lang string) Term { return Term{Kind: KindLiteral, Value: v, Lang: lang} }

// IsNode reports whether the term can be the subject of further triples.
func (t Term) IsNode() bool { return t.Kind == KindIRI || t.Kind == KindBlank }

// Triple is one statement. Subject is an IRI or a blank node label.
type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

// DecodeNTriples reads an N-Triples document.
func DecodeNTriples(r io.Reader) ([]Triple, error) {
	dec := rdf.NewTripleDecoder(r, rdf.NTriples)
	var out []Triple
	for {
		tr, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode n-triples: %w", err)
		}
		out = append(out, Triple{
			Subject:   nodeID(tr.Subj),
			Predicate: tr.Pred.String(),
			Object:    fromRDF(tr.Obj),
		})
	}
}

// nodeID normalizes blank node labels to carry the "_:" prefix so subjects
// and objects compare equal.
func nodeID(t rdf.Term) string {
	if t.Type() == rdf.TermBlank {
		return Blank(t.String()).Value
	}
	return t.String()
}

func fromRDF(obj rdf.Object) Term {
	switch obj.Type() {
	case rdf.TermBlank:
		return Blank(obj.String())
	case rdf.TermLiteral:
		t := Term{Kind: KindLiteral, Value: obj.String()}
		if lit, ok := obj.(rdf.Literal); ok {
			t.Lang = lit.Lang()
			if lit.DataType.String() != "" {
				t.Datatype = lit.DataType.String()
			}
		}
		return t
	default:
		return IRI(obj.String())
	}
}
