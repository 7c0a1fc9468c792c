// Package rdf provides an in-memory, append-only triple store together with
// the term and namespace primitives needed to build and serialize an RDF
// graph. The store is the substrate every graph-construction component writes
// into: adds are idempotent at the edge level, nodes are identified purely by
// their IRI, and triples keep their insertion order so serialization is
// stable across runs.
package rdf

// Term is a node in a triple: either an IRI or a language-tagged literal.
// Terms are plain comparable values; two terms with the same content are the
// same node regardless of where they were constructed.
type Term struct {
	Value   string
	Lang    string
	Literal bool
}

// IRI returns an IRI term.
func IRI(value string) Term {
	return Term{Value: value}
}

// Text returns a language-tagged literal term.
func Text(value, lang string) Term {
	return Term{Value: value, Lang: lang, Literal: true}
}

// IsZero reports whether the term is the zero value, used as the
// "no term" marker by operations that may not produce a node.
func (t Term) IsZero() bool {
	return t == Term{}
}

// Triple is a single (subject, predicate, object) fact.
type Triple struct {
	S Term
	P Term
	O Term
}
