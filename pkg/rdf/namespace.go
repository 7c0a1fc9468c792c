package rdf

// Namespace is an IRI prefix that local names are appended to.
type Namespace string

// Term returns the IRI term for a local name inside the namespace.
func (n Namespace) Term(local string) Term {
	return IRI(string(n) + local)
}

// Contains reports whether the IRI term lives inside the namespace and, if
// so, returns its local name.
func (n Namespace) Contains(t Term) (string, bool) {
	if t.Literal {
		return "", false
	}
	prefix := string(n)
	if len(t.Value) > len(prefix) && t.Value[:len(prefix)] == prefix {
		return t.Value[len(prefix):], true
	}
	return "", false
}

// Well-known vocabularies.
const (
	NSRDF  Namespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSRDFS Namespace = "http://www.w3.org/2000/01/rdf-schema#"
	NSOWL  Namespace = "http://www.w3.org/2002/07/owl#"
)

// Core terms used by every builder component.
var (
	Type  = NSRDF.Term("type")
	Label = NSRDFS.Term("label")

	SameAs             = NSOWL.Term("sameAs")
	Ontology           = NSOWL.Term("Ontology")
	Imports            = NSOWL.Term("imports")
	EquivalentClass    = NSOWL.Term("equivalentClass")
	EquivalentProperty = NSOWL.Term("equivalentProperty")
	InverseOf          = NSOWL.Term("inverseOf")
)
