package rdf

// Store is an append-only multigraph of triples with set semantics: adding a
// triple that is already present is a no-op. Triples are kept in insertion
// order. The store is not safe for concurrent writers; the construction
// pipeline runs its passes sequentially against one shared store.
type Store struct {
	triples []Triple
	index   map[Triple]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		index: make(map[Triple]struct{}),
	}
}

// Add appends the triple unless it is already present.
// It returns true if the triple was newly added.
func (s *Store) Add(subject, predicate, object Term) bool {
	t := Triple{S: subject, P: predicate, O: object}
	if _, ok := s.index[t]; ok {
		return false
	}
	s.index[t] = struct{}{}
	s.triples = append(s.triples, t)
	return true
}

// Contains reports whether the exact triple is present.
func (s *Store) Contains(subject, predicate, object Term) bool {
	_, ok := s.index[Triple{S: subject, P: predicate, O: object}]
	return ok
}

// Any reports whether at least one triple matches the pattern.
// A nil component matches anything.
func (s *Store) Any(subject, predicate, object *Term) bool {
	if subject != nil && predicate != nil && object != nil {
		return s.Contains(*subject, *predicate, *object)
	}
	for _, t := range s.triples {
		if matches(t, subject, predicate, object) {
			return true
		}
	}
	return false
}

func matches(t Triple, subject, predicate, object *Term) bool {
	if subject != nil && t.S != *subject {
		return false
	}
	if predicate != nil && t.P != *predicate {
		return false
	}
	if object != nil && t.O != *object {
		return false
	}
	return true
}

// Objects returns all objects of triples with the given subject and
// predicate, in insertion order.
func (s *Store) Objects(subject, predicate Term) []Term {
	var out []Term
	for _, t := range s.triples {
		if t.S == subject && t.P == predicate {
			out = append(out, t.O)
		}
	}
	return out
}

// Subjects returns all subjects of triples with the given predicate and
// object, in insertion order.
func (s *Store) Subjects(predicate, object Term) []Term {
	var out []Term
	for _, t := range s.triples {
		if t.P == predicate && t.O == object {
			out = append(out, t.S)
		}
	}
	return out
}

// Value returns the object of the first triple with the given subject and
// predicate, if any.
func (s *Store) Value(subject, predicate Term) (Term, bool) {
	for _, t := range s.triples {
		if t.S == subject && t.P == predicate {
			return t.O, true
		}
	}
	return Term{}, false
}

// Triples returns the stored triples in insertion order.
// The returned slice must not be modified.
func (s *Store) Triples() []Triple {
	return s.triples
}

// Len returns the number of distinct triples in the store.
func (s *Store) Len() int {
	return len(s.triples)
}
