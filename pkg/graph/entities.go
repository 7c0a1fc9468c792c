package graph

import (
	"strings"

	"github.com/lyrelab/intertext/pkg/rdf"
)

// FeatureKind tags what a shared feature is: a topic, motif, plot, character
// or a reference target. The kind is part of a feature's identity, so a
// topic and a motif with the same external id are distinct nodes.
type FeatureKind string

const (
	KindTopic     FeatureKind = "topic"
	KindMotif     FeatureKind = "motif"
	KindPlot      FeatureKind = "plot"
	KindCharacter FeatureKind = "character"
	KindPersonRef FeatureKind = "person_ref"
	KindPlaceRef  FeatureKind = "place_ref"
	KindWorkRef   FeatureKind = "work_ref"
)

// class returns the ontology class for the kind. Reference kinds share one
// class; their kind still separates their URIs.
func (k FeatureKind) class() rdf.Term {
	switch k {
	case KindTopic:
		return introTopic
	case KindMotif:
		return introMotif
	case KindPlot:
		return introPlot
	case KindCharacter:
		return introCharacter
	default:
		return introReference
	}
}

// isReference reports whether the kind models a reference to something
// outside the pair of works rather than a shared abstract feature.
// Reference features carry no same-as link or identifier record; the
// referenced person, place or work node carries those instead.
func (k FeatureKind) isReference() bool {
	switch k {
	case KindPersonRef, KindPlaceRef, KindWorkRef:
		return true
	}
	return false
}

// externalID extracts the trailing id segment from a minted entity IRI.
func externalID(t rdf.Term) string {
	value := strings.TrimSuffix(t.Value, "/")
	if idx := strings.LastIndex(value, "/"); idx >= 0 {
		return value[idx+1:]
	}
	return value
}

// addIdentifier attaches the identifier sub-record to an entity: a typed
// identifier node holding the bare external id, linked in both directions
// and carrying provenance to the source record.
func (b *Builder) addIdentifier(entity rdf.Term, id string) {
	idNode := b.term("identifier/" + id)
	pure := id
	if idx := strings.LastIndex(pure, "_"); idx >= 0 {
		pure = pure[idx+1:]
	}
	idType := b.idTypeTerm()

	b.store.Add(idNode, rdf.Type, ecrmIdentifier)
	b.store.Add(idNode, rdf.Label, rdf.Text(pure, "en"))
	b.store.Add(idNode, ecrmHasType, idType)
	b.store.Add(idType, ecrmIsTypeOf, idNode)
	b.store.Add(idNode, provDerivedFrom, NSWikidataEntity.Term(pure))
	b.store.Add(entity, ecrmIdentifiedBy, idNode)
	b.store.Add(idNode, ecrmIdentifies, entity)
}

// EnsureExpression ensures the expression node for a work exists exactly
// once and returns its IRI. The defining triple is the type edge; when it is
// already present the call returns without touching the store.
func (b *Builder) EnsureExpression(id, label string) rdf.Term {
	uri := b.term("expression/" + id)
	if b.store.Contains(uri, rdf.Type, lrmExpression) {
		return uri
	}
	if label == "" {
		label = id
	}
	b.store.Add(uri, rdf.Type, lrmExpression)
	b.store.Add(uri, rdf.Label, rdf.Text("Expression of "+label, "en"))
	b.store.Add(uri, rdf.SameAs, NSWikidataEntity.Term(id))
	return uri
}

// EnsureFeature ensures the feature node for (kind, id) exists exactly once
// and returns its IRI. Non-reference features link back to their source
// record and carry an identifier sub-record.
func (b *Builder) EnsureFeature(kind FeatureKind, id, label string) rdf.Term {
	uri := b.term("feature/" + string(kind) + "/" + id)
	if b.store.Any(&uri, nil, nil) {
		return uri
	}
	b.store.Add(uri, rdf.Type, kind.class())
	b.store.Add(uri, rdf.Label, rdf.Text(label, "en"))
	if !kind.isReference() {
		b.store.Add(uri, rdf.SameAs, NSWikidataEntity.Term(id))
		b.addIdentifier(uri, id)
	}
	return uri
}

// EnsurePerson ensures the person node a person-reference feature points at.
func (b *Builder) EnsurePerson(id, name string) rdf.Term {
	uri := b.term("person/" + id)
	if b.store.Contains(uri, rdf.Type, ecrmPerson) {
		return uri
	}
	b.store.Add(uri, rdf.Type, ecrmPerson)
	b.store.Add(uri, rdf.Label, rdf.Text(name, "en"))
	b.store.Add(uri, rdf.SameAs, NSWikidataEntity.Term(id))
	b.addIdentifier(uri, id)
	return uri
}

// EnsurePlace ensures the place node a place-reference feature points at.
func (b *Builder) EnsurePlace(id, name string) rdf.Term {
	uri := b.term("place/" + id)
	if b.store.Contains(uri, rdf.Type, ecrmPlace) {
		return uri
	}
	b.store.Add(uri, rdf.Type, ecrmPlace)
	b.store.Add(uri, rdf.Label, rdf.Text(name, "en"))
	b.store.Add(uri, rdf.SameAs, NSWikidataEntity.Term(id))
	b.addIdentifier(uri, id)
	return uri
}
