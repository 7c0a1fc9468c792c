package graph

import (
	"strings"

	"github.com/lyrelab/intertext/pkg/rdf"
)

// AddActualization records that a feature is realized in an expression, in
// the context of a relation. The actualization id is a pure function of the
// feature's (kind, id) and the expression id, so re-invocation for the same
// pair returns the existing node; the relation link still goes through the
// store's idempotent add, so a single actualization accumulates references
// from every relation that rediscovers it.
//
// On first creation the actualization is additionally linked bidirectionally
// to the feature and to the expression it is found on, and an interpretation
// with provenance to the expression's source record is attached.
func (b *Builder) AddActualization(feature rdf.Term, kind FeatureKind, featureID string, expression rdf.Term, label string, relation rdf.Term) rdf.Term {
	exprID := externalID(expression)
	act := b.term("actualization/" + string(kind) + "/" + featureID + "_" + exprID)
	if !b.store.Any(&act, nil, nil) {
		b.store.Add(act, rdf.Type, introActualization)
		b.store.Add(act, rdf.Label, rdf.Text(label, "en"))
		b.store.Add(feature, introActualizedIn, act)
		b.store.Add(act, introActualizes, feature)
		b.store.Add(act, introFoundOn, expression)
		b.store.Add(expression, introShowsActualization, act)
		b.AddInterpretation(act, "Interpretation of "+label, NSWikidataEntity.Term(exprID))
	}

	b.store.Add(act, introIsRelatedEntity, relation)
	b.store.Add(relation, introHasRelatedEntity, act)
	return act
}

// AddInterpretation wraps a target node (an actualization or a relation) in
// a provenance-bearing interpretation: one interpretation feature and one
// interpretation actualization per target id, created once, deriving from
// the given source records. The identifies link between the interpretation
// and its target goes through the store's idempotent add, so repeat calls
// for the same target never duplicate the edge.
func (b *Builder) AddInterpretation(target rdf.Term, label string, derivedFrom ...rdf.Term) (rdf.Term, rdf.Term) {
	targetID := interpretationTargetID(target)

	feature := b.term("feature/interpretation/" + targetID)
	if !b.store.Any(&feature, nil, nil) {
		b.store.Add(feature, rdf.Type, introInterpretation)
		b.store.Add(feature, rdf.Label, rdf.Text(label, "en"))
	}

	act := b.term("actualization/interpretation/" + targetID)
	if !b.store.Any(&act, nil, nil) {
		b.store.Add(act, rdf.Type, introActualization)
		b.store.Add(act, rdf.Label, rdf.Text(label, "en"))
		for _, source := range derivedFrom {
			b.store.Add(act, provDerivedFrom, NSWikidataEntity.Term(externalID(source)))
		}
		b.store.Add(feature, introActualizedIn, act)
		b.store.Add(act, introActualizes, feature)
	}

	b.store.Add(act, introIdentifies, target)
	b.store.Add(target, introIdentifiedBy, act)

	return feature, act
}

// interpretationTargetID derives the interpretation id from the target's
// trailing path segment, e.g. "Q1_Q2" for a relation or "Q100_Q1" for an
// actualization.
func interpretationTargetID(target rdf.Term) string {
	value := strings.TrimSuffix(target.Value, "/")
	if idx := strings.LastIndex(value, "/"); idx >= 0 {
		return value[idx+1:]
	}
	return value
}
