package graph

import (
	"context"

	"github.com/lyrelab/intertext/pkg/rdf"
)

// relationID builds the canonical id for an unordered pair of works: the two
// ids sorted lexicographically and joined. Both discovery orders map to the
// same id, which is what makes relations shared across passes.
func relationID(a, b string) string {
	if a < b {
		return a + "_" + b
	}
	return b + "_" + a
}

// GetOrCreateRelation returns the canonical undirected relation node between
// two expressions, creating it on first sight. The second return value is
// false for a self-pair: a work is never related to itself.
//
// A relation created here by one pass is returned unchanged to every later
// pass that rediscovers the pair through another feature; relations are
// cumulative containers, not per-feature edges.
func (b *Builder) GetOrCreateRelation(ctx context.Context, expr1, expr2 rdf.Term) (rdf.Term, bool) {
	if expr1 == expr2 {
		return rdf.Term{}, false
	}
	id1, id2 := externalID(expr1), externalID(expr2)
	rel := b.term("relation/" + relationID(id1, id2))

	if !b.store.Contains(rel, rdf.Type, introRelation) {
		l1 := b.labels.LabelOf(ctx, id1)
		l2 := b.labels.LabelOf(ctx, id2)
		b.store.Add(rel, rdf.Type, introRelation)
		b.store.Add(rel, rdf.Label, rdf.Text("Intertextual relation between "+l1+" and "+l2, "en"))
		b.AddInterpretation(rel,
			"Interpretation of intertextual relation between "+l1+" and "+l2,
			expr1, expr2)
	}
	return rel, true
}

// linkSimilarity records that the feature is the similarity basis of the
// relation. Idempotent through the store.
func (b *Builder) linkSimilarity(feature, relation rdf.Term) {
	b.store.Add(feature, introSimilarityFor, relation)
	b.store.Add(relation, introBasedOnSimilarity, feature)
}

// ensureDirectRelation materializes a relation for a pairing asserted
// directly by the source (derivative-work and subject links) rather than
// discovered through a shared feature. The canonical id rules are the same;
// the label names the asserting property. An existing relation for the pair
// is left untouched.
func (b *Builder) ensureDirectRelation(ctx context.Context, id1, id2, property string) {
	rel := b.term("relation/" + relationID(id1, id2))
	if b.store.Contains(rel, rdf.Type, introRelation) {
		return
	}
	l1 := b.labels.LabelOf(ctx, id1)
	l2 := b.labels.LabelOf(ctx, id2)
	b.store.Add(rel, rdf.Type, introRelation)
	b.store.Add(rel, rdf.Label, rdf.Text("Intertextual relation ("+property+") between "+l1+" and "+l2, "en"))
}
