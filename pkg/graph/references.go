package graph

import (
	"context"
	"fmt"

	"github.com/lyrelab/intertext/pkg/rdf"
)

// The person and place passes cluster works around a referenced real-world
// entity. Unlike the abstract feature passes they also materialize the
// referenced entity itself and point each actualization at it.

func (b *Builder) processPersonReferences(ctx context.Context, workIDs []string) error {
	rows, err := b.queries.Select(ctx, b.referenceQuery(workIDs, b.profile.PersonClass))
	if err != nil {
		return fmt.Errorf("person reference query failed: %w", err)
	}
	for _, c := range groupRows(rows, "wrk", "tgt") {
		if len(c.works) < 2 {
			continue
		}
		b.labels.Prefetch(ctx, append([]string{c.target}, c.works...))
		name := b.labels.LabelOf(ctx, c.target)
		person := b.EnsurePerson(c.target, name)
		feature := b.EnsureFeature(KindPersonRef, c.target, "Reference to "+name+" (person)")
		b.buildReferenceCluster(ctx, KindPersonRef, feature, person, name, sortedWorks(c))
	}
	return nil
}

func (b *Builder) processPlaceReferences(ctx context.Context, workIDs []string) error {
	rows, err := b.queries.Select(ctx, b.referenceQuery(workIDs, b.profile.PlaceClass))
	if err != nil {
		return fmt.Errorf("place reference query failed: %w", err)
	}
	for _, c := range groupRows(rows, "wrk", "tgt") {
		if len(c.works) < 2 {
			continue
		}
		b.labels.Prefetch(ctx, append([]string{c.target}, c.works...))
		name := b.labels.LabelOf(ctx, c.target)
		place := b.EnsurePlace(c.target, name)
		feature := b.EnsureFeature(KindPlaceRef, c.target, "Reference to "+name+" (place)")
		b.buildReferenceCluster(ctx, KindPlaceRef, feature, place, name, sortedWorks(c))
	}
	return nil
}

// buildReferenceCluster pairs the referring works and attaches, per
// participant, an actualization that additionally refers to the referenced
// entity node.
func (b *Builder) buildReferenceCluster(ctx context.Context, kind FeatureKind, feature, referenced rdf.Term, name string, works []string) {
	pairs(works, func(w1, w2 string) {
		expr1 := b.EnsureExpression(w1, b.labels.LabelOf(ctx, w1))
		expr2 := b.EnsureExpression(w2, b.labels.LabelOf(ctx, w2))
		relation, ok := b.GetOrCreateRelation(ctx, expr1, expr2)
		if !ok {
			return
		}
		b.linkSimilarity(feature, relation)

		featureID := externalID(referenced)
		for _, side := range []struct {
			expr rdf.Term
			work string
		}{{expr1, w1}, {expr2, w2}} {
			act := b.AddActualization(feature, kind, featureID, side.expr,
				name+" in "+b.labels.LabelOf(ctx, side.work), relation)
			b.store.Add(act, ecrmRefersTo, referenced)
			b.store.Add(referenced, ecrmReferredToBy, act)
		}
	})
}
