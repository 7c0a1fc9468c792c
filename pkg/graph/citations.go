package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/lyrelab/intertext/pkg/rdf"
)

// processCitations materializes relations for citation assertions and
// attaches one located text passage per side. The passages are what later
// qualifies a relation for direction resolution.
func (b *Builder) processCitations(ctx context.Context, workIDs []string) error {
	rows, err := b.queries.Select(ctx, b.citationQuery(workIDs))
	if err != nil {
		return fmt.Errorf("citation query failed: %w", err)
	}

	listed := make(map[string]struct{}, len(workIDs))
	for _, id := range workIDs {
		listed[id] = struct{}{}
	}

	type pair struct{ a, b string }
	seen := make(map[pair]struct{})
	var orderedPairs []pair
	for _, row := range rows {
		src, tgt := row.ID("src"), row.ID("tgt")
		if src == "" || tgt == "" {
			continue
		}
		_, srcListed := listed[src]
		_, tgtListed := listed[tgt]
		if !srcListed && !tgtListed {
			continue
		}
		p := pair{a: src, b: tgt}
		if tgt < src {
			p = pair{a: tgt, b: src}
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		orderedPairs = append(orderedPairs, p)
	}
	sort.Slice(orderedPairs, func(i, j int) bool {
		if orderedPairs[i].a != orderedPairs[j].a {
			return orderedPairs[i].a < orderedPairs[j].a
		}
		return orderedPairs[i].b < orderedPairs[j].b
	})

	for _, p := range orderedPairs {
		expr1 := b.EnsureExpression(p.a, b.labels.LabelOf(ctx, p.a))
		expr2 := b.EnsureExpression(p.b, b.labels.LabelOf(ctx, p.b))
		relation, ok := b.GetOrCreateRelation(ctx, expr1, expr2)
		if !ok {
			continue
		}
		b.ensureTextPassage(ctx, p.a, p.b, expr1, relation)
		b.ensureTextPassage(ctx, p.b, p.a, expr2, relation)
	}
	return nil
}

// ensureTextPassage creates the passage node located in the containing
// expression, derived from the counterpart work's record, and links it to
// both its expression and the relation. The id is a pure function of
// (containing, counterpart), so rediscovery is a no-op.
func (b *Builder) ensureTextPassage(ctx context.Context, containing, counterpart string, expr, relation rdf.Term) {
	passage := b.term("textpassage/" + containing + "_" + counterpart)
	if !b.store.Any(&passage, nil, nil) {
		b.store.Add(passage, rdf.Type, introTextPassage)
		b.store.Add(passage, rdf.Label,
			rdf.Text("Text passage in "+b.labels.LabelOf(ctx, containing), "en"))
		b.store.Add(passage, provDerivedFrom, NSWikidataEntity.Term(counterpart))
	}
	b.store.Add(expr, introHasTextPassage, passage)
	b.store.Add(passage, introTextPassageOf, expr)
	b.store.Add(relation, introHasRelatedEntity, passage)
	b.store.Add(passage, introIsRelatedEntity, relation)
}
