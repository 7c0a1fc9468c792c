package graph

import (
	"context"
	"fmt"

	"github.com/lyrelab/intertext/pkg/logger"
	"github.com/lyrelab/intertext/pkg/rdf"
)

// processCharacters clusters works around shared characters. A character
// that is itself a historical person additionally gets the person node and
// person-reference feature, and the character actualizations refer to that
// person.
func (b *Builder) processCharacters(ctx context.Context, workIDs []string) error {
	rows, err := b.queries.Select(ctx, b.characterQuery(workIDs))
	if err != nil {
		return fmt.Errorf("character query failed: %w", err)
	}

	for _, c := range groupRows(rows, "wrk", "tgt") {
		if len(c.works) < 2 {
			continue
		}
		b.labels.Prefetch(ctx, append([]string{c.target}, c.works...))
		name := b.labels.LabelOf(ctx, c.target)

		var person rdf.Term
		isPerson, err := b.isInstanceOf(ctx, c.target, b.profile.PersonClass)
		if err != nil {
			// The person side channel is an enrichment; the character
			// cluster itself is still built.
			logger.Warn("[Graph] Person check failed", "character", c.target, "error", err)
		}
		if isPerson {
			person = b.EnsurePerson(c.target, name)
			b.EnsureFeature(KindPersonRef, c.target, "Reference to "+name+" (person)")
		}

		feature := b.EnsureFeature(KindCharacter, c.target, name)

		pairs(sortedWorks(c), func(w1, w2 string) {
			expr1 := b.EnsureExpression(w1, b.labels.LabelOf(ctx, w1))
			expr2 := b.EnsureExpression(w2, b.labels.LabelOf(ctx, w2))
			relation, ok := b.GetOrCreateRelation(ctx, expr1, expr2)
			if !ok {
				return
			}
			b.linkSimilarity(feature, relation)

			for _, side := range []struct {
				expr rdf.Term
				work string
			}{{expr1, w1}, {expr2, w2}} {
				workLabel := b.labels.LabelOf(ctx, side.work)
				act := b.AddActualization(feature, KindCharacter, c.target, side.expr,
					name+" in "+workLabel, relation)
				if !person.IsZero() {
					b.store.Add(act, ecrmRefersTo, person)
					b.store.Add(person, ecrmReferredToBy, act)
				}
				b.AddInterpretation(act,
					"Interpretation of "+name+" in "+workLabel,
					NSWikidataEntity.Term(side.work))
			}
		})
	}
	return nil
}

func (b *Builder) isInstanceOf(ctx context.Context, id, class string) (bool, error) {
	rows, err := b.queries.Select(ctx, instanceOfQuery(id, class))
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
