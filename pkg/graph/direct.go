package graph

import (
	"context"
	"fmt"
)

// processDirectRelations materializes relations the source asserts directly
// between two listed works (derivative-of, based-on, subject-of style
// properties), queried in both assertion directions.
func (b *Builder) processDirectRelations(ctx context.Context, workIDs []string) error {
	type assertion struct{ w1, w2, property string }

	var assertions []assertion
	for _, backward := range []bool{false, true} {
		rows, err := b.queries.Select(ctx, b.directRelationQuery(workIDs, backward))
		if err != nil {
			return fmt.Errorf("direct relation query failed: %w", err)
		}
		for _, row := range rows {
			w1, w2, property := row.ID("w1"), row.ID("w2"), row.ID("p")
			if w1 == "" || w2 == "" || w1 == w2 {
				continue
			}
			assertions = append(assertions, assertion{w1: w1, w2: w2, property: property})
		}
	}

	seen := make(map[assertion]struct{})
	for _, a := range assertions {
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		b.ensureDirectRelation(ctx, a.w1, a.w2, a.property)
	}
	return nil
}
