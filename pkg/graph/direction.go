package graph

import (
	"strconv"

	"github.com/lyrelab/intertext/pkg/logger"
	"github.com/lyrelab/intertext/pkg/rdf"
)

// Direction is a resolved temporal ordering between the two text-passage
// bearing participants of a relation. It backs the "possibly cites" hint:
// the younger expression may cite the older one, never a hard assertion.
type Direction struct {
	Younger        rdf.Term
	Older          rdf.Term
	YoungerPassage rdf.Term
	OlderPassage   rdf.Term
}

// ResolveDirection determines older/younger for a relation. It qualifies
// only when the relation has exactly two distinct text-passage-bearing
// participants and a creation year can be found for both; anything else is a
// skip, not an error. Equal years resolve by input order.
func (b *Builder) ResolveDirection(relation rdf.Term) (Direction, bool) {
	type passageExpr struct {
		passage rdf.Term
		expr    rdf.Term
	}

	var participants []passageExpr
	exprs := make(map[rdf.Term]struct{})
	for _, related := range b.store.Objects(relation, introHasRelatedEntity) {
		expr, ok := b.store.Value(related, introTextPassageOf)
		if !ok {
			continue
		}
		participants = append(participants, passageExpr{passage: related, expr: expr})
		exprs[expr] = struct{}{}
	}
	if len(participants) != 2 || len(exprs) != 2 {
		return Direction{}, false
	}

	first, second := participants[0], participants[1]
	y1, ok1 := b.creationYear(first.expr)
	y2, ok2 := b.creationYear(second.expr)
	if !ok1 || !ok2 {
		return Direction{}, false
	}

	if y1 < y2 {
		return Direction{
			Younger:        second.expr,
			Older:          first.expr,
			YoungerPassage: second.passage,
			OlderPassage:   first.passage,
		}, true
	}
	return Direction{
		Younger:        first.expr,
		Older:          second.expr,
		YoungerPassage: first.passage,
		OlderPassage:   second.passage,
	}, true
}

// creationYear looks up the creation year of an expression: first through
// its expression-creation event, then through the manifestation-creation
// path. The year is the integer form of the time-span label.
func (b *Builder) creationYear(expr rdf.Term) (int, bool) {
	for _, creation := range b.store.Objects(expr, lrmWasCreatedBy) {
		if year, ok := b.timeSpanYear(creation); ok {
			return year, true
		}
	}
	for _, manifestation := range b.store.Objects(expr, lrmEmbodiedIn) {
		for _, creation := range b.store.Subjects(lrmCreated, manifestation) {
			if year, ok := b.timeSpanYear(creation); ok {
				return year, true
			}
		}
	}
	return 0, false
}

func (b *Builder) timeSpanYear(event rdf.Term) (int, bool) {
	for _, span := range b.store.Objects(event, ecrmTimeSpan) {
		label, ok := b.store.Value(span, rdf.Label)
		if !ok {
			continue
		}
		year, err := strconv.Atoi(label.Value)
		if err != nil {
			continue
		}
		return year, true
	}
	return 0, false
}

// applyDirections materializes the resolved hints onto qualifying relations
// as referring (younger) and referred-to (older) links.
func (b *Builder) applyDirections() {
	resolved := 0
	for _, relation := range b.store.Subjects(rdf.Type, introRelation) {
		direction, ok := b.ResolveDirection(relation)
		if !ok {
			continue
		}
		b.store.Add(relation, introReferring, direction.Younger)
		b.store.Add(direction.Younger, introReferringInv, relation)
		b.store.Add(relation, introReferredTo, direction.Older)
		b.store.Add(direction.Older, introReferredToInv, relation)
		resolved++
	}
	logger.Debug("[Graph] Direction hints applied", "relations", resolved)
}
