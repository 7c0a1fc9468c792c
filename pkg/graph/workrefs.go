package graph

import (
	"context"
	"fmt"
	"sort"
)

// processWorkReferences handles the intrinsically directed case of one work
// referring to another listed work. The referred-to side must not itself be
// a referring work: the source models containment-style references, and a
// work appearing on both sides would collapse the direction.
func (b *Builder) processWorkReferences(ctx context.Context, workIDs []string) error {
	rows, err := b.queries.Select(ctx, b.workReferenceQuery(workIDs))
	if err != nil {
		return fmt.Errorf("work reference query failed: %w", err)
	}

	listed := make(map[string]struct{}, len(workIDs))
	for _, id := range workIDs {
		listed[id] = struct{}{}
	}

	sources := make(map[string]struct{})
	for _, row := range rows {
		src := row.ID("src")
		if _, ok := listed[src]; ok {
			sources[src] = struct{}{}
		}
	}

	var order []string
	targetsBySource := make(map[string]map[string]struct{})
	for _, row := range rows {
		src, tgt := row.ID("src"), row.ID("tgt")
		if _, ok := listed[src]; !ok {
			continue
		}
		if _, ok := listed[tgt]; !ok {
			continue
		}
		if _, isSource := sources[tgt]; isSource {
			continue
		}
		if _, ok := targetsBySource[src]; !ok {
			targetsBySource[src] = make(map[string]struct{})
			order = append(order, src)
		}
		targetsBySource[src][tgt] = struct{}{}
	}

	for _, src := range order {
		srcLabel := b.labels.LabelOf(ctx, src)
		feature := b.EnsureFeature(KindWorkRef, src, "Reference to "+srcLabel+" (expression)")
		exprSrc := b.EnsureExpression(src, srcLabel)

		targets := make([]string, 0, len(targetsBySource[src]))
		for tgt := range targetsBySource[src] {
			targets = append(targets, tgt)
		}
		sort.Strings(targets)

		for _, tgt := range targets {
			tgtLabel := b.labels.LabelOf(ctx, tgt)
			exprTgt := b.EnsureExpression(tgt, tgtLabel)
			relation, ok := b.GetOrCreateRelation(ctx, exprSrc, exprTgt)
			if !ok {
				continue
			}
			b.linkSimilarity(feature, relation)

			// The actualization lives on the referring side only: the
			// reference to src is found in tgt.
			act := b.AddActualization(feature, KindWorkRef, src, exprTgt,
				srcLabel+" in "+tgtLabel, relation)
			b.store.Add(act, ecrmRefersTo, exprSrc)
			b.store.Add(exprSrc, ecrmReferredToBy, act)
		}
	}
	return nil
}
