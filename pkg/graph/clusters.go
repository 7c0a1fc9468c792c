package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/lyrelab/intertext/pkg/logger"
	"github.com/lyrelab/intertext/pkg/sparql"
)

// cluster is a shared target together with the works that carry it, in
// first-seen order.
type cluster struct {
	target string
	works  []string
}

// groupRows groups (work, target) rows into clusters. Works are deduplicated
// per target; row order decides cluster order and work order, which keeps
// the build deterministic for a given response.
func groupRows(rows sparql.Rows, workColumn, targetColumn string) []cluster {
	var order []string
	byTarget := make(map[string]*cluster)
	seen := make(map[string]map[string]struct{})

	for _, row := range rows {
		work := row.ID(workColumn)
		target := row.ID(targetColumn)
		if work == "" || target == "" {
			continue
		}
		c, ok := byTarget[target]
		if !ok {
			c = &cluster{target: target}
			byTarget[target] = c
			seen[target] = make(map[string]struct{})
			order = append(order, target)
		}
		if _, dup := seen[target][work]; dup {
			continue
		}
		seen[target][work] = struct{}{}
		c.works = append(c.works, work)
	}

	clusters := make([]cluster, 0, len(order))
	for _, target := range order {
		clusters = append(clusters, *byTarget[target])
	}
	return clusters
}

// pairs calls fn for every unordered pair in the slice: C(N,2) calls, so a
// cluster of N works yields every pairwise co-occurrence, not just adjacent
// ones.
func pairs(ids []string, fn func(a, b string)) {
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			fn(ids[i], ids[j])
		}
	}
}

// buildFeatureClusters is the shared body of the topic, motif and plot
// passes: ensure the feature node per cluster, then for every unordered
// pair of works ensure both expressions, materialize the canonical
// relation, link the similarity basis, and attach one actualization per
// participant.
func (b *Builder) buildFeatureClusters(ctx context.Context, kind FeatureKind, clusters []cluster) {
	built := 0
	for _, c := range clusters {
		if len(c.works) < 2 {
			continue
		}
		b.labels.Prefetch(ctx, append([]string{c.target}, c.works...))

		targetLabel := b.labels.LabelOf(ctx, c.target)
		feature := b.EnsureFeature(kind, c.target,
			fmt.Sprintf("%s (%s)", targetLabel, kind))

		pairs(c.works, func(w1, w2 string) {
			expr1 := b.EnsureExpression(w1, b.labels.LabelOf(ctx, w1))
			expr2 := b.EnsureExpression(w2, b.labels.LabelOf(ctx, w2))
			relation, ok := b.GetOrCreateRelation(ctx, expr1, expr2)
			if !ok {
				return
			}
			b.linkSimilarity(feature, relation)
			b.AddActualization(feature, kind, c.target, expr1,
				targetLabel+" in "+b.labels.LabelOf(ctx, w1), relation)
			b.AddActualization(feature, kind, c.target, expr2,
				targetLabel+" in "+b.labels.LabelOf(ctx, w2), relation)
		})
		built++
	}
	logger.Debug("[Graph] Feature clusters built", "kind", kind, "clusters", built)
}

func (b *Builder) processTopics(ctx context.Context, workIDs []string) error {
	rows, err := b.queries.Select(ctx, b.topicQuery(workIDs))
	if err != nil {
		return fmt.Errorf("topic query failed: %w", err)
	}
	b.buildFeatureClusters(ctx, KindTopic, groupRows(rows, "wrk", "tgt"))
	return nil
}

func (b *Builder) processMotifs(ctx context.Context, workIDs []string) error {
	rows, err := b.queries.Select(ctx, b.motifQuery(workIDs))
	if err != nil {
		return fmt.Errorf("motif query failed: %w", err)
	}
	b.buildFeatureClusters(ctx, KindMotif, groupRows(rows, "wrk", "tgt"))
	return nil
}

func (b *Builder) processPlots(ctx context.Context, workIDs []string) error {
	rows, err := b.queries.Select(ctx, b.plotQuery(workIDs))
	if err != nil {
		return fmt.Errorf("plot query failed: %w", err)
	}
	b.buildFeatureClusters(ctx, KindPlot, groupRows(rows, "wrk", "tgt"))
	return nil
}

// sortedWorks returns the cluster's works in lexicographic order; the
// reference and character passes pair works in sorted order so their
// actualization labels do not depend on response order.
func sortedWorks(c cluster) []string {
	works := append([]string(nil), c.works...)
	sort.Strings(works)
	return works
}
