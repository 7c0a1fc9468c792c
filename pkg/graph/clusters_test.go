package graph

import (
	"context"
	"testing"

	"github.com/lyrelab/intertext/pkg/rdf"
	"github.com/lyrelab/intertext/pkg/sparql"
)

func TestGroupRows(t *testing.T) {
	rows := sparql.Rows{
		{"wrk": wd("Q1"), "tgt": wd("Q100")},
		{"wrk": wd("Q2"), "tgt": wd("Q200")},
		{"wrk": wd("Q2"), "tgt": wd("Q100")},
		{"wrk": wd("Q1"), "tgt": wd("Q100")}, // duplicate
		{"wrk": wd("Q3")},                    // unbound target
	}
	clusters := groupRows(rows, "wrk", "tgt")
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if clusters[0].target != "Q100" || clusters[1].target != "Q200" {
		t.Fatalf("expected first-seen cluster order, got %v", clusters)
	}
	if len(clusters[0].works) != 2 || clusters[0].works[0] != "Q1" || clusters[0].works[1] != "Q2" {
		t.Fatalf("expected deduplicated works [Q1 Q2], got %v", clusters[0].works)
	}
}

func TestPairs_EveryUnorderedPair(t *testing.T) {
	var got [][2]string
	pairs([]string{"Q1", "Q2", "Q3", "Q4"}, func(a, b string) {
		got = append(got, [2]string{a, b})
	})
	if len(got) != 6 {
		t.Fatalf("expected C(4,2)=6 pairs, got %d", len(got))
	}
	want := [][2]string{
		{"Q1", "Q2"}, {"Q1", "Q3"}, {"Q1", "Q4"},
		{"Q2", "Q3"}, {"Q2", "Q4"}, {"Q3", "Q4"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pair %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

// Three works sharing one topic must yield one feature node, three
// expressions, the full pairwise set of relations, and one actualization per
// participant, each shared by the two relations that involve the work.
func TestProcessTopics_SharedTopicCluster(t *testing.T) {
	rows := sparql.Rows{
		{"wrk": wd("Q1"), "tgt": wd("Q100")},
		{"wrk": wd("Q2"), "tgt": wd("Q100")},
		{"wrk": wd("Q3"), "tgt": wd("Q100")},
	}
	b := newTestBuilder(
		selectFunc(func(ctx context.Context, query string) (sparql.Rows, error) {
			return rows, nil
		}),
		staticLabels{"Q100": "Love", "Q1": "Alpha", "Q2": "Beta", "Q3": "Gamma"},
	)
	ctx := context.Background()
	if err := b.processTopics(ctx, []string{"Q1", "Q2", "Q3"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	store := b.Store()

	topics := store.Subjects(rdf.Type, introTopic)
	if len(topics) != 1 || topics[0] != b.term("feature/topic/Q100") {
		t.Fatalf("expected one topic feature, got %v", topics)
	}
	if label, _ := store.Value(topics[0], rdf.Label); label.Value != "Love (topic)" {
		t.Fatalf("unexpected feature label %v", label)
	}

	if got := len(store.Subjects(rdf.Type, lrmExpression)); got != 3 {
		t.Fatalf("expected 3 expressions, got %d", got)
	}

	relations := store.Subjects(rdf.Type, introRelation)
	if len(relations) != 3 {
		t.Fatalf("expected 3 relations, got %d", len(relations))
	}
	for _, id := range []string{"Q1_Q2", "Q1_Q3", "Q2_Q3"} {
		rel := b.term("relation/" + id)
		if !store.Contains(rel, rdf.Type, introRelation) {
			t.Fatalf("expected relation %s", id)
		}
		if !store.Contains(rel, introBasedOnSimilarity, topics[0]) {
			t.Fatalf("expected similarity basis on relation %s", id)
		}
	}

	// One actualization per participating work, each referenced by exactly
	// the two relations that involve that work.
	for _, workID := range []string{"Q1", "Q2", "Q3"} {
		act := b.term("actualization/topic/Q100_" + workID)
		if !store.Contains(act, rdf.Type, introActualization) {
			t.Fatalf("expected actualization for %s", workID)
		}
		if refs := store.Subjects(introHasRelatedEntity, act); len(refs) != 2 {
			t.Fatalf("expected actualization of %s to be referenced by 2 relations, got %d", workID, len(refs))
		}
	}

	// Re-running the pass over the same response adds nothing.
	size := store.Len()
	if err := b.processTopics(ctx, []string{"Q1", "Q2", "Q3"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if store.Len() != size {
		t.Fatalf("expected idempotent re-run, got %d new triples", store.Len()-size)
	}
}

func TestBuildFeatureClusters_SkipsSingletons(t *testing.T) {
	b := newTestBuilder(nil, staticLabels{})
	b.buildFeatureClusters(context.Background(), KindMotif, []cluster{
		{target: "Q200", works: []string{"Q1"}},
	})
	if b.Store().Len() != 0 {
		t.Fatal("expected a single-work cluster to produce nothing")
	}
}
