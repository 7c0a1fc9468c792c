package graph

import (
	"context"
	"testing"

	"github.com/lyrelab/intertext/pkg/rdf"
)

func TestRelationID_Canonical(t *testing.T) {
	if relationID("Q1", "Q2") != "Q1_Q2" || relationID("Q2", "Q1") != "Q1_Q2" {
		t.Fatal("expected both orders to map to the sorted id")
	}
}

func TestGetOrCreateRelation_OrderInsensitive(t *testing.T) {
	b := newTestBuilder(nil, staticLabels{"Q1": "Alpha", "Q2": "Beta"})
	store := b.Store()
	ctx := context.Background()

	e1 := b.EnsureExpression("Q1", "Alpha")
	e2 := b.EnsureExpression("Q2", "Beta")

	rel, ok := b.GetOrCreateRelation(ctx, e1, e2)
	if !ok {
		t.Fatal("expected relation for distinct expressions")
	}
	if rel != b.term("relation/Q1_Q2") {
		t.Fatalf("unexpected relation uri %v", rel)
	}
	if label, _ := store.Value(rel, rdf.Label); label.Value != "Intertextual relation between Alpha and Beta" {
		t.Fatalf("unexpected relation label %v", label)
	}

	size := store.Len()
	swapped, ok := b.GetOrCreateRelation(ctx, e2, e1)
	if !ok || swapped != rel {
		t.Fatalf("expected the swapped order to return the same relation, got %v", swapped)
	}
	if store.Len() != size {
		t.Fatal("expected rediscovery to leave the store untouched")
	}
}

func TestGetOrCreateRelation_CreatesInterpretation(t *testing.T) {
	b := newTestBuilder(nil, staticLabels{"Q1": "Alpha", "Q2": "Beta"})
	store := b.Store()

	e1 := b.EnsureExpression("Q1", "Alpha")
	e2 := b.EnsureExpression("Q2", "Beta")
	rel, _ := b.GetOrCreateRelation(context.Background(), e1, e2)

	interpFeature := b.term("feature/interpretation/Q1_Q2")
	interpAct := b.term("actualization/interpretation/Q1_Q2")
	if !store.Contains(interpFeature, rdf.Type, introInterpretation) {
		t.Fatal("expected interpretation feature")
	}
	if !store.Contains(interpAct, rdf.Type, introActualization) {
		t.Fatal("expected interpretation actualization")
	}
	for _, id := range []string{"Q1", "Q2"} {
		if !store.Contains(interpAct, provDerivedFrom, NSWikidataEntity.Term(id)) {
			t.Fatalf("expected interpretation provenance to %s", id)
		}
	}
	if !store.Contains(interpAct, introIdentifies, rel) || !store.Contains(rel, introIdentifiedBy, interpAct) {
		t.Fatal("expected identifies links between interpretation and relation")
	}
}

func TestGetOrCreateRelation_RejectsSelfPair(t *testing.T) {
	b := newTestBuilder(nil, staticLabels{})
	e := b.EnsureExpression("Q1", "Alpha")
	if _, ok := b.GetOrCreateRelation(context.Background(), e, e); ok {
		t.Fatal("expected no relation for a self-pair")
	}
}

func TestGetOrCreateRelation_SharedAcrossFeatures(t *testing.T) {
	b := newTestBuilder(nil, staticLabels{})
	store := b.Store()
	ctx := context.Background()

	e1 := b.EnsureExpression("Q1", "Alpha")
	e2 := b.EnsureExpression("Q2", "Beta")
	rel, _ := b.GetOrCreateRelation(ctx, e1, e2)

	topic := b.EnsureFeature(KindTopic, "Q100", "Love (topic)")
	motif := b.EnsureFeature(KindMotif, "Q200", "Storm (motif)")
	b.linkSimilarity(topic, rel)
	b.linkSimilarity(motif, rel)
	// Rediscovery through the second feature must not fork the relation.
	again, _ := b.GetOrCreateRelation(ctx, e1, e2)
	if again != rel {
		t.Fatal("expected one relation across features")
	}

	bases := store.Objects(rel, introBasedOnSimilarity)
	if len(bases) != 2 || bases[0] != topic || bases[1] != motif {
		t.Fatalf("expected both similarity bases, got %v", bases)
	}
}

func TestEnsureDirectRelation(t *testing.T) {
	b := newTestBuilder(nil, staticLabels{"Q1": "Alpha", "Q2": "Beta"})
	store := b.Store()
	ctx := context.Background()

	b.ensureDirectRelation(ctx, "Q2", "Q1", "P4969")
	rel := b.term("relation/Q1_Q2")
	if !store.Contains(rel, rdf.Type, introRelation) {
		t.Fatal("expected relation node")
	}
	if label, _ := store.Value(rel, rdf.Label); label.Value != "Intertextual relation (P4969) between Beta and Alpha" {
		t.Fatalf("unexpected label %v", label)
	}

	// Direct assertions carry no interpretation of their own.
	interp := b.term("actualization/interpretation/Q1_Q2")
	if store.Any(&interp, nil, nil) {
		t.Fatal("expected no interpretation on a direct relation")
	}

	// A relation already minted for the pair is left untouched.
	size := store.Len()
	b.ensureDirectRelation(ctx, "Q1", "Q2", "P144")
	if store.Len() != size {
		t.Fatal("expected existing relation to be kept")
	}
}
