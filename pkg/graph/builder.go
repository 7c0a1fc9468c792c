// Package graph turns raw work-feature facts fetched from an external
// knowledge source into a consistent intertextuality graph: expressions,
// shared features, canonical undirected relations between works, and
// provenance-bearing actualization and interpretation records.
//
// Every constructor in this package is an idempotent upsert keyed by a
// deterministic id, so the feature passes can run in any order, discover the
// same pair of works through different features, and still produce exactly
// one node per identity.
package graph

import (
	"context"

	"github.com/lyrelab/intertext/pkg/logger"
	"github.com/lyrelab/intertext/pkg/rdf"
	"github.com/lyrelab/intertext/pkg/sparql"
)

// DefaultBaseURI is the namespace minted entities live under unless the
// caller overrides it.
const DefaultBaseURI rdf.Namespace = "https://lyrelab.dev/intertext/"

// QueryService is the upstream query surface the builder depends on.
// *sparql.Client satisfies it.
type QueryService interface {
	Select(ctx context.Context, query string) (sparql.Rows, error)
}

// LabelService resolves and prefetches human-readable labels for external
// ids. *sparql.LabelResolver satisfies it.
type LabelService interface {
	LabelOf(ctx context.Context, id string) string
	Prefetch(ctx context.Context, ids []string)
}

// Builder drives the feature passes against one shared store.
//
// A Builder should be created with NewBuilder. It is not safe for concurrent
// use; passes run strictly sequentially.
type Builder struct {
	store   *rdf.Store
	queries QueryService
	labels  LabelService
	profile Profile
	base    rdf.Namespace

	bootstrapped bool
}

// NewBuilderParams defines the configuration for creating a Builder.
//
// Store, Queries and Labels are required. Profile defaults to
// DefaultProfile() and BaseURI to DefaultBaseURI.
type NewBuilderParams struct {
	Store   *rdf.Store
	Queries QueryService
	Labels  LabelService
	Profile *Profile
	BaseURI rdf.Namespace
}

// NewBuilder creates a Builder writing into the provided store.
func NewBuilder(params NewBuilderParams) *Builder {
	profile := DefaultProfile()
	if params.Profile != nil {
		profile = *params.Profile
	}
	base := params.BaseURI
	if base == "" {
		base = DefaultBaseURI
	}
	return &Builder{
		store:   params.Store,
		queries: params.Queries,
		labels:  params.Labels,
		profile: profile,
		base:    base,
	}
}

// Store returns the store the builder writes into.
func (b *Builder) Store() *rdf.Store {
	return b.store
}

// term mints an entity IRI under the project base namespace.
func (b *Builder) term(path string) rdf.Term {
	return b.base.Term(path)
}

type pass struct {
	name string
	run  func(ctx context.Context, workIDs []string) error
}

// Run executes every feature pass sequentially against the shared store,
// then emits the vocabulary alignment block and the direction hints.
//
// A pass whose fetch fails past retries is logged and skipped; the store
// stays valid because every constructor writes its full fact set before
// returning, so later passes build on whatever the earlier ones completed.
func (b *Builder) Run(ctx context.Context, workIDs []string) error {
	b.bootstrap()

	passes := []pass{
		{"direct-relations", b.processDirectRelations},
		{"plots", b.processPlots},
		{"person-references", b.processPersonReferences},
		{"citations", b.processCitations},
		{"topics", b.processTopics},
		{"motifs", b.processMotifs},
		{"place-references", b.processPlaceReferences},
		{"characters", b.processCharacters},
		{"work-references", b.processWorkReferences},
	}

	for _, p := range passes {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info("[Graph] Running pass", "pass", p.name, "works", len(workIDs))
		if err := p.run(ctx, workIDs); err != nil {
			logger.Error("[Graph] Pass failed, skipping", "pass", p.name, "error", err)
			continue
		}
		logger.Info("[Graph] Pass completed", "pass", p.name, "triples", b.store.Len())
	}

	b.emitAlignment()
	b.applyDirections()

	logger.Info("[Graph] Build completed", "triples", b.store.Len())
	return nil
}

// bootstrap writes the ontology header and the identifier-type node every
// identifier sub-record points at. Safe to call more than once.
func (b *Builder) bootstrap() {
	if b.bootstrapped {
		return
	}
	b.bootstrapped = true

	ontology := b.term("ontology/relations")
	b.store.Add(ontology, rdf.Type, rdf.Ontology)
	for _, ns := range []rdf.Namespace{NSCRM, NSECRM, NSFRBRoo, NSLRMoo, NSIntro, NSProv} {
		b.store.Add(ontology, rdf.Imports, rdf.IRI(string(ns)))
	}

	idType := b.idTypeTerm()
	b.store.Add(idType, rdf.Type, ecrmType)
	b.store.Add(idType, rdf.Label, rdf.Text("Wikidata ID", "en"))
	b.store.Add(idType, rdf.SameAs, NSWikidataEntity.Term(b.profile.IdentifierTypeEntity))
}

func (b *Builder) idTypeTerm() rdf.Term {
	return b.term("id_type/wikidata")
}

// emitAlignment declares the equivalences between the erlangen flavor of the
// vocabulary and its canonical counterparts, so downstream consumers can
// query either form.
func (b *Builder) emitAlignment() {
	for _, class := range []string{"E21_Person", "E42_Identifier", "E53_Place", "E55_Type"} {
		b.store.Add(NSECRM.Term(class), rdf.EquivalentClass, NSCRM.Term(class))
	}

	propertyPairs := [][2]string{
		{"P1_is_identified_by", "P1i_identifies"},
		{"P2_has_type", "P2i_is_type_of"},
		{"P67_refers_to", "P67i_is_referred_to_by"},
	}
	for _, pair := range propertyPairs {
		direct, inverse := NSECRM.Term(pair[0]), NSECRM.Term(pair[1])
		b.store.Add(direct, rdf.EquivalentProperty, NSCRM.Term(pair[0]))
		b.store.Add(inverse, rdf.EquivalentProperty, NSCRM.Term(pair[1]))
		b.store.Add(direct, rdf.InverseOf, inverse)
		b.store.Add(inverse, rdf.InverseOf, direct)
	}

	b.store.Add(lrmExpression, rdf.EquivalentClass, NSFRBRoo.Term("F2_Expression"))
}
