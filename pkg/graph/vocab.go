package graph

import "github.com/lyrelab/intertext/pkg/rdf"

// Vocabularies the builder writes into. The ontology classes and predicate
// names are fixed collaborators: this package only emits them, it never
// reasons over them.
const (
	NSECRM   rdf.Namespace = "http://erlangen-crm.org/current/"
	NSCRM    rdf.Namespace = "http://www.cidoc-crm.org/cidoc-crm/"
	NSLRMoo  rdf.Namespace = "http://iflastandards.info/ns/lrm/lrmoo/"
	NSFRBRoo rdf.Namespace = "http://iflastandards.info/ns/fr/frbr/frbroo/"
	NSIntro  rdf.Namespace = "https://w3id.org/lso/intro/currentbeta#"
	NSProv   rdf.Namespace = "http://www.w3.org/ns/prov#"

	// NSWikidataEntity is where owl:sameAs and provenance links point.
	NSWikidataEntity rdf.Namespace = "https://www.wikidata.org/entity/"
)

var (
	ecrmPerson         = NSECRM.Term("E21_Person")
	ecrmIdentifier     = NSECRM.Term("E42_Identifier")
	ecrmPlace          = NSECRM.Term("E53_Place")
	ecrmType           = NSECRM.Term("E55_Type")
	ecrmIdentifiedBy   = NSECRM.Term("P1_is_identified_by")
	ecrmIdentifies     = NSECRM.Term("P1i_identifies")
	ecrmHasType        = NSECRM.Term("P2_has_type")
	ecrmIsTypeOf       = NSECRM.Term("P2i_is_type_of")
	ecrmTimeSpan       = NSECRM.Term("P4_has_time-span")
	ecrmRefersTo       = NSECRM.Term("P67_refers_to")
	ecrmReferredToBy   = NSECRM.Term("P67i_is_referred_to_by")

	lrmExpression   = NSLRMoo.Term("F2_Expression")
	lrmWasCreatedBy = NSLRMoo.Term("R17i_was_created_by")
	lrmEmbodiedIn   = NSLRMoo.Term("R4i_is_embodied_in")
	lrmCreated      = NSLRMoo.Term("R24_created")

	introActualization      = NSIntro.Term("INT2_ActualizationOfFeature")
	introReference          = NSIntro.Term("INT18_Reference")
	introTextPassage        = NSIntro.Term("INT21_TextPassage")
	introRelation           = NSIntro.Term("INT31_IntertextualRelation")
	introCharacter          = NSIntro.Term("INT_Character")
	introInterpretation     = NSIntro.Term("INT_Interpretation")
	introMotif              = NSIntro.Term("INT_Motif")
	introPlot               = NSIntro.Term("INT_Plot")
	introTopic              = NSIntro.Term("INT_Topic")
	introReferredTo         = NSIntro.Term("R12_hasReferredToEntity")
	introReferredToInv      = NSIntro.Term("R12i_isReferredToEntity")
	introReferring          = NSIntro.Term("R13_hasReferringEntity")
	introReferringInv       = NSIntro.Term("R13i_isReferringEntity")
	introActualizes         = NSIntro.Term("R17_actualizesFeature")
	introActualizedIn       = NSIntro.Term("R17i_featureIsActualizedIn")
	introShowsActualization = NSIntro.Term("R18_showsActualization")
	introFoundOn            = NSIntro.Term("R18i_actualizationFoundOn")
	introIdentifies         = NSIntro.Term("R21_identifies")
	introIdentifiedBy       = NSIntro.Term("R21i_isIdentifiedBy")
	introSimilarityFor      = NSIntro.Term("R22_providesSimilarityForRelation")
	introBasedOnSimilarity  = NSIntro.Term("R22i_relationIsBasedOnSimilarity")
	introHasRelatedEntity   = NSIntro.Term("R24_hasRelatedEntity")
	introIsRelatedEntity    = NSIntro.Term("R24i_isRelatedEntity")
	introHasTextPassage     = NSIntro.Term("R30_hasTextPassage")
	introTextPassageOf      = NSIntro.Term("R30i_isTextPassageOf")

	provDerivedFrom = NSProv.Term("wasDerivedFrom")
)

// Prefixes returns the prefix table for serializing a graph built against
// the given base namespace.
func Prefixes(base rdf.Namespace) map[string]rdf.Namespace {
	return map[string]rdf.Namespace{
		"rdf":    rdf.NSRDF,
		"rdfs":   rdf.NSRDFS,
		"owl":    rdf.NSOWL,
		"ecrm":   NSECRM,
		"crm":    NSCRM,
		"lrmoo":  NSLRMoo,
		"frbroo": NSFRBRoo,
		"intro":  NSIntro,
		"prov":   NSProv,
		"lit":    base,
	}
}
