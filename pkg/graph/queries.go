package graph

import (
	"fmt"
	"strings"
)

// Query construction for the feature passes. Every query selects
// (work, shared target) rows; the cluster passes additionally restrict
// targets to those shared by more than one listed work, pushing the
// grouping into the endpoint instead of transferring every single-work
// fact.

func valuesClause(ids []string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "wd:" + id
	}
	return strings.Join(parts, " ")
}

func propertyFilter(variable string, properties []string) string {
	parts := make([]string, len(properties))
	for i, p := range properties {
		parts[i] = "wdt:" + p
	}
	return fmt.Sprintf("FILTER(%s IN (%s))", variable, strings.Join(parts, ","))
}

// sharedTargetQuery is the common shape of the topic and plot passes: works
// relate to a target of a given class through one of the about-properties,
// and only targets shared by at least two works survive.
func sharedTargetQuery(workIDs, properties []string, targetClass string, classConstraint bool) string {
	values := valuesClause(workIDs)
	filter := propertyFilter("?p", properties)
	constraint := ""
	if classConstraint {
		constraint = fmt.Sprintf("?tgt wdt:P31/wdt:P279* wd:%s .", targetClass)
	}
	return fmt.Sprintf(`
PREFIX wdt: <http://www.wikidata.org/prop/direct/>
PREFIX wd:  <http://www.wikidata.org/entity/>
SELECT ?wrk ?tgt WHERE {
  VALUES ?wrk { %[1]s }
  {
    SELECT ?tgt WHERE {
      VALUES ?wrk { %[1]s }
      ?wrk ?p ?tgt .
      %[2]s
      ?tgt wdt:P31/wdt:P279* wd:%[3]s .
    }
    GROUP BY ?tgt
    HAVING(COUNT(DISTINCT ?wrk) > 1)
  }
  ?wrk ?p ?tgt .
  %[2]s
  %[4]s
}
`, values, filter, targetClass, constraint)
}

func (b *Builder) topicQuery(workIDs []string) string {
	return sharedTargetQuery(workIDs, b.profile.AboutProperties, b.profile.TopicClass, false)
}

func (b *Builder) plotQuery(workIDs []string) string {
	return sharedTargetQuery(workIDs, b.profile.PlotProperties, b.profile.PlotClass, true)
}

func (b *Builder) motifQuery(workIDs []string) string {
	values := valuesClause(workIDs)
	classValues := valuesClause(b.profile.MotifClasses)
	pattern := fmt.Sprintf(`{ ?wrk wdt:%s ?tgt . }
      UNION
      {
        ?wrk wdt:P180|wdt:P527 ?x .
        ?x wdt:P31/wdt:P279* ?class ;
           owl:sameAs ?tgt .
      }`, b.profile.MotifProperty)
	return fmt.Sprintf(`
PREFIX wdt: <http://www.wikidata.org/prop/direct/>
PREFIX wd:  <http://www.wikidata.org/entity/>
SELECT ?wrk ?tgt WHERE {
  VALUES ?wrk { %[1]s }
  VALUES ?class { %[2]s }
  {
    SELECT ?tgt WHERE {
      VALUES ?wrk { %[1]s }
      %[3]s
    }
    GROUP BY ?tgt
    HAVING(COUNT(DISTINCT ?wrk) > 1)
  }
  %[3]s
}
`, values, classValues, pattern)
}

// referenceQuery finds works referring to entities of one class (persons or
// places). Clustering happens client-side because the referenced entity
// node is needed even before pairing.
func (b *Builder) referenceQuery(workIDs []string, targetClass string) string {
	return fmt.Sprintf(`
PREFIX wdt: <http://www.wikidata.org/prop/direct/>
PREFIX wd:  <http://www.wikidata.org/entity/>
SELECT DISTINCT ?wrk ?tgt WHERE {
  VALUES ?wrk { %s }
  ?wrk ?p ?tgt .
  %s
  ?tgt wdt:P31/wdt:P279* wd:%s .
}
`, valuesClause(workIDs), propertyFilter("?p", b.profile.AboutProperties), targetClass)
}

func (b *Builder) characterQuery(workIDs []string) string {
	return fmt.Sprintf(`
PREFIX wdt: <http://www.wikidata.org/prop/direct/>
PREFIX wd:  <http://www.wikidata.org/entity/>
SELECT DISTINCT ?wrk ?tgt WHERE {
  VALUES ?wrk { %s }
  { ?wrk wdt:%s ?tgt . }
  UNION
  {
    ?wrk ?p ?tgt .
    %s
    VALUES ?cls { %s }
    ?tgt wdt:P31/wdt:P279* ?cls .
  }
}
`, valuesClause(workIDs), b.profile.CharacterProperty,
		propertyFilter("?p", b.profile.AboutProperties),
		valuesClause(b.profile.CharacterClasses))
}

// instanceOfQuery asks whether an entity is an instance of the class,
// transitively through subclasses.
func instanceOfQuery(id, class string) string {
	return fmt.Sprintf(`
PREFIX wdt: <http://www.wikidata.org/prop/direct/>
PREFIX wd:  <http://www.wikidata.org/entity/>
SELECT ?x WHERE {
  wd:%s wdt:P31/wdt:P279* wd:%s .
} LIMIT 1
`, id, class)
}

func (b *Builder) workReferenceQuery(workIDs []string) string {
	return fmt.Sprintf(`
PREFIX wdt: <http://www.wikidata.org/prop/direct/>
SELECT DISTINCT ?src ?tgt WHERE {
  VALUES ?src { %s }
  ?src ?p ?tgt .
  %s
  FILTER(STRSTARTS(STR(?tgt),"http://www.wikidata.org/entity/Q"))
}
`, valuesClause(workIDs), propertyFilter("?p", b.profile.WorkReferenceProperties))
}

func (b *Builder) citationQuery(workIDs []string) string {
	return fmt.Sprintf(`
PREFIX wdt: <http://www.wikidata.org/prop/direct/>
SELECT DISTINCT ?src ?tgt WHERE {
  VALUES ?src { %s }
  ?tgt ?p ?src . %s
}
`, valuesClause(workIDs), propertyFilter("?p", b.profile.CitationProperties))
}

func (b *Builder) directRelationQuery(workIDs []string, backward bool) string {
	values := valuesClause(workIDs)
	properties := b.profile.DirectForwardProperties
	pattern := "?w1 ?p ?w2 ."
	if backward {
		properties = b.profile.DirectBackwardProperties
		pattern = "?w2 ?p ?w1 ."
	}
	return fmt.Sprintf(`
PREFIX wdt: <http://www.wikidata.org/prop/direct/>
SELECT DISTINCT ?w1 ?w2 ?p WHERE {
  VALUES ?w1 { %[1]s }
  VALUES ?w2 { %[1]s }
  %[2]s
  %[3]s
}
`, values, pattern, propertyFilter("?p", properties))
}
