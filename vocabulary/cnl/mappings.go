package cnl

import (
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/semstreams/vocabulary/bfo"
	"github.com/c360studio/semstreams/vocabulary/cco"
)

// EntityType identifies a compiled entity kind for export purposes.
type EntityType string

// Entity type constants.
const (
	EntityTypeNode       EntityType = "node"
	EntityTypeMorph      EntityType = "morph"
	EntityTypeRelation   EntityType = "relation"
	EntityTypeAttribute  EntityType = "attribute"
	EntityTypeTransition EntityType = "transition"
)

// ClassMap maps entity types to their ontology class IRIs.
var ClassMap = map[EntityType]string{
	EntityTypeNode:       ClassPolyNode,
	EntityTypeMorph:      ClassMorph,
	EntityTypeRelation:   ClassRelation,
	EntityTypeAttribute:  ClassAttribute,
	EntityTypeTransition: ClassTransition,
}

// PROVClassMap maps entity types to PROV-O classes. Transitions are
// activities; everything else is an entity.
var PROVClassMap = map[EntityType]string{
	EntityTypeNode:       vocabulary.ProvEntity,
	EntityTypeMorph:      vocabulary.ProvEntity,
	EntityTypeRelation:   vocabulary.ProvEntity,
	EntityTypeAttribute:  vocabulary.ProvEntity,
	EntityTypeTransition: vocabulary.ProvActivity,
}

// BFOClassMap maps entity types to BFO classes where a sensible
// alignment exists. Relations have no BFO counterpart and are omitted.
var BFOClassMap = map[EntityType]string{
	EntityTypeNode:       bfo.IndependentContinuant,
	EntityTypeMorph:      bfo.Role,
	EntityTypeAttribute:  bfo.Quality,
	EntityTypeTransition: bfo.Process,
}

// CCOClassMap maps entity types to CCO classes.
var CCOClassMap = map[EntityType]string{
	EntityTypeNode:       cco.InformationContentEntity,
	EntityTypeTransition: cco.ActOfArtifactProcessing,
}

// PredicateIRIMap maps dotted predicates to standard IRIs for export.
var PredicateIRIMap = map[string]string{
	NodeName:        SkosPrefLabel,
	NodeDescription: DcDescription,
	MorphName:       SkosPrefLabel,
	RelName:         SkosPrefLabel,
	AttrName:        SkosPrefLabel,
}

// GetPredicateIRI returns the standard IRI for a predicate, falling back
// to the cnlgraph namespace for unmapped predicates.
func GetPredicateIRI(predicate string) string {
	if iri, ok := PredicateIRIMap[predicate]; ok {
		return iri
	}
	return Namespace + predicate
}
