package export

import (
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/semstreams/vocabulary/bfo"
	"github.com/c360studio/semstreams/vocabulary/cco"

	vocab "github.com/c360studio/cnlgraph/vocabulary/cnl"
)

// Profile determines which ontology type assertions are included in the
// export.
type Profile string

const (
	// ProfileMinimal includes only the cnlgraph classes plus PROV-O,
	// Dublin Core, and SKOS predicates.
	ProfileMinimal Profile = "minimal"

	// ProfileBFO includes BFO type assertions plus minimal profile.
	ProfileBFO Profile = "bfo"

	// ProfileCCO includes CCO type assertions plus BFO profile.
	ProfileCCO Profile = "cco"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludeBFO indicates whether to include BFO type assertions.
	IncludeBFO bool

	// IncludeCCO indicates whether to include CCO type assertions.
	IncludeCCO bool

	// IncludePROV indicates whether to include PROV-O type assertions.
	IncludePROV bool

	// TranslatePredicates indicates whether to translate dotted
	// predicates to standard IRIs.
	TranslatePredicates bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileMinimal: {
		Name:                ProfileMinimal,
		Description:         "cnlgraph classes with PROV-O, Dublin Core, and SKOS predicates",
		IncludePROV:         true,
		TranslatePredicates: true,
	},
	ProfileBFO: {
		Name:                ProfileBFO,
		Description:         "BFO type assertions plus minimal profile",
		IncludeBFO:          true,
		IncludePROV:         true,
		TranslatePredicates: true,
	},
	ProfileCCO: {
		Name:                ProfileCCO,
		Description:         "Full CCO/BFO/PROV-O alignment",
		IncludeBFO:          true,
		IncludeCCO:          true,
		IncludePROV:         true,
		TranslatePredicates: true,
	},
}

// GetProfileConfig returns the configuration for a profile.
func GetProfileConfig(profile Profile) ProfileConfig {
	if config, ok := Profiles[profile]; ok {
		return config
	}
	return Profiles[ProfileMinimal]
}

// TypeAsserter generates type assertions for entities based on profile.
type TypeAsserter struct {
	profile ProfileConfig
}

// NewTypeAsserter creates a new type asserter for the given profile.
func NewTypeAsserter(profile Profile) *TypeAsserter {
	return &TypeAsserter{profile: GetProfileConfig(profile)}
}

// GetTypeIRIs returns all type IRIs for an entity type based on the
// profile. The cnlgraph class always comes first.
func (t *TypeAsserter) GetTypeIRIs(entityType vocab.EntityType) []string {
	types := make([]string, 0, 4)

	if class, ok := vocab.ClassMap[entityType]; ok {
		types = append(types, class)
	}
	if t.profile.IncludePROV {
		if provClass, ok := vocab.PROVClassMap[entityType]; ok {
			types = append(types, provClass)
		}
	}
	if t.profile.IncludeBFO {
		if bfoClass, ok := vocab.BFOClassMap[entityType]; ok {
			types = append(types, bfoClass)
		}
	}
	if t.profile.IncludeCCO {
		if ccoClass, ok := vocab.CCOClassMap[entityType]; ok {
			types = append(types, ccoClass)
		}
	}

	return types
}

// TypeTriples returns rdf:type triples for an entity based on its kind
// and the given profile.
func TypeTriples(entityID string, entityType vocab.EntityType, profile Profile) []message.Triple {
	typeIRIs := NewTypeAsserter(profile).GetTypeIRIs(entityType)
	triples := make([]message.Triple, 0, len(typeIRIs))
	for _, typeIRI := range typeIRIs {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  "rdf.syntax.type",
			Object:     typeIRI,
			Source:     "cnlgraph.rdf-export",
			Confidence: 1.0,
		})
	}
	return triples
}

// BFOClassDescriptions provides human-readable descriptions for the BFO
// classes the exporter asserts.
var BFOClassDescriptions = map[string]string{
	bfo.IndependentContinuant: "Entities that can exist on their own",
	bfo.Role:                  "Context-dependent functions",
	bfo.Quality:               "Measurable properties",
	bfo.Process:               "Events that unfold over time",
}

// CCOClassDescriptions provides human-readable descriptions for the CCO
// classes the exporter asserts.
var CCOClassDescriptions = map[string]string{
	cco.InformationContentEntity: "Root class for information entities",
	cco.ActOfArtifactProcessing:  "Processing of an artifact",
}

// PROVClassDescriptions provides human-readable descriptions for PROV-O
// classes.
var PROVClassDescriptions = map[string]string{
	vocabulary.ProvEntity:   "Thing with fixed aspects",
	vocabulary.ProvActivity: "Something that occurs over time",
}

// InferEntityType infers the entity kind from a published entity id of
// the form cnlgraph.<graph>.graph.<kind>.<id>.
func InferEntityType(entityID string) vocab.EntityType {
	parts := splitEntityID(entityID)
	if len(parts) < 5 || parts[0] != "cnlgraph" || parts[2] != "graph" {
		return ""
	}
	switch parts[3] {
	case "node":
		return vocab.EntityTypeNode
	case "morph":
		return vocab.EntityTypeMorph
	case "relation":
		return vocab.EntityTypeRelation
	case "attribute":
		return vocab.EntityTypeAttribute
	case "transition":
		return vocab.EntityTypeTransition
	}
	return ""
}

// splitEntityID splits a dotted entity id into its component parts.
func splitEntityID(entityID string) []string {
	result := make([]string, 0, 8)
	current := ""
	for _, c := range entityID {
		if c == '.' {
			result = append(result, current)
			current = ""
		} else {
			current += string(c)
		}
	}
	if current != "" {
		result = append(result, current)
	}
	return result
}
