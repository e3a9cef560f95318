package cnl

// Namespace is the base IRI prefix for CNL graph ontology terms.
const Namespace = "https://cnlgraph.c360.studio/ontology/"

// EntityNamespace is the base IRI for compiled entity instances.
const EntityNamespace = "https://cnlgraph.c360.studio/entity/"

// Class IRIs for the compiled entity kinds.
const (
	// ClassPolyNode represents a node with morph-dependent neighborhoods.
	ClassPolyNode = Namespace + "PolyNode"

	// ClassMorph represents one named variant neighborhood of a node.
	ClassMorph = Namespace + "Morph"

	// ClassRelation represents a typed edge between two nodes.
	ClassRelation = Namespace + "Relation"

	// ClassAttribute represents a valued property of a node.
	ClassAttribute = Namespace + "Attribute"

	// ClassTransition represents a process with prior and post states.
	ClassTransition = Namespace + "Transition"
)

// Standard vocabulary IRIs reused for common predicates.
const (
	SkosPrefLabel = "http://www.w3.org/2004/02/skos/core#prefLabel"
	DcDescription = "http://purl.org/dc/terms/description"
)
