package cnl

import "github.com/c360studio/semstreams/vocabulary"

// Node predicates.
const (
	// NodeName is the node's display name as written in the heading.
	NodeName = "cnl.node.name"

	// NodeQualifier is the optional bold qualifier that distinguishes
	// nodes sharing a base name.
	NodeQualifier = "cnl.node.qualifier"

	// NodeType is the optional bracketed type from the heading.
	NodeType = "cnl.node.type"

	// NodeDescription is the verbatim description fence content.
	NodeDescription = "cnl.node.description"

	// NodeBasicMorph is the id of the node's basic morph.
	NodeBasicMorph = "cnl.node.basic_morph"

	// NodeActiveMorph is the id of the currently active morph.
	NodeActiveMorph = "cnl.node.active_morph"
)

// Morph predicates.
const (
	// MorphName is the morph's display name.
	MorphName = "cnl.morph.name"

	// MorphNode links a morph to its owning node.
	MorphNode = "cnl.morph.node"
)

// Relation predicates.
const (
	RelName       = "cnl.rel.name"
	RelSource     = "cnl.rel.source"
	RelTarget     = "cnl.rel.target"
	RelMorph      = "cnl.rel.morph"
	RelAdjective  = "cnl.rel.adjective"
	RelAdverb     = "cnl.rel.adverb"
	RelQuantifier = "cnl.rel.quantifier"
	RelModality   = "cnl.rel.modality"
)

// Attribute predicates.
const (
	AttrName       = "cnl.attr.name"
	AttrValue      = "cnl.attr.value"
	AttrUnit       = "cnl.attr.unit"
	AttrNode       = "cnl.attr.node"
	AttrMorph      = "cnl.attr.morph"
	AttrQualifier  = "cnl.attr.qualifier"
	AttrQuantifier = "cnl.attr.quantifier"
	AttrModality   = "cnl.attr.modality"
)

// Transition predicates.
const (
	// TransitionPrior references a node (or node+morph) required before
	// the transition fires.
	TransitionPrior = "cnl.transition.prior"

	// TransitionPost references a node (or node+morph) produced by the
	// transition.
	TransitionPost = "cnl.transition.post"
)

func init() {
	vocabulary.Register(NodeName,
		vocabulary.WithDescription("Node display name from the heading"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SkosPrefLabel))

	vocabulary.Register(NodeQualifier,
		vocabulary.WithDescription("Bold qualifier distinguishing nodes with a shared base name"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"qualifier"))

	vocabulary.Register(NodeType,
		vocabulary.WithDescription("Bracketed node type from the heading"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"nodeType"))

	vocabulary.Register(NodeDescription,
		vocabulary.WithDescription("Verbatim description fence content"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DcDescription))

	vocabulary.Register(NodeBasicMorph,
		vocabulary.WithDescription("Id of the node's basic morph"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"basicMorph"))

	vocabulary.Register(NodeActiveMorph,
		vocabulary.WithDescription("Id of the node's active morph"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"activeMorph"))

	vocabulary.Register(MorphName,
		vocabulary.WithDescription("Morph display name"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SkosPrefLabel))

	vocabulary.Register(MorphNode,
		vocabulary.WithDescription("Owning node of a morph"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"morphOf"))

	vocabulary.Register(RelName,
		vocabulary.WithDescription("Relation name from the angle-bracket marker"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SkosPrefLabel))

	vocabulary.Register(RelSource,
		vocabulary.WithDescription("Source node of a relation"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"source"))

	vocabulary.Register(RelTarget,
		vocabulary.WithDescription("Target node of a relation"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"target"))

	vocabulary.Register(RelMorph,
		vocabulary.WithDescription("Morph neighborhood a relation belongs to"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"relMorph"))

	vocabulary.Register(RelAdjective,
		vocabulary.WithDescription("Adjective marker on a relation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"adjective"))

	vocabulary.Register(RelAdverb,
		vocabulary.WithDescription("Adverb marker on a relation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"adverb"))

	vocabulary.Register(RelQuantifier,
		vocabulary.WithDescription("Quantifier marker on a relation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"quantifier"))

	vocabulary.Register(RelModality,
		vocabulary.WithDescription("Modality marker on a relation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"modality"))

	vocabulary.Register(AttrName,
		vocabulary.WithDescription("Attribute name from the has-marker"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SkosPrefLabel))

	vocabulary.Register(AttrValue,
		vocabulary.WithDescription("Attribute value as written"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"value"))

	vocabulary.Register(AttrUnit,
		vocabulary.WithDescription("Unit marker on an attribute value"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"unit"))

	vocabulary.Register(AttrNode,
		vocabulary.WithDescription("Owning node of an attribute"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"attrNode"))

	vocabulary.Register(AttrMorph,
		vocabulary.WithDescription("Morph neighborhood an attribute belongs to"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"attrMorph"))

	vocabulary.Register(AttrQualifier,
		vocabulary.WithDescription("Qualifier marker on an attribute"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"attrQualifier"))

	vocabulary.Register(AttrQuantifier,
		vocabulary.WithDescription("Quantifier marker on an attribute"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"attrQuantifier"))

	vocabulary.Register(AttrModality,
		vocabulary.WithDescription("Modality marker on an attribute"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"attrModality"))

	vocabulary.Register(TransitionPrior,
		vocabulary.WithDescription("Prior-state reference of a transition"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"prior"))

	vocabulary.Register(TransitionPost,
		vocabulary.WithDescription("Post-state reference of a transition"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"post"))
}
