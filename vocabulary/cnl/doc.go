// Package cnl defines the dotted-notation vocabulary for graph entities
// compiled from CNL documents: polynodes, morphs, relations, attributes,
// and transitions.
//
// Predicates use internal dotted notation (cnl.node.name); IRI mappings
// exist only for RDF export at API boundaries.
package cnl
