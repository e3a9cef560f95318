// Package export serializes compiled graphs: back to controlled-language
// text for round-tripping, and to RDF with configurable ontology
// alignment profiles.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/cnlgraph/graph"
	vocab "github.com/c360studio/cnlgraph/vocabulary/cnl"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// Triple represents a semantic triple for export.
type Triple struct {
	Subject   string
	Predicate string
	Object    any
}

// Entity represents an exportable entity with its kind and triples.
type Entity struct {
	ID         string
	EntityType vocab.EntityType
	Triples    []Triple
}

// RDFExporter exports entities to RDF with configurable ontology
// profiles.
type RDFExporter struct {
	profile  Profile
	entities []Entity
	prefixes map[string]string
}

// NewRDFExporter creates a new RDF exporter with the specified profile.
func NewRDFExporter(profile Profile) *RDFExporter {
	return &RDFExporter{
		profile:  profile,
		entities: make([]Entity, 0),
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
		"owl":    "http://www.w3.org/2002/07/owl#",
		"xsd":    "http://www.w3.org/2001/XMLSchema#",
		"dc":     "http://purl.org/dc/terms/",
		"skos":   "http://www.w3.org/2004/02/skos/core#",
		"prov":   "http://www.w3.org/ns/prov#",
		"bfo":    "http://purl.obolibrary.org/obo/",
		"cco":    "http://www.ontologyrepository.com/CommonCoreOntologies/",
		"cnl":    vocab.Namespace,
		"entity": vocab.EntityNamespace,
	}
}

// AddEntity adds an entity to be exported.
func (e *RDFExporter) AddEntity(entity Entity) {
	e.entities = append(e.entities, entity)
}

// AddSnapshot adds every entity of a compiled snapshot, using the same
// triples the compiler publishes to the stream.
func (e *RDFExporter) AddSnapshot(graphID string, snap *graph.Snapshot, now time.Time) {
	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		e.AddEntity(Entity{
			ID:         graph.NodeEntityID(graphID, n.ID),
			EntityType: vocab.EntityTypeNode,
			Triples:    convertTriples(graph.NodeTriples(graphID, n, now)),
		})
	}
	for i := range snap.Relations {
		r := &snap.Relations[i]
		e.AddEntity(Entity{
			ID:         graph.RelationEntityID(graphID, r.ID),
			EntityType: vocab.EntityTypeRelation,
			Triples:    convertTriples(graph.RelationTriples(graphID, r, now)),
		})
	}
	for i := range snap.Attributes {
		a := &snap.Attributes[i]
		e.AddEntity(Entity{
			ID:         graph.AttributeEntityID(graphID, a.ID),
			EntityType: vocab.EntityTypeAttribute,
			Triples:    convertTriples(graph.AttributeTriples(graphID, a, now)),
		})
	}
	for i := range snap.Transitions {
		t := &snap.Transitions[i]
		e.AddEntity(Entity{
			ID:         graph.TransitionEntityID(graphID, t.ID),
			EntityType: vocab.EntityTypeTransition,
			Triples:    convertTriples(graph.TransitionTriples(graphID, t, now)),
		})
	}
}

// Export serializes all entities to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *RDFExporter) toTurtle() string {
	w := NewTurtleWriter()
	w.WritePrefixes()

	asserter := NewTypeAsserter(e.profile)
	for _, entity := range e.entities {
		w.WriteSubject(entityIDToIRI(entity.ID))
		types := asserter.GetTypeIRIs(entity.EntityType)
		for i, typeIRI := range types {
			w.WriteType(typeIRI, i == len(types)-1 && len(entity.Triples) == 0)
		}
		for i, triple := range entity.Triples {
			w.WritePredicate(vocab.GetPredicateIRI(triple.Predicate), triple.Object, i == len(entity.Triples)-1)
		}
		w.WriteBlank()
	}

	return w.String()
}

func (e *RDFExporter) toNTriples() string {
	w := NewNTriplesWriter()

	asserter := NewTypeAsserter(e.profile)
	for _, entity := range e.entities {
		iri := entityIDToIRI(entity.ID)
		for _, typeIRI := range asserter.GetTypeIRIs(entity.EntityType) {
			w.WriteTypeTriple(iri, typeIRI)
		}
		for _, triple := range entity.Triples {
			w.WriteTriple(iri, vocab.GetPredicateIRI(triple.Predicate), triple.Object)
		}
	}

	return w.String()
}

func (e *RDFExporter) toJSONLD() string {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)

	asserter := NewTypeAsserter(e.profile)
	for _, entity := range e.entities {
		properties := make(map[string]any, len(entity.Triples))
		for _, triple := range entity.Triples {
			key := vocab.GetPredicateIRI(triple.Predicate)
			properties[key] = jsonldObject(triple.Object)
		}
		w.AddNode(entityIDToIRI(entity.ID), asserter.GetTypeIRIs(entity.EntityType), properties)
	}

	return w.String()
}

// entityIDToIRI converts a dotted entity id to an IRI.
// Example: "cnlgraph.demo.graph.node.water"
//
//	-> "https://cnlgraph.c360.studio/entity/demo/node/water"
func entityIDToIRI(entityID string) string {
	parts := strings.SplitN(entityID, ".", 5)
	if len(parts) < 5 || parts[0] != "cnlgraph" {
		return vocab.EntityNamespace + sanitizeIRISegment(entityID)
	}
	graphID := parts[1]
	kind := parts[3]
	instance := sanitizeIRISegment(parts[4])
	return fmt.Sprintf("%s%s/%s/%s", vocab.EntityNamespace, graphID, kind, instance)
}

// sanitizeIRISegment rewrites id characters that are unsafe in an IRI
// path. Class prefixes keep their meaning as path segments.
func sanitizeIRISegment(id string) string {
	return strings.NewReplacer(":", "/", ".", "/").Replace(id)
}

// jsonldObject wraps IRI and entity references in @id objects; plain
// literals pass through.
func jsonldObject(obj any) any {
	if s, ok := obj.(string); ok {
		if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
			return map[string]any{"@id": s}
		}
		if isEntityID(s) {
			return map[string]any{"@id": entityIDToIRI(s)}
		}
	}
	return obj
}

// isEntityID reports whether a string is a published dotted entity id.
func isEntityID(s string) bool {
	return strings.HasPrefix(s, "cnlgraph.") && !strings.Contains(s, " ")
}

// formatObject formats an object value for Turtle output.
func formatObject(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if isEntityID(v) {
			return fmt.Sprintf("<%s>", entityIDToIRI(v))
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^xsd:dateTime", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^xsd:integer", v)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^xsd:decimal", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^xsd:boolean", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectNTriples formats an object value for N-Triples output.
func formatObjectNTriples(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if isEntityID(v) {
			return fmt.Sprintf("<%s>", entityIDToIRI(v))
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^<http://www.w3.org/2001/XMLSchema#dateTime>", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^<http://www.w3.org/2001/XMLSchema#integer>", v)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^<http://www.w3.org/2001/XMLSchema#decimal>", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^<http://www.w3.org/2001/XMLSchema#boolean>", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// escapeString escapes special characters in strings for RDF
// serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

func convertTriples(in []message.Triple) []Triple {
	out := make([]Triple, len(in))
	for i, t := range in {
		out[i] = Triple{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object}
	}
	return out
}
