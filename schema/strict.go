package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is the on-disk shape of a strict schema.
type Definition struct {
	NodeTypes  []string `yaml:"node_types"`
	Relations  []string `yaml:"relations"`
	Attributes []string `yaml:"attributes"`
}

// Strict accepts only the vocabulary its definition file declares.
type Strict struct {
	terms map[Kind]map[string]struct{}
}

// NewStrict builds a strict schema from a definition.
func NewStrict(def Definition) *Strict {
	s := &Strict{terms: map[Kind]map[string]struct{}{
		KindNodeType:  {},
		KindRelation:  {},
		KindAttribute: {},
	}}
	for _, t := range def.NodeTypes {
		s.terms[KindNodeType][t] = struct{}{}
	}
	for _, r := range def.Relations {
		s.terms[KindRelation][r] = struct{}{}
	}
	for _, a := range def.Attributes {
		s.terms[KindAttribute][a] = struct{}{}
	}
	return s
}

// LoadStrict reads a YAML schema definition from disk.
func LoadStrict(path string) (*Strict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return ParseStrict(data)
}

// ParseStrict parses a YAML schema definition.
func ParseStrict(data []byte) (*Strict, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing schema definition: %w", err)
	}
	return NewStrict(def), nil
}

// IsKnownType reports whether the definition declares the term. An
// empty name is always acceptable: untyped nodes carry no vocabulary.
func (s *Strict) IsKnownType(kind Kind, name string) bool {
	if name == "" {
		return true
	}
	_, ok := s.terms[kind][name]
	return ok
}

// Register is a no-op: strict vocabularies change only by editing the
// definition file.
func (s *Strict) Register(Kind, string) {}
