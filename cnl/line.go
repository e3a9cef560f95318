package cnl

import (
	"fmt"
	"regexp"
	"strings"
)

// RelationRecord is one parsed relation line. Targets are references by
// name only; resolution against declared nodes happens later.
type RelationRecord struct {
	Name       string
	Targets    []TargetRef
	Adjective  string
	Adverb     string
	Quantifier string
	Modality   string
}

// AttributeRecord is one parsed attribute line.
type AttributeRecord struct {
	Name       string
	Value      string
	Unit       string
	Qualifier  string
	Quantifier string
	Modality   string
}

// TargetRef names a node, optionally narrowed to one of its morphs
// ("Water" or "Water:liquid"). Relation targets must be plain nodes;
// morph-qualified refs are only valid in transition state lines.
type TargetRef struct {
	Name  string
	Morph string
}

// StateEntry is one element of a transition's prior or post state: a
// single reference, or several alternatives joined by a logical operator.
type StateEntry struct {
	// Operator is "", "AND", or "OR". Empty means a single reference.
	Operator string
	Refs     []TargetRef
}

// Transition state section names.
const (
	SectionPrior = "priorState"
	SectionPost  = "postState"
)

// Fixed sub-patterns for the optional line markers. Each marker has a
// distinct delimiter so they never collide.
var (
	relationNamePattern = regexp.MustCompile(`^<([^<>]+)>\s*`)
	adverbPattern       = regexp.MustCompile(`^\+\+([^+]+)\+\+\s*`)
	adjectivePattern    = regexp.MustCompile(`^\*\*([^*]+)\*\*\s*`)
	quantifierPattern   = regexp.MustCompile(`^\*([^*]+)\*\s*`)
	modalitySuffix      = regexp.MustCompile(`\s*\[([^\[\]]+)\]$`)
	quantifierSuffix    = regexp.MustCompile(`\s*\*([^*]+)\*$`)
	unitSuffix          = regexp.MustCompile(`\s*\{([^{}]+)\}$`)
	statePattern        = regexp.MustCompile(`^(priorState|postState)\s*:\s*(.*)$`)
	headingPattern      = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	typeSuffix          = regexp.MustCompile(`\s*\[([^\[\]]+)\]$`)
)

// IsRelationLine reports whether the line carries the angle-bracket
// relation marker.
func IsRelationLine(line string) bool {
	return strings.Contains(line, "<") && strings.Contains(line, ">")
}

// IsAttributeLine reports whether the line carries the "has ...:" marker.
func IsAttributeLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "has ")
}

// IsStateLine reports whether the line is a transition state section.
func IsStateLine(line string) bool {
	return statePattern.MatchString(strings.TrimSpace(line))
}

// ParseRelation parses one relation line:
//
//	++adverb++ <relation name> **adjective** *quantifier* Target, Target [modality];
//
// Everything but the relation name and at least one target is optional.
func ParseRelation(number int, line string) (*RelationRecord, error) {
	s := trimLine(line)
	rec := &RelationRecord{}

	if m := modalitySuffix.FindStringSubmatch(s); m != nil {
		rec.Modality = strings.TrimSpace(m[1])
		s = strings.TrimSpace(s[:len(s)-len(m[0])])
	}
	if m := adverbPattern.FindStringSubmatch(s); m != nil {
		rec.Adverb = strings.TrimSpace(m[1])
		s = s[len(m[0]):]
	}

	m := relationNamePattern.FindStringSubmatch(s)
	if m == nil {
		return nil, &ParseError{Line: number, Text: line, Reason: "missing <relation name> marker"}
	}
	rec.Name = strings.TrimSpace(m[1])
	if rec.Name == "" {
		return nil, &ParseError{Line: number, Text: line, Reason: "empty relation name"}
	}
	s = s[len(m[0]):]

	if m := adjectivePattern.FindStringSubmatch(s); m != nil {
		rec.Adjective = strings.TrimSpace(m[1])
		s = s[len(m[0]):]
	}
	if m := quantifierPattern.FindStringSubmatch(s); m != nil {
		rec.Quantifier = strings.TrimSpace(m[1])
		s = s[len(m[0]):]
	}

	for _, part := range strings.Split(s, ",") {
		ref, err := parseTargetRef(part)
		if err != nil {
			return nil, &ParseError{Line: number, Text: line, Reason: err.Error()}
		}
		if ref.Morph != "" {
			return nil, &ParseError{Line: number, Text: line, Reason: "morph-qualified targets are only valid in transition states"}
		}
		rec.Targets = append(rec.Targets, ref)
	}
	if len(rec.Targets) == 0 {
		return nil, &ParseError{Line: number, Text: line, Reason: "relation has no target"}
	}

	return rec, nil
}

// ParseAttribute parses one attribute line:
//
//	has **qualifier** name: value {unit} *quantifier* [modality];
func ParseAttribute(number int, line string) (*AttributeRecord, error) {
	s := trimLine(line)
	if !strings.HasPrefix(s, "has ") {
		return nil, &ParseError{Line: number, Text: line, Reason: "missing \"has\" attribute marker"}
	}
	s = strings.TrimSpace(s[len("has "):])

	rec := &AttributeRecord{}
	if m := adjectivePattern.FindStringSubmatch(s); m != nil {
		rec.Qualifier = strings.TrimSpace(m[1])
		s = s[len(m[0]):]
	}

	name, value, ok := strings.Cut(s, ":")
	if !ok {
		return nil, &ParseError{Line: number, Text: line, Reason: "missing \":\" between attribute name and value"}
	}
	rec.Name = strings.TrimSpace(name)
	if rec.Name == "" {
		return nil, &ParseError{Line: number, Text: line, Reason: "empty attribute name"}
	}

	value = strings.TrimSpace(value)
	if m := modalitySuffix.FindStringSubmatch(value); m != nil {
		rec.Modality = strings.TrimSpace(m[1])
		value = strings.TrimSpace(value[:len(value)-len(m[0])])
	}
	if m := quantifierSuffix.FindStringSubmatch(value); m != nil {
		rec.Quantifier = strings.TrimSpace(m[1])
		value = strings.TrimSpace(value[:len(value)-len(m[0])])
	}
	if m := unitSuffix.FindStringSubmatch(value); m != nil {
		rec.Unit = strings.TrimSpace(m[1])
		value = strings.TrimSpace(value[:len(value)-len(m[0])])
	}
	if value == "" {
		return nil, &ParseError{Line: number, Text: line, Reason: "empty attribute value"}
	}
	rec.Value = value

	return rec, nil
}

// ParseState parses a transition state line:
//
//	priorState: Hydrogen:basic, Oxygen:basic, Spark|Flame;
//
// Comma-separated entries; "|" joins OR alternatives, "&" joins AND
// conjuncts within a single entry. Mixing both in one entry is an error.
func ParseState(number int, line string) (section string, entries []StateEntry, err error) {
	s := trimLine(line)
	m := statePattern.FindStringSubmatch(s)
	if m == nil {
		return "", nil, &ParseError{Line: number, Text: line, Reason: "not a priorState/postState line"}
	}
	section = m[1]

	for _, part := range strings.Split(m[2], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return "", nil, &ParseError{Line: number, Text: line, Reason: "empty state entry"}
		}

		hasOr := strings.Contains(part, "|")
		hasAnd := strings.Contains(part, "&")
		if hasOr && hasAnd {
			return "", nil, &ParseError{Line: number, Text: line, Reason: "state entry mixes | and & operators"}
		}

		entry := StateEntry{}
		sep := ""
		switch {
		case hasOr:
			entry.Operator = "OR"
			sep = "|"
		case hasAnd:
			entry.Operator = "AND"
			sep = "&"
		}

		pieces := []string{part}
		if sep != "" {
			pieces = strings.Split(part, sep)
		}
		for _, piece := range pieces {
			ref, refErr := parseTargetRef(piece)
			if refErr != nil {
				return "", nil, &ParseError{Line: number, Text: line, Reason: refErr.Error()}
			}
			entry.Refs = append(entry.Refs, ref)
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return "", nil, &ParseError{Line: number, Text: line, Reason: "state section has no entries"}
	}

	return section, entries, nil
}

// Heading is one parsed heading line.
type Heading struct {
	// Depth is the number of leading # characters.
	Depth int

	// BaseName is the display name without qualifier or type.
	BaseName string

	// Qualifier is the optional bold qualifier ("**heavy** Water").
	Qualifier string

	// Type is the optional bracketed type ("[Element]").
	Type string
}

// ParseHeading parses a heading line. ok is false when the line is not a
// heading at all; a heading with an empty name returns ok true and a nil
// heading so the caller can report it.
func ParseHeading(line string) (h *Heading, ok bool) {
	m := headingPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil, false
	}

	h = &Heading{Depth: len(m[1])}
	rest := strings.TrimSpace(m[2])

	if tm := typeSuffix.FindStringSubmatch(rest); tm != nil {
		h.Type = strings.TrimSpace(tm[1])
		rest = strings.TrimSpace(rest[:len(rest)-len(tm[0])])
	}
	if qm := adjectivePattern.FindStringSubmatch(rest); qm != nil {
		h.Qualifier = strings.TrimSpace(qm[1])
		rest = strings.TrimSpace(rest[len(qm[0]):])
	}
	h.BaseName = rest
	if h.BaseName == "" {
		return nil, true
	}

	return h, true
}

// parseTargetRef parses "Name" or "Name:morph".
func parseTargetRef(s string) (TargetRef, error) {
	name, morph, _ := strings.Cut(strings.TrimSpace(s), ":")
	name = strings.TrimSpace(name)
	morph = strings.TrimSpace(morph)
	if name == "" {
		return TargetRef{}, fmt.Errorf("empty target reference")
	}
	return TargetRef{Name: name, Morph: morph}, nil
}

// trimLine strips surrounding whitespace and the optional trailing
// semicolon terminator.
func trimLine(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}
