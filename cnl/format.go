package cnl

import (
	"strings"

	"github.com/c360studio/cnlgraph/ident"
)

// Canonical rendering of parsed elements back into markup. Rendering a
// parsed document produces the normalized form: single spaces, markers in
// fixed order, semicolon terminators, relations before attributes within
// a block.

// FormatHeading renders a heading at its depth.
func FormatHeading(h Heading) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("#", h.Depth))
	b.WriteString(" ")
	if h.Qualifier != "" {
		b.WriteString("**" + h.Qualifier + "** ")
	}
	b.WriteString(h.BaseName)
	if h.Type != "" {
		b.WriteString(" [" + h.Type + "]")
	}
	return b.String()
}

// FormatRelation renders a relation record as one canonical line.
func FormatRelation(r RelationRecord) string {
	var b strings.Builder
	if r.Adverb != "" {
		b.WriteString("++" + r.Adverb + "++ ")
	}
	b.WriteString("<" + r.Name + ">")
	if r.Adjective != "" {
		b.WriteString(" **" + r.Adjective + "**")
	}
	if r.Quantifier != "" {
		b.WriteString(" *" + r.Quantifier + "*")
	}
	names := make([]string, len(r.Targets))
	for i, t := range r.Targets {
		names[i] = FormatTargetRef(t)
	}
	b.WriteString(" " + strings.Join(names, ", "))
	if r.Modality != "" {
		b.WriteString(" [" + r.Modality + "]")
	}
	b.WriteString(";")
	return b.String()
}

// FormatAttribute renders an attribute record as one canonical line.
func FormatAttribute(a AttributeRecord) string {
	var b strings.Builder
	b.WriteString("has ")
	if a.Qualifier != "" {
		b.WriteString("**" + a.Qualifier + "** ")
	}
	b.WriteString(a.Name + ": " + a.Value)
	if a.Unit != "" {
		b.WriteString(" {" + a.Unit + "}")
	}
	if a.Quantifier != "" {
		b.WriteString(" *" + a.Quantifier + "*")
	}
	if a.Modality != "" {
		b.WriteString(" [" + a.Modality + "]")
	}
	b.WriteString(";")
	return b.String()
}

// FormatTargetRef renders "Name" or "Name:morph".
func FormatTargetRef(t TargetRef) string {
	if t.Morph == "" {
		return t.Name
	}
	return t.Name + ":" + t.Morph
}

// FormatState renders one transition state line.
func FormatState(section string, entries []StateEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = FormatStateEntry(e)
	}
	return section + ": " + strings.Join(parts, ", ") + ";"
}

// FormatStateEntry renders a single reference or an operator group.
func FormatStateEntry(e StateEntry) string {
	refs := make([]string, len(e.Refs))
	for i, r := range e.Refs {
		refs[i] = FormatTargetRef(r)
	}
	sep := "|"
	if e.Operator == "AND" {
		sep = "&"
	}
	return strings.Join(refs, sep)
}

// FormatDescription renders a description fence, or nothing when empty.
func FormatDescription(desc string) []string {
	if desc == "" {
		return nil
	}
	return append(append([]string{descriptionFenceOpen}, strings.Split(desc, "\n")...), fenceClose)
}

// Normalize parses the text and renders it back canonically. Within each
// block, relation lines come before attribute lines; transitions render
// priorState before postState. Unparseable lines are dropped and reported.
func Normalize(text string) (string, []error) {
	blocks, errs := BuildTree(text)

	var out []string
	for _, block := range blocks {
		out = append(out, FormatHeading(Heading{
			Depth:     1,
			BaseName:  block.Heading.BaseName,
			Qualifier: block.Heading.Qualifier,
			Type:      block.Heading.Type,
		}))
		out = append(out, FormatDescription(block.Description)...)

		lines, lineErrs := normalizeContent(block.Content)
		out = append(out, lines...)
		errs = append(errs, lineErrs...)

		for _, m := range block.Morphs {
			out = append(out, FormatHeading(Heading{Depth: 2, BaseName: m.Name}))
			out = append(out, FormatDescription(m.Description)...)
			lines, lineErrs := normalizeContent(m.Content)
			out = append(out, lines...)
			errs = append(errs, lineErrs...)
		}
		out = append(out, "")
	}

	return strings.Join(out, "\n"), errs
}

// normalizeContent renders a block's content lines canonically:
// relations (one line per target), then attributes, then merged
// priorState and postState lines, each group in declaration order.
// Re-asserted facts collapse the way the compiler collapses them: a
// relation identity keeps its first statement, an attribute identity
// keeps its first position with the last value.
func normalizeContent(content []Line) ([]string, []error) {
	var relations, attributes []string
	var prior, post []StateEntry
	var errs []error
	seenRel := make(map[string]struct{})
	attrAt := make(map[string]int)

	for _, line := range content {
		switch {
		case IsStateLine(line.Text):
			section, entries, err := ParseState(line.Number, line.Text)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if section == SectionPrior {
				prior = append(prior, entries...)
			} else {
				post = append(post, entries...)
			}
		case IsRelationLine(line.Text):
			rec, err := ParseRelation(line.Number, line.Text)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			for _, target := range rec.Targets {
				key := ident.Relation(rec.Name, rec.Adjective, rec.Quantifier, rec.Modality, "", "", ident.Node("", target.Name))
				if _, ok := seenRel[key]; ok {
					continue
				}
				seenRel[key] = struct{}{}
				single := *rec
				single.Targets = []TargetRef{target}
				relations = append(relations, FormatRelation(single))
			}
		case IsAttributeLine(line.Text):
			rec, err := ParseAttribute(line.Number, line.Text)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			key := ident.Attribute(rec.Name, rec.Qualifier, rec.Quantifier, rec.Modality, "", "")
			if at, ok := attrAt[key]; ok {
				attributes[at] = FormatAttribute(*rec)
				continue
			}
			attrAt[key] = len(attributes)
			attributes = append(attributes, FormatAttribute(*rec))
		default:
			errs = append(errs, &ParseError{Line: line.Number, Text: line.Text, Reason: "not a relation, attribute, or state line"})
		}
	}

	out := append(relations, attributes...)
	if len(prior) > 0 {
		out = append(out, FormatState(SectionPrior, prior))
	}
	if len(post) > 0 {
		out = append(out, FormatState(SectionPost, post))
	}
	return out, errs
}
