package cnl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelation(t *testing.T) {
	tests := []struct {
		name string
		line string
		want RelationRecord
	}{
		{
			name: "bare relation",
			line: "<contains> Hydrogen;",
			want: RelationRecord{Name: "contains", Targets: []TargetRef{{Name: "Hydrogen"}}},
		},
		{
			name: "multiple targets",
			line: "<contains> Hydrogen, Oxygen;",
			want: RelationRecord{Name: "contains", Targets: []TargetRef{{Name: "Hydrogen"}, {Name: "Oxygen"}}},
		},
		{
			name: "all markers",
			line: "++quickly++ <dissolves> **readily** *some* Salt [probably];",
			want: RelationRecord{
				Name:       "dissolves",
				Adverb:     "quickly",
				Adjective:  "readily",
				Quantifier: "some",
				Modality:   "probably",
				Targets:    []TargetRef{{Name: "Salt"}},
			},
		},
		{
			name: "no trailing semicolon",
			line: "<resembles> Ice",
			want: RelationRecord{Name: "resembles", Targets: []TargetRef{{Name: "Ice"}}},
		},
		{
			name: "surrounding whitespace",
			line: "   <contains>   Oxygen  ;  ",
			want: RelationRecord{Name: "contains", Targets: []TargetRef{{Name: "Oxygen"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRelation(1, tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *rec)
		})
	}
}

func TestParseRelationErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no relation marker", "contains Hydrogen;"},
		{"empty relation name", "<  > Hydrogen;"},
		{"no target", "<contains>;"},
		{"empty target in list", "<contains> Hydrogen, ;"},
		{"morph-qualified target", "<contains> Water:Frozen;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRelation(3, tt.line)
			require.Error(t, err)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, 3, parseErr.Line)
		})
	}
}

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		name string
		line string
		want AttributeRecord
	}{
		{
			name: "name and value",
			line: "has color: blue;",
			want: AttributeRecord{Name: "color", Value: "blue"},
		},
		{
			name: "value with unit",
			line: "has temperature: 100 {celsius};",
			want: AttributeRecord{Name: "temperature", Value: "100", Unit: "celsius"},
		},
		{
			name: "all markers",
			line: "has **approximate** mass: 18 {g/mol} *per molecule* [certainly];",
			want: AttributeRecord{
				Name:       "mass",
				Value:      "18",
				Unit:       "g/mol",
				Qualifier:  "approximate",
				Quantifier: "per molecule",
				Modality:   "certainly",
			},
		},
		{
			name: "multi-word value",
			line: "has state: clear liquid",
			want: AttributeRecord{Name: "state", Value: "clear liquid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseAttribute(1, tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *rec)
		})
	}
}

func TestParseAttributeErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing has marker", "color: blue;"},
		{"missing colon", "has color blue;"},
		{"empty name", "has : blue;"},
		{"empty value", "has color: ;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAttribute(7, tt.line)
			require.Error(t, err)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, 7, parseErr.Line)
		})
	}
}

func TestParseState(t *testing.T) {
	section, entries, err := ParseState(1, "priorState: Hydrogen, Oxygen;")
	require.NoError(t, err)
	assert.Equal(t, SectionPrior, section)
	require.Len(t, entries, 2)
	assert.Equal(t, StateEntry{Refs: []TargetRef{{Name: "Hydrogen"}}}, entries[0])
	assert.Equal(t, StateEntry{Refs: []TargetRef{{Name: "Oxygen"}}}, entries[1])

	section, entries, err = ParseState(2, "postState: Water:Frozen;")
	require.NoError(t, err)
	assert.Equal(t, SectionPost, section)
	require.Len(t, entries, 1)
	assert.Equal(t, TargetRef{Name: "Water", Morph: "Frozen"}, entries[0].Refs[0])
}

func TestParseStateOperators(t *testing.T) {
	_, entries, err := ParseState(1, "priorState: Spark|Flame, Fuel&Oxygen;")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "OR", entries[0].Operator)
	assert.Equal(t, []TargetRef{{Name: "Spark"}, {Name: "Flame"}}, entries[0].Refs)

	assert.Equal(t, "AND", entries[1].Operator)
	assert.Equal(t, []TargetRef{{Name: "Fuel"}, {Name: "Oxygen"}}, entries[1].Refs)
}

func TestParseStateErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"not a state line", "has color: blue;"},
		{"mixed operators", "priorState: Spark|Flame&Fuel;"},
		{"empty entry", "priorState: Hydrogen, ;"},
		{"empty ref in group", "priorState: Spark|;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseState(5, tt.line)
			require.Error(t, err)
		})
	}
}

func TestParseHeading(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Heading
	}{
		{
			name: "bare node",
			line: "# Water",
			want: Heading{Depth: 1, BaseName: "Water"},
		},
		{
			name: "typed node",
			line: "# Water [Substance]",
			want: Heading{Depth: 1, BaseName: "Water", Type: "Substance"},
		},
		{
			name: "qualified and typed",
			line: "# **heavy** Water [Substance]",
			want: Heading{Depth: 1, BaseName: "Water", Qualifier: "heavy", Type: "Substance"},
		},
		{
			name: "morph heading",
			line: "## Frozen",
			want: Heading{Depth: 2, BaseName: "Frozen"},
		},
		{
			name: "multi-word name",
			line: "# Water Cycle",
			want: Heading{Depth: 1, BaseName: "Water Cycle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := ParseHeading(tt.line)
			require.True(t, ok)
			require.NotNil(t, h)
			assert.Equal(t, tt.want, *h)
		})
	}
}

func TestParseHeadingNonHeadings(t *testing.T) {
	for _, line := range []string{"Water", "<contains> Hydrogen;", "has color: blue;", ""} {
		_, ok := ParseHeading(line)
		assert.False(t, ok, "line %q should not parse as heading", line)
	}

	// A heading marker with no name is recognized but invalid.
	h, ok := ParseHeading("# [Substance]")
	assert.True(t, ok)
	assert.Nil(t, h)
}

func TestLineClassifiers(t *testing.T) {
	assert.True(t, IsRelationLine("<contains> Hydrogen;"))
	assert.False(t, IsRelationLine("has color: blue;"))

	assert.True(t, IsAttributeLine("  has color: blue;"))
	assert.False(t, IsAttributeLine("<has> Something;"))

	assert.True(t, IsStateLine("priorState: Water;"))
	assert.True(t, IsStateLine("postState : Water;"))
	assert.False(t, IsStateLine("state: Water;"))
}
