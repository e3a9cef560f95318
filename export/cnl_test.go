package export

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/cnlgraph/cnl"
	"github.com/c360studio/cnlgraph/compiler"
)

const sampleDoc = `# **heavy** Water [Substance]
` + "```description" + `
Deuterium oxide.
` + "```" + `
<contains> Deuterium, Oxygen;
has density: 1.107 {g/cm3};

## Frozen
<resembles> Ice [probably];

# Oxygen [Element]

# Freezing
priorState: heavy Water;
postState: heavy Water:Frozen;
`

func compileSnapshot(t *testing.T, text string) *compiler.Result {
	t.Helper()
	res, err := compiler.Compile(context.Background(), "", text, compiler.Options{})
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	return res
}

func TestRenderRoundTripsNormalizedText(t *testing.T) {
	res := compileSnapshot(t, sampleDoc)

	rendered := Render(res.Snapshot)
	normalized, errs := cnl.Normalize(sampleDoc)
	require.Empty(t, errs)

	assert.Equal(t, normalized, rendered)
}

func TestRenderIsStableUnderRecompile(t *testing.T) {
	res := compileSnapshot(t, sampleDoc)
	rendered := Render(res.Snapshot)

	again := compileSnapshot(t, rendered)
	assert.Equal(t, rendered, Render(again.Snapshot))
}

func TestRenderOmitsImplicitNodes(t *testing.T) {
	res := compileSnapshot(t, sampleDoc)
	rendered := Render(res.Snapshot)

	// Deuterium and Ice exist only as reference targets.
	assert.NotContains(t, rendered, "# Deuterium")
	assert.NotContains(t, rendered, "# Ice")
	assert.Contains(t, rendered, "<contains> Deuterium;")
}

func TestRenderPreservesDeclarationOrder(t *testing.T) {
	res := compileSnapshot(t, sampleDoc)
	rendered := Render(res.Snapshot)

	water := strings.Index(rendered, "# **heavy** Water [Substance]")
	oxygen := strings.Index(rendered, "# Oxygen [Element]")
	freezing := strings.Index(rendered, "# Freezing")
	require.NotEqual(t, -1, water)
	require.NotEqual(t, -1, oxygen)
	require.NotEqual(t, -1, freezing)
	assert.Less(t, water, oxygen)
	assert.Less(t, oxygen, freezing)
}

func TestRenderKeepsTransitionType(t *testing.T) {
	doc := `# Hydrogen [Element]
# Oxygen [Element]

# Combustion [Transition]
priorState: Hydrogen & Oxygen;
postState: Water;
`
	res := compileSnapshot(t, doc)
	rendered := Render(res.Snapshot)

	assert.Contains(t, rendered, "# Combustion [Transition]")

	normalized, errs := cnl.Normalize(doc)
	require.Empty(t, errs)
	assert.Equal(t, normalized, rendered)
}

func TestRenderRoundTripsRepeatedAssertions(t *testing.T) {
	doc := `# Water [Substance]
<contains> Hydrogen;
<contains> Hydrogen;
has temperature: 20 {C};
has temperature: 25 {C};
`
	res := compileSnapshot(t, doc)
	rendered := Render(res.Snapshot)

	assert.Equal(t, 1, strings.Count(rendered, "<contains> Hydrogen;"))
	assert.Contains(t, rendered, "has temperature: 25 {C};")
	assert.NotContains(t, rendered, "has temperature: 20")

	normalized, errs := cnl.Normalize(doc)
	require.Empty(t, errs)
	assert.Equal(t, normalized, rendered)
}

func TestRenderQualifiedReferences(t *testing.T) {
	res := compileSnapshot(t, sampleDoc)
	rendered := Render(res.Snapshot)

	assert.Contains(t, rendered, "priorState: heavy Water;")
	assert.Contains(t, rendered, "postState: heavy Water:Frozen;")
}
