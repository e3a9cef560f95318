package importer

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/cnlgraph/cnl"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://example.com/docs", false},
		{"http rejected", "http://example.com", true},
		{"localhost rejected", "https://localhost/admin", true},
		{"loopback ip rejected", "https://127.0.0.1/", true},
		{"private ip rejected", "https://192.168.1.1/", true},
		{"local domain rejected", "https://service.internal/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	assert.True(t, IsPrivateIP(net.ParseIP("10.0.0.1")))
	assert.True(t, IsPrivateIP(net.ParseIP("100.64.0.1")))
	assert.True(t, IsPrivateIP(net.ParseIP("::ffff:192.168.0.1")))
	assert.True(t, IsPrivateIP(net.ParseIP("fe80::1")))
	assert.False(t, IsPrivateIP(net.ParseIP("93.184.216.34")))
}

func TestConvertExtractsTitleAndMarkdown(t *testing.T) {
	page := []byte(`<html><head><title>Water Cycle</title></head><body>
<article>
<h1>Water Cycle</h1>
<p>Water moves between reservoirs.</p>
<script>alert("x")</script>
<h2>Evaporation</h2>
<p>Liquid water becomes vapor.</p>
</article>
</body></html>`)

	result, err := NewConverter().Convert(page, "https://example.com/water")
	require.NoError(t, err)

	assert.Equal(t, "Water Cycle", result.Title)
	assert.Contains(t, result.Markdown, "Evaporation")
	assert.NotContains(t, result.Markdown, "alert(")
}

func TestDraftFromMarkdownProducesParseableBlocks(t *testing.T) {
	markdown := `# Water Cycle

Water moves between reservoirs.

## Evaporation

Liquid water becomes vapor.

- a bullet that should be dropped

## Condensation

Vapor becomes droplets.
`
	draft := DraftFromMarkdown("Water Cycle", markdown)

	blocks, errs := cnl.BuildTree(draft)
	require.Empty(t, errs)
	require.Len(t, blocks, 3)
	assert.Equal(t, "Water Cycle", blocks[0].Heading.BaseName)
	assert.Equal(t, "Water moves between reservoirs.", blocks[0].Description)
	assert.Equal(t, "Evaporation", blocks[1].Heading.BaseName)
	assert.Equal(t, "Condensation", blocks[2].Heading.BaseName)
}

func TestDraftSanitizesMarkupInHeadings(t *testing.T) {
	draft := DraftFromMarkdown("API [v2] <beta>", "Some prose.")

	blocks, errs := cnl.BuildTree(draft)
	require.Empty(t, errs)
	require.Len(t, blocks, 1)
	assert.Equal(t, "API v2 beta", blocks[0].Heading.BaseName)
}
