package importer

import (
	"context"
	"strings"
	"time"
)

// DraftFromMarkdown converts extracted markdown into draft
// controlled-language text. Each markdown heading becomes a node block
// and the prose under it becomes the block's description. Lists, code,
// and other markup are dropped; the draft declares identities, not
// facts, and is meant to be edited before submission.
func DraftFromMarkdown(title, markdown string) string {
	var out []string

	blockName := strings.TrimSpace(title)
	var prose []string

	flush := func() {
		if blockName == "" && len(prose) == 0 {
			return
		}
		if blockName == "" {
			blockName = "Untitled"
		}
		out = append(out, "# "+sanitizeName(blockName))
		if len(prose) > 0 {
			out = append(out, "```description")
			out = append(out, prose...)
			out = append(out, "```")
		}
		out = append(out, "")
		blockName = ""
		prose = nil
	}

	inCode := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}

		if name, ok := headingName(trimmed); ok {
			// The document title heading opens the first block rather
			// than starting a second one.
			if strings.EqualFold(name, blockName) && len(prose) == 0 {
				continue
			}
			flush()
			blockName = name
			continue
		}

		if trimmed == "" || strings.HasPrefix(trimmed, "-") ||
			strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "|") ||
			strings.HasPrefix(trimmed, ">") {
			continue
		}
		prose = append(prose, trimmed)
	}
	flush()

	return strings.Join(out, "\n")
}

// ImportURL fetches a page and renders it as draft text.
func ImportURL(ctx context.Context, rawURL string) (string, error) {
	fetcher := NewFetcher(30*time.Second, "cnlgraph-importer/1.0", 4<<20)
	result, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	converted, err := NewConverter().Convert(result.Body, rawURL)
	if err != nil {
		return "", err
	}

	title := converted.Title
	if title == "" {
		title = ExtractDomain(rawURL)
	}
	return DraftFromMarkdown(title, converted.Markdown), nil
}

// headingName extracts the text of a markdown heading line.
func headingName(line string) (string, bool) {
	if !strings.HasPrefix(line, "#") {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimLeft(line, "#"))
	if name == "" {
		return "", false
	}
	return name, true
}

// sanitizeName strips markup characters that carry meaning in
// controlled-language headings.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer("[", "", "]", "", "*", "", "<", "", ">", "", "{", "", "}", "", ";", "", ":", "", "#", "", "|", "", "&", "")
	name = replacer.Replace(name)
	return strings.Join(strings.Fields(name), " ")
}
