package cnl

import (
	"strings"

	"github.com/c360studio/cnlgraph/ident"
)

// Line is one raw content line with its position in the submitted text.
type Line struct {
	Number int
	Text   string
}

// MorphBlock is a named variant neighborhood of its owning node. It never
// introduces a new node identity.
type MorphBlock struct {
	Name        string
	Description string
	Content     []Line
	LineNumber  int
}

// NodeBlock is one top-level heading block: the node's own content (the
// implicit basic morph) plus any named morph sub-blocks.
type NodeBlock struct {
	Heading     Heading
	Description string
	Content     []Line
	Morphs      []MorphBlock
	LineNumber  int
}

const (
	descriptionFenceOpen = "```description"
	fenceClose           = "```"
	commentPrefix        = "//"
)

// BuildTree scans the full document and groups lines into node blocks by
// heading depth. Depth 1 starts a node; depth 2 and deeper under an open
// node starts a morph of that node. A heading with no body is a valid
// empty node. Errors are collected per line; the rest of the document is
// still parsed.
func BuildTree(text string) ([]NodeBlock, []error) {
	var (
		blocks []NodeBlock
		errs   []error
	)

	lines := strings.Split(text, "\n")

	var node *NodeBlock      // open node block
	var morph *MorphBlock    // open morph block within node
	awaitingFence := true    // a description fence may follow the last heading
	skipBlock := false       // discard lines of a rejected morph block

	flushMorph := func() {
		if node != nil && morph != nil {
			node.Morphs = append(node.Morphs, *morph)
		}
		morph = nil
	}
	flushNode := func() {
		flushMorph()
		if node != nil {
			blocks = append(blocks, *node)
		}
		node = nil
	}

	for i := 0; i < len(lines); i++ {
		number := i + 1
		raw := lines[i]
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" || strings.HasPrefix(trimmed, commentPrefix) {
			continue
		}

		if h, isHeading := ParseHeading(trimmed); isHeading {
			if h == nil {
				errs = append(errs, &ParseError{Line: number, Text: raw, Reason: "heading has no name"})
				continue
			}

			skipBlock = false
			if h.Depth == 1 {
				flushNode()
				node = &NodeBlock{Heading: *h, LineNumber: number}
				awaitingFence = true
				continue
			}

			// Morph heading.
			if node == nil {
				errs = append(errs, &ParseError{Line: number, Text: raw, Reason: "morph heading outside a node block"})
				skipBlock = true
				continue
			}
			flushMorph()
			if hasMorph(node, h.BaseName) {
				errs = append(errs, &DuplicateMorphError{Line: number, Node: node.Heading.BaseName, Morph: h.BaseName})
				skipBlock = true
				continue
			}
			morph = &MorphBlock{Name: h.BaseName, LineNumber: number}
			awaitingFence = true
			continue
		}

		if skipBlock {
			continue
		}

		if awaitingFence && trimmed == descriptionFenceOpen {
			desc, consumed, ok := captureFence(lines, i+1)
			if !ok {
				errs = append(errs, &ParseError{Line: number, Text: raw, Reason: "unterminated description fence"})
				i = len(lines)
				continue
			}
			if morph != nil {
				morph.Description = desc
			} else if node != nil {
				node.Description = desc
			}
			i += consumed
			awaitingFence = false
			continue
		}
		awaitingFence = false

		if node == nil {
			errs = append(errs, &ParseError{Line: number, Text: raw, Reason: "content line before any heading"})
			continue
		}

		line := Line{Number: number, Text: trimmed}
		if morph != nil {
			morph.Content = append(morph.Content, line)
		} else {
			node.Content = append(node.Content, line)
		}
	}
	flushNode()

	return blocks, errs
}

// captureFence collects lines until the closing fence, starting at start.
// It returns the verbatim description, the number of lines consumed
// (including the closing fence), and whether the fence was closed.
func captureFence(lines []string, start int) (string, int, bool) {
	var body []string
	for j := start; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == fenceClose {
			return strings.Join(body, "\n"), j - start + 1, true
		}
		body = append(body, lines[j])
	}
	return "", 0, false
}

// hasMorph reports whether the node already declares a morph whose name
// slugs to the same identity.
func hasMorph(node *NodeBlock, name string) bool {
	slug := ident.Slug(name)
	for _, m := range node.Morphs {
		if ident.Slug(m.Name) == slug {
			return true
		}
	}
	return false
}
