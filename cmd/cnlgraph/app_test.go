package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/cnlgraph/config"
)

func testApp() *appOptions {
	return &appOptions{
		cfg:    config.DefaultConfig(),
		logger: slog.Default(),
	}
}

func TestReadDocuments(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	writeFile("b.cnl", "# Oxygen [Element]\n")
	writeFile("a.cnl", "# Water [Substance]\n")
	writeFile("notes.txt", "not a document\n")

	text, err := readDocuments([]string{filepath.Join(tmpDir, "*.cnl")})
	if err != nil {
		t.Fatalf("readDocuments: %v", err)
	}

	// Files concatenate in sorted path order.
	waterPos := strings.Index(text, "# Water")
	oxygenPos := strings.Index(text, "# Oxygen")
	if waterPos < 0 || oxygenPos < 0 {
		t.Fatalf("missing document content in %q", text)
	}
	if waterPos > oxygenPos {
		t.Error("expected a.cnl before b.cnl")
	}
	if strings.Contains(text, "not a document") {
		t.Error("glob matched a non-cnl file")
	}
}

func TestReadDocumentsNoMatch(t *testing.T) {
	if _, err := readDocuments([]string{filepath.Join(t.TempDir(), "*.cnl")}); err == nil {
		t.Fatal("expected error for pattern with no matches")
	}
}

func TestStaticDir(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"docs/water.cnl", "docs"},
		{"docs/*.cnl", "docs"},
		{"docs/**/*.cnl", "docs"},
		{"*.cnl", "."},
		{"docs/sub/*.cnl", filepath.Join("docs", "sub")},
	}
	for _, tt := range tests {
		if got := staticDir(tt.pattern); got != tt.want {
			t.Errorf("staticDir(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"turtle", "TTL", "ntriples", "nt", "jsonld", "json-ld"} {
		if _, err := parseFormat(name); err != nil {
			t.Errorf("parseFormat(%q) unexpected error: %v", name, err)
		}
	}
	if _, err := parseFormat("rdfxml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestParseProfile(t *testing.T) {
	for _, name := range []string{"minimal", "BFO", "cco"} {
		if _, err := parseProfile(name); err != nil {
			t.Errorf("parseProfile(%q) unexpected error: %v", name, err)
		}
	}
	if _, err := parseProfile("dolce"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestRenderCommand(t *testing.T) {
	tmpDir := t.TempDir()
	docPath := filepath.Join(tmpDir, "water.cnl")
	doc := `# Water [Substance]
<contains> Hydrogen, Oxygen;

# Oxygen [Element]
`
	if err := os.WriteFile(docPath, []byte(doc), 0644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	cmd := renderCmd(testApp())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{docPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	rendered := out.String()
	if !strings.Contains(rendered, "# Water [Substance]") {
		t.Errorf("rendered output missing Water heading:\n%s", rendered)
	}
	if !strings.Contains(rendered, "<contains> Hydrogen;") {
		t.Errorf("rendered output missing canonical relation line:\n%s", rendered)
	}
	// Hydrogen was only referenced, never declared, so it stays implicit.
	if strings.Contains(rendered, "# Hydrogen") {
		t.Errorf("implicit node should not render as a block:\n%s", rendered)
	}
}

func TestExportCommand(t *testing.T) {
	tmpDir := t.TempDir()
	docPath := filepath.Join(tmpDir, "water.cnl")
	if err := os.WriteFile(docPath, []byte("# Water [Substance]\n"), 0644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	cmd := exportCmd(testApp())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{docPath, "--format", "ntriples"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out.String(), "default/node/water") {
		t.Errorf("export output missing node IRI:\n%s", out.String())
	}
}
