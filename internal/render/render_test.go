package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write note: %v", err)
	}
	return path
}

func TestRenderDocumentBasics(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "a.md", "# Hi\n\nuse `foo` here\n")

	doc, err := New().RenderDocument(path)
	if err != nil {
		t.Fatalf("RenderDocument failed: %v", err)
	}
	if !strings.Contains(doc.HTML, "<h1") || !strings.Contains(doc.HTML, "Hi") {
		t.Fatalf("expected h1 heading in %q", doc.HTML)
	}
	if !strings.Contains(doc.HTML, "<code>") {
		t.Fatalf("expected inline code in %q", doc.HTML)
	}
	if doc.BaseDir != filepath.ToSlash(dir) {
		t.Fatalf("BaseDir = %q, want %q", doc.BaseDir, filepath.ToSlash(dir))
	}
}

func TestRenderDocumentEscapesRawHTML(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "evil.md", "<script>alert(1)</script>\n")

	doc, err := New().RenderDocument(path)
	if err != nil {
		t.Fatalf("RenderDocument failed: %v", err)
	}
	if strings.Contains(doc.HTML, "<script>") {
		t.Fatalf("raw script must not survive rendering: %q", doc.HTML)
	}
}

func TestRenderDocumentMissingFile(t *testing.T) {
	_, err := New().RenderDocument(filepath.Join(t.TempDir(), "missing.md"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var rerr *RenderError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RenderError, got %T", err)
	}
}

func TestRenderDocumentGFMTable(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "t.md", "| a | b |\n|---|---|\n| 1 | 2 |\n")

	doc, err := New().RenderDocument(path)
	if err != nil {
		t.Fatalf("RenderDocument failed: %v", err)
	}
	if !strings.Contains(doc.HTML, "<table>") {
		t.Fatalf("expected GFM table in %q", doc.HTML)
	}
}

func TestSplitFrontMatter(t *testing.T) {
	source := []byte("---\ntitle: My Note\ndate: 2024-05-01\ntags:\n  - go\n  - wiki\n---\n# Body\n")
	meta, body := SplitFrontMatter(source)

	if meta.Title != "My Note" {
		t.Fatalf("Title = %q", meta.Title)
	}
	if meta.Date.IsZero() || meta.Date.Year() != 2024 || meta.Date.Month() != 5 {
		t.Fatalf("Date = %v", meta.Date)
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "go" {
		t.Fatalf("Tags = %v", meta.Tags)
	}
	if strings.TrimSpace(string(body)) != "# Body" {
		t.Fatalf("body = %q", body)
	}
}

func TestSplitFrontMatterLooseDateFormats(t *testing.T) {
	source := []byte("---\ndate: May 1, 2024\n---\nx\n")
	meta, _ := SplitFrontMatter(source)
	if meta.Date.IsZero() {
		t.Fatal("expected loose date format to parse")
	}
}

func TestSplitFrontMatterAbsentOrMalformed(t *testing.T) {
	cases := [][]byte{
		[]byte("# No front matter\n"),
		[]byte("---\nnot: [valid\n---\nbody\n"),
		[]byte("--- not a fence\n"),
		[]byte("---\nunterminated: true\n"),
	}
	for _, source := range cases {
		meta, body := SplitFrontMatter(source)
		if meta.Title != "" {
			t.Fatalf("unexpected meta from %q", source)
		}
		if len(body) == 0 {
			t.Fatalf("body must be preserved for %q", source)
		}
	}
}
