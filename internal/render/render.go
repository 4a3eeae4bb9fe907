// Package render turns markdown notes into HTML for the navigation core.
// Raw HTML in the source is escaped, never passed through.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"wikiview/internal/pathutil"
)

// Document is the result of rendering one note.
type Document struct {
	// HTML is the rendered body, safe to hand to any HTML surface.
	HTML string
	// Markdown is the raw source with front matter stripped.
	Markdown string
	// BaseDir resolves relative links and images within the document.
	BaseDir string
	// Meta carries the parsed front matter, zero-valued when absent.
	Meta Meta
}

// RenderError wraps any failure to read or render a document.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Renderer converts markdown files to Documents.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a renderer with GFM extensions and auto heading IDs. Unsafe
// raw HTML stays disabled.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// RenderDocument reads and renders the note at path. The returned base
// directory is the note's parent directory in canonical separator form.
func (r *Renderer) RenderDocument(path string) (Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &RenderError{Path: path, Err: err}
	}
	return r.RenderSource(path, source)
}

// RenderSource renders markdown that has already been read, attributing it
// to path for base-directory resolution and error reporting.
func (r *Renderer) RenderSource(path string, source []byte) (Document, error) {
	meta, body := SplitFrontMatter(source)

	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return Document{}, &RenderError{Path: path, Err: err}
	}

	return Document{
		HTML:     buf.String(),
		Markdown: string(body),
		BaseDir:  pathutil.NormalizeBase(filepath.ToSlash(filepath.Dir(path))),
		Meta:     meta,
	}, nil
}
