// Package wiki opens a folder of notes as a browsable collection: it builds
// the note tree, picks the initial note, and renders notes with wikilink
// and embed expansion scoped to the collection.
package wiki

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wikiview/internal/embed"
	"wikiview/internal/pathutil"
	"wikiview/internal/render"
	"wikiview/internal/tree"
)

// ListError wraps any failure to read a collection directory.
type ListError struct {
	Path string
	Err  error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("list collection %s: %v", e.Path, e.Err)
}

func (e *ListError) Unwrap() error {
	return e.Err
}

// Collection is an open wiki folder. Replaced wholesale on every folder
// load; never mutated in place.
type Collection struct {
	root     string
	nodes    []tree.Node
	expander *embed.Expander
	renderer *render.Renderer

	initialPath string
	initialDoc  render.Document
	hasInitial  bool
}

// Lister opens collections. Satisfies the navigation controller's lister
// dependency.
type Lister struct {
	renderer *render.Renderer
}

// NewLister builds a lister that renders notes through the given renderer.
func NewLister(renderer *render.Renderer) *Lister {
	return &Lister{renderer: renderer}
}

// Open reads the folder at path into a Collection: a sorted note tree, a
// wikilink index, and the initial note (index.md when present, otherwise
// the first markdown file in the root by name). A folder with no notes at
// all yields a collection without an initial note, not an error.
func (l *Lister) Open(path string) (*Collection, error) {
	root := pathutil.NormalizeBase(filepath.ToSlash(path))

	nodes, err := buildTree(path)
	if err != nil {
		return nil, &ListError{Path: path, Err: err}
	}

	index, err := embed.BuildIndex(path)
	if err != nil {
		return nil, &ListError{Path: path, Err: err}
	}

	col := &Collection{
		root:     root,
		nodes:    nodes,
		expander: embed.NewExpander(index),
		renderer: l.renderer,
	}

	if initial, ok := initialNotePath(path); ok {
		doc, err := col.RenderNote(initial)
		if err == nil {
			col.initialPath = pathutil.NormalizePath(filepath.ToSlash(initial))
			col.initialDoc = doc
			col.hasInitial = true
		}
	}

	return col, nil
}

// Root returns the normalized collection root.
func (c *Collection) Root() string {
	return c.root
}

// Tree returns the collection's note tree.
func (c *Collection) Tree() []tree.Node {
	return c.nodes
}

// InitialNote returns the pre-rendered initial note, if the folder had one.
func (c *Collection) InitialNote() (string, render.Document, bool) {
	return c.initialPath, c.initialDoc, c.hasInitial
}

// RenderNote renders a note within the collection: embeds are expanded and
// wikilinks rewritten against the collection index, and relative links
// resolve against the collection root.
func (c *Collection) RenderNote(path string) (render.Document, error) {
	expanded, err := c.expander.Expand(path)
	if err != nil {
		return render.Document{}, &render.RenderError{Path: path, Err: err}
	}

	doc, err := c.renderer.RenderSource(path, []byte(expanded))
	if err != nil {
		return render.Document{}, err
	}
	doc.BaseDir = c.root
	return doc, nil
}

// buildTree walks a directory into tree nodes, directories first, readme
// first among files, case-insensitive name order. Dot-directories are
// skipped, only markdown files are listed, and directories that end up
// empty are pruned.
func buildTree(dir string) ([]tree.Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		if !a.IsDir() {
			aReadme := strings.EqualFold(a.Name(), "readme.md")
			bReadme := strings.EqualFold(b.Name(), "readme.md")
			if aReadme != bReadme {
				return aReadme
			}
		}
		return strings.ToLower(a.Name()) < strings.ToLower(b.Name())
	})

	var nodes []tree.Node
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			children, err := buildTree(path)
			if err != nil {
				return nil, err
			}
			if len(children) == 0 {
				continue
			}
			nodes = append(nodes, tree.Node{
				Name:     entry.Name(),
				Path:     filepath.ToSlash(path),
				Children: children,
			})
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		nodes = append(nodes, tree.Node{
			Name: entry.Name(),
			Path: filepath.ToSlash(path),
		})
	}
	return nodes, nil
}

// initialNotePath prefers <root>/index.md, falling back to the first
// markdown file directly under the root in name order.
func initialNotePath(root string) (string, bool) {
	indexPath := filepath.Join(root, "index.md")
	if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
		return indexPath, true
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		candidates = append(candidates, entry.Name())
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Strings(candidates)
	return filepath.Join(root, candidates[0]), true
}
