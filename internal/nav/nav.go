// Package nav owns the viewer's single source of truth: which document is
// displayed, in which mode, and how the tree, breadcrumb, title, and
// history stay consistent with it. Every user or watcher event that can
// change the displayed document funnels through the Controller.
package nav

import (
	"wikiview/internal/render"
	"wikiview/internal/tree"
)

// Renderer produces rendered documents for standalone files.
type Renderer interface {
	RenderDocument(path string) (render.Document, error)
}

// Collection is an open wiki folder as produced by the lister.
type Collection interface {
	Root() string
	Tree() []tree.Node
	InitialNote() (string, render.Document, bool)
	RenderNote(path string) (render.Document, error)
}

// Lister opens a folder of notes as a Collection.
type Lister interface {
	Open(path string) (Collection, error)
}

// Registrar registers the paths the file watcher should observe. Each call
// replaces the previous registration.
type Registrar interface {
	Watch(paths []string) error
}

// PrefStore persists the last selected note per collection. Failures are
// the store's problem; the controller never sees them.
type PrefStore interface {
	LastNote(root string) (string, bool)
	SetLastNote(root, path string)
}

// Sink is the presentation surface the controller drives. Implementations
// must tolerate being called in any loaded state; the controller guarantees
// ordering (tree teardown before title/breadcrumb before content).
type Sink interface {
	RenderContent(doc render.Document)
	UpdateBreadcrumb(path, collectionRoot string)
	SetTitle(title string)
	RenderTree(nodes []tree.Node, activePath string)
	HighlightTreeSelection(path string)
	SetTreeVisible(visible bool)
	SetNavButtons(canBack, canForward bool)
	Notify(err error)
}
