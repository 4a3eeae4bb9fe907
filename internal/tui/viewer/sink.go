package viewer

import (
	"wikiview/internal/render"
	"wikiview/internal/tree"
)

// uiSink buffers presentation calls from the navigation controller. The
// controller runs synchronously inside Update, so the model reads the
// buffered state right after each call; no locking is needed.
type uiSink struct {
	doc         render.Document
	hasDoc      bool
	title       string
	crumbPath   string
	crumbRoot   string
	nodes       []tree.Node
	activePath  string
	treeDirty   bool
	treeVisible bool
	canBack     bool
	canForward  bool
	errs        []error
}

func (s *uiSink) RenderContent(doc render.Document) {
	s.doc = doc
	s.hasDoc = true
}

func (s *uiSink) UpdateBreadcrumb(path, collectionRoot string) {
	s.crumbPath = path
	s.crumbRoot = collectionRoot
}

func (s *uiSink) SetTitle(title string) {
	s.title = title
}

func (s *uiSink) RenderTree(nodes []tree.Node, activePath string) {
	s.nodes = nodes
	s.activePath = activePath
	s.treeDirty = true
}

func (s *uiSink) HighlightTreeSelection(path string) {
	s.activePath = path
}

func (s *uiSink) SetTreeVisible(visible bool) {
	s.treeVisible = visible
}

func (s *uiSink) SetNavButtons(canBack, canForward bool) {
	s.canBack = canBack
	s.canForward = canForward
}

func (s *uiSink) Notify(err error) {
	s.errs = append(s.errs, err)
}

func (s *uiSink) drainErrors() []error {
	errs := s.errs
	s.errs = nil
	return errs
}
