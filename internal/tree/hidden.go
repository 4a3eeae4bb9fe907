package tree

import (
	"github.com/gobwas/glob"
)

// DefaultHiddenPatterns lists conventionally hidden entries pruned from the
// tree unless the user toggles them on. The set is configuration, not
// policy; internal/config lets users override it.
var DefaultHiddenPatterns = []string{
	".git",
	".svn",
	".hg",
	".obsidian",
	".trash",
	"node_modules",
	"vendor",
	"dist",
	"build",
	"target",
	".DS_Store",
	"Thumbs.db",
	".*.swp",
}

// HiddenMatcher tests node names against a compiled set of hidden-entry
// patterns.
type HiddenMatcher struct {
	globs []glob.Glob
}

// NewHiddenMatcher compiles the given patterns, silently skipping any that
// fail to compile. A nil or empty pattern list yields a matcher that hides
// nothing.
func NewHiddenMatcher(patterns []string) *HiddenMatcher {
	m := &HiddenMatcher{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		m.globs = append(m.globs, g)
	}
	return m
}

// Hidden reports whether a node name matches any hidden pattern.
func (m *HiddenMatcher) Hidden(name string) bool {
	for _, g := range m.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// FilterHidden drops nodes (and their subtrees) whose names match the
// hidden set. With showHidden=true it is the identity transform.
func FilterHidden(nodes []Node, m *HiddenMatcher, showHidden bool) []Node {
	if showHidden || m == nil {
		return nodes
	}
	var kept []Node
	for _, node := range nodes {
		if m.Hidden(node.Name) {
			continue
		}
		filtered := node
		filtered.Children = FilterHidden(node.Children, m, false)
		kept = append(kept, filtered)
	}
	return kept
}
