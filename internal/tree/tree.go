// Package tree models the note tree shown for an open collection and the
// pure filtering applied to it. Source trees are never mutated; every filter
// produces a derived tree.
package tree

import (
	"strings"
)

// Node is one entry in the collection tree. A node with no children is a
// file; anything else is a directory. There is no separate kind flag.
type Node struct {
	Name     string
	Path     string
	Children []Node
}

// IsDir reports whether the node represents a directory.
func (n Node) IsDir() bool {
	return len(n.Children) > 0
}

// FilterByName keeps nodes whose name contains query (case-insensitive), and
// every ancestor of such a node. Retained directories carry only their
// surviving children. An empty or whitespace-only query returns the input
// unchanged.
func FilterByName(nodes []Node, query string) []Node {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nodes
	}
	return filterByName(nodes, strings.ToLower(trimmed))
}

func filterByName(nodes []Node, query string) []Node {
	var kept []Node
	for _, node := range nodes {
		children := filterByName(node.Children, query)
		selfMatch := strings.Contains(strings.ToLower(node.Name), query)
		if !selfMatch && len(children) == 0 {
			continue
		}
		filtered := node
		filtered.Children = children
		kept = append(kept, filtered)
	}
	return kept
}

// Walk calls fn for every node in depth-first order, directories before
// their children. Returning false from fn stops the walk.
func Walk(nodes []Node, fn func(Node) bool) bool {
	for _, node := range nodes {
		if !fn(node) {
			return false
		}
		if !Walk(node.Children, fn) {
			return false
		}
	}
	return true
}

// Find returns the node with the given path, searching depth-first.
func Find(nodes []Node, path string) (Node, bool) {
	var found Node
	ok := false
	Walk(nodes, func(n Node) bool {
		if n.Path == path {
			found = n
			ok = true
			return false
		}
		return true
	})
	return found, ok
}
