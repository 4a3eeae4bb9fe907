package tree

import (
	"testing"
)

func sampleTree() []Node {
	return []Node{
		{
			Name: "notes",
			Path: "/vault/notes",
			Children: []Node{
				{Name: "alpha.md", Path: "/vault/notes/alpha.md"},
				{
					Name: "deep",
					Path: "/vault/notes/deep",
					Children: []Node{
						{Name: "needle.md", Path: "/vault/notes/deep/needle.md"},
						{Name: "other.md", Path: "/vault/notes/deep/other.md"},
					},
				},
			},
		},
		{
			Name: ".git",
			Path: "/vault/.git",
			Children: []Node{
				{Name: "HEAD", Path: "/vault/.git/HEAD"},
			},
		},
		{Name: "readme.md", Path: "/vault/readme.md"},
	}
}

func TestFilterByNameEmptyQueryIsIdentity(t *testing.T) {
	src := sampleTree()
	for _, query := range []string{"", "   ", "\t"} {
		got := FilterByName(src, query)
		if len(got) != len(src) {
			t.Fatalf("query %q: expected identity, got %d roots", query, len(got))
		}
	}
}

func TestFilterByNameNoMatchIsEmpty(t *testing.T) {
	if got := FilterByName(sampleTree(), "zzz-no-match"); len(got) != 0 {
		t.Fatalf("expected empty result, got %d roots", len(got))
	}
}

func TestFilterByNameKeepsAncestorChain(t *testing.T) {
	got := FilterByName(sampleTree(), "NEEDLE")

	if len(got) != 1 {
		t.Fatalf("expected 1 surviving root, got %d", len(got))
	}
	root := got[0]
	if root.Name != "notes" || len(root.Children) != 1 {
		t.Fatalf("expected notes/ with a single surviving child, got %+v", root)
	}
	deep := root.Children[0]
	if deep.Name != "deep" || len(deep.Children) != 1 {
		t.Fatalf("expected deep/ with only the match retained, got %+v", deep)
	}
	if deep.Children[0].Name != "needle.md" {
		t.Fatalf("expected needle.md, got %q", deep.Children[0].Name)
	}
}

func TestFilterByNameMatchingDirCarriesOnlySurvivors(t *testing.T) {
	got := FilterByName(sampleTree(), "deep")
	if len(got) != 1 {
		t.Fatalf("expected 1 root, got %d", len(got))
	}
	deep := got[0].Children[0]
	if deep.Name != "deep" {
		t.Fatalf("expected deep/ retained, got %+v", got[0])
	}
	// Children that match nothing themselves are dropped even when their
	// parent matched: retained nodes carry only surviving children.
	if len(deep.Children) != 0 {
		t.Fatalf("expected non-matching children pruned, got %+v", deep.Children)
	}
}

func TestFilterByNameDoesNotMutateSource(t *testing.T) {
	src := sampleTree()
	FilterByName(src, "needle")
	if len(src[0].Children[1].Children) != 2 {
		t.Fatal("source tree was mutated by filtering")
	}
}

func TestFilterHiddenShowAllIsIdentity(t *testing.T) {
	src := sampleTree()
	m := NewHiddenMatcher(DefaultHiddenPatterns)
	got := FilterHidden(src, m, true)
	if len(got) != len(src) {
		t.Fatalf("showHidden=true must be identity, got %d roots", len(got))
	}
}

func TestFilterHiddenDropsConventionalEntries(t *testing.T) {
	m := NewHiddenMatcher(DefaultHiddenPatterns)
	got := FilterHidden(sampleTree(), m, false)

	for _, node := range got {
		if node.Name == ".git" {
			t.Fatal(".git must be pruned when hidden entries are off")
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected notes/ and readme.md to survive, got %d roots", len(got))
	}
}

func TestFilterHiddenIsRecursive(t *testing.T) {
	src := []Node{
		{
			Name: "docs",
			Path: "/v/docs",
			Children: []Node{
				{Name: "node_modules", Path: "/v/docs/node_modules", Children: []Node{
					{Name: "pkg.md", Path: "/v/docs/node_modules/pkg.md"},
				}},
				{Name: "ok.md", Path: "/v/docs/ok.md"},
			},
		},
	}
	m := NewHiddenMatcher(DefaultHiddenPatterns)
	got := FilterHidden(src, m, false)
	if len(got) != 1 || len(got[0].Children) != 1 || got[0].Children[0].Name != "ok.md" {
		t.Fatalf("nested hidden entry must be pruned, got %+v", got)
	}
}

func TestFiltersCompose(t *testing.T) {
	m := NewHiddenMatcher(DefaultHiddenPatterns)
	named := FilterByName(sampleTree(), "md")
	got := FilterHidden(named, m, false)

	if _, ok := Find(got, "/vault/.git/HEAD"); ok {
		t.Fatal("hidden entry leaked through composed filters")
	}
	if _, ok := Find(got, "/vault/notes/alpha.md"); !ok {
		t.Fatal("expected alpha.md to survive composed filters")
	}
}

func TestHiddenMatcherSkipsBadPatterns(t *testing.T) {
	m := NewHiddenMatcher([]string{"[", ".git"})
	if !m.Hidden(".git") {
		t.Fatal("valid pattern must still compile when a sibling pattern is malformed")
	}
	if m.Hidden("regular.md") {
		t.Fatal("unexpected match")
	}
}

func TestIcon(t *testing.T) {
	dir := Node{Name: "notes", Children: []Node{{Name: "a.md"}}}
	if Icon(dir) != dirIcon {
		t.Fatalf("expected directory icon, got %q", Icon(dir))
	}
	if Icon(Node{Name: "a.MD"}) != "📝" {
		t.Fatal("extension lookup must be case-insensitive")
	}
	if Icon(Node{Name: "blob.xyz"}) != defaultFileIcon {
		t.Fatal("unknown extensions fall back to the generic icon")
	}
}
