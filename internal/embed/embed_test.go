package embed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeVault(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func TestBuildIndexAndResolve(t *testing.T) {
	root := writeVault(t, map[string]string{
		"index.md":        "root",
		"notes/alpha.md":  "alpha",
		"notes/beta.md":   "beta",
		"other/alpha.md":  "shadow",
		"assets/pic.png":  "binary-ish",
		".obsidian/x.md":  "hidden",
		"notes/deep/c.md": "deep",
	})

	idx, err := BuildIndex(root)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	// Relative-path targets, with and without extension.
	for _, target := range []string{"notes/beta", "notes/beta.md"} {
		path, isNote, ok := idx.Resolve(Link{Target: target})
		if !ok || !isNote {
			t.Fatalf("Resolve(%q) failed (ok=%v isNote=%v)", target, ok, isNote)
		}
		if filepath.Base(path) != "beta.md" {
			t.Fatalf("Resolve(%q) = %q", target, path)
		}
	}

	// Bare basename resolves to the first path in sorted order.
	path, _, ok := idx.Resolve(Link{Target: "alpha"})
	if !ok {
		t.Fatal("basename resolve failed")
	}
	if !strings.Contains(filepath.ToSlash(path), "notes/alpha.md") {
		t.Fatalf("ambiguous basename must pick first sorted path, got %q", path)
	}

	// Dot-directories are not indexed.
	if _, _, ok := idx.Resolve(Link{Target: ".obsidian/x"}); ok {
		t.Fatal("hidden directory content must not be indexed")
	}

	if _, _, ok := idx.Resolve(Link{Target: "nope"}); ok {
		t.Fatal("unknown target must not resolve")
	}
}

func TestExpandRewritesWikilinks(t *testing.T) {
	root := writeVault(t, map[string]string{
		"a.md": "see [[b|the other]] and [[missing]]\n",
		"b.md": "content b\n",
	})
	idx, err := BuildIndex(root)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	expanded, err := NewExpander(idx).Expand(filepath.Join(root, "a.md"))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !strings.Contains(expanded, "[the other](") {
		t.Fatalf("alias link not rewritten: %q", expanded)
	}
	if !strings.Contains(expanded, filepath.ToSlash(filepath.Join(root, "b.md"))) {
		t.Fatalf("rewritten link must carry the resolved path: %q", expanded)
	}
	if !strings.Contains(expanded, "*missing*") {
		t.Fatalf("unresolved link must degrade to emphasized text: %q", expanded)
	}
}

func TestExpandInlinesEmbeds(t *testing.T) {
	root := writeVault(t, map[string]string{
		"a.md":     "before\n![[inner]]\nafter\n",
		"inner.md": "---\ntitle: Inner\n---\nEMBEDDED BODY\n",
	})
	idx, _ := BuildIndex(root)

	expanded, err := NewExpander(idx).Expand(filepath.Join(root, "a.md"))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !strings.Contains(expanded, "EMBEDDED BODY") {
		t.Fatalf("embed not inlined: %q", expanded)
	}
	if strings.Contains(expanded, "title: Inner") {
		t.Fatalf("embedded front matter must be stripped: %q", expanded)
	}
	if strings.Contains(expanded, "![[") {
		t.Fatalf("embed syntax left behind: %q", expanded)
	}
}

func TestExpandGuardsCycles(t *testing.T) {
	root := writeVault(t, map[string]string{
		"a.md": "A ![[b]]\n",
		"b.md": "B ![[a]]\n",
	})
	idx, _ := BuildIndex(root)

	expanded, err := NewExpander(idx).Expand(filepath.Join(root, "a.md"))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !strings.Contains(expanded, "(cycle)") {
		t.Fatalf("expected cycle marker, got %q", expanded)
	}
}

func TestExpandHonorsDepthLimit(t *testing.T) {
	files := map[string]string{}
	for i := 0; i <= maxEmbedDepth+2; i++ {
		name := string(rune('a'+i)) + ".md"
		next := string(rune('a' + i + 1))
		files[name] = "level ![[" + next + "]]\n"
	}
	root := writeVault(t, files)
	idx, _ := BuildIndex(root)

	expanded, err := NewExpander(idx).Expand(filepath.Join(root, "a.md"))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !strings.Contains(expanded, "(depth limit)") {
		t.Fatalf("expected depth-limit marker, got %q", expanded)
	}
}

func TestExpandEmbedsAssetAsLink(t *testing.T) {
	idx := &Index{
		byRelPath:  map[string]string{"assets/pic.png": "/v/assets/pic.png"},
		byBasename: map[string][]string{"pic": {"/v/assets/pic.png"}},
	}
	ex := NewExpander(idx)

	got := ex.expandEmbed(Link{Target: "assets/pic.png"}, map[string]bool{}, 0)
	if !strings.Contains(got, "[Asset: pic.png](") {
		t.Fatalf("non-note embeds become asset links, got %q", got)
	}
}

func TestExpandUsesCacheUntilMtimeChanges(t *testing.T) {
	root := writeVault(t, map[string]string{"a.md": "first [[a]]\n"})
	idx, _ := BuildIndex(root)
	ex := NewExpander(idx)
	path := filepath.Join(root, "a.md")

	first, err := ex.Expand(path)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	// Rewrite with a different mtime; the cache must notice.
	if err := os.WriteFile(path, []byte("second\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	second, err := ex.Expand(path)
	if err != nil {
		t.Fatalf("Expand after change: %v", err)
	}
	if first == second {
		t.Fatal("stale cache entry served after mtime change")
	}
	if !strings.Contains(second, "second") {
		t.Fatalf("expected fresh content, got %q", second)
	}
}

func TestExpansionCacheEviction(t *testing.T) {
	c := newExpansionCache()
	now := time.Now()
	for i := 0; i < maxCacheEntries+10; i++ {
		c.put(filepath.Join("/v", string(rune('a'+i%26)), "n", string(rune('0'+i%10))), now, "x")
	}
	if c.len() > maxCacheEntries {
		t.Fatalf("cache exceeded entry cap: %d", c.len())
	}
}
