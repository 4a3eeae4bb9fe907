// Package embed resolves Obsidian-style [[wikilinks]] and ![[transclusions]]
// inside an open collection, expanding embeds into the referencing note's
// markdown before rendering.
package embed

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Index maps note references to absolute paths for one collection root.
// Built once per collection load and replaced wholesale on reload.
type Index struct {
	root       string
	byRelPath  map[string]string
	byBasename map[string][]string
}

// BuildIndex walks the collection root and indexes every markdown file by
// its root-relative path (with and without the .md suffix) and by its bare
// basename. Dot-directories are skipped.
func BuildIndex(root string) (*Index, error) {
	idx := &Index{
		root:       root,
		byRelPath:  make(map[string]string),
		byBasename: make(map[string][]string),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := normalizeKey(filepath.ToSlash(rel))
		idx.byRelPath[key] = path
		if trimmed := strings.TrimSuffix(key, ".md"); trimmed != key {
			idx.byRelPath[trimmed] = path
		}

		stem := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		idx.byBasename[stem] = append(idx.byBasename[stem], path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, paths := range idx.byBasename {
		sort.Strings(paths)
	}
	return idx, nil
}

// Resolve maps a parsed wikilink target to an absolute path. Targets with a
// slash resolve against the root-relative index; bare names resolve by
// basename, first path in sorted order winning when several notes share a
// name. The second return distinguishes markdown notes from other assets.
func (idx *Index) Resolve(link Link) (path string, isNote, ok bool) {
	target := normalizeKey(link.Target)
	if target == "" {
		return "", false, false
	}

	if strings.Contains(target, "/") {
		if p, found := idx.byRelPath[target]; found {
			return p, isMarkdown(p), true
		}
		if p, found := idx.byRelPath[target+".md"]; found {
			return p, isMarkdown(p), true
		}
		return "", false, false
	}

	stem := strings.TrimSuffix(target, ".md")
	if paths := idx.byBasename[stem]; len(paths) > 0 {
		return paths[0], isMarkdown(paths[0]), true
	}
	return "", false, false
}

func isMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

func normalizeKey(rel string) string {
	return strings.Trim(strings.ReplaceAll(rel, "\\", "/"), "/")
}
