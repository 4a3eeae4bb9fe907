package embed

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"wikiview/internal/render"
)

const maxEmbedDepth = 5

// Expander rewrites wikilinks and inlines embeds for notes within one
// collection. It holds the collection's index and a bounded cache of
// expanded markdown; both are discarded when the collection is closed.
type Expander struct {
	index *Index
	cache *expansionCache
}

// NewExpander builds an expander over a prebuilt collection index.
func NewExpander(index *Index) *Expander {
	return &Expander{index: index, cache: newExpansionCache()}
}

// Expand returns path's markdown with every [[wikilink]] rewritten to a
// regular markdown link (href = resolved absolute path) and every
// ![[embed]] replaced by the embedded note's expanded content. Expansion
// recurses at most maxEmbedDepth levels and refuses to revisit a note
// within one expansion. Results are cached by path and mtime; note that
// invalidation only tracks the top-level note's mtime.
func (e *Expander) Expand(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat embed source: %w", err)
	}
	if expanded, ok := e.cache.get(path, info.ModTime()); ok {
		return expanded, nil
	}

	visited := map[string]bool{}
	expanded, err := e.expandNote(path, visited, 0)
	if err != nil {
		return "", err
	}

	e.cache.put(path, info.ModTime(), expanded)
	return expanded, nil
}

func (e *Expander) expandNote(path string, visited map[string]bool, depth int) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read embed source: %w", err)
	}
	_, body := render.SplitFrontMatter(source)
	return e.rewrite(string(body), visited, depth), nil
}

func (e *Expander) rewrite(markdown string, visited map[string]bool, depth int) string {
	spans := findSpans(markdown)
	if len(spans) == 0 {
		return markdown
	}

	// Replace back-to-front so earlier span offsets stay valid.
	sort.Slice(spans, func(i, j int) bool { return spans[i].start > spans[j].start })

	out := markdown
	for _, s := range spans {
		link := parseLink(s.inner)
		var replacement string
		if s.isEmbed {
			replacement = e.expandEmbed(link, visited, depth)
		} else {
			replacement = e.rewriteLink(link)
		}
		out = out[:s.start] + replacement + out[s.end:]
	}
	return out
}

func (e *Expander) rewriteLink(link Link) string {
	display := displayText(link)
	path, _, ok := e.index.Resolve(link)
	if !ok {
		return fmt.Sprintf("*%s*", display)
	}
	return fmt.Sprintf("[%s](%s)", display, encodeHref(path))
}

func (e *Expander) expandEmbed(link Link, visited map[string]bool, depth int) string {
	path, isNote, ok := e.index.Resolve(link)
	if !ok {
		return fmt.Sprintf("*[Embed: %s (not found)]*", link.Target)
	}
	if !isNote {
		name := path
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		return fmt.Sprintf("[Asset: %s](%s)", name, encodeHref(path))
	}
	if visited[path] {
		return fmt.Sprintf("*[Embed: %s (cycle)]*", link.Target)
	}
	if depth >= maxEmbedDepth {
		return fmt.Sprintf("*[Embed: %s (depth limit)]*", link.Target)
	}

	visited[path] = true
	expanded, err := e.expandNote(path, visited, depth+1)
	delete(visited, path)
	if err != nil {
		return fmt.Sprintf("*[Embed: %s (unreadable)]*", link.Target)
	}
	return expanded
}
