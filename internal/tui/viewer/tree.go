package viewer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"wikiview/internal/tree"
)

const (
	minTreeWidth     = 16
	maxTreeWidth     = 60
	defaultTreeWidth = 28
)

type treeRow struct {
	name  string
	path  string
	depth int
	isDir bool
	icon  string
}

// treePane is the folder sidebar: the full node set from the lister plus
// the display pipeline (name filter, then hidden filter, then flatten).
// Collapsed state and the cursor survive re-filtering as long as the paths
// still exist.
type treePane struct {
	source     []tree.Node
	rows       []treeRow
	filter     textinput.Model
	hidden     *tree.HiddenMatcher
	showHidden bool
	collapsed  map[string]bool
	cursor     int
	filtering  bool
	width      int
	height     int
	offset     int
}

func newTreePane(patterns []string, showHidden bool, width int) treePane {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"
	ti.CharLimit = 64

	if width < minTreeWidth || width > maxTreeWidth {
		width = defaultTreeWidth
	}

	return treePane{
		filter:     ti,
		hidden:     tree.NewHiddenMatcher(patterns),
		showHidden: showHidden,
		collapsed:  make(map[string]bool),
		width:      width,
	}
}

func (t *treePane) setNodes(nodes []tree.Node, activePath string) {
	t.source = nodes
	t.apply()
	if activePath != "" {
		t.selectPath(activePath)
	}
}

// apply rebuilds the visible rows from the source through both filters.
func (t *treePane) apply() {
	var selected string
	if row, ok := t.selected(); ok {
		selected = row.path
	}

	visible := tree.FilterByName(t.source, t.filter.Value())
	visible = tree.FilterHidden(visible, t.hidden, t.showHidden)

	t.rows = t.rows[:0]
	t.flatten(visible, 0)

	t.cursor = 0
	for i, row := range t.rows {
		if row.path == selected {
			t.cursor = i
			break
		}
	}
	t.clampScroll()
}

func (t *treePane) flatten(nodes []tree.Node, depth int) {
	for _, n := range nodes {
		t.rows = append(t.rows, treeRow{
			name:  n.Name,
			path:  n.Path,
			depth: depth,
			isDir: n.IsDir(),
			icon:  tree.Icon(n),
		})
		if n.IsDir() && !t.collapsed[n.Path] {
			t.flatten(n.Children, depth+1)
		}
	}
}

func (t *treePane) selected() (treeRow, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return treeRow{}, false
	}
	return t.rows[t.cursor], true
}

func (t *treePane) selectPath(path string) {
	for i, row := range t.rows {
		if row.path == path {
			t.cursor = i
			t.clampScroll()
			return
		}
	}
}

func (t *treePane) moveCursor(delta int) {
	t.cursor += delta
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	t.clampScroll()
}

func (t *treePane) toggleCollapse() {
	row, ok := t.selected()
	if !ok || !row.isDir {
		return
	}
	t.collapsed[row.path] = !t.collapsed[row.path]
	t.apply()
	t.selectPath(row.path)
}

func (t *treePane) toggleHidden() {
	t.showHidden = !t.showHidden
	t.apply()
}

func (t *treePane) setWidth(width int) {
	if width < minTreeWidth {
		width = minTreeWidth
	}
	if width > maxTreeWidth {
		width = maxTreeWidth
	}
	t.width = width
}

func (t *treePane) startFilter() tea.Cmd {
	t.filtering = true
	return t.filter.Focus()
}

func (t *treePane) stopFilter(clear bool) {
	t.filtering = false
	t.filter.Blur()
	if clear {
		t.filter.SetValue("")
		t.apply()
	}
}

func (t *treePane) updateFilter(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.filter, cmd = t.filter.Update(msg)
	t.apply()
	return cmd
}

func (t *treePane) clampScroll() {
	visible := t.visibleRows()
	if visible <= 0 {
		return
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+visible {
		t.offset = t.cursor - visible + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

func (t *treePane) visibleRows() int {
	// One line reserved for the filter input.
	return t.height - 1
}

func (t *treePane) view(activePath string, focused bool) string {
	var b strings.Builder

	if t.filtering || t.filter.Value() != "" {
		b.WriteString(truncate(t.filter.View(), t.width))
	} else {
		b.WriteString(dimStyle.Render(truncate("/ to filter", t.width)))
	}
	b.WriteString("\n")

	visible := t.visibleRows()
	end := t.offset + visible
	if end > len(t.rows) {
		end = len(t.rows)
	}
	for i := t.offset; i < end; i++ {
		row := t.rows[i]
		line := strings.Repeat("  ", row.depth) + row.icon + " " + row.name
		line = truncate(line, t.width)

		switch {
		case i == t.cursor && focused:
			line = selectedRowStyle.Render(line)
		case row.path == activePath:
			line = activeRowStyle.Render(line)
		case row.isDir:
			line = dimStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return treeStyle.Width(t.width).Height(t.height).Render(
		strings.TrimRight(b.String(), "\n"),
	)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
