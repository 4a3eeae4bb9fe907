package viewer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"wikiview/internal/config"
	"wikiview/internal/nav"
	"wikiview/internal/prefs"
	"wikiview/internal/render"
	"wikiview/internal/watcher"
)

type focusArea int

const (
	focusContent focusArea = iota
	focusTree
)

type changesMsg []string

type watchClosedMsg struct{}

type Model struct {
	ctl   *nav.Controller
	sink  *uiSink
	watch *watcher.Watcher
	store *prefs.Store
	cfg   *config.Config
	keys  *viewerKeyMap

	tree     treePane
	viewport viewport.Model
	md       *glamour.TermRenderer

	doc     render.Document
	hasDoc  bool
	links   []docLink
	status  string
	isError bool

	focus      focusArea
	treeHidden bool
	showHelp   bool
	width      int
	height     int
	ready      bool
}

func NewModel(
	ctl *nav.Controller,
	sink *uiSink,
	watch *watcher.Watcher,
	store *prefs.Store,
	cfg *config.Config,
) Model {
	return Model{
		ctl:   ctl,
		sink:  sink,
		watch: watch,
		store: store,
		cfg:   cfg,
		keys:  newViewerKeyMap(),
		tree:  newTreePane(cfg.HiddenPatterns, store.ShowHidden(), store.TreeWidth()),
	}
}

func (m Model) Init() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	return m.waitForChanges()
}

func (m Model) waitForChanges() tea.Cmd {
	events := m.watch.Events()
	return func() tea.Msg {
		paths, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return changesMsg(paths)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case changesMsg:
		m.ctl.HandleChanges([]string(msg))
		m.sync()
		return m, m.waitForChanges()

	case watchClosedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tree.filtering {
		switch {
		case key.Matches(msg, m.keys.clearFilter):
			m.tree.stopFilter(true)
			return m, nil
		case msg.String() == "enter":
			m.tree.stopFilter(false)
			return m, nil
		default:
			return m, m.tree.updateFilter(msg)
		}
	}

	m.status = ""
	m.isError = false

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.toggleFocus):
		if m.treeShown() {
			if m.focus == focusTree {
				m.focus = focusContent
			} else {
				m.focus = focusTree
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.back):
		if err := m.ctl.NavigateBack(); err != nil {
			m.setError(err)
		}
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.forward):
		if err := m.ctl.NavigateForward(); err != nil {
			m.setError(err)
		}
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.toggleHidden):
		m.tree.toggleHidden()
		m.store.SetShowHidden(m.tree.showHidden)
		return m, nil

	case key.Matches(msg, m.keys.toggleTree):
		if m.sink.treeVisible {
			m.treeHidden = !m.treeHidden
			if m.treeHidden {
				m.focus = focusContent
			}
			m.resize()
		}
		return m, nil

	case key.Matches(msg, m.keys.filter):
		if m.treeShown() {
			m.focus = focusTree
			return m, m.tree.startFilter()
		}
		return m, nil

	case key.Matches(msg, m.keys.copyPath):
		if path := m.ctl.Snapshot().CurrentPath; path != "" {
			if err := clipboard.WriteAll(path); err != nil {
				m.setError(err)
			} else {
				m.status = "path copied"
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.widenTree):
		if m.treeShown() {
			m.tree.setWidth(m.tree.width + 4)
			m.store.SetTreeWidth(m.tree.width)
			m.resize()
		}
		return m, nil

	case key.Matches(msg, m.keys.narrowTree):
		if m.treeShown() {
			m.tree.setWidth(m.tree.width - 4)
			m.store.SetTreeWidth(m.tree.width)
			m.resize()
		}
		return m, nil

	case key.Matches(msg, m.keys.followLink):
		m.followLink(msg.String())
		return m, nil
	}

	if m.focus == focusTree && m.treeShown() {
		return m.handleTreeKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.openNote) {
		row, ok := m.tree.selected()
		if !ok {
			return m, nil
		}
		if row.isDir {
			m.tree.toggleCollapse()
			return m, nil
		}
		if err := m.ctl.OpenNote(row.path); err != nil {
			m.setError(err)
		}
		m.sync()
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.tree.moveCursor(-1)
	case "down", "j":
		m.tree.moveCursor(1)
	case " ":
		m.tree.toggleCollapse()
	}
	return m, nil
}

func (m *Model) followLink(digit string) {
	idx := int(digit[0] - '1')
	if idx < 0 || idx >= len(m.links) {
		m.status = fmt.Sprintf("no link %s", digit)
		return
	}
	if err := m.ctl.OpenRelativeLink(m.links[idx].href); err != nil {
		m.setError(err)
	}
	m.sync()
}

// sync pulls the latest controller output from the sink into the panes.
func (m *Model) sync() {
	if m.sink.treeDirty {
		m.tree.setNodes(m.sink.nodes, m.sink.activePath)
		m.sink.treeDirty = false
	} else if m.sink.activePath != "" {
		m.tree.selectPath(m.sink.activePath)
	}

	if m.sink.hasDoc {
		m.doc = m.sink.doc
		m.hasDoc = true
		m.sink.hasDoc = false
		m.renderContent()
		m.viewport.GotoTop()
	}

	for _, err := range m.sink.drainErrors() {
		m.setError(err)
	}
	m.resize()
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.isError = true
}

func (m *Model) treeShown() bool {
	return m.sink.treeVisible && !m.treeHidden
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}

	frameW, frameH := appStyle.GetFrameSize()
	bodyHeight := m.height - frameH - 2 // header and status lines
	contentWidth := m.width - frameW
	if m.treeShown() {
		contentWidth -= m.tree.width + treeStyle.GetHorizontalFrameSize()
		m.tree.height = bodyHeight
		m.tree.clampScroll()
	}
	if contentWidth < 20 {
		contentWidth = 20
	}

	if !m.ready || m.viewport.Width != contentWidth || m.viewport.Height != bodyHeight {
		m.viewport.Width = contentWidth
		m.viewport.Height = bodyHeight

		wrap := m.cfg.WordWrap
		if wrap > contentWidth-2 {
			wrap = contentWidth - 2
		}
		md, err := newMarkdownRenderer(m.cfg.Style, wrap)
		if err == nil {
			m.md = md
			m.renderContent()
		}
	}
}

func (m *Model) renderContent() {
	if !m.hasDoc {
		return
	}
	m.links = extractLinks(m.doc.Markdown)

	if m.md == nil {
		m.viewport.SetContent(m.doc.Markdown)
		return
	}
	out, err := m.md.Render(m.doc.Markdown)
	if err != nil {
		m.setError(err)
		m.viewport.SetContent(m.doc.Markdown)
		return
	}
	m.viewport.SetContent(out)
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := titleStyle.Render(m.sink.title) + breadcrumbStyle.Render(m.breadcrumb())

	body := m.viewport.View()
	if m.treeShown() {
		body = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.tree.view(m.sink.activePath, m.focus == focusTree),
			body,
		)
	}

	var status string
	switch {
	case m.isError:
		status = statusErrStyle.Render(m.status)
	case m.showHelp:
		status = helpStyle.Render(m.helpLine())
	case m.status != "":
		status = statusBarStyle.Render(m.status)
	default:
		status = statusBarStyle.Render(m.navLine())
	}

	return appStyle.Render(header + "\n" + body + "\n" + status)
}

func (m Model) breadcrumb() string {
	path := m.sink.crumbPath
	if path == "" {
		return ""
	}
	if root := m.sink.crumbRoot; root != "" {
		if rel, err := filepath.Rel(root, path); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return path
}

func (m Model) navLine() string {
	back := "←"
	if !m.sink.canBack {
		back = dimStyle.Render(back)
	}
	forward := "→"
	if !m.sink.canForward {
		forward = dimStyle.Render(forward)
	}

	parts := []string{back + " " + forward}
	if n := len(m.links); n > 0 {
		parts = append(parts, fmt.Sprintf("%d links (1-9 to follow)", n))
	}
	parts = append(parts, helpStyle.Render("? help"))
	return strings.Join(parts, "  ·  ")
}

func (m Model) helpLine() string {
	var parts []string
	for _, b := range m.keys.fullHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
