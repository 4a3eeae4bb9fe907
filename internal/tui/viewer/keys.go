package viewer

import "github.com/charmbracelet/bubbles/key"

type viewerKeyMap struct {
	toggleFocus  key.Binding
	openNote     key.Binding
	back         key.Binding
	forward      key.Binding
	filter       key.Binding
	clearFilter  key.Binding
	toggleHidden key.Binding
	toggleTree   key.Binding
	copyPath     key.Binding
	widenTree    key.Binding
	narrowTree   key.Binding
	followLink   key.Binding
	toggleHelp   key.Binding
	quit         key.Binding
}

func newViewerKeyMap() *viewerKeyMap {
	return &viewerKeyMap{
		toggleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		openNote: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open"),
		),
		back: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←", "back"),
		),
		forward: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→", "forward"),
		),
		filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter tree"),
		),
		clearFilter: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		toggleHidden: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "toggle hidden"),
		),
		toggleTree: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "toggle tree"),
		),
		copyPath: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		widenTree: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "widen tree"),
		),
		narrowTree: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "narrow tree"),
		),
		followLink: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "follow link"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k viewerKeyMap) fullHelp() []key.Binding {
	return []key.Binding{
		k.toggleFocus,
		k.openNote,
		k.back,
		k.forward,
		k.filter,
		k.toggleHidden,
		k.toggleTree,
		k.copyPath,
		k.followLink,
		k.quit,
	}
}
