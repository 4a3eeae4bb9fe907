package viewer

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wikiview/internal/config"
	"wikiview/internal/nav"
	"wikiview/internal/prefs"
	"wikiview/internal/render"
	"wikiview/internal/watcher"
	"wikiview/internal/wiki"
)

type Options struct {
	NoWatch bool
}

// listerAdapter narrows *wiki.Lister to the nav interface; the concrete
// collection pointer must not leak into the interface value on error.
type listerAdapter struct {
	lister *wiki.Lister
}

func (a listerAdapter) Open(path string) (nav.Collection, error) {
	col, err := a.lister.Open(path)
	if err != nil {
		return nil, err
	}
	return col, nil
}

type nopRegistrar struct{}

func (nopRegistrar) Watch([]string) error { return nil }

// Run opens path (file or folder) in the viewer and blocks until quit.
func Run(path string, cfg *config.Config, opts Options) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	prefsDir, err := prefs.DefaultDir()
	if err != nil {
		return fmt.Errorf("failed to locate preferences: %w", err)
	}
	store := prefs.Open(prefsDir)

	renderer := render.New()
	sink := &uiSink{}

	var (
		registrar nav.Registrar = nopRegistrar{}
		watch     *watcher.Watcher
	)
	if !opts.NoWatch {
		watch, err = watcher.New(time.Duration(cfg.DebounceMillis) * time.Millisecond)
		if err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
		defer watch.Close()
		registrar = watch
	}

	ctl := nav.New(
		renderer,
		listerAdapter{lister: wiki.NewLister(renderer)},
		registrar,
		store,
		sink,
		cfg.HistoryLimit,
	)

	if info.IsDir() {
		err = ctl.LoadCollection(path)
	} else {
		err = ctl.LoadSingle(path)
	}
	if err != nil {
		return err
	}

	m := NewModel(ctl, sink, watch, store, cfg)
	m.sync()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}
	return nil
}
