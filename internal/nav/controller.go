package nav

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"wikiview/internal/history"
	"wikiview/internal/pathutil"
	"wikiview/internal/render"
)

// Mode aliases the history mode: the document context and the history
// stack share the same notion of how a document was opened.
type Mode = history.Mode

const (
	ModeSingle     = history.ModeSingle
	ModeCollection = history.ModeCollection
)

// Snapshot is a copy of the document context, safe to inspect outside the
// controller's lock.
type Snapshot struct {
	Loaded         bool
	Mode           Mode
	CurrentPath    string
	BaseDir        string
	CollectionRoot string
}

// Controller orchestrates every navigation state transition. Construct one
// per viewer; all state lives on the instance, so tests get isolation by
// constructing fresh controllers.
//
// Operations may be invoked from concurrent completions. A per-navigation
// generation token makes overlapping navigations safe: the last operation
// to start wins, and completions holding a stale token discard their
// mutations instead of committing them.
type Controller struct {
	renderer  Renderer
	lister    Lister
	registrar Registrar
	prefs     PrefStore
	sink      Sink
	hist      *history.Stack

	mu         sync.Mutex
	generation uint64

	loaded      bool
	mode        Mode
	currentPath string
	baseDir     string
	collection  Collection
}

// New wires a controller to its collaborators. historyLimit bounds the
// back/forward stack.
func New(renderer Renderer, lister Lister, registrar Registrar, prefs PrefStore, sink Sink, historyLimit int) *Controller {
	return &Controller{
		renderer:  renderer,
		lister:    lister,
		registrar: registrar,
		prefs:     prefs,
		sink:      sink,
		hist:      history.New(historyLimit),
	}
}

// Snapshot returns a copy of the current document context.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Loaded:      c.loaded,
		Mode:        c.mode,
		CurrentPath: c.currentPath,
		BaseDir:     c.baseDir,
	}
	if c.collection != nil {
		snap.CollectionRoot = c.collection.Root()
	}
	return snap
}

// CanGoBack reports whether back-navigation is possible.
func (c *Controller) CanGoBack() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.CanGoBack()
}

// CanGoForward reports whether forward-navigation is possible.
func (c *Controller) CanGoForward() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.CanGoForward()
}

// HistoryLen exposes the retained history size.
func (c *Controller) HistoryLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.Len()
}

type loadFlags struct {
	watch  bool
	record bool
}

// LoadSingle opens a standalone markdown file, leaving any open collection
// behind. On failure the previous state remains authoritative.
func (c *Controller) LoadSingle(path string) error {
	return c.loadSingle(path, loadFlags{watch: true, record: true})
}

func (c *Controller) loadSingle(path string, flags loadFlags) error {
	gen := c.begin()

	doc, err := c.renderer.RenderDocument(path)
	if err != nil {
		c.sink.Notify(err)
		return err
	}

	c.mu.Lock()
	if c.stale(gen) {
		c.mu.Unlock()
		return nil
	}

	leavingCollection := c.mode == ModeCollection && c.collection != nil
	c.loaded = true
	c.mode = ModeSingle
	c.currentPath = pathutil.NormalizePath(filepath.ToSlash(path))
	c.baseDir = pathutil.NormalizeBase(doc.BaseDir)
	c.collection = nil
	current := c.currentPath
	c.mu.Unlock()

	// Tear down collection artifacts before touching title or content so a
	// stale tree never shares a frame with the new document.
	if leavingCollection {
		c.sink.SetTreeVisible(false)
	}
	c.sink.SetTitle(filepath.Base(current))
	c.sink.UpdateBreadcrumb(current, "")
	c.sink.RenderContent(doc)

	if flags.watch {
		if err := c.registrar.Watch([]string{path}); err != nil {
			c.sink.Notify(err)
		}
	}
	if flags.record {
		c.record(current, ModeSingle)
	}
	return nil
}

// LoadCollection opens a folder of notes. The tree is shown first, then the
// initial note (lister-supplied, else the persisted last selection, else an
// empty content state). The collection root is always watched, whatever
// note ended up selected.
func (c *Controller) LoadCollection(path string) error {
	gen := c.begin()

	col, err := c.lister.Open(path)
	if err != nil {
		c.sink.Notify(err)
		return err
	}

	root := col.Root()

	c.mu.Lock()
	if c.stale(gen) {
		c.mu.Unlock()
		return nil
	}
	if c.collection != nil && c.collection.Root() != root {
		// A different collection invalidates recorded positions wholesale.
		c.hist.Clear()
	}
	c.loaded = true
	c.mode = ModeCollection
	c.collection = col
	c.baseDir = root
	c.currentPath = ""
	c.mu.Unlock()

	c.sink.SetTreeVisible(true)
	c.sink.SetTitle(filepath.Base(root))

	selected, doc, ok := col.InitialNote()
	if !ok {
		if last, found := c.prefs.LastNote(root); found && pathutil.Within(root, last) {
			if lastDoc, err := col.RenderNote(last); err == nil {
				selected, doc, ok = pathutil.NormalizePath(last), lastDoc, true
			}
		}
	}

	if ok {
		c.mu.Lock()
		c.currentPath = selected
		c.mu.Unlock()
		c.sink.RenderTree(col.Tree(), selected)
		c.sink.UpdateBreadcrumb(selected, root)
		c.sink.RenderContent(doc)
		c.record(selected, ModeCollection)
	} else {
		c.sink.RenderTree(col.Tree(), "")
		c.sink.UpdateBreadcrumb("", root)
		c.sink.RenderContent(render.Document{BaseDir: root})
		c.refreshNavButtons()
	}

	if err := c.registrar.Watch([]string{path}); err != nil {
		c.sink.Notify(err)
	}
	return nil
}

// OpenNote displays a note inside the open collection. No-op when no
// collection is open. On failure the previous state remains authoritative.
func (c *Controller) OpenNote(path string) error {
	return c.openNote(path, true)
}

func (c *Controller) openNote(path string, record bool) error {
	c.mu.Lock()
	col := c.collection
	c.mu.Unlock()
	if col == nil {
		return nil
	}

	gen := c.begin()

	doc, err := col.RenderNote(path)
	if err != nil {
		c.sink.Notify(err)
		return err
	}

	root := col.Root()
	normalized := pathutil.NormalizePath(filepath.ToSlash(path))

	c.mu.Lock()
	if c.stale(gen) || c.collection != col {
		c.mu.Unlock()
		return nil
	}
	c.currentPath = normalized
	c.baseDir = root
	c.mu.Unlock()

	c.sink.RenderContent(doc)
	c.sink.HighlightTreeSelection(normalized)
	c.sink.UpdateBreadcrumb(normalized, root)
	c.prefs.SetLastNote(root, normalized)

	if record {
		c.record(normalized, ModeCollection)
	}
	return nil
}

// OpenRelativeLink resolves href against the active base directory and
// opens the result: as a collection note when a collection is open,
// otherwise as a standalone file. Silently ignores links when nothing is
// loaded yet.
func (c *Controller) OpenRelativeLink(href string) error {
	c.mu.Lock()
	loaded := c.loaded
	inCollection := c.collection != nil
	base := c.baseDir
	if inCollection {
		base = c.collection.Root()
	}
	c.mu.Unlock()

	if !loaded || base == "" {
		return nil
	}

	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}
	resolved := pathutil.Resolve(base, href)

	if inCollection {
		return c.OpenNote(resolved)
	}
	return c.LoadSingle(resolved)
}

// NavigateBack replays the previous history entry. The history cursor
// moves before the replay; a failed replay leaves it moved, reflecting
// intent rather than render success (errors propagate so the caller can
// surface them).
func (c *Controller) NavigateBack() error {
	c.mu.Lock()
	entry, ok := c.hist.GoBack()
	c.mu.Unlock()
	if !ok {
		return nil
	}
	c.refreshNavButtons()
	return c.replay(entry)
}

// NavigateForward replays the next history entry. Same cursor semantics as
// NavigateBack.
func (c *Controller) NavigateForward() error {
	c.mu.Lock()
	entry, ok := c.hist.GoForward()
	c.mu.Unlock()
	if !ok {
		return nil
	}
	c.refreshNavButtons()
	return c.replay(entry)
}

func (c *Controller) replay(entry history.Entry) error {
	c.mu.Lock()
	col := c.collection
	c.mu.Unlock()

	if entry.Mode == ModeCollection && col != nil && pathutil.Within(col.Root(), entry.Path) {
		return c.openNote(entry.Path, false)
	}
	// Collection entries whose collection is gone degrade to a standalone
	// load; the file still exists even if the wiki context does not.
	return c.loadSingle(entry.Path, loadFlags{watch: true, record: false})
}

// HandleChanges reacts to a batch of watcher-reported paths. When the
// current document (or a directory above it) changed, it is reloaded in
// place. Reload errors are swallowed: a transient race during a save must
// not interrupt the user. Duplicate history entries are prevented by the
// stack's own suppression.
func (c *Controller) HandleChanges(changed []string) {
	c.mu.Lock()
	loaded := c.loaded
	mode := c.mode
	current := pathutil.NormalizePath(c.currentPath)
	c.mu.Unlock()

	if !loaded || current == "" {
		return
	}

	affected := false
	for _, path := range changed {
		normalized := pathutil.NormalizePath(path)
		if current == normalized || strings.HasPrefix(current, normalized+pathutil.Separator) {
			affected = true
			break
		}
	}
	if !affected {
		return
	}

	// Recording would truncate forward history before the stack's own
	// duplicate check runs, so a reload right after a back-step must not
	// record when the cursor already sits on the current path.
	c.mu.Lock()
	cursor, ok := c.hist.Current()
	record := !(ok && cursor.Path == current && cursor.Mode == mode)
	c.mu.Unlock()

	if mode == ModeCollection {
		_ = c.openNote(current, record)
		return
	}
	_ = c.loadSingle(current, loadFlags{watch: false, record: record})
}

// ClearHistory drops all recorded entries.
func (c *Controller) ClearHistory() {
	c.mu.Lock()
	c.hist.Clear()
	c.mu.Unlock()
	c.refreshNavButtons()
}

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

// stale must be called with c.mu held.
func (c *Controller) stale(gen uint64) bool {
	return gen != c.generation
}

func (c *Controller) record(path string, mode Mode) {
	c.mu.Lock()
	c.hist.Record(path, mode)
	c.mu.Unlock()
	c.refreshNavButtons()
}

func (c *Controller) refreshNavButtons() {
	c.mu.Lock()
	back, forward := c.hist.CanGoBack(), c.hist.CanGoForward()
	c.mu.Unlock()
	c.sink.SetNavButtons(back, forward)
}
