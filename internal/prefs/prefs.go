// Package prefs persists small viewer preferences: the last selected note
// per collection, the tree pane width, and the hidden-entry toggle. All
// persistence is best-effort; a broken state file only costs the defaults.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const stateFile = "state.json"

type state struct {
	LastNotes   map[string]string `json:"lastNotes,omitempty"`
	TreeWidth   int               `json:"treeWidth,omitempty"`
	ShowHidden  bool              `json:"showHidden,omitempty"`
	LastOpened  string            `json:"lastOpened,omitempty"`
	KeyedValues map[string]string `json:"values,omitempty"`
}

// Store is a file-backed preference store. Safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
	data state
}

// Open loads the store from dir/state.json. A missing or unreadable file
// yields an empty store, never an error.
func Open(dir string) *Store {
	s := &Store{path: filepath.Join(dir, stateFile)}
	s.data.LastNotes = map[string]string{}
	s.data.KeyedValues = map[string]string{}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}
	var loaded state
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return s
	}
	if loaded.LastNotes == nil {
		loaded.LastNotes = map[string]string{}
	}
	if loaded.KeyedValues == nil {
		loaded.KeyedValues = map[string]string{}
	}
	s.data = loaded
	return s
}

// DefaultDir returns the per-user preferences directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wikiview"), nil
}

// LastNote returns the persisted last-selected note for a collection root.
func (s *Store) LastNote(root string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.data.LastNotes[root]
	return path, ok && path != ""
}

// SetLastNote records the last-selected note for a collection root.
func (s *Store) SetLastNote(root, path string) {
	s.mu.Lock()
	s.data.LastNotes[root] = path
	s.mu.Unlock()
	s.save()
}

// TreeWidth returns the persisted tree pane width, 0 when unset.
func (s *Store) TreeWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.TreeWidth
}

// SetTreeWidth persists the tree pane width.
func (s *Store) SetTreeWidth(width int) {
	s.mu.Lock()
	s.data.TreeWidth = width
	s.mu.Unlock()
	s.save()
}

// ShowHidden returns the persisted hidden-entry toggle.
func (s *Store) ShowHidden() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.ShowHidden
}

// SetShowHidden persists the hidden-entry toggle.
func (s *Store) SetShowHidden(show bool) {
	s.mu.Lock()
	s.data.ShowHidden = show
	s.mu.Unlock()
	s.save()
}

// Get returns a free-form persisted value.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data.KeyedValues[key]
	return value, ok
}

// Set persists a free-form value. Failures are swallowed.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	s.data.KeyedValues[key] = value
	s.mu.Unlock()
	s.save()
}

// save writes the state file, creating the directory as needed. Errors are
// deliberately dropped: preferences are never worth interrupting the user.
func (s *Store) save() {
	s.mu.Lock()
	raw, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(s.path, raw, 0o644)
}
