// Package history implements the bounded back/forward stack behind the
// viewer's navigation. It is a pure data structure: no I/O, no locking, and
// every mutation is a single synchronous step.
package history

import (
	"time"
)

// Mode distinguishes how a history entry was opened.
type Mode int

const (
	// ModeSingle marks an entry opened as a standalone file.
	ModeSingle Mode = iota
	// ModeCollection marks an entry opened as a note inside a wiki folder.
	ModeCollection
)

func (m Mode) String() string {
	if m == ModeCollection {
		return "collection"
	}
	return "single"
}

// Entry is one visited document. Immutable once recorded.
type Entry struct {
	Path       string
	Mode       Mode
	RecordedAt time.Time
}

// DefaultLimit is the number of entries retained when no explicit limit is
// configured.
const DefaultLimit = 100

// Stack is a branch-truncating navigation history with a cursor. The zero
// value is not ready for use; construct with New.
type Stack struct {
	entries []Entry
	cursor  int
	limit   int
	now     func() time.Time
}

// New creates an empty history retaining at most limit entries. A limit
// below one falls back to DefaultLimit.
func New(limit int) *Stack {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Stack{
		entries: make([]Entry, 0, limit),
		cursor:  -1,
		limit:   limit,
		now:     time.Now,
	}
}

// Record appends a visit. Navigating after one or more back-steps discards
// the forward entries first, exactly like a browser history. Recording the
// same (path, mode) as the current entry is a no-op. When the stack
// overflows its limit the oldest entry is evicted and the cursor shifted
// down, so the newest entry is never lost.
func (s *Stack) Record(path string, mode Mode) {
	if s.cursor < len(s.entries)-1 {
		s.entries = s.entries[:s.cursor+1]
	}

	if s.cursor >= 0 {
		cur := s.entries[s.cursor]
		if cur.Path == path && cur.Mode == mode {
			return
		}
	}

	s.entries = append(s.entries, Entry{Path: path, Mode: mode, RecordedAt: s.now()})
	s.cursor = len(s.entries) - 1

	if len(s.entries) > s.limit {
		s.entries = s.entries[1:]
		s.cursor--
	}
}

// CanGoBack reports whether a back-step is legal.
func (s *Stack) CanGoBack() bool {
	return s.cursor > 0
}

// CanGoForward reports whether a forward-step is legal.
func (s *Stack) CanGoForward() bool {
	return s.cursor >= 0 && s.cursor < len(s.entries)-1
}

// GoBack moves the cursor back one entry and returns the now-current entry.
// When no back entry exists it returns false and leaves the stack untouched.
func (s *Stack) GoBack() (Entry, bool) {
	if !s.CanGoBack() {
		return Entry{}, false
	}
	s.cursor--
	return s.entries[s.cursor], true
}

// GoForward moves the cursor forward one entry and returns the now-current
// entry. When no forward entry exists it returns false and leaves the stack
// untouched.
func (s *Stack) GoForward() (Entry, bool) {
	if !s.CanGoForward() {
		return Entry{}, false
	}
	s.cursor++
	return s.entries[s.cursor], true
}

// Current returns the entry at the cursor, if any.
func (s *Stack) Current() (Entry, bool) {
	if s.cursor < 0 {
		return Entry{}, false
	}
	return s.entries[s.cursor], true
}

// Len returns the number of retained entries.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear resets the stack to the empty state. Used when the surrounding
// context is invalidated wholesale, e.g. switching collections.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
	s.cursor = -1
}
