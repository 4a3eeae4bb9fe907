package fzf

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"
)

// ErrAborted is returned when the user closes the picker without choosing.
var ErrAborted = errors.New("no note selected")

// Finder fuzzy-picks a markdown note under a root directory with a styled
// preview pane.
type Finder struct {
	root  string
	files []string
}

func NewFinder(root string) *Finder {
	return &Finder{root: root}
}

// Find lists the notes and runs the picker, returning the chosen absolute
// path.
func (f *Finder) Find() (string, error) {
	if err := f.collect(); err != nil {
		return "", err
	}
	if len(f.files) == 0 {
		return "", errors.New("no markdown notes found")
	}

	idx, err := fuzzyfinder.Find(
		f.files,
		func(i int) string {
			rel, relErr := filepath.Rel(f.root, f.files[i])
			if relErr != nil {
				return f.files[i]
			}
			return filepath.ToSlash(rel)
		},
		fuzzyfinder.WithPreviewWindow(f.preview),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrAborted
		}
		return "", err
	}
	return f.files[idx], nil
}

func (f *Finder) collect() error {
	f.files = f.files[:0]
	return filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") && path != f.root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(name), ".md") {
			f.files = append(f.files, path)
		}
		return nil
	})
}

func (f *Finder) preview(i, w, h int) string {
	if i < 0 || i >= len(f.files) {
		return ""
	}
	content, err := os.ReadFile(f.files[i])
	if err != nil {
		return "Error reading file"
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(w),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}
	return markdown
}
