package viewer

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// newMarkdownRenderer builds the glamour renderer for the content pane.
// "auto" picks a style from the terminal background; anything else is a
// named glamour style from the config.
func newMarkdownRenderer(style string, wordWrap int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(wordWrap),
		glamour.WithColorProfile(termenv.ANSI256),
	}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	return glamour.NewTermRenderer(opts...)
}
