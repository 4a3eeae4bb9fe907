package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wikiview/internal/config"
	"wikiview/internal/fzf"
	"wikiview/internal/tui/viewer"
)

var (
	pickFlag    bool
	noWatchFlag bool
	styleFlag   string
	debugFlag   bool
	cfgFileFlag string
)

var rootCmd = &cobra.Command{
	Use:   "wikiview [path]",
	Short: "Browse markdown notes and wikis in the terminal.",
	Long: heredoc.Doc(`
		wikiview opens a markdown file or a folder of notes in a terminal
		viewer. Folders get a filterable tree sidebar; wikilinks and
		relative links are followable, with back/forward history, and the
		view reloads when files change on disk.

		Opening a folder selects its index.md (or the first note) and
		remembers your last-read note per folder across sessions.
	`),
	Example: heredoc.Doc(`
		wikiview notes/
		wikiview readme.md
		wikiview --pick notes/
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("wikiview requires an interactive terminal")
		}

		var cfg *config.Config
		var err error
		if cfgFileFlag != "" {
			cfg, err = config.LoadFile(cfgFileFlag)
		} else {
			var home string
			home, err = os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to locate home directory: %w", err)
			}
			cfg, err = config.Load(home)
		}
		if err != nil {
			return err
		}
		if styleFlag != "" {
			if err := config.ValidateStyle(styleFlag); err != nil {
				return err
			}
			cfg.Style = styleFlag
		}

		if debugFlag {
			f, err := tea.LogToFile("wikiview-debug.log", "debug")
			if err != nil {
				return fmt.Errorf("failed to open debug log: %w", err)
			}
			defer f.Close()
		}

		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		path = abs

		if pickFlag {
			note, err := fzf.NewFinder(path).Find()
			if errors.Is(err, fzf.ErrAborted) {
				fmt.Println("No note selected")
				return nil
			}
			if err != nil {
				return err
			}
			path = note
		}

		return viewer.Run(path, cfg, viewer.Options{NoWatch: noWatchFlag})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().
		BoolVarP(&pickFlag, "pick", "p", false, "fuzzy-pick a note under the given folder before opening")
	rootCmd.Flags().
		BoolVar(&noWatchFlag, "no-watch", false, "disable reloading when files change on disk")
	rootCmd.Flags().
		StringVar(&styleFlag, "style", "", "glamour style for rendering (auto, dark, light, dracula, ...)")
	rootCmd.Flags().
		BoolVar(&debugFlag, "debug", false, "log debug output to wikiview-debug.log")
	rootCmd.Flags().
		StringVar(&cfgFileFlag, "config", "", "config file (default is $HOME/.config/wikiview/config.yaml)")
}
