package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"wikiview/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration.",
	Long: heredoc.Doc(`
		Prints the configuration file location and the settings currently
		in effect, defaults included.
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}
		cfg, err := config.Load(home)
		if err != nil {
			return err
		}

		fmt.Println("file:", config.GetConfigPath(home))
		fmt.Println("history_limit:", cfg.HistoryLimit)
		fmt.Println("hidden_patterns:", strings.Join(cfg.HiddenPatterns, " "))
		fmt.Println("style:", cfg.Style)
		fmt.Println("debounce_ms:", cfg.DebounceMillis)
		fmt.Println("word_wrap:", cfg.WordWrap)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to disk.",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}
		cfg, err := config.Load(home)
		if err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println("Wrote", config.GetConfigPath(home))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
