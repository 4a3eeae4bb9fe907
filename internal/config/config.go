package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"wikiview/internal/tree"
)

const (
	configDir      = ".config/wikiview"
	configFile     = "config"
	configFileType = "yaml"

	defaultHistoryLimit   = 100
	defaultDebounceMillis = 400
	defaultWordWrap       = 100
	defaultStyle          = "auto"
)

var validStyles = []string{"auto", "dark", "light", "dracula", "notty", "ascii", "pink"}

// Config holds the viewer's user-tunable settings.
type Config struct {
	// HistoryLimit bounds the back/forward stack.
	HistoryLimit int `yaml:"history_limit"`
	// HiddenPatterns are glob patterns pruned from the tree by default.
	HiddenPatterns []string `yaml:"hidden_patterns"`
	// Style is the glamour style used for terminal rendering.
	Style string `yaml:"style"`
	// DebounceMillis is the file-watch settle window.
	DebounceMillis int `yaml:"debounce_ms"`
	// WordWrap is the rendered content wrap column.
	WordWrap int `yaml:"word_wrap"`

	home string
}

// GetConfigPath returns the config file location under the given home dir.
func GetConfigPath(homeDir string) string {
	return filepath.Join(homeDir, configDir, configFile+"."+configFileType)
}

func defaults(home string) *Config {
	return &Config{
		HistoryLimit:   defaultHistoryLimit,
		HiddenPatterns: append([]string(nil), tree.DefaultHiddenPatterns...),
		Style:          defaultStyle,
		DebounceMillis: defaultDebounceMillis,
		WordWrap:       defaultWordWrap,
		home:           home,
	}
}

// Load reads the config file under home, filling unset fields with
// defaults. A missing config file yields the defaults; a malformed one is
// an error.
func Load(home string) (*Config, error) {
	cfg := defaults(home)

	data, err := os.ReadFile(GetConfigPath(home))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.home = home
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads an explicit config file. Unlike Load, a missing file is
// an error here: the user asked for this exact file.
func LoadFile(path string) (*Config, error) {
	cfg := defaults(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.HistoryLimit < 1 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	if cfg.DebounceMillis < 0 {
		cfg.DebounceMillis = defaultDebounceMillis
	}
	if cfg.WordWrap < 20 {
		cfg.WordWrap = defaultWordWrap
	}
	if cfg.Style == "" {
		cfg.Style = defaultStyle
	}
	if err := ValidateStyle(cfg.Style); err != nil {
		return err
	}
	return nil
}

// ValidateStyle rejects style names glamour does not ship.
func ValidateStyle(style string) error {
	for _, valid := range validStyles {
		if style == valid {
			return nil
		}
	}
	return fmt.Errorf(
		"invalid style %q: must be one of %s",
		style,
		strings.Join(validStyles, ", "),
	)
}

// Save writes the config back to its file through viper, creating the
// directory as needed.
func (cfg *Config) Save() error {
	path := GetConfigPath(cfg.home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(configFileType)
	v.Set("history_limit", cfg.HistoryLimit)
	v.Set("hidden_patterns", cfg.HiddenPatterns)
	v.Set("style", cfg.Style)
	v.Set("debounce_ms", cfg.DebounceMillis)
	v.Set("word_wrap", cfg.WordWrap)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
