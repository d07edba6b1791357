package config

import (
	"fmt"
)

// Config holds every setting the editor, logger and renderer read.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Render RenderConfig `toml:"render" yaml:"render"`
}

// EditorConfig configures the editing core.
type EditorConfig struct {
	// MarkdownShortcuts enables markdown auto-formatting while typing.
	MarkdownShortcuts bool `toml:"markdown_shortcuts" yaml:"markdown_shortcuts"`

	// Placeholder is shown by the renderer when the document is empty.
	Placeholder string `toml:"placeholder" yaml:"placeholder"`

	// ReadOnly rejects every mutating command.
	ReadOnly bool `toml:"read_only" yaml:"read_only"`

	// StrictInvariants panics on inconsistent span state instead of
	// dropping the offending span.
	StrictInvariants bool `toml:"strict_invariants" yaml:"strict_invariants"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
}

// RenderConfig configures the terminal preview.
type RenderConfig struct {
	Width          int    `toml:"width" yaml:"width"`
	HeadlineColor  string `toml:"headline_color" yaml:"headline_color"`
	QuoteColor     string `toml:"quote_color" yaml:"quote_color"`
	CodeBackground string `toml:"code_background" yaml:"code_background"`
	DividerColor   string `toml:"divider_color" yaml:"divider_color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			MarkdownShortcuts: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Render: RenderConfig{
			Width:          80,
			HeadlineColor:  "#5fafff",
			QuoteColor:     "#808080",
			CodeBackground: "#303030",
			DividerColor:   "#585858",
		},
	}
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Load resolves the configuration: defaults, then the file at path (when
// path is non-empty), then RICHTEXT_ environment variables. The result is
// validated before it is returned.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// Load resolves the configuration using the loader's file system and
// environment.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := l.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := l.env.Apply(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", displayPath(path), err)
	}

	return cfg, nil
}

func displayPath(path string) string {
	if path == "" {
		return "<defaults>"
	}
	return path
}
