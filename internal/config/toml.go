// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Stats    StatsConfig    `toml:"stats"`
	Log      LogConfig      `toml:"log"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Mode         *string  `toml:"mode"`
	Words        *int     `toml:"words"`
	ChunkWords   *int     `toml:"chunk-words"`
	Difficulty   *string  `toml:"difficulty"`
	Highlight    *string  `toml:"highlight"`
	Width        *int     `toml:"width"`
	FocusWeak    *bool    `toml:"focus-weak"`
	WeakTop      *int     `toml:"weak-top"`
	WeakFactor   *float64 `toml:"weak-factor"`
	Seed         *int64   `toml:"seed"`
	WordsPath    *string  `toml:"words-path"`
	SnippetsPath *string  `toml:"snippets-path"`
}

// StatsConfig maps stats persistence settings.
type StatsConfig struct {
	Backend *string `toml:"backend"`
	Path    *string `toml:"path"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	Path  *string `toml:"path"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template is the commented config written by the config command.
const Template = `# typedrill configuration
# Command-line flags override values set here.

[practice]
# mode = "words"            # words | snippets
# words = 0                 # words per session, 0 for endless
# chunk-words = 10          # words generated per chunk
# difficulty = "lowercase"  # lowercase | uppercase | numbers | symbols
# highlight = "word"        # nothing | character | word | next-word | two-words
# width = 60                # maximum line width
# focus-weak = true         # bias content toward weak characters
# weak-top = 5              # weak characters to rotate between
# weak-factor = 2.0         # extra weight per weak character in a word
# seed = 0                  # 0 seeds from the clock
# words-path = ""           # custom word list, one or more words per line
# snippets-path = ""        # custom snippets separated by #!#!#!#!#! lines

[stats]
# backend = "toml"          # toml | sqlite
# path = ""                 # defaults under $XDG_DATA_HOME/typedrill

[log]
# level = "info"            # debug | info | warn | error
# path = ""                 # defaults to $XDG_DATA_HOME/typedrill/typedrill.log
`

// WriteTemplate creates the config file at path if it does not exist.
func WriteTemplate(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
