package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Practice.Words != nil || cfg.Stats.Backend != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `[practice]
mode = "snippets"
words = 25
difficulty = "symbols"
focus-weak = false
weak-factor = 3.5
seed = 42

[stats]
backend = "sqlite"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	p := cfg.Practice
	if p.Mode == nil || *p.Mode != "snippets" {
		t.Fatalf("unexpected mode: %v", p.Mode)
	}
	if p.Words == nil || *p.Words != 25 {
		t.Fatalf("unexpected words: %v", p.Words)
	}
	if p.FocusWeak == nil || *p.FocusWeak {
		t.Fatalf("expected focus-weak=false to be set")
	}
	if p.WeakFactor == nil || *p.WeakFactor != 3.5 {
		t.Fatalf("unexpected weak-factor: %v", p.WeakFactor)
	}
	if p.Seed == nil || *p.Seed != 42 {
		t.Fatalf("unexpected seed: %v", p.Seed)
	}
	if p.Highlight != nil {
		t.Fatalf("expected unset highlight")
	}
	if cfg.Stats.Backend == nil || *cfg.Stats.Backend != "sqlite" {
		t.Fatalf("unexpected backend: %v", cfg.Stats.Backend)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nlang = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "practice.lang") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typedrill", "config.toml")
	created, err := WriteTemplate(path)
	if err != nil || !created {
		t.Fatalf("expected template to be created, got %v %v", created, err)
	}
	created, err = WriteTemplate(path)
	if err != nil || created {
		t.Fatalf("expected existing template to be kept, got %v %v", created, err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("template must parse: %v", err)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "typedrill", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultStatsPath("toml"); got != filepath.Join("/data", "typedrill", "stats.toml") {
		t.Fatalf("unexpected stats path %s", got)
	}
	if got := DefaultStatsPath("sqlite"); got != filepath.Join("/data", "typedrill", "stats.db") {
		t.Fatalf("unexpected sqlite path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/data", "typedrill", "typedrill.log") {
		t.Fatalf("unexpected log path %s", got)
	}
}
