// Package config loads gridfix settings from a .gridfix.yaml file
// discovered from the working directory upward. Missing files and
// missing keys fall back to defaults; command-line flags override the
// file at the CLI layer.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file gridfix looks for.
const FileName = ".gridfix.yaml"

// DefaultBoxSanityWidth bounds side-by-side box balancing.
const DefaultBoxSanityWidth = 100

// Config holds the tool settings.
type Config struct {
	// Mode selects the default processing mode: "safe" or "diagram".
	Mode string `yaml:"mode"`
	// Extensions lists the file extensions to process.
	Extensions []string `yaml:"extensions"`
	// RespectGitignore toggles .gitignore filtering during discovery.
	// Unset means enabled.
	RespectGitignore *bool `yaml:"respect_gitignore"`
	// MaxFileSize skips files larger than this many bytes; zero means
	// no limit.
	MaxFileSize int64 `yaml:"max_file_size"`
	// Workers caps parallel file processing; zero means one per CPU.
	Workers int `yaml:"workers"`
	// BoxSanityWidth bounds how wide side-by-side boxes may be balanced.
	BoxSanityWidth int `yaml:"box_sanity_width"`
	// Write rewrites files in place by default instead of dry-running.
	Write bool `yaml:"write"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Mode:           "safe",
		Extensions:     []string{".md", ".markdown"},
		BoxSanityWidth: DefaultBoxSanityWidth,
	}
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Mode == "" {
		c.Mode = def.Mode
	}
	if len(c.Extensions) == 0 {
		c.Extensions = def.Extensions
	}
	if c.BoxSanityWidth == 0 {
		c.BoxSanityWidth = def.BoxSanityWidth
	}
}

// GitignoreEnabled resolves the tri-state respect_gitignore key.
func (c Config) GitignoreEnabled() bool {
	return c.RespectGitignore == nil || *c.RespectGitignore
}

// Load reads and parses one configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Discover walks from dir upward looking for a config file and returns
// the defaults when none exists.
func Discover(dir string) (Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Config{}, fmt.Errorf("resolve %s: %w", dir, err)
	}
	for {
		path := filepath.Join(abs, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("stat %s: %w", path, err)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return Default(), nil
		}
		abs = parent
	}
}
