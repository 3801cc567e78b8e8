package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appDir = "notepad-tui"

// Config is the application configuration.
type Config struct {
	// Appearance
	Theme string `yaml:"theme"` // "dark" or "light"

	Editor EditorConfig `yaml:"editor"`
	Files  FilesConfig  `yaml:"files"`

	// Action name -> key, e.g. "save": "ctrl+s"
	Keybindings map[string]string `yaml:"keybindings"`

	Logging LoggingConfig `yaml:"logging"`
}

// EditorConfig controls the text body, the gutter and their synchronization.
type EditorConfig struct {
	MaxCharsPerLine int    `yaml:"max_chars_per_line"` // 0 = width of the text body
	Measure         string `yaml:"measure"`            // runes | cells
	SyncMode        string `yaml:"sync_mode"`          // wrapped | uniform
	SoftWrap        bool   `yaml:"soft_wrap"`
	TabSize         int    `yaml:"tab_size"`
	ShowHelp        bool   `yaml:"show_help"`
}

// FilesConfig controls the open and save flows.
type FilesConfig struct {
	StartDir      string `yaml:"start_dir"` // empty = working directory
	ClearOnSave   bool   `yaml:"clear_on_save"`
	FilenameStyle string `yaml:"filename_style"` // legacy | padded
	ShowHidden    bool   `yaml:"show_hidden"`
	TextOnly      bool   `yaml:"text_only"`
	WatchDirs     bool   `yaml:"watch_dirs"`
	MaxFileSize   int64  `yaml:"max_file_size"` // bytes
}

// LoggingConfig controls the log file. The terminal is owned by the UI, so logs
// never go to stdout.
type LoggingConfig struct {
	Level    string `yaml:"level"`     // debug, info, warn, error
	FilePath string `yaml:"file_path"` // empty = $XDG_CACHE_HOME/notepad-tui/app.log
}

const (
	SyncWrapped = "wrapped"
	SyncUniform = "uniform"
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Theme: "dark",

		Editor: EditorConfig{
			MaxCharsPerLine: 0,
			Measure:         "runes",
			SyncMode:        SyncWrapped,
			SoftWrap:        true,
			TabSize:         4,
			ShowHelp:        true,
		},

		Files: FilesConfig{
			StartDir:      "",
			ClearOnSave:   false,
			FilenameStyle: "legacy",
			ShowHidden:    false,
			TextOnly:      true,
			WatchDirs:     true,
			MaxFileSize:   10 * 1024 * 1024, // 10 MB
		},

		Keybindings: DefaultKeybindings(),

		Logging: LoggingConfig{
			Level:    "info",
			FilePath: "",
		},
	}
}

// DefaultKeybindings returns the default action -> key map.
func DefaultKeybindings() map[string]string {
	return map[string]string{
		"new":     "ctrl+n",
		"open":    "ctrl+o",
		"save":    "ctrl+s",
		"copy":    "alt+c",
		"paste":   "ctrl+v",
		"focus":   "tab",
		"help":    "f1",
		"palette": "ctrl+p",
		"quit":    "ctrl+q",
	}
}

// Load reads the configuration from the default location, creating the file with
// defaults when it does not exist.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path. A missing file is created with
// defaults. On error the defaults are returned together with the error.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := cfg.Save(path); err != nil {
			return cfg, err
		}
		cfg.fillPaths()
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.fillPaths()
	cfg.applyKeybindingDefaults(DefaultKeybindings())
	_ = cfg.Validate()

	return cfg, nil
}

func (c *Config) fillPaths() {
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = defaultLogPath()
	}
}

func (c *Config) applyKeybindingDefaults(defaults map[string]string) {
	if c.Keybindings == nil {
		c.Keybindings = make(map[string]string, len(defaults))
	}
	for action, key := range defaults {
		current, ok := c.Keybindings[action]
		if !ok || strings.TrimSpace(current) == "" {
			c.Keybindings[action] = key
		}
	}
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultPath returns $XDG_CONFIG_HOME/notepad-tui/config.yaml.
func DefaultPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, appDir, "config.yaml"), nil
}

func defaultLogPath() string {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, _ := os.UserHomeDir()
		cacheDir = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheDir, appDir, "app.log")
}

// Validate resets out-of-range values to their defaults and reports what it fixed.
func (c *Config) Validate() error {
	var problems []error
	def := DefaultConfig()

	if c.Theme != "dark" && c.Theme != "light" {
		problems = append(problems, fmt.Errorf("theme %q", c.Theme))
		c.Theme = def.Theme
	}
	if c.Editor.MaxCharsPerLine < 0 {
		problems = append(problems, fmt.Errorf("editor.max_chars_per_line %d", c.Editor.MaxCharsPerLine))
		c.Editor.MaxCharsPerLine = 0
	}
	if c.Editor.Measure != "runes" && c.Editor.Measure != "cells" {
		problems = append(problems, fmt.Errorf("editor.measure %q", c.Editor.Measure))
		c.Editor.Measure = def.Editor.Measure
	}
	if c.Editor.SyncMode != SyncWrapped && c.Editor.SyncMode != SyncUniform {
		problems = append(problems, fmt.Errorf("editor.sync_mode %q", c.Editor.SyncMode))
		c.Editor.SyncMode = def.Editor.SyncMode
	}
	if c.Editor.TabSize < 1 || c.Editor.TabSize > 16 {
		problems = append(problems, fmt.Errorf("editor.tab_size %d", c.Editor.TabSize))
		c.Editor.TabSize = def.Editor.TabSize
	}
	if c.Files.FilenameStyle != "legacy" && c.Files.FilenameStyle != "padded" {
		problems = append(problems, fmt.Errorf("files.filename_style %q", c.Files.FilenameStyle))
		c.Files.FilenameStyle = def.Files.FilenameStyle
	}
	if c.Files.MaxFileSize < 1024 {
		problems = append(problems, fmt.Errorf("files.max_file_size %d", c.Files.MaxFileSize))
		c.Files.MaxFileSize = def.Files.MaxFileSize
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		problems = append(problems, fmt.Errorf("logging.level %q", c.Logging.Level))
		c.Logging.Level = def.Logging.Level
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config values reset to defaults: %w", errors.Join(problems...))
	}
	return nil
}
