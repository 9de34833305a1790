package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	History HistoryConfig `json:"history" yaml:"history"`
	Diff    DiffConfig    `json:"diff" yaml:"diff"`
	Filters FilterConfig  `json:"filters" yaml:"filters"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}

// HistoryConfig holds commit history paging options.
type HistoryConfig struct {
	PageSize    int `json:"pageSize" yaml:"pageSize"`       // Default: 20
	MaxPageSize int `json:"maxPageSize" yaml:"maxPageSize"` // Default: 200
}

// DiffConfig holds commit diff options.
type DiffConfig struct {
	ContextLines int `json:"contextLines" yaml:"contextLines"` // Default: 3
	// LegacyFingerprint hashes the file path instead of the diff lines.
	LegacyFingerprint bool `json:"legacyFingerprint" yaml:"legacyFingerprint"`
}

// FilterConfig holds file path filtering options applied to diffs.
type FilterConfig struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Addr    string `json:"addr" yaml:"addr"`       // Default: ":8080"
	Workers int    `json:"workers" yaml:"workers"` // Default: 8
	// ReposRoot is the directory holding one repository per subdirectory.
	ReposRoot string `json:"reposRoot" yaml:"reposRoot"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			PageSize:    20,
			MaxPageSize: 200,
		},
		Diff: DiffConfig{
			ContextLines: 3,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Server: ServerConfig{
			Addr:      ":8080",
			Workers:   8,
			ReposRoot: ".",
		},
	}
}

// defaultFiles are the names probed when no config path is given.
var defaultFiles = []string{".gecko.json", ".gecko.yaml", ".gecko.yml"}

// LoadConfig loads configuration from a file, merging with defaults.
// Files ending in .yaml or .yml are parsed as YAML, anything else as JSON.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findDefault()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func findDefault() string {
	var candidates []string
	candidates = append(candidates, defaultFiles...)
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		for _, name := range defaultFiles {
			candidates = append(candidates, filepath.Join(home, name))
		}
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Validate checks option ranges.
func (c *Config) Validate() error {
	if c.History.PageSize < 1 {
		return fmt.Errorf("history.pageSize must be at least 1, got %d", c.History.PageSize)
	}
	if c.History.MaxPageSize < c.History.PageSize {
		return fmt.Errorf("history.maxPageSize (%d) must not be below history.pageSize (%d)",
			c.History.MaxPageSize, c.History.PageSize)
	}
	if c.Diff.ContextLines < 0 {
		return fmt.Errorf("diff.contextLines must not be negative, got %d", c.Diff.ContextLines)
	}
	if c.Server.Workers < 1 {
		return fmt.Errorf("server.workers must be at least 1, got %d", c.Server.Workers)
	}
	return nil
}

// SaveConfig saves configuration to a file, as YAML or JSON by extension.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
