package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.History.PageSize != 20 {
		t.Errorf("History.PageSize = %d, expected 20", cfg.History.PageSize)
	}
	if cfg.History.MaxPageSize != 200 {
		t.Errorf("History.MaxPageSize = %d, expected 200", cfg.History.MaxPageSize)
	}
	if cfg.Diff.ContextLines != 3 {
		t.Errorf("Diff.ContextLines = %d, expected 3", cfg.Diff.ContextLines)
	}
	if cfg.Diff.LegacyFingerprint {
		t.Error("Diff.LegacyFingerprint should default to false")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, expected %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Server.Workers != 8 {
		t.Errorf("Server.Workers = %d, expected 8", cfg.Server.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadConfig_JSONMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gecko.json")
	data := `{"history": {"pageSize": 50}, "filters": {"exclude": ["vendor/**"]}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.History.PageSize != 50 {
		t.Errorf("History.PageSize = %d, expected 50", cfg.History.PageSize)
	}
	if cfg.History.MaxPageSize != 200 {
		t.Errorf("History.MaxPageSize = %d, expected default 200", cfg.History.MaxPageSize)
	}
	if len(cfg.Filters.Exclude) != 1 || cfg.Filters.Exclude[0] != "vendor/**" {
		t.Errorf("Filters.Exclude = %v", cfg.Filters.Exclude)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gecko.yaml")
	data := `
diff:
  contextLines: 5
  legacyFingerprint: true
server:
  addr: "127.0.0.1:9000"
  reposRoot: /srv/git
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Diff.ContextLines != 5 || !cfg.Diff.LegacyFingerprint {
		t.Errorf("Diff = %+v", cfg.Diff)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.ReposRoot != "/srv/git" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.Workers != 8 {
		t.Errorf("Server.Workers = %d, expected default 8", cfg.Server.Workers)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.History.PageSize != 20 {
		t.Errorf("expected defaults for a missing file, got %+v", cfg.History)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		errPart string
	}{
		{name: "Malformed JSON", file: "c.json", data: `{"history":`, errPart: "parse"},
		{name: "Malformed YAML", file: "c.yml", data: "history: [", errPart: "parse"},
		{name: "Zero page size", file: "c.json", data: `{"history": {"pageSize": 0}}`, errPart: "history.pageSize"},
		{name: "Max below page size", file: "c.json", data: `{"history": {"pageSize": 30, "maxPageSize": 10}}`, errPart: "maxPageSize"},
		{name: "Negative context", file: "c.json", data: `{"diff": {"contextLines": -1}}`, errPart: "contextLines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.errPart) {
				t.Fatalf("LoadConfig error = %v, expected mention of %q", err, tt.errPart)
			}
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.History.PageSize = 42
			cfg.Filters.Include = []string{"**/*.go"}

			path := filepath.Join(t.TempDir(), name)
			if err := SaveConfig(cfg, path); err != nil {
				t.Fatalf("SaveConfig: %v", err)
			}

			loaded, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if loaded.History.PageSize != 42 {
				t.Errorf("History.PageSize = %d, expected 42", loaded.History.PageSize)
			}
			if len(loaded.Filters.Include) != 1 || loaded.Filters.Include[0] != "**/*.go" {
				t.Errorf("Filters.Include = %v", loaded.Filters.Include)
			}
		})
	}
}
