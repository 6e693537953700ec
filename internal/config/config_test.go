package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/segment"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beatpattern.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BEATPATTERN_DB_PATH", "")

	conf, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if conf.Database.Path != "beatpattern.sqlite3" {
		t.Errorf("Expected default db path, got %s", conf.Database.Path)
	}
	if conf.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", conf.Server.Port)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[database]
path = "/var/lib/beatpattern/db.sqlite3"

[analysis]
workers = 4
jump-strategy = "whole"
stream-strategy = "windowed"

[server]
port = 9090
allowed-origins = ["https://example.com"]

[log]
level = "debug"
`)

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if conf.Database.Path != "/var/lib/beatpattern/db.sqlite3" {
		t.Errorf("Unexpected db path %s", conf.Database.Path)
	}
	if conf.Analysis.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", conf.Analysis.Workers)
	}
	if conf.Server.Port != 9090 || len(conf.Server.AllowedOrigins) != 1 {
		t.Errorf("Unexpected server config %+v", conf.Server)
	}
	if conf.Log.Level != "debug" {
		t.Errorf("Expected debug log level, got %q", conf.Log.Level)
	}
	if len(conf.ServiceOptions()) != 4 {
		t.Errorf("Expected 4 service options, got %d", len(conf.ServiceOptions()))
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []string{
		"[analysis]\njump-strategy = \"sideways\"\n",
		"[analysis]\nworkers = -1\n",
		"[log]\nlevel = \"loud\"\n",
		"[analysis\n",
	}
	for _, body := range tests {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("Expected error for config %q", body)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	if s, err := ParseStrategy(""); s != nil || err != nil {
		t.Errorf("Expected nil strategy for empty name, got %v, %v", s, err)
	}
	if s, _ := ParseStrategy("whole"); s.Name() != "whole" {
		t.Errorf("Expected whole strategy, got %s", s.Name())
	}
	s, _ := ParseStrategy("windowed")
	w, ok := s.(segment.Windowed)
	if !ok || w.Size != segment.DefaultWindowSize || w.Step != segment.DefaultWindowStep {
		t.Errorf("Expected default windowed strategy, got %#v", s)
	}
}
