package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DRIFTWATCH_API_URL", "")
	t.Setenv("DRIFTWATCH_DEBUG", "")

	cfg := Load()
	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if cfg.RequestTimeout() != 60*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout())
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".driftwatch")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	fileCfg := Config{APIURL: "http://file:9000", Theme: "light", RequestTimeoutSeconds: 30}
	data, _ := json.Marshal(fileCfg)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DRIFTWATCH_API_URL", "http://env:9001")
	t.Setenv("DRIFTWATCH_DEBUG", "true")

	cfg := Load()
	if cfg.APIURL != "http://env:9001" {
		t.Errorf("APIURL = %q, env must override file", cfg.APIURL)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, file must override default", cfg.Theme)
	}
	if cfg.RequestTimeoutSeconds != 30 {
		t.Errorf("RequestTimeoutSeconds = %d", cfg.RequestTimeoutSeconds)
	}
	if !cfg.DebugMode {
		t.Error("DebugMode not picked up from env")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DRIFTWATCH_API_URL", "")
	t.Setenv("DRIFTWATCH_DEBUG", "")

	want := Config{APIURL: "http://saved:8000", Theme: "dark", RequestTimeoutSeconds: 45}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := Load()
	if got.APIURL != want.APIURL || got.Theme != want.Theme || got.RequestTimeoutSeconds != 45 {
		t.Errorf("Load after Save = %+v", got)
	}
}

func TestHistoryPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	path, err := cfg.HistoryPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "history.db" {
		t.Errorf("HistoryPath = %q", path)
	}

	cfg.HistoryDBPath = "/tmp/custom.db"
	path, _ = cfg.HistoryPath()
	if path != "/tmp/custom.db" {
		t.Errorf("explicit HistoryPath = %q", path)
	}
}
