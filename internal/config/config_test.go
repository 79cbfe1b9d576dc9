package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/justestif/moodify/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	for _, key := range []string{
		"MOODIFY_ADDR", "MOODIFY_CATALOG", "DATABASE_URL", "MOODIFY_CLASSIFIER_URL",
		"MOODIFY_SONGS_URL", "SPOTIFY_ID", "SPOTIFY_SECRET", "MOODIFY_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "moodify.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, resolved, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != "" {
		t.Fatalf("expected no config file, got %q", resolved)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %q", cfg.Server.Addr)
	}
	if cfg.Catalog.Path != filepath.Join(dir, "dataset.csv") {
		t.Fatalf("unexpected catalog path: %q", cfg.Catalog.Path)
	}
	if cfg.Classifier.Mode != config.ModeLexicon {
		t.Fatalf("unexpected classifier mode: %q", cfg.Classifier.Mode)
	}
	if cfg.Songs.Source != config.SourceLocal || cfg.Songs.Limit != 20 {
		t.Fatalf("unexpected songs section: %+v", cfg.Songs)
	}
	if cfg.ClassifierTimeout() != 10*time.Second {
		t.Fatalf("unexpected classifier timeout: %v", cfg.ClassifierTimeout())
	}
	if cfg.SpotifyEnabled() {
		t.Fatal("expected Spotify disabled by default")
	}
}

func TestLoadProjectFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
[server]
addr = "127.0.0.1:9000"

[classifier]
mode = "Remote"
base_url = "http://classifier:5000/"

[songs]
limit = 5

[logging]
level = "DEBUG"
format = "json"
`)

	cfg, resolved, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(dir, "moodify.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr: %q", cfg.Server.Addr)
	}
	if cfg.Classifier.Mode != config.ModeRemote {
		t.Fatalf("mode not normalized: %q", cfg.Classifier.Mode)
	}
	if cfg.Classifier.BaseURL != "http://classifier:5000" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.Classifier.BaseURL)
	}
	if cfg.Songs.Limit != 5 {
		t.Fatalf("unexpected limit: %d", cfg.Songs.Limit)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
	if cfg.Atlas.Clusters != 5 {
		t.Fatalf("default atlas clusters lost: %d", cfg.Atlas.Clusters)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
[server]
addr = ":1111"
`)
	t.Setenv("MOODIFY_ADDR", ":2222")
	t.Setenv("DATABASE_URL", "postgres://localhost/moodify")
	t.Setenv("SPOTIFY_ID", "id")
	t.Setenv("SPOTIFY_SECRET", "secret")
	t.Setenv("MOODIFY_LOG_LEVEL", "warn")

	cfg, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != ":2222" {
		t.Fatalf("env addr not applied: %q", cfg.Server.Addr)
	}
	if cfg.Catalog.DatabaseURL != "postgres://localhost/moodify" {
		t.Fatalf("env database url not applied: %q", cfg.Catalog.DatabaseURL)
	}
	if !cfg.SpotifyEnabled() {
		t.Fatal("expected Spotify enabled from env")
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("env log level not applied: %q", cfg.Logging.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "unknown mode",
			body:    "[classifier]\nmode = \"magic\"\n",
			wantErr: "classifier.mode",
		},
		{
			name:    "remote classifier without url",
			body:    "[classifier]\nmode = \"remote\"\nbase_url = \"\"\n",
			wantErr: "classifier.base_url",
		},
		{
			name:    "remote songs without url",
			body:    "[songs]\nsource = \"remote\"\n",
			wantErr: "songs.base_url",
		},
		{
			name:    "half spotify credentials",
			body:    "[spotify]\nclient_id = \"abc\"\n",
			wantErr: "spotify.client_id",
		},
		{
			name:    "bad log format",
			body:    "[logging]\nformat = \"xml\"\n",
			wantErr: "logging.format",
		},
		{
			name:    "unknown key",
			body:    "[server]\nport = 80\n",
			wantErr: "parse config",
		},
		{
			name:    "malformed toml",
			body:    "[server\n",
			wantErr: "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := writeConfig(t, dir, tt.body)
			_, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)
	if _, _, err := config.Load(filepath.Join(dir, "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestSampleParsesToDefaults(t *testing.T) {
	var cfg config.Config
	if err := toml.Unmarshal([]byte(config.Sample()), &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	want := config.Default()
	if cfg.Server != want.Server || cfg.Classifier != want.Classifier || cfg.Atlas != want.Atlas || cfg.Logging != want.Logging {
		t.Fatalf("sample config drifted from defaults:\n got %+v\nwant %+v", cfg, want)
	}
	if cfg.Songs.Source != want.Songs.Source || cfg.Songs.Limit != want.Songs.Limit {
		t.Fatalf("sample songs section drifted: %+v", cfg.Songs)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if string(data) != config.Sample() {
		t.Fatal("written sample differs from Sample()")
	}
}
