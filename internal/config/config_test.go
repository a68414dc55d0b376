//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/tracks.yaml",
			expected: filepath.Join(home, "tracks.yaml"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/srv/music/tracks.json",
			expected: "/srv/music/tracks.json",
		},
		{
			name:     "relative path unchanged",
			input:    "lists/default.json",
			expected: "lists/default.json",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "tracklet", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFrom_LaterFileWins(t *testing.T) {
	dir := t.TempDir()
	home := writeConfig(t, dir, "home.toml", `
log_level = "DEBUG"
tracks_file = "/srv/tracks.yaml"

[player]
max_rating = 10
default_rating = 3
`)
	local := writeConfig(t, dir, "local.toml", `
[player]
default_rating = 4
autoplay_next = false

[namespaces]
view = "my.view."
`)

	cfg, err := LoadFrom(home, local, filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.TracksFile != "/srv/tracks.yaml" {
		t.Errorf("TracksFile = %q, want %q", cfg.TracksFile, "/srv/tracks.yaml")
	}
	if cfg.Player.MaxRating != 10 {
		t.Errorf("MaxRating = %d, want 10", cfg.Player.MaxRating)
	}
	if cfg.Player.DefaultRating != 4 {
		t.Errorf("DefaultRating = %d, want 4", cfg.Player.DefaultRating)
	}
	if cfg.GetPlayerConfig().Autoplay() {
		t.Error("Autoplay() = true, want false")
	}
	if cfg.Namespaces.View != "my.view" {
		t.Errorf("Namespaces.View = %q, want %q", cfg.Namespaces.View, "my.view")
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "bad.toml", "log_level = [")

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() error = nil, want parse error")
	}
}

func TestGetPlayerConfig_Defaults(t *testing.T) {
	cfg := Config{}
	player := cfg.GetPlayerConfig()

	if player.MinRating != 1 {
		t.Errorf("MinRating = %d, want 1", player.MinRating)
	}
	if player.MaxRating != 5 {
		t.Errorf("MaxRating = %d, want 5", player.MaxRating)
	}
	if player.DefaultRating != 1 {
		t.Errorf("DefaultRating = %d, want 1", player.DefaultRating)
	}
	if !player.Autoplay() {
		t.Error("Autoplay() = false, want true")
	}
	if player.PlayMode != PlayModeSequential {
		t.Errorf("PlayMode = %q, want %q", player.PlayMode, PlayModeSequential)
	}
}

func TestGetPlayerConfig_InvalidBounds(t *testing.T) {
	tests := []struct {
		name        string
		player      PlayerConfig
		wantMax     int
		wantDefault int
	}{
		{
			name:        "max below min",
			player:      PlayerConfig{MinRating: 3, MaxRating: 2},
			wantMax:     7,
			wantDefault: 3,
		},
		{
			name:        "default above max",
			player:      PlayerConfig{MinRating: 1, MaxRating: 5, DefaultRating: 9},
			wantMax:     5,
			wantDefault: 1,
		},
		{
			name:        "valid values kept",
			player:      PlayerConfig{MinRating: 2, MaxRating: 4, DefaultRating: 3, PlayMode: PlayModeRating},
			wantMax:     4,
			wantDefault: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Player: tt.player}
			got := cfg.GetPlayerConfig()
			if got.MaxRating != tt.wantMax {
				t.Errorf("MaxRating = %d, want %d", got.MaxRating, tt.wantMax)
			}
			if got.DefaultRating != tt.wantDefault {
				t.Errorf("DefaultRating = %d, want %d", got.DefaultRating, tt.wantDefault)
			}
		})
	}
}

func TestGetLogConfig(t *testing.T) {
	tests := []struct {
		name       string
		config     Config
		wantLevel  string
		wantFormat string
	}{
		{"defaults", Config{}, "info", "text"},
		{"json debug", Config{LogLevel: "debug", LogFormat: "json"}, "debug", "json"},
		{"unknown values", Config{LogLevel: "verbose", LogFormat: "xml"}, "info", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, format := tt.config.GetLogConfig()
			if level != tt.wantLevel || format != tt.wantFormat {
				t.Errorf("GetLogConfig() = (%q, %q), want (%q, %q)", level, format, tt.wantLevel, tt.wantFormat)
			}
		})
	}
}

func TestGetNamespaces(t *testing.T) {
	cfg := Config{Namespaces: NamespaceConfig{Controller: "my.ctrl"}}
	ns := cfg.GetNamespaces()

	if ns.Controller != "my.ctrl" {
		t.Errorf("Controller = %q, want %q", ns.Controller, "my.ctrl")
	}
	if ns.View != "app.view" {
		t.Errorf("View = %q, want %q", ns.View, "app.view")
	}
	if ns.ControllerMixin != "app.mixin.controller" {
		t.Errorf("ControllerMixin = %q, want %q", ns.ControllerMixin, "app.mixin.controller")
	}
}

func TestHasTracksFile(t *testing.T) {
	if (&Config{}).HasTracksFile() {
		t.Error("HasTracksFile() = true for empty config")
	}
	if !(&Config{TracksFile: "tracks.yaml"}).HasTracksFile() {
		t.Error("HasTracksFile() = false with a tracks file")
	}
}
