package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	LogLevel   string `koanf:"log_level"`   // "debug", "info", "warn" or "error" (default: "info")
	LogFormat  string `koanf:"log_format"`  // "text" or "json" (default: "text")
	LogFile    string `koanf:"log_file"`    // empty means the XDG state dir
	TracksFile string `koanf:"tracks_file"` // YAML or JSON track list imported on startup

	// Player module settings
	Player PlayerConfig `koanf:"player"`

	// Class namespaces used to resolve declarative class suffixes
	Namespaces NamespaceConfig `koanf:"namespaces"`
}

// PlayerConfig holds rating bounds and playback behavior.
type PlayerConfig struct {
	MinRating     int    `koanf:"min_rating"`     // default: 1
	MaxRating     int    `koanf:"max_rating"`     // must be > min_rating (default: 5)
	DefaultRating int    `koanf:"default_rating"` // rating of added tracks (default: min_rating)
	AutoplayNext  *bool  `koanf:"autoplay_next"`  // select the next track when one ends (default: true)
	PlayMode      string `koanf:"play_mode"`      // "sequential" or "rating" (default: "sequential")
}

// NamespaceConfig holds the prefixes class suffixes are resolved against.
type NamespaceConfig struct {
	Controller      string `koanf:"controller"`       // default: "app.controller"
	View            string `koanf:"view"`             // default: "app.view"
	ControllerMixin string `koanf:"controller_mixin"` // default: "app.mixin.controller"
}

// Play modes.
const (
	PlayModeSequential = "sequential"
	PlayModeRating     = "rating"
)

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads the given TOML files in order; later files win. Missing
// files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	}
	if cfg.TracksFile != "" {
		cfg.TracksFile = expandPath(cfg.TracksFile)
	}

	// Namespaces are written without a trailing dot
	cfg.Namespaces.Controller = strings.TrimSuffix(cfg.Namespaces.Controller, ".")
	cfg.Namespaces.View = strings.TrimSuffix(cfg.Namespaces.View, ".")
	cfg.Namespaces.ControllerMixin = strings.TrimSuffix(cfg.Namespaces.ControllerMixin, ".")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tracklet/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tracklet", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasTracksFile returns true if a track list should be imported.
func (c *Config) HasTracksFile() bool {
	return c.TracksFile != ""
}

// GetLogConfig returns the log level and format with defaults applied.
func (c *Config) GetLogConfig() (level, format string) {
	level, format = c.LogLevel, c.LogFormat
	switch level {
	case "debug", "info", "warn", "error":
	default:
		level = "info"
	}
	if format != "json" {
		format = "text"
	}
	return level, format
}

// GetPlayerConfig returns the player configuration with defaults applied.
func (c *Config) GetPlayerConfig() PlayerConfig {
	cfg := c.Player

	// Apply defaults
	if cfg.MinRating <= 0 {
		cfg.MinRating = 1
	}
	if cfg.MaxRating <= cfg.MinRating {
		cfg.MaxRating = cfg.MinRating + 4
	}
	if cfg.DefaultRating < cfg.MinRating || cfg.DefaultRating > cfg.MaxRating {
		cfg.DefaultRating = cfg.MinRating
	}
	if cfg.AutoplayNext == nil {
		autoplay := true
		cfg.AutoplayNext = &autoplay
	}
	if cfg.PlayMode != PlayModeRating {
		cfg.PlayMode = PlayModeSequential
	}

	return cfg
}

// Autoplay reports whether the next track starts when one ends.
func (p PlayerConfig) Autoplay() bool {
	return p.AutoplayNext == nil || *p.AutoplayNext
}

// GetNamespaces returns the class namespaces with defaults applied.
func (c *Config) GetNamespaces() NamespaceConfig {
	ns := c.Namespaces
	if ns.Controller == "" {
		ns.Controller = "app.controller"
	}
	if ns.View == "" {
		ns.View = "app.view"
	}
	if ns.ControllerMixin == "" {
		ns.ControllerMixin = "app.mixin.controller"
	}
	return ns
}
