// Package config loads the optional decklog.toml tuning file. Every field
// has a compiled-in default, so a missing file is not an error; CLI flags
// override whatever the file sets.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	aerr "github.com/mlorenzen/decklog/pkg/errors"
	"github.com/mlorenzen/decklog/pkg/layout"
	"github.com/mlorenzen/decklog/pkg/source"
)

// DefaultFileName is looked up in the working directory when no explicit
// path is given.
const DefaultFileName = "decklog.toml"

// Config is the full tuning surface.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig tunes the layout strategies.
type LayoutConfig struct {
	Algorithm    string  `toml:"algorithm"`
	Seed         uint64  `toml:"seed"`
	Iterations   int     `toml:"iterations"`
	Direction    string  `toml:"direction"`
	RankSep      float64 `toml:"rank_sep"`
	NodeSep      float64 `toml:"node_sep"`
	RingCapacity int     `toml:"ring_capacity"`
}

// CacheConfig selects and tunes the snapshot cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"` // file, redis, none
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
}

// Duration decodes TOML strings like "15m" into a time.Duration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// ServerConfig tunes `decklog serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Algorithm:  layout.AlgorithmForce,
			Seed:       layout.DefaultSeed,
			Iterations: layout.DefaultIterations,
			Direction:  "TB",
		},
		Cache: CacheConfig{
			Backend: "file",
			TTL:     Duration{source.DefaultTTL},
		},
		Server: ServerConfig{
			Addr: ":8135",
		},
	}
}

// Load reads a TOML file over the defaults. An empty path tries
// DefaultFileName in the working directory; if neither exists the defaults
// are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, aerr.Wrap(aerr.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, aerr.Wrap(aerr.ErrCodeInvalidConfig, err, "parse config %s", filepath.Base(path))
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Layout.Iterations < 0 {
		return aerr.New(aerr.ErrCodeInvalidConfig, "layout.iterations must be >= 0, got %d", c.Layout.Iterations)
	}
	switch c.Layout.Direction {
	case "", "TB", "LR", "BT", "RL":
	default:
		return aerr.New(aerr.ErrCodeInvalidConfig, "layout.direction %q not one of TB, LR, BT, RL", c.Layout.Direction)
	}
	switch c.Cache.Backend {
	case "", "file", "redis", "none":
	default:
		return aerr.New(aerr.ErrCodeInvalidConfig, "cache.backend %q not one of file, redis, none", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return aerr.New(aerr.ErrCodeInvalidConfig, "cache.backend redis requires cache.redis_addr")
	}
	return nil
}

// LayoutOptions converts the tuning file into strategy options.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		Seed:         c.Layout.Seed,
		Iterations:   c.Layout.Iterations,
		Direction:    c.Layout.Direction,
		RankSep:      c.Layout.RankSep,
		NodeSep:      c.Layout.NodeSep,
		RingCapacity: c.Layout.RingCapacity,
	}
}
