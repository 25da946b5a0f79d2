// Package cli implements the decklog command-line interface.
package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/mlorenzen/decklog/pkg/cache"
	"github.com/mlorenzen/decklog/pkg/config"
	"github.com/mlorenzen/decklog/pkg/layout"
)

// appName is the application name used for directories and display.
const appName = "decklog"

// newStore builds the snapshot cache backend selected by the config.
// Failures degrade to the null cache so a broken cache never blocks the
// command; fetches just skip caching.
func newStore(ctx context.Context, logger *log.Logger, cfg config.CacheConfig, noCache bool) cache.Cache {
	if noCache || cfg.Backend == "none" {
		return cache.NewNullCache()
	}
	if cfg.Backend == "redis" {
		store, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		if err != nil {
			logger.Warn("redis cache unavailable, caching disabled", "addr", cfg.RedisAddr, "err", err)
			return cache.NewNullCache()
		}
		return store
	}

	dir, err := resolveCacheDir(cfg)
	if err != nil {
		return cache.NewNullCache()
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return store
}

// cacheDir returns the cache directory using XDG standard (~/.cache/decklog/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// layoutOptions merges config-file tuning with command flags. Flag values
// win when they were changed from their defaults.
func layoutOptions(cfg config.Config, seed uint64, iterations int, logger *log.Logger) layout.Options {
	opts := cfg.LayoutOptions()
	if seed != 0 {
		opts.Seed = seed
	}
	if iterations != 0 {
		opts.Iterations = iterations
	}
	opts.Logger = logger
	return opts
}
