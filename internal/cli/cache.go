package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlorenzen/decklog/pkg/cache"
	"github.com/mlorenzen/decklog/pkg/config"
)

// newCacheCmd creates the cache management command.
func newCacheCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the snapshot cache",
	}

	cmd.AddCommand(newCacheClearCmd(configPath))
	cmd.AddCommand(newCachePathCmd(configPath))

	return cmd
}

// newCacheClearCmd creates the "cache clear" subcommand.
func newCacheClearCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached snapshots",
		Long: `Clear all cached snapshots.

Clears the file cache at the configured directory (cache.dir, default
~/.cache/decklog). Redis-backed entries are shared and expire through their
TTL; clear them on the Redis side.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheClear(*configPath)
		},
	}
}

func runCacheClear(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	switch cfg.Cache.Backend {
	case "none":
		printInfo("Caching is disabled, nothing to clear")
		return nil
	case "redis":
		printInfo("Cache backend is redis; entries expire via TTL and are cleared on the Redis side")
		return nil
	}

	dir, err := resolveCacheDir(cfg.Cache)
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	store, err := cache.NewFileCache(dir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	printSuccess("Cache cleared")
	printDetail("Directory: %s", dir)
	return nil
}

// newCachePathCmd creates the "cache path" subcommand.
func newCachePathCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			dir, err := resolveCacheDir(cfg.Cache)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// resolveCacheDir returns the configured cache directory, falling back to the
// XDG default when the config leaves it empty.
func resolveCacheDir(cfg config.CacheConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cacheDir()
}
