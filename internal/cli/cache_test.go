package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlorenzen/decklog/pkg/cache"
)

func seedFileCache(t *testing.T, dir string) {
	t.Helper()
	store, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := store.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decklog.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCacheClear_UsesConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	seedFileCache(t, dir)

	configPath := writeConfig(t, fmt.Sprintf("[cache]\ndir = %q\n", dir))
	if err := runCacheClear(configPath); err != nil {
		t.Fatalf("runCacheClear: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("configured cache dir still holds %d entries after clear", len(entries))
	}
}

func TestRunCacheClear_RedisBackendLeavesFilesAlone(t *testing.T) {
	dir := t.TempDir()
	seedFileCache(t, dir)

	configPath := writeConfig(t, fmt.Sprintf(
		"[cache]\nbackend = \"redis\"\nredis_addr = \"localhost:6379\"\ndir = %q\n", dir))
	if err := runCacheClear(configPath); err != nil {
		t.Fatalf("runCacheClear: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Error("redis-backed clear removed local files it does not manage")
	}
}
