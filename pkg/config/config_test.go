package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	aerr "github.com/mlorenzen/decklog/pkg/errors"
	"github.com/mlorenzen/decklog/pkg/layout"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decklog.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("explicit missing path should error")
	}

	// Implicit lookup tolerates a missing file.
	cwd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Algorithm != layout.AlgorithmForce {
		t.Errorf("default algorithm = %q, want %q", cfg.Layout.Algorithm, layout.AlgorithmForce)
	}
	if cfg.Layout.Seed != layout.DefaultSeed {
		t.Errorf("default seed = %d, want %d", cfg.Layout.Seed, layout.DefaultSeed)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("default cache backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[layout]
algorithm = "radial"
seed = 7
iterations = 50
direction = "LR"
ring_capacity = 8

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "5m"

[server]
addr = ":9000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Algorithm != layout.AlgorithmRadial {
		t.Errorf("algorithm = %q, want radial", cfg.Layout.Algorithm)
	}
	if cfg.Layout.Seed != 7 || cfg.Layout.Iterations != 50 {
		t.Errorf("seed/iterations = %d/%d, want 7/50", cfg.Layout.Seed, cfg.Layout.Iterations)
	}
	if cfg.Cache.TTL.Duration != 5*time.Minute {
		t.Errorf("ttl = %v, want 5m", cfg.Cache.TTL.Duration)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q, want :9000", cfg.Server.Addr)
	}

	opts := cfg.LayoutOptions()
	if opts.Seed != 7 || opts.Direction != "LR" || opts.RingCapacity != 8 {
		t.Errorf("LayoutOptions = %+v", opts)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[layout]\niterations = 10\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Iterations != 10 {
		t.Errorf("iterations = %d, want 10", cfg.Layout.Iterations)
	}
	if cfg.Layout.Seed != layout.DefaultSeed {
		t.Errorf("seed = %d, want default %d", cfg.Layout.Seed, layout.DefaultSeed)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad toml", "[layout\n"},
		{"bad direction", "[layout]\ndirection = \"sideways\"\n"},
		{"negative iterations", "[layout]\niterations = -1\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if !aerr.Is(err, aerr.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}
