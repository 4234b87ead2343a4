// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"sw/internal/config"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig loads a config seeded with unique temp paths per test: a real
// wallpaper directory plus history, queue and socket files under t.TempDir().
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	walls := filepath.Join(base, "walls")
	if err := os.MkdirAll(walls, 0o755); err != nil {
		t.Fatalf("create wallpaper dir: %v", err)
	}

	cfg, _, err := config.Load(filepath.Join(base, "config.json"))
	if err != nil {
		t.Fatalf("load test config: %v", err)
	}
	cfg.Wallpaper.Directory = walls
	cfg.History.File = filepath.Join(base, "history")
	cfg.Queue.File = filepath.Join(base, "queue")
	cfg.Daemon.SocketPath = filepath.Join(base, "sw.sock")

	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save test config: %v", err)
	}
	return cfg
}

// WithFavorites sets the favorites list on the test config.
func WithFavorites(paths ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Wallpaper.Favorites = paths
	}
}

// WithRecencyTimeout sets the recency timeout in seconds.
func WithRecencyTimeout(seconds int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Wallpaper.Recency.Timeout = seconds
	}
}

// WriteImage creates an image file under the config's wallpaper directory
// and returns its absolute path.
func WriteImage(t testing.TB, cfg *config.Config, rel string) string {
	t.Helper()

	dir, err := cfg.WallpaperDir()
	if err != nil {
		t.Fatalf("wallpaper dir: %v", err)
	}
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create image dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}
