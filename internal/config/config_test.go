package config_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sw/internal/config"
)

func loadTemp(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, recovered, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if recovered {
		t.Fatal("fresh config should not report recovery")
	}
	return cfg
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := loadTemp(t)
	if cfg.Wallpaper.Recency.Timeout != 28800 {
		t.Fatalf("unexpected default timeout: %d", cfg.Wallpaper.Recency.Timeout)
	}
	if cfg.History.Limit != 500 {
		t.Fatalf("unexpected default history limit: %d", cfg.History.Limit)
	}

	// The defaults are written back so the user has a file to edit.
	data, err := os.ReadFile(cfg.Path())
	if err != nil {
		t.Fatalf("defaults not written back: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("written defaults are not valid JSON: %v", err)
	}
	if _, ok := doc["wallpaper"]; !ok {
		t.Fatalf("written defaults missing wallpaper section: %s", data)
	}
}

func TestLoadCorruptFileRecoversWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, recovered, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !recovered {
		t.Fatal("expected recovery from corrupt file")
	}
	if cfg.History.Limit != 500 {
		t.Fatalf("expected defaults after recovery, got limit %d", cfg.History.Limit)
	}

	// The corrupt file must have been replaced with valid JSON.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("rewritten config is not valid JSON: %v", err)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	cfg := loadTemp(t)

	if err := cfg.SetKey("wallpaper.recency.timeout", "3600"); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
	value, err := cfg.GetKey("wallpaper.recency.timeout")
	if err != nil {
		t.Fatalf("GetKey: %v", err)
	}
	if value != 3600 {
		t.Fatalf("expected 3600, got %v", value)
	}

	// Persisted before returning: a fresh load observes the new value.
	reloaded, _, err := config.Load(cfg.Path())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Wallpaper.Recency.Timeout != 3600 {
		t.Fatalf("set not persisted, got %d", reloaded.Wallpaper.Recency.Timeout)
	}
}

func TestUnsetRestoresDefault(t *testing.T) {
	cfg := loadTemp(t)
	if err := cfg.SetKey("history.limit", "10"); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
	if err := cfg.UnsetKey("history.limit"); err != nil {
		t.Fatalf("UnsetKey: %v", err)
	}
	value, err := cfg.GetKey("history.limit")
	if err != nil {
		t.Fatalf("GetKey: %v", err)
	}
	if value != 500 {
		t.Fatalf("expected default 500 after unset, got %v", value)
	}
}

func TestUnknownKeyRejected(t *testing.T) {
	cfg := loadTemp(t)

	if _, err := cfg.GetKey("wallpaper.nope"); !errors.Is(err, config.ErrUnknownKey) {
		t.Fatalf("GetKey: expected ErrUnknownKey, got %v", err)
	}
	if err := cfg.SetKey("totally.made.up", "1"); !errors.Is(err, config.ErrUnknownKey) {
		t.Fatalf("SetKey: expected ErrUnknownKey, got %v", err)
	}
	if err := cfg.UnsetKey("daemon.port"); !errors.Is(err, config.ErrUnknownKey) {
		t.Fatalf("UnsetKey: expected ErrUnknownKey, got %v", err)
	}
}

func TestListKeysAcceptBothEncodings(t *testing.T) {
	cfg := loadTemp(t)

	if err := cfg.SetKey("wallpaper.favorites", `["/a.png","/b.png"]`); err != nil {
		t.Fatalf("SetKey json list: %v", err)
	}
	if len(cfg.Wallpaper.Favorites) != 2 || cfg.Wallpaper.Favorites[1] != "/b.png" {
		t.Fatalf("unexpected favorites: %v", cfg.Wallpaper.Favorites)
	}

	if err := cfg.SetKey("wallpaper.recency.exclude", "/dark, /light"); err != nil {
		t.Fatalf("SetKey csv list: %v", err)
	}
	if len(cfg.Wallpaper.Recency.Exclude) != 2 || cfg.Wallpaper.Recency.Exclude[0] != "/dark" {
		t.Fatalf("unexpected exclude list: %v", cfg.Wallpaper.Recency.Exclude)
	}
}

func TestInvalidValuesRejected(t *testing.T) {
	cfg := loadTemp(t)

	if err := cfg.SetKey("history.limit", "0"); err == nil {
		t.Fatal("expected history.limit 0 to be rejected")
	}
	if err := cfg.SetKey("wallpaper.recency.timeout", "-5"); err == nil {
		t.Fatal("expected negative timeout to be rejected")
	}
	if err := cfg.SetKey("wallpaper.recency.timeout", "soon"); err == nil {
		t.Fatal("expected non-numeric timeout to be rejected")
	}
}

func TestUnknownSectionsPreservedAcrossSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	seed := `{"wallpaper":{"directory":"/walls"},"hyprlock":{"config":"/tmp/hyprlock.conf"}}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.SetKey("history.limit", "25"); err != nil {
		t.Fatalf("SetKey: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := doc["hyprlock"]; !ok {
		t.Fatalf("unknown section dropped on save: %s", data)
	}
}

func TestExpandPathResolvesTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := config.ExpandPath("~/Pictures")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "Pictures") {
		t.Fatalf("unexpected expansion: %s", got)
	}
}
