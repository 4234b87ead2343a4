package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sw/internal/fileutil"
)

// Wallpaper holds selection settings: the source directory, the favorites
// list, and the recency rule.
type Wallpaper struct {
	Directory string   `json:"directory"`
	Favorites []string `json:"favorites"`
	Recency   Recency  `json:"recency"`
}

// Recency suppresses wallpapers shown within Timeout seconds and everything
// under the Exclude directories.
type Recency struct {
	Exclude []string `json:"exclude"`
	Timeout int      `json:"timeout"`
}

// History configures the applied-wallpaper ledger.
type History struct {
	File  string `json:"file"`
	Limit int    `json:"limit"`
}

// Queue configures the pending-wallpaper queue file.
type Queue struct {
	File string `json:"file"`
}

// Daemon configures the control socket.
type Daemon struct {
	SocketPath string `json:"socket_path"`
}

// Config is the full configuration document.
type Config struct {
	Wallpaper Wallpaper
	History   History
	Queue     Queue
	Daemon    Daemon

	// Unknown top-level sections from the file, carried through Save.
	extra map[string]json.RawMessage
	path  string
}

// Path returns the file this document was resolved against.
func (c *Config) Path() string { return c.path }

// Load reads the configuration at path, or the default location when path is
// empty. A missing file yields defaults, written back so the user has a file
// to edit. A corrupt file is recovered by rewriting defaults; recovered
// reports that so callers can log it.
func Load(path string) (cfg *Config, recovered bool, err error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, false, err
	}

	c := Default()
	c.path = resolved

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if saveErr := c.Save(); saveErr != nil {
			return nil, false, fmt.Errorf("write default config: %w", saveErr)
		}
		return &c, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("read config: %w", err)
	}

	if err := c.unmarshal(data); err != nil {
		c = Default()
		c.path = resolved
		if saveErr := c.Save(); saveErr != nil {
			return nil, false, fmt.Errorf("rewrite corrupt config: %w", saveErr)
		}
		return &c, true, nil
	}
	c.normalize()
	return &c, false, nil
}

// Save persists the document atomically (write temp, rename over target).
func (c *Config) Save() error {
	data, err := c.marshal()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := fileutil.WriteFileAtomic(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) unmarshal(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, target := range map[string]any{
		"wallpaper": &c.Wallpaper,
		"history":   &c.History,
		"queue":     &c.Queue,
		"daemon":    &c.Daemon,
	} {
		section, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(section, target); err != nil {
			return fmt.Errorf("section %q: %w", key, err)
		}
		delete(raw, key)
	}
	if len(raw) > 0 {
		c.extra = raw
	}
	return nil
}

func (c *Config) marshal() ([]byte, error) {
	doc := make(map[string]any, 4+len(c.extra))
	doc["wallpaper"] = c.Wallpaper
	doc["history"] = c.History
	doc["queue"] = c.Queue
	doc["daemon"] = c.Daemon
	for key, section := range c.extra {
		doc[key] = section
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Config) normalize() {
	if c.History.Limit < 1 {
		c.History.Limit = defaultHistoryLimit
	}
	if c.Wallpaper.Recency.Timeout < 0 {
		c.Wallpaper.Recency.Timeout = 0
	}
	if strings.TrimSpace(c.History.File) == "" {
		c.History.File = defaultHistoryFile()
	}
	if strings.TrimSpace(c.Queue.File) == "" {
		c.Queue.File = defaultQueueFile()
	}
	if strings.TrimSpace(c.Daemon.SocketPath) == "" {
		c.Daemon.SocketPath = defaultSocketPath()
	}
}

// WallpaperDir returns the expanded wallpaper source directory.
func (c *Config) WallpaperDir() (string, error) {
	dir := strings.TrimSpace(c.Wallpaper.Directory)
	if dir == "" {
		return "", errors.New("missing required config key 'wallpaper.directory'")
	}
	return ExpandPath(dir)
}

// FavoritePaths returns the favorites list with every entry expanded.
func (c *Config) FavoritePaths() ([]string, error) {
	out := make([]string, 0, len(c.Wallpaper.Favorites))
	for _, fav := range c.Wallpaper.Favorites {
		expanded, err := ExpandPath(fav)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}

// RecencyExcludeDirs returns the expanded recency-exclusion directories.
func (c *Config) RecencyExcludeDirs() ([]string, error) {
	out := make([]string, 0, len(c.Wallpaper.Recency.Exclude))
	for _, dir := range c.Wallpaper.Recency.Exclude {
		expanded, err := ExpandPath(dir)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}

// RecencyTimeout returns the recency window as a duration.
func (c *Config) RecencyTimeout() time.Duration {
	return time.Duration(c.Wallpaper.Recency.Timeout) * time.Second
}

// HistoryFile returns the expanded history ledger path.
func (c *Config) HistoryFile() (string, error) {
	return ExpandPath(c.History.File)
}

// QueueFile returns the expanded queue file path.
func (c *Config) QueueFile() (string, error) {
	return ExpandPath(c.Queue.File)
}

// SocketPath returns the expanded daemon socket path.
func (c *Config) SocketPath() (string, error) {
	return ExpandPath(c.Daemon.SocketPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		return ExpandPath(path)
	}
	return DefaultConfigPath()
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/sw/config.json, falling back to
// ~/.config/sw/config.json.
func DefaultConfigPath() (string, error) {
	if base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); base != "" {
		return filepath.Join(base, "sw", "config.json"), nil
	}
	return ExpandPath("~/.config/sw/config.json")
}

// ExpandPath resolves a leading tilde and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && pathValue[1] == '/' {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
