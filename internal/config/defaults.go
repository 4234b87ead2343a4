package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultRecencyTimeout = 28800
	defaultHistoryLimit   = 500
)

// Default returns a Config populated with repository defaults. Paths honor
// XDG_CONFIG_HOME / XDG_CACHE_HOME / XDG_RUNTIME_DIR when set.
func Default() Config {
	return Config{
		Wallpaper: Wallpaper{
			Directory: "~/Pictures/Wallpapers",
			Favorites: []string{},
			Recency: Recency{
				Exclude: []string{},
				Timeout: defaultRecencyTimeout,
			},
		},
		History: History{
			File:  defaultHistoryFile(),
			Limit: defaultHistoryLimit,
		},
		Queue: Queue{
			File: defaultQueueFile(),
		},
		Daemon: Daemon{
			SocketPath: defaultSocketPath(),
		},
	}
}

func defaultHistoryFile() string { return filepath.Join(cacheDir(), "history") }

func defaultQueueFile() string { return filepath.Join(cacheDir(), "queue") }

func defaultSocketPath() string {
	if base := strings.TrimSpace(os.Getenv("XDG_RUNTIME_DIR")); base != "" {
		return filepath.Join(base, "sw-daemon.sock")
	}
	return "/tmp/sw-daemon.sock"
}

func cacheDir() string {
	if base := strings.TrimSpace(os.Getenv("XDG_CACHE_HOME")); base != "" {
		return filepath.Join(base, "sw")
	}
	return "~/.cache/sw"
}
