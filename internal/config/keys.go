package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownKey is returned when a dotted key path does not name a
// registered configuration key.
var ErrUnknownKey = errors.New("unknown config key")

type keySpec struct {
	get   func(*Config) any
	set   func(*Config, string) error
	unset func(*Config)
}

// registry maps every settable dotted key to its accessors. The registry is
// the schema: anything absent here is rejected with ErrUnknownKey.
var registry = map[string]keySpec{
	"wallpaper.directory": {
		get:   func(c *Config) any { return c.Wallpaper.Directory },
		set:   func(c *Config, v string) error { c.Wallpaper.Directory = v; return nil },
		unset: func(c *Config) { c.Wallpaper.Directory = Default().Wallpaper.Directory },
	},
	"wallpaper.favorites": {
		get: func(c *Config) any { return c.Wallpaper.Favorites },
		set: func(c *Config, v string) error {
			list, err := parseList(v)
			if err != nil {
				return err
			}
			c.Wallpaper.Favorites = list
			return nil
		},
		unset: func(c *Config) { c.Wallpaper.Favorites = []string{} },
	},
	"wallpaper.recency.exclude": {
		get: func(c *Config) any { return c.Wallpaper.Recency.Exclude },
		set: func(c *Config, v string) error {
			list, err := parseList(v)
			if err != nil {
				return err
			}
			c.Wallpaper.Recency.Exclude = list
			return nil
		},
		unset: func(c *Config) { c.Wallpaper.Recency.Exclude = []string{} },
	},
	"wallpaper.recency.timeout": {
		get: func(c *Config) any { return c.Wallpaper.Recency.Timeout },
		set: func(c *Config, v string) error {
			n, err := parseNonNegativeInt(v)
			if err != nil {
				return err
			}
			c.Wallpaper.Recency.Timeout = n
			return nil
		},
		unset: func(c *Config) { c.Wallpaper.Recency.Timeout = defaultRecencyTimeout },
	},
	"history.file": {
		get:   func(c *Config) any { return c.History.File },
		set:   func(c *Config, v string) error { c.History.File = v; return nil },
		unset: func(c *Config) { c.History.File = defaultHistoryFile() },
	},
	"history.limit": {
		get: func(c *Config) any { return c.History.Limit },
		set: func(c *Config, v string) error {
			n, err := parseNonNegativeInt(v)
			if err != nil {
				return err
			}
			if n < 1 {
				return fmt.Errorf("history.limit must be >= 1, got %d", n)
			}
			c.History.Limit = n
			return nil
		},
		unset: func(c *Config) { c.History.Limit = defaultHistoryLimit },
	},
	"queue.file": {
		get:   func(c *Config) any { return c.Queue.File },
		set:   func(c *Config, v string) error { c.Queue.File = v; return nil },
		unset: func(c *Config) { c.Queue.File = defaultQueueFile() },
	},
	"daemon.socket_path": {
		get:   func(c *Config) any { return c.Daemon.SocketPath },
		set:   func(c *Config, v string) error { c.Daemon.SocketPath = v; return nil },
		unset: func(c *Config) { c.Daemon.SocketPath = defaultSocketPath() },
	},
}

// Keys returns every registered dotted key, sorted.
func Keys() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetKey resolves a dotted key to its current value.
func (c *Config) GetKey(name string) (any, error) {
	spec, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return spec.get(c), nil
}

// SetKey parses value for the key's type, applies it, and persists the
// document before returning.
func (c *Config) SetKey(name, value string) error {
	spec, ok := registry[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	if err := spec.set(c, value); err != nil {
		return fmt.Errorf("set %q: %w", name, err)
	}
	return c.Save()
}

// UnsetKey restores the key's default and persists the document.
func (c *Config) UnsetKey(name string) error {
	spec, ok := registry[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	spec.unset(c)
	return c.Save()
}

// FormatValue renders a key value the way `config get` prints it.
func FormatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case []string:
		data, err := json.Marshal(v)
		if err != nil {
			return strings.Join(v, ",")
		}
		return string(data)
	default:
		return fmt.Sprint(v)
	}
}

// parseList accepts either a JSON array or a comma-separated string.
func parseList(value string) ([]string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return []string{}, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, fmt.Errorf("parse list value: %w", err)
		}
		return list, nil
	}
	parts := strings.Split(trimmed, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list, nil
}

func parseNonNegativeInt(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse integer value: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("value must be >= 0, got %d", n)
	}
	return n, nil
}
