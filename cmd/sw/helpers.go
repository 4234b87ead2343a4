package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// resolveIndexed turns an "@N" argument into the Nth entry of list. For
// history, index 0 is the newest entry. Plain arguments pass through.
func resolveIndexed(arg string, list []string) (string, error) {
	if !strings.HasPrefix(arg, "@") {
		return arg, nil
	}
	n, err := strconv.Atoi(arg[1:])
	if err != nil {
		return "", fmt.Errorf("invalid index %q", arg)
	}
	if n < 0 || n >= len(list) {
		return "", fmt.Errorf("index %s out of range (%d entries)", arg, len(list))
	}
	return list[n], nil
}

// prettifyPath renders a wallpaper path as a display name: base name without
// extension, separators turned into spaces.
func prettifyPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.TrimSpace(name)
}

// prettifyTime renders a timestamp relative to now for table output.
func prettifyTime(at time.Time) string {
	elapsed := time.Since(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return at.Format("2006-01-02 15:04")
	}
}

// prettifyDuration renders an uptime for status output.
func prettifyDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
