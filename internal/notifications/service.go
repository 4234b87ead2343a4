// Package notifications delivers desktop notifications for wallpaper
// events. The production implementation shells out to notify-send; a noop
// implementation backs --no-notify and tests.
package notifications

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Service publishes user-facing notifications.
type Service interface {
	// WallpaperChanged announces that path is now displayed.
	WallpaperChanged(ctx context.Context, path string) error
	// Error announces a failed operation.
	Error(ctx context.Context, summary, detail string) error
}

// NewNotifySend returns a Service backed by the notify-send command.
func NewNotifySend() Service {
	return &notifySend{binary: "notify-send"}
}

// NewNop returns a Service that silently discards everything.
func NewNop() Service {
	return nopService{}
}

type notifySend struct {
	binary string
}

func (n *notifySend) WallpaperChanged(ctx context.Context, path string) error {
	return n.send(ctx, "normal", "Wallpaper changed", filepath.Base(path))
}

func (n *notifySend) Error(ctx context.Context, summary, detail string) error {
	return n.send(ctx, "critical", summary, detail)
}

func (n *notifySend) send(ctx context.Context, urgency, summary, body string) error {
	cmd := exec.CommandContext(ctx, n.binary,
		"--app-name", "sw",
		"--urgency", urgency,
		summary, body)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		return fmt.Errorf("notify-send: %s", detail)
	}
	return nil
}

type nopService struct{}

func (nopService) WallpaperChanged(context.Context, string) error { return nil }
func (nopService) Error(context.Context, string, string) error    { return nil }
