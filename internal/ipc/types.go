// Package ipc exposes daemon control via JSON-RPC over a Unix domain
// socket. Request failures never surface as RPC errors; responses carry a
// status plus a machine-readable error kind so clients can map failures to
// exit codes.
package ipc

import (
	"errors"

	"sw/internal/config"
	"sw/internal/history"
	"sw/internal/queue"
	"sw/internal/selection"
	"sw/internal/wallpaper"
)

// ServiceName is the JSON-RPC service the daemon registers.
const ServiceName = "SW"

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Error kinds carried in error responses.
const (
	KindNoWallpaper = "no_wallpaper"
	KindQueueEmpty  = "queue_empty"
	KindNoHistory   = "no_history"
	KindInvalidPath = "invalid_path"
	KindNotFound    = "not_found"
	KindBackend     = "backend"
	KindInternal    = "internal"
)

// Classify maps a request error to its wire kind.
func Classify(err error) string {
	switch {
	case errors.Is(err, selection.ErrNoWallpaper):
		return KindNoWallpaper
	case errors.Is(err, queue.ErrQueueEmpty):
		return KindQueueEmpty
	case errors.Is(err, history.ErrNoHistory):
		return KindNoHistory
	case errors.Is(err, selection.ErrInvalidPath):
		return KindInvalidPath
	case errors.Is(err, selection.ErrNotFound), errors.Is(err, queue.ErrNotFound), errors.Is(err, config.ErrUnknownKey):
		return KindNotFound
	case errors.Is(err, wallpaper.ErrApply):
		return KindBackend
	default:
		return KindInternal
	}
}

// SetRequest asks the daemon to apply a wallpaper. Path is an explicit file
// or directory for mode "next", or a favorite name for mode "favorite".
type SetRequest struct {
	Path string `json:"path,omitempty"`
	Mode string `json:"mode,omitempty"`
}

// SetResponse reports the applied wallpaper or the failure.
type SetResponse struct {
	Status    string `json:"status"`
	Wallpaper string `json:"wallpaper,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

// StatusRequest asks for a daemon snapshot.
type StatusRequest struct{}

// StatusResponse is the daemon snapshot.
type StatusResponse struct {
	Status        string `json:"status"`
	Current       string `json:"current,omitempty"`
	Backend       string `json:"backend"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	PID           int    `json:"pid"`
	QueueLength   int    `json:"queue_length"`
	HistoryLength int    `json:"history_length"`
}

// ReloadConfigRequest asks the daemon to re-read its config file.
type ReloadConfigRequest struct{}

// ReloadConfigResponse reports the reload outcome. Recovered is true when a
// corrupt file was replaced with defaults.
type ReloadConfigResponse struct {
	Status    string `json:"status"`
	Recovered bool   `json:"recovered,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Error     string `json:"error,omitempty"`
}
