package main

import (
	"errors"

	"sw/internal/daemonctl"
	"sw/internal/history"
	"sw/internal/ipc"
	"sw/internal/queue"
	"sw/internal/selection"
)

// Exit codes for scripting: 2 means the daemon is unreachable, 3 means the
// selection engine had nothing to offer, 1 is every other failure.
const (
	exitFailure     = 1
	exitUnreachable = 2
	exitNoWallpaper = 3
)

// kindError carries a wire-level error kind from a daemon response.
type kindError struct {
	kind    string
	message string
}

func (e *kindError) Error() string { return e.message }

// responseError converts an error response into a client-side error, nil
// for ok responses.
func responseError(status, kind, message string) error {
	if status != ipc.StatusError {
		return nil
	}
	if message == "" {
		message = "daemon reported an error"
	}
	return &kindError{kind: kind, message: message}
}

func exitCodeFor(err error) int {
	var kindErr *kindError
	if errors.As(err, &kindErr) {
		switch kindErr.kind {
		case ipc.KindNoWallpaper, ipc.KindQueueEmpty, ipc.KindNoHistory:
			return exitNoWallpaper
		default:
			return exitFailure
		}
	}
	switch {
	case errors.Is(err, daemonctl.ErrDaemonUnreachable):
		return exitUnreachable
	case errors.Is(err, selection.ErrNoWallpaper),
		errors.Is(err, queue.ErrQueueEmpty),
		errors.Is(err, history.ErrNoHistory):
		return exitNoWallpaper
	default:
		return exitFailure
	}
}

// silencedError suppresses the error message in silent mode while keeping
// the exit code.
type silencedError struct {
	err error
}

func (e *silencedError) Error() string { return e.err.Error() }
func (e *silencedError) Unwrap() error { return e.err }

func isSilenced(err error) bool {
	var silenced *silencedError
	return errors.As(err, &silenced)
}
