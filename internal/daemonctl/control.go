// Package daemonctl is the client-side view of the daemon: dialing with
// unreachable classification, and status snapshots that fall back to the
// persisted files when the daemon is down.
package daemonctl

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"sw/internal/config"
	"sw/internal/history"
	"sw/internal/ipc"
	"sw/internal/queue"
)

// ErrDaemonUnreachable indicates the daemon socket is absent or refusing
// connections. Callers surface this as "daemon not running".
var ErrDaemonUnreachable = errors.New("daemon unreachable")

// Connect dials the daemon socket, classifying connect failures.
func Connect(socketPath string) (*ipc.Client, error) {
	client, err := ipc.Dial(socketPath)
	if err != nil {
		if isUnavailable(err) {
			return nil, fmt.Errorf("%w at %s", ErrDaemonUnreachable, socketPath)
		}
		return nil, err
	}
	return client, nil
}

func isUnavailable(err error) bool {
	return errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, unix.ENOENT) ||
		errors.Is(err, unix.ECONNREFUSED)
}

// Snapshot is the status view rendered by `sw status`. Live reports whether
// it came from the daemon; otherwise the fields were read from the
// persisted history and queue files.
type Snapshot struct {
	Live          bool
	Current       string
	Backend       string
	Uptime        time.Duration
	PID           int
	QueueLength   int
	HistoryLength int
}

// BuildStatusSnapshot queries the daemon, falling back to direct file reads
// when it is unreachable.
func BuildStatusSnapshot(cfg *config.Config) (Snapshot, error) {
	socket, err := cfg.SocketPath()
	if err != nil {
		return Snapshot{}, err
	}

	client, err := Connect(socket)
	if err == nil {
		defer client.Close()
		if resp, statusErr := client.Status(); statusErr == nil {
			return Snapshot{
				Live:          true,
				Current:       resp.Current,
				Backend:       resp.Backend,
				Uptime:        time.Duration(resp.UptimeSeconds) * time.Second,
				PID:           resp.PID,
				QueueLength:   resp.QueueLength,
				HistoryLength: resp.HistoryLength,
			}, nil
		}
	} else if !errors.Is(err, ErrDaemonUnreachable) {
		return Snapshot{}, err
	}

	return offlineSnapshot(cfg)
}

func offlineSnapshot(cfg *config.Config) (Snapshot, error) {
	historyFile, err := cfg.HistoryFile()
	if err != nil {
		return Snapshot{}, err
	}
	queueFile, err := cfg.QueueFile()
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{}
	ledger := history.New(historyFile, cfg.History.Limit)
	if newest, newestErr := ledger.Newest(); newestErr == nil {
		snapshot.Current = newest.Path
	}
	if n, lenErr := ledger.Len(); lenErr == nil {
		snapshot.HistoryLength = n
	}
	if n, lenErr := queue.New(queueFile).Len(); lenErr == nil {
		snapshot.QueueLength = n
	}
	return snapshot, nil
}
