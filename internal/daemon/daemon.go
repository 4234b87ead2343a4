// Package daemon owns current-wallpaper state. Every mutating request runs
// under one mutex, so selection, backend apply and the history append commit
// as a unit and two clients can never race on "what is current".
package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"log/slog"

	"github.com/gofrs/flock"

	"sw/internal/config"
	"sw/internal/history"
	"sw/internal/logging"
	"sw/internal/notifications"
	"sw/internal/queue"
	"sw/internal/selection"
	"sw/internal/wallpaper"
)

// ErrAlreadyRunning is returned when another daemon instance holds the
// lock file.
var ErrAlreadyRunning = errors.New("daemon already running")

// Mode selects how Set resolves its wallpaper.
type Mode string

const (
	// ModeNext picks the next wallpaper: explicit path if given, else
	// queue front, else random.
	ModeNext Mode = "next"
	// ModePrev re-applies the wallpaper shown before the current one.
	ModePrev Mode = "prev"
	// ModeUseDir picks from the directory of the current wallpaper.
	ModeUseDir Mode = "use-dir"
	// ModeFavorite picks a favorite, random or named via the path field.
	ModeFavorite Mode = "favorite"
)

// ParseMode validates a wire-level mode string. Empty means ModeNext.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case "", ModeNext:
		return ModeNext, nil
	case ModePrev, ModeUseDir, ModeFavorite:
		return Mode(raw), nil
	default:
		return "", fmt.Errorf("unknown mode %q", raw)
	}
}

// Status is a point-in-time snapshot of the daemon.
type Status struct {
	Current     string
	Backend     string
	Uptime      time.Duration
	PID         int
	QueueLength int
	HistoryLen  int
}

// Daemon applies wallpapers and records them. Construct with New, then
// Start before serving requests.
type Daemon struct {
	mu       sync.Mutex
	cfg      *config.Config
	ledger   *history.Ledger
	store    *queue.Store
	engine   *selection.Engine
	backend  wallpaper.Backend
	notifier notifications.Service
	logger   *slog.Logger
	lock     *flock.Flock
	lockPath string
	current  string
	started  time.Time
}

// New wires a daemon over the given config and backend. A nil notifier or
// logger falls back to the noop implementation.
func New(cfg *config.Config, backend wallpaper.Backend, notifier notifications.Service, logger *slog.Logger) (*Daemon, error) {
	if notifier == nil {
		notifier = notifications.NewNop()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	d := &Daemon{
		cfg:      cfg,
		backend:  backend,
		notifier: notifier,
		logger:   logging.WithComponent(logger, "daemon"),
	}
	if err := d.rebuildStores(cfg); err != nil {
		return nil, err
	}
	return d, nil
}

// Start acquires the single-instance lock. A lock held elsewhere means
// another daemon owns the socket and is fatal to this instance only.
func (d *Daemon) Start(ctx context.Context) error {
	socket, err := d.cfg.SocketPath()
	if err != nil {
		return err
	}
	d.lockPath = socket + ".lock"
	d.lock = flock.New(d.lockPath)
	held, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", d.lockPath, err)
	}
	if !held {
		return fmt.Errorf("%w: lock %s is held", ErrAlreadyRunning, d.lockPath)
	}
	d.started = time.Now()
	if entry, err := d.ledger.Newest(); err == nil {
		d.current = entry.Path
	}
	d.logger.Info("daemon ready",
		logging.String(logging.FieldEventType, "daemon_start"),
		logging.String("backend", d.backend.Name()),
		logging.String("lock", d.lockPath))
	return nil
}

// Set resolves a wallpaper per mode, applies it through the backend and
// appends it to history. On backend failure history is left untouched and
// the previous wallpaper remains current.
func (d *Daemon) Set(ctx context.Context, path string, mode Mode) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	chosen, err := d.resolve(path, mode)
	if err != nil {
		return "", err
	}

	if err := d.backend.Apply(ctx, chosen); err != nil {
		d.logger.Warn("backend apply failed",
			logging.String(logging.FieldWallpaper, chosen),
			logging.Error(err))
		if notifyErr := d.notifier.Error(ctx, "Wallpaper change failed", err.Error()); notifyErr != nil {
			d.logger.Debug("notification failed", logging.Error(notifyErr))
		}
		return "", err
	}
	if err := d.ledger.Append(chosen); err != nil {
		return "", err
	}
	d.current = chosen

	d.logger.Info("wallpaper applied",
		logging.String(logging.FieldEventType, "wallpaper_set"),
		logging.String(logging.FieldWallpaper, chosen),
		logging.String("mode", string(mode)))
	if err := d.notifier.WallpaperChanged(ctx, chosen); err != nil {
		d.logger.Debug("notification failed", logging.Error(err))
	}
	return chosen, nil
}

func (d *Daemon) resolve(path string, mode Mode) (string, error) {
	switch mode {
	case ModePrev:
		return d.engine.Previous()
	case ModeUseDir:
		return d.engine.FromCurrentDir()
	case ModeFavorite:
		return d.engine.Favorite(path)
	default:
		return d.engine.Next(path)
	}
}

// Status reports the current wallpaper and process vitals.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	status := Status{
		Current: d.current,
		Backend: d.backend.Name(),
		PID:     os.Getpid(),
	}
	if !d.started.IsZero() {
		status.Uptime = time.Since(d.started)
	}
	if n, err := d.store.Len(); err == nil {
		status.QueueLength = n
	}
	if n, err := d.ledger.Len(); err == nil {
		status.HistoryLen = n
	}
	return status
}

// ReloadConfig re-reads the config file and rebuilds the stores over the
// possibly relocated history and queue files. Reports whether a corrupt
// file was replaced with defaults.
func (d *Daemon) ReloadConfig() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cfg, recovered, err := config.Load(d.cfg.Path())
	if err != nil {
		return false, err
	}
	if err := d.rebuildStores(cfg); err != nil {
		return false, err
	}
	d.cfg = cfg
	d.logger.Info("config reloaded",
		logging.String(logging.FieldEventType, "config_reload"),
		logging.Bool("recovered", recovered))
	return recovered, nil
}

// Stop releases the single-instance lock and removes the lock file. Safe
// to call once after the IPC server has drained.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lock != nil {
		if err := d.lock.Unlock(); err != nil {
			d.logger.Warn("release lock failed", logging.Error(err))
		}
		if err := os.Remove(d.lockPath); err != nil && !os.IsNotExist(err) {
			d.logger.Warn("remove lock file failed",
				logging.String("lock", d.lockPath),
				logging.Error(err))
		}
		d.lock = nil
	}
	d.logger.Info("daemon stopped",
		logging.String(logging.FieldEventType, "daemon_stop"))
}

func (d *Daemon) rebuildStores(cfg *config.Config) error {
	historyFile, err := cfg.HistoryFile()
	if err != nil {
		return err
	}
	queueFile, err := cfg.QueueFile()
	if err != nil {
		return err
	}
	d.ledger = history.New(historyFile, cfg.History.Limit)
	d.store = queue.New(queueFile)
	d.engine = selection.New(cfg, d.ledger, d.store)
	d.cfg = cfg
	return nil
}
