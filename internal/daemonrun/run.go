// Package daemonrun is the daemon process runtime: signal handling, logging,
// pid file, config watching, and the daemon + IPC server lifecycle.
package daemonrun

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"sw/internal/config"
	"sw/internal/daemon"
	"sw/internal/ipc"
	"sw/internal/logging"
	"sw/internal/notifications"
	"sw/internal/wallpaper"
)

// Options configures daemon process runtime behavior.
type Options struct {
	// InitialImage is applied once at startup when non-empty.
	InitialImage string
	// SocketPath overrides the configured socket when non-empty.
	SocketPath string
	// Debug lowers the log level and switches to JSON output.
	Debug bool
	// Notify enables desktop notifications on wallpaper changes.
	Notify bool
}

// Run starts the daemon runtime loop and blocks until SIGINT or SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	level, format := "info", "console"
	if opts.Debug {
		level, format = "debug", "json"
	}
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: format,
		Writer: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))

	if opts.SocketPath != "" {
		cfg.Daemon.SocketPath = opts.SocketPath
	}
	socketPath, err := cfg.SocketPath()
	if err != nil {
		return err
	}

	pidPath := socketPath + ".pid"
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	notifier := notifications.NewNop()
	if opts.Notify {
		notifier = notifications.NewNotifySend()
	}

	d, err := daemon.New(cfg, wallpaper.NewSwww(), notifier, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	if err := d.Start(signalCtx); err != nil {
		if errors.Is(err, daemon.ErrAlreadyRunning) {
			return err
		}
		return fmt.Errorf("start daemon: %w", err)
	}
	defer d.Stop()

	ipcServer, err := ipc.NewServer(signalCtx, socketPath, d, logger)
	if err != nil {
		return fmt.Errorf("start ipc server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if watcherErr := watchConfig(signalCtx, cfg.Path(), d, logger); watcherErr != nil {
		logger.Warn("config watch unavailable", logging.Error(watcherErr))
	}

	if opts.InitialImage != "" {
		if _, err := d.Set(signalCtx, opts.InitialImage, daemon.ModeNext); err != nil {
			logger.Warn("initial wallpaper failed",
				logging.String(logging.FieldWallpaper, opts.InitialImage),
				logging.Error(err))
		}
	}

	logger.Info("daemon running", logging.String(logging.FieldSocket, socketPath))
	<-signalCtx.Done()
	logger.Info("daemon shutting down")
	return nil
}

// watchConfig reloads the daemon config when the file changes on disk.
// Editors replace rather than rewrite, so the watch sits on the parent
// directory and filters events for the config file itself.
func watchConfig(ctx context.Context, configPath string, d *daemon.Daemon, logger *slog.Logger) error {
	if configPath == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != configPath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				recovered, reloadErr := d.ReloadConfig()
				if reloadErr != nil {
					logger.Warn("config reload failed", logging.Error(reloadErr))
					continue
				}
				logger.Info("config file changed, reloaded",
					logging.String(logging.FieldEventType, "config_reload"),
					logging.Bool("recovered", recovered))
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watch error", logging.Error(watchErr))
			}
		}
	}()
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
