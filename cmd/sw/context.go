package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"sw/internal/config"
	"sw/internal/daemonctl"
	"sw/internal/history"
	"sw/internal/ipc"
	"sw/internal/notifications"
	"sw/internal/queue"
)

type commandContext struct {
	socketFlag   *string
	configFlag   *string
	silentFlag   *bool
	colorFlag    *string
	noNotifyFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(socketFlag, configFlag *string, silentFlag *bool, colorFlag *string, noNotifyFlag *bool) *commandContext {
	return &commandContext{
		socketFlag:   socketFlag,
		configFlag:   configFlag,
		silentFlag:   silentFlag,
		colorFlag:    colorFlag,
		noNotifyFlag: noNotifyFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, recovered, err := config.Load(strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if recovered && !c.silent() {
			fmt.Fprintln(os.Stderr, "warning: config file was corrupt, rewrote defaults")
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) socketPath() (string, error) {
	if socket := strings.TrimSpace(*c.socketFlag); socket != "" {
		return socket, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.SocketPath()
}

func (c *commandContext) withClient(fn func(*ipc.Client) error) error {
	socket, err := c.socketPath()
	if err != nil {
		return err
	}
	client, err := daemonctl.Connect(socket)
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}

func (c *commandContext) ledger() (*history.Ledger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	path, err := cfg.HistoryFile()
	if err != nil {
		return nil, err
	}
	return history.New(path, cfg.History.Limit), nil
}

func (c *commandContext) queueStore() (*queue.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	path, err := cfg.QueueFile()
	if err != nil {
		return nil, err
	}
	return queue.New(path), nil
}

func (c *commandContext) notifier() notifications.Service {
	if *c.noNotifyFlag || c.silent() {
		return notifications.NewNop()
	}
	return notifications.NewNotifySend()
}

func (c *commandContext) silent() bool {
	return c.silentFlag != nil && *c.silentFlag
}

func (c *commandContext) colorEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(*c.colorFlag)) {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

// printf writes user-facing output unless silent mode is on.
func (c *commandContext) printf(format string, args ...any) {
	if c.silent() {
		return
	}
	fmt.Printf(format, args...)
}

// finish wraps a command error so silent mode suppresses the message while
// preserving the exit code.
func (c *commandContext) finish(err error) error {
	if err == nil {
		return nil
	}
	if c.silent() {
		return &silencedError{err: err}
	}
	return err
}

// notifyChanged fires a best-effort desktop notification for an applied
// wallpaper.
func (c *commandContext) notifyChanged(ctx context.Context, path string) {
	_ = c.notifier().WallpaperChanged(ctx, path)
}
