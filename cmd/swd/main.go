package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"sw/internal/config"
	"sw/internal/daemon"
	"sw/internal/daemonrun"
)

func main() {
	var (
		configPath = flag.String("config", "", "configuration file path")
		socketPath = flag.String("socket", "", "daemon socket path override")
		image      = flag.String("image", "", "initial wallpaper to apply")
		debug      = flag.Bool("debug", false, "enable debug logging")
		notify     = flag.Bool("notify", false, "send desktop notifications on change")
	)
	flag.Parse()

	cfg, recovered, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "swd: load config: %v\n", err)
		os.Exit(1)
	}
	if recovered {
		fmt.Fprintln(os.Stderr, "swd: config file was corrupt, rewrote defaults")
	}

	opts := daemonrun.Options{
		InitialImage: *image,
		SocketPath:   *socketPath,
		Debug:        *debug,
		Notify:       *notify,
	}
	if err := daemonrun.Run(context.Background(), cfg, opts); err != nil {
		if errors.Is(err, daemon.ErrAlreadyRunning) {
			fmt.Fprintln(os.Stderr, "swd: another instance is already running")
		} else {
			fmt.Fprintf(os.Stderr, "swd: %v\n", err)
		}
		os.Exit(1)
	}
}
