package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"sw/internal/daemonctl"
	"sw/internal/timer"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current wallpaper and daemon state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return ctx.finish(err)
			}
			snapshot, err := daemonctl.BuildStatusSnapshot(cfg)
			if err != nil {
				return ctx.finish(err)
			}

			rows := [][]string{}
			if snapshot.Current != "" {
				rows = append(rows,
					[]string{"Wallpaper", prettifyPath(snapshot.Current)},
					[]string{"Path", snapshot.Current})
			} else {
				rows = append(rows, []string{"Wallpaper", "none"})
			}
			if snapshot.Live {
				state := "running (pid " + strconv.Itoa(snapshot.PID) + ")"
				if ctx.colorEnabled() {
					state = text.FgGreen.Sprint(state)
				}
				rows = append(rows,
					[]string{"Daemon", state},
					[]string{"Backend", snapshot.Backend},
					[]string{"Uptime", prettifyDuration(snapshot.Uptime)})
			} else {
				state := "not running"
				if ctx.colorEnabled() {
					state = text.FgYellow.Sprint(state)
				}
				rows = append(rows, []string{"Daemon", state})
			}
			rows = append(rows,
				[]string{"Queue", strconv.Itoa(snapshot.QueueLength) + " entries"},
				[]string{"History", strconv.Itoa(snapshot.HistoryLength) + " entries"})

			if timerStatus, timerErr := timer.New().Query(cmd.Context()); timerErr == nil {
				state := "inactive"
				if timerStatus.Active {
					state = "active"
				}
				rows = append(rows, []string{"Timer", state + ", enabled: " + yesNo(timerStatus.Enabled)})
				if timerStatus.NextElapse != "" {
					rows = append(rows, []string{"Next change", timerStatus.NextElapse})
				}
			}

			ctx.printf("%s\n", renderPairs(rows))
			return nil
		},
	}
}
