package main

import (
	"github.com/spf13/cobra"

	"sw/internal/timer"
)

func newTimerCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Control the systemd rotation timer",
	}

	manager := timer.New()

	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Enable and start the rotation timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := manager.Enable(cmd.Context()); err != nil {
				return ctx.finish(err)
			}
			ctx.printf("timer enabled\n")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Stop and disable the rotation timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := manager.Disable(cmd.Context()); err != nil {
				return ctx.finish(err)
			}
			ctx.printf("timer disabled\n")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the rotation timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := manager.Start(cmd.Context()); err != nil {
				return ctx.finish(err)
			}
			ctx.printf("timer started\n")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the rotation timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := manager.Stop(cmd.Context()); err != nil {
				return ctx.finish(err)
			}
			ctx.printf("timer stopped\n")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the rotation timer state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := manager.Query(cmd.Context())
			if err != nil {
				return ctx.finish(err)
			}
			rows := [][]string{
				{"Active", yesNo(status.Active)},
				{"Enabled", yesNo(status.Enabled)},
			}
			if status.NextElapse != "" {
				rows = append(rows, []string{"Next elapse", status.NextElapse})
			}
			ctx.printf("%s\n", renderPairs(rows))
			return nil
		},
	})

	return cmd
}
