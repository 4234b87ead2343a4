package main

import (
	"errors"

	"github.com/spf13/cobra"

	"sw/internal/daemon"
	"sw/internal/ipc"
)

func newSetCommand(ctx *commandContext) *cobra.Command {
	var useDir bool

	cmd := &cobra.Command{
		Use:   "set [path|@N]",
		Short: "Apply a specific wallpaper, or one from the current directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !useDir {
				return ctx.finish(errors.New("set requires a path or --use-dir"))
			}
			if len(args) > 0 && useDir {
				return ctx.finish(errors.New("set takes either a path or --use-dir, not both"))
			}

			req := ipc.SetRequest{Mode: string(daemon.ModeNext)}
			if useDir {
				req.Mode = string(daemon.ModeUseDir)
			} else {
				path, err := ctx.resolveHistoryIndexed(args[0])
				if err != nil {
					return ctx.finish(err)
				}
				req.Path = path
			}
			return ctx.finish(ctx.applyRequest(cmd.Context(), req))
		},
	}

	cmd.Flags().BoolVar(&useDir, "use-dir", false, "Pick from the current wallpaper's directory")
	return cmd
}

func newNextCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Advance to the next wallpaper (queue front, else random)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.finish(ctx.applyRequest(cmd.Context(), ipc.SetRequest{Mode: string(daemon.ModeNext)}))
		},
	}
}

func newPrevCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prev",
		Short: "Return to the previously shown wallpaper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.finish(ctx.applyRequest(cmd.Context(), ipc.SetRequest{Mode: string(daemon.ModePrev)}))
		},
	}
}
