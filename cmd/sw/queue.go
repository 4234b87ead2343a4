package main

import (
	"github.com/spf13/cobra"

	"sw/internal/config"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage the wallpaper queue",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <path>...",
		Short: "Stage wallpapers for later display",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.queueStore()
			if err != nil {
				return ctx.finish(err)
			}
			for _, arg := range args {
				path, expandErr := config.ExpandPath(arg)
				if expandErr != nil {
					return ctx.finish(expandErr)
				}
				if err := store.Enqueue(path); err != nil {
					return ctx.finish(err)
				}
				ctx.printf("queued %s\n", prettifyPath(path))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <path>",
		Short: "Remove a wallpaper from the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.queueStore()
			if err != nil {
				return ctx.finish(err)
			}
			entries, err := store.All()
			if err != nil {
				return ctx.finish(err)
			}
			path, err := resolveIndexed(args[0], entries)
			if err != nil {
				return ctx.finish(err)
			}
			if path == args[0] {
				if path, err = config.ExpandPath(args[0]); err != nil {
					return ctx.finish(err)
				}
			}
			if err := store.Remove(path); err != nil {
				return ctx.finish(err)
			}
			ctx.printf("removed %s\n", prettifyPath(path))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every queued wallpaper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.queueStore()
			if err != nil {
				return ctx.finish(err)
			}
			if err := store.Clear(); err != nil {
				return ctx.finish(err)
			}
			ctx.printf("queue cleared\n")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "shuffle",
		Short: "Randomize the queue order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.queueStore()
			if err != nil {
				return ctx.finish(err)
			}
			if err := store.Shuffle(); err != nil {
				return ctx.finish(err)
			}
			ctx.printf("queue shuffled\n")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List the queued wallpapers in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.queueStore()
			if err != nil {
				return ctx.finish(err)
			}
			entries, err := store.All()
			if err != nil {
				return ctx.finish(err)
			}
			if len(entries) == 0 {
				ctx.printf("queue is empty\n")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{prettifyPath(entry), entry})
			}
			ctx.printf("%s\n", renderIndexedTable([]string{"Name", "Path"}, rows))
			return nil
		},
	})

	return cmd
}
