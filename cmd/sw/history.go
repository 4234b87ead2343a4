package main

import (
	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the wallpaper history",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List applied wallpapers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := ctx.ledger()
			if err != nil {
				return ctx.finish(err)
			}
			entries, err := ledger.List()
			if err != nil {
				return ctx.finish(err)
			}
			if len(entries) == 0 {
				ctx.printf("history is empty\n")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					prettifyPath(entry.Path),
					prettifyTime(entry.Time),
					entry.Path,
				})
			}
			ctx.printf("%s\n", renderIndexedTable(
				[]string{"Name", "Applied", "Path"},
				rows))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Erase the wallpaper history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := ctx.ledger()
			if err != nil {
				return ctx.finish(err)
			}
			if err := ledger.Clear(); err != nil {
				return ctx.finish(err)
			}
			ctx.printf("history cleared\n")
			return nil
		},
	})

	return cmd
}
