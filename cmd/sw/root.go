package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var (
		socketFlag   string
		configFlag   string
		silentFlag   bool
		colorFlag    string
		noNotifyFlag bool
	)

	ctx := newCommandContext(&socketFlag, &configFlag, &silentFlag, &colorFlag, &noNotifyFlag)

	rootCmd := &cobra.Command{
		Use:           "sw",
		Short:         "Wallpaper manager for Wayland compositors",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "", "Path to the daemon socket")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&silentFlag, "silent", "s", false, "Suppress normal output")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "Color mode: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&noNotifyFlag, "no-notify", false, "Disable desktop notifications")

	rootCmd.AddCommand(newSetCommand(ctx))
	rootCmd.AddCommand(newNextCommand(ctx))
	rootCmd.AddCommand(newPrevCommand(ctx))
	rootCmd.AddCommand(newQueueCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newFavoriteCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newTimerCommand(ctx))

	return rootCmd
}
