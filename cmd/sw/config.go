package main

import (
	"github.com/spf13/cobra"

	"sw/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return ctx.finish(err)
			}
			value, err := cfg.GetKey(args[0])
			if err != nil {
				return ctx.finish(err)
			}
			ctx.printf("%s\n", config.FormatValue(value))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return ctx.finish(err)
			}
			if err := cfg.SetKey(args[0], args[1]); err != nil {
				return ctx.finish(err)
			}
			ctx.printf("%s = %s\n", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset <key>",
		Short: "Restore a configuration value to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return ctx.finish(err)
			}
			if err := cfg.UnsetKey(args[0]); err != nil {
				return ctx.finish(err)
			}
			value, err := cfg.GetKey(args[0])
			if err != nil {
				return ctx.finish(err)
			}
			ctx.printf("%s = %s\n", args[0], config.FormatValue(value))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List every configuration key and value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return ctx.finish(err)
			}
			rows := make([][]string, 0, len(config.Keys()))
			for _, key := range config.Keys() {
				value, getErr := cfg.GetKey(key)
				if getErr != nil {
					return ctx.finish(getErr)
				}
				rows = append(rows, []string{key, config.FormatValue(value)})
			}
			ctx.printf("%s\n", renderPairs(rows))
			return nil
		},
	})

	return cmd
}
