package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sw/internal/config"
	"sw/internal/daemon"
	"sw/internal/ipc"
)

func newFavoriteCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorite [name|@N]",
		Short: "Apply a favorite wallpaper (random when unnamed)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				resolved, err := ctx.resolveFavoriteIndexed(args[0])
				if err != nil {
					return ctx.finish(err)
				}
				name = resolved
			}
			return ctx.finish(ctx.applyRequest(cmd.Context(), ipc.SetRequest{
				Path: name,
				Mode: string(daemon.ModeFavorite),
			}))
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [path]",
		Short: "Add a wallpaper to the favorites (defaults to the current one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return ctx.finish(err)
			}
			path, err := ctx.favoriteTarget(cfg, args)
			if err != nil {
				return ctx.finish(err)
			}
			for _, existing := range cfg.Wallpaper.Favorites {
				if existing == path {
					ctx.printf("already a favorite: %s\n", prettifyPath(path))
					return nil
				}
			}
			cfg.Wallpaper.Favorites = append(cfg.Wallpaper.Favorites, path)
			if err := cfg.Save(); err != nil {
				return ctx.finish(err)
			}
			ctx.printf("favorited %s\n", prettifyPath(path))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm [path|@N]",
		Short: "Remove a wallpaper from the favorites (defaults to the current one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return ctx.finish(err)
			}
			var path string
			if len(args) > 0 {
				if path, err = ctx.resolveFavoriteIndexed(args[0]); err != nil {
					return ctx.finish(err)
				}
			} else if path, err = ctx.currentWallpaper(); err != nil {
				return ctx.finish(err)
			}
			kept := cfg.Wallpaper.Favorites[:0]
			found := false
			for _, existing := range cfg.Wallpaper.Favorites {
				if existing == path {
					found = true
					continue
				}
				kept = append(kept, existing)
			}
			if !found {
				return ctx.finish(fmt.Errorf("not a favorite: %s", path))
			}
			cfg.Wallpaper.Favorites = kept
			if err := cfg.Save(); err != nil {
				return ctx.finish(err)
			}
			ctx.printf("unfavorited %s\n", prettifyPath(path))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the favorite wallpapers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return ctx.finish(err)
			}
			if len(cfg.Wallpaper.Favorites) == 0 {
				ctx.printf("no favorites\n")
				return nil
			}
			rows := make([][]string, 0, len(cfg.Wallpaper.Favorites))
			for _, favorite := range cfg.Wallpaper.Favorites {
				rows = append(rows, []string{prettifyPath(favorite), favorite})
			}
			ctx.printf("%s\n", renderIndexedTable([]string{"Name", "Path"}, rows))
			return nil
		},
	})

	return cmd
}

// favoriteTarget resolves the path a favorite mutation acts on: the given
// argument, or the currently displayed wallpaper.
func (c *commandContext) favoriteTarget(cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 {
		return config.ExpandPath(args[0])
	}
	return c.currentWallpaper()
}

// currentWallpaper asks the daemon for the live wallpaper, falling back to
// the newest history entry.
func (c *commandContext) currentWallpaper() (string, error) {
	var current string
	err := c.withClient(func(client *ipc.Client) error {
		resp, callErr := client.Status()
		if callErr != nil {
			return callErr
		}
		current = resp.Current
		return nil
	})
	if err == nil && current != "" {
		return current, nil
	}

	ledger, ledgerErr := c.ledger()
	if ledgerErr != nil {
		return "", ledgerErr
	}
	newest, newestErr := ledger.Newest()
	if newestErr != nil {
		return "", errors.New("no current wallpaper")
	}
	return newest.Path, nil
}

func (c *commandContext) resolveFavoriteIndexed(arg string) (string, error) {
	if len(arg) == 0 || arg[0] != '@' {
		return arg, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return resolveIndexed(arg, cfg.Wallpaper.Favorites)
}
