package main

import (
	"context"

	"sw/internal/ipc"
)

// applyRequest sends a set request to the daemon, prints the applied
// wallpaper and fires a notification.
func (c *commandContext) applyRequest(ctx context.Context, req ipc.SetRequest) error {
	var applied string
	err := c.withClient(func(client *ipc.Client) error {
		resp, callErr := client.Set(req)
		if callErr != nil {
			return callErr
		}
		if respErr := responseError(resp.Status, resp.Kind, resp.Error); respErr != nil {
			return respErr
		}
		applied = resp.Wallpaper
		return nil
	})
	if err != nil {
		return err
	}
	c.printf("%s\n", prettifyPath(applied))
	c.notifyChanged(ctx, applied)
	return nil
}

// resolveHistoryIndexed resolves an "@N" argument against the history
// ledger, newest first. Plain paths pass through untouched.
func (c *commandContext) resolveHistoryIndexed(arg string) (string, error) {
	if len(arg) == 0 || arg[0] != '@' {
		return arg, nil
	}
	ledger, err := c.ledger()
	if err != nil {
		return "", err
	}
	entries, err := ledger.List()
	if err != nil {
		return "", err
	}
	paths := make([]string, len(entries))
	for i, entry := range entries {
		paths[i] = entry.Path
	}
	return resolveIndexed(arg, paths)
}
