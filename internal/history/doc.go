// Package history persists the ledger of applied wallpapers. The file is
// line-oriented, one "<unix_timestamp>\t<path>" entry per line, oldest first:
// the newest entry is always the final line and corresponds to the currently
// displayed wallpaper. Corrupt lines are skipped, never fatal. Every reader
// re-reads the file so daemon and client observe the same committed state.
package history
