// Package logging wraps log/slog with the handlers and attribute helpers
// shared by the sw client and daemon. The console handler renders compact
// single-line records for interactive use; the JSON handler backs --debug
// runs where logs are grepped after the fact.
package logging
