// Package config loads and persists the sw configuration document
// (~/.config/sw/config.json). Keys are addressed with dotted paths through an
// explicit registry so that unknown keys are rejected early; unknown
// top-level sections found in the file are preserved across saves.
package config
