// Package selection decides which wallpaper to display next. One decision
// procedure with fixed precedence: explicit path or directory, then the
// queue front, then a uniform random pick from the configured directory
// with recently-shown and excluded paths filtered out.
package selection
