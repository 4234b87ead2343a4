// Package wallpaper abstracts the compositor-facing renderer that actually
// draws an image. The production backend shells out to swww; tests swap in
// an in-memory fake.
package wallpaper
