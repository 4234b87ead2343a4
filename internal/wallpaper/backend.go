package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// ErrApply wraps every backend failure so callers can classify render
// errors without knowing which backend is active.
var ErrApply = errors.New("wallpaper apply failed")

// Backend renders an image file as the current wallpaper.
type Backend interface {
	// Apply draws the image at path. It blocks until the backend has
	// accepted the image or failed.
	Apply(ctx context.Context, path string) error
	// Name identifies the backend for logs and status output.
	Name() string
}

// SwwwBackend drives the swww daemon via its command line client.
type SwwwBackend struct {
	// Binary overrides the executable name, for tests. Empty means "swww".
	Binary string
	// Args are extra arguments passed after "img", e.g. transition flags.
	Args []string
}

// NewSwww returns a backend that invokes `swww img <path>`.
func NewSwww() *SwwwBackend {
	return &SwwwBackend{}
}

func (b *SwwwBackend) Name() string { return "swww" }

func (b *SwwwBackend) Apply(ctx context.Context, path string) error {
	binary := b.Binary
	if binary == "" {
		binary = "swww"
	}
	args := append([]string{"img", path}, b.Args...)
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		return fmt.Errorf("%w: swww img %s: %s", ErrApply, path, detail)
	}
	return nil
}

// Fake is an in-memory backend for tests. It records applied paths and can
// be primed to fail.
type Fake struct {
	mu      sync.Mutex
	applied []string
	err     error
}

// NewFake returns a backend that succeeds and records every Apply.
func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Apply(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.applied = append(f.applied, path)
	return nil
}

// Applied returns the paths applied so far, oldest first.
func (f *Fake) Applied() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.applied...)
}

// FailWith makes subsequent Apply calls return err. Passing nil restores
// normal behavior.
func (f *Fake) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}
