package selection

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sw/internal/config"
	"sw/internal/history"
	"sw/internal/queue"
)

var (
	// ErrNoWallpaper is returned when no eligible candidate exists.
	ErrNoWallpaper = errors.New("no wallpaper available")
	// ErrInvalidPath is returned when an explicit argument is not an
	// existing image file or directory.
	ErrInvalidPath = errors.New("not an image file or directory")
	// ErrNotFound is returned when a named favorite does not exist.
	ErrNotFound = errors.New("favorite not found")
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// Engine resolves the next wallpaper from config, history and queue state.
// Now and Pick exist so tests can pin time and randomness; nil means
// time.Now and rand.Intn.
type Engine struct {
	Config  *config.Config
	History *history.Ledger
	Queue   *queue.Store
	Now     func() time.Time
	Pick    func(n int) int
}

// New returns an engine over the given stores.
func New(cfg *config.Config, ledger *history.Ledger, store *queue.Store) *Engine {
	return &Engine{Config: cfg, History: ledger, Queue: store}
}

// Next resolves the next wallpaper. A non-empty explicit argument names a
// file or a directory and takes precedence over the queue; otherwise the
// queue front wins, and only then does random selection run. Queue entries
// are validated here, not at insertion: a file deleted after queueing fails
// the request as an invalid path.
func (e *Engine) Next(explicit string) (string, error) {
	if explicit != "" {
		return e.resolveExplicit(explicit)
	}

	head, err := e.Queue.Dequeue()
	if err == nil {
		info, statErr := os.Stat(head)
		if statErr != nil || !info.Mode().IsRegular() || !IsImage(head) {
			return "", fmt.Errorf("%w: queued entry %s", ErrInvalidPath, head)
		}
		return head, nil
	}
	if !errors.Is(err, queue.ErrQueueEmpty) {
		return "", err
	}

	dir, err := e.Config.WallpaperDir()
	if err != nil {
		return "", err
	}
	return e.randomFrom(dir)
}

// Previous returns the wallpaper shown immediately before the current one.
func (e *Engine) Previous() (string, error) {
	entry, err := e.History.Previous()
	if err != nil {
		return "", err
	}
	return entry.Path, nil
}

// FromCurrentDir picks randomly from the directory holding the current
// wallpaper, recency rules applied.
func (e *Engine) FromCurrentDir() (string, error) {
	newest, err := e.History.Newest()
	if err != nil {
		return "", err
	}
	return e.randomFrom(filepath.Dir(newest.Path))
}

// Favorite returns a random favorite, or the one matching name (full path
// or base name). Favorites bypass recency filtering entirely.
func (e *Engine) Favorite(name string) (string, error) {
	favorites, err := e.Config.FavoritePaths()
	if err != nil {
		return "", err
	}
	if name == "" {
		if len(favorites) == 0 {
			return "", ErrNoWallpaper
		}
		return favorites[e.pick(len(favorites))], nil
	}
	for _, favorite := range favorites {
		if favorite == name || filepath.Base(favorite) == name {
			return favorite, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (e *Engine) resolveExplicit(arg string) (string, error) {
	path, err := config.ExpandPath(arg)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, arg)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, arg)
	}
	if info.IsDir() {
		return e.randomFrom(path)
	}
	if !info.Mode().IsRegular() || !IsImage(path) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, arg)
	}
	return path, nil
}

// randomFrom picks uniformly among the images under dir, skipping paths
// under the configured exclude directories and paths shown within the
// recency timeout. An empty filtered set falls back to the exclude-only
// set before giving up.
func (e *Engine) randomFrom(dir string) (string, error) {
	candidates, err := listImages(dir)
	if err != nil {
		return "", err
	}

	exclude, err := e.Config.RecencyExcludeDirs()
	if err != nil {
		return "", err
	}
	eligible := candidates[:0:0]
	for _, candidate := range candidates {
		if !underAny(candidate, exclude) {
			eligible = append(eligible, candidate)
		}
	}

	recent, err := e.History.RecentPaths(e.Config.RecencyTimeout(), e.now())
	if err != nil {
		return "", err
	}
	fresh := make([]string, 0, len(eligible))
	for _, candidate := range eligible {
		if _, seen := recent[candidate]; !seen {
			fresh = append(fresh, candidate)
		}
	}
	if len(fresh) == 0 {
		fresh = eligible
	}
	if len(fresh) == 0 {
		return "", ErrNoWallpaper
	}
	return fresh[e.pick(len(fresh))], nil
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) pick(n int) int {
	if e.Pick != nil {
		return e.Pick(n)
	}
	return rand.Intn(n)
}

// IsImage reports whether path carries a recognized image extension.
func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

func listImages(dir string) ([]string, error) {
	var images []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.Type().IsRegular() && IsImage(path) {
			images = append(images, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: wallpaper directory %s does not exist", ErrNoWallpaper, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return images, nil
}

func underAny(path string, dirs []string) bool {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
