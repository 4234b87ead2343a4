package history

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"sw/internal/fileutil"
)

// ErrNoHistory is returned when the ledger holds no entry that can satisfy
// the request (empty ledger, or no entry before the newest one).
var ErrNoHistory = errors.New("no history")

// Entry is one applied wallpaper.
type Entry struct {
	Path string
	Time time.Time
}

// Ledger is a bounded, append-only log of applied wallpapers backed by a
// flat file. Appends beyond the limit evict the oldest entries.
type Ledger struct {
	path  string
	limit int
	now   func() time.Time
}

// New returns a ledger over the given file. A limit below 1 falls back to 1.
func New(path string, limit int) *Ledger {
	if limit < 1 {
		limit = 1
	}
	return &Ledger{path: path, limit: limit, now: time.Now}
}

// Append records path as applied now, evicting the oldest entries beyond the
// configured limit, and persists atomically.
func (l *Ledger) Append(path string) error {
	entries, err := l.load()
	if err != nil {
		return err
	}
	entries = append(entries, Entry{Path: path, Time: l.now()})
	if len(entries) > l.limit {
		entries = entries[len(entries)-l.limit:]
	}
	return l.write(entries)
}

// List returns all entries, newest first.
func (l *Ledger) List() ([]Entry, error) {
	entries, err := l.load()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Newest returns the most recent entry, i.e. the currently displayed
// wallpaper.
func (l *Ledger) Newest() (Entry, error) {
	entries, err := l.load()
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrNoHistory
	}
	return entries[len(entries)-1], nil
}

// Previous returns the entry applied immediately before the newest one.
func (l *Ledger) Previous() (Entry, error) {
	entries, err := l.load()
	if err != nil {
		return Entry{}, err
	}
	if len(entries) < 2 {
		return Entry{}, ErrNoHistory
	}
	return entries[len(entries)-2], nil
}

// RecentPaths returns every path applied within the window before now, keyed
// by path with its most recent application time.
func (l *Ledger) RecentPaths(window time.Duration, now time.Time) (map[string]time.Time, error) {
	entries, err := l.load()
	if err != nil {
		return nil, err
	}
	recent := make(map[string]time.Time)
	for _, entry := range entries {
		if now.Sub(entry.Time) >= window {
			continue
		}
		if prev, ok := recent[entry.Path]; !ok || entry.Time.After(prev) {
			recent[entry.Path] = entry.Time
		}
	}
	return recent, nil
}

// Len reports the number of entries currently persisted.
func (l *Ledger) Len() (int, error) {
	entries, err := l.load()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Clear removes every entry.
func (l *Ledger) Clear() error {
	return l.write(nil)
}

func (l *Ledger) load() ([]Entry, error) {
	file, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		entry, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return entries, nil
}

func (l *Ledger) write(entries []Entry) error {
	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(strconv.FormatInt(entry.Time.Unix(), 10))
		b.WriteByte('\t')
		b.WriteString(entry.Path)
		b.WriteByte('\n')
	}
	if err := fileutil.WriteFileAtomic(l.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func parseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Entry{}, false
	}
	ts, path, found := strings.Cut(line, "\t")
	if !found {
		return Entry{}, false
	}
	unix, err := strconv.ParseInt(strings.TrimSpace(ts), 10, 64)
	if err != nil {
		return Entry{}, false
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Entry{}, false
	}
	return Entry{Path: path, Time: time.Unix(unix, 0)}, true
}
