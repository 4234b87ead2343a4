package queue

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"strings"

	"sw/internal/fileutil"
)

var (
	// ErrQueueEmpty is returned by Dequeue when no entries are staged.
	ErrQueueEmpty = errors.New("queue is empty")
	// ErrNotFound is returned by Remove when the path is not queued.
	ErrNotFound = errors.New("path not in queue")
)

// Store is the persistent wallpaper queue, backed by a flat file.
type Store struct {
	path string
}

// New returns a store over the given queue file.
func New(path string) *Store {
	return &Store{path: path}
}

// Enqueue appends path to the tail. Enqueueing an already-queued path is a
// no-op. Entries are not checked against the filesystem here; consumers
// validate them when they are taken off the queue.
func (s *Store) Enqueue(path string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range entries {
		if existing == path {
			return nil
		}
	}
	return s.write(append(entries, path))
}

// Dequeue removes and returns the head of the queue.
func (s *Store) Dequeue() (string, error) {
	entries, err := s.load()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", ErrQueueEmpty
	}
	head := entries[0]
	if err := s.write(entries[1:]); err != nil {
		return "", err
	}
	return head, nil
}

// Remove deletes path from the queue regardless of position.
func (s *Store) Remove(path string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	kept := entries[:0]
	found := false
	for _, existing := range entries {
		if existing == path {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return s.write(kept)
}

// Shuffle randomizes the order of the queued entries in place.
func (s *Store) Shuffle() error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	if len(entries) < 2 {
		return nil
	}
	rand.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
	return s.write(entries)
}

// Clear drops every queued entry.
func (s *Store) Clear() error {
	return s.write(nil)
}

// All returns the queued paths in FIFO order.
func (s *Store) All() ([]string, error) {
	return s.load()
}

// Len reports the number of queued entries.
func (s *Store) Len() (int, error) {
	entries, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (s *Store) load() ([]string, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open queue: %w", err)
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read queue: %w", err)
	}
	return entries, nil
}

func (s *Store) write(entries []string) error {
	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	if err := fileutil.WriteFileAtomic(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write queue: %w", err)
	}
	return nil
}
