package queue_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sw/internal/queue"
)

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func tempStore(t *testing.T) (*queue.Store, string) {
	t.Helper()
	dir := t.TempDir()
	return queue.New(filepath.Join(dir, "queue")), dir
}

func TestEnqueueDequeueFIFO(t *testing.T) {
	store, dir := tempStore(t)
	first := writeImage(t, dir, "first.png")
	second := writeImage(t, dir, "second.png")

	if err := store.Enqueue(first); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := store.Enqueue(second); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	got, err := store.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if got != first {
		t.Fatalf("expected FIFO head %s, got %s", first, got)
	}
	got, err = store.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if got != second {
		t.Fatalf("expected %s, got %s", second, got)
	}
	if _, err := store.Dequeue(); !errors.Is(err, queue.ErrQueueEmpty) {
		t.Fatalf("expected ErrQueueEmpty, got %v", err)
	}
}

func TestEnqueueDeduplicates(t *testing.T) {
	store, dir := tempStore(t)
	path := writeImage(t, dir, "wall.png")

	if err := store.Enqueue(path); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := store.Enqueue(path); err != nil {
		t.Fatalf("duplicate Enqueue should be a no-op, got %v", err)
	}

	n, err := store.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 entry after duplicate enqueue, got %d", n)
	}
}

func TestEnqueueDoesNotTouchFilesystem(t *testing.T) {
	store, dir := tempStore(t)

	// Entries are validated when consumed, so a not-yet-existing path is
	// accepted here.
	missing := filepath.Join(dir, "missing.png")
	if err := store.Enqueue(missing); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	got, err := store.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if got != missing {
		t.Fatalf("expected %s, got %s", missing, got)
	}
}

func TestRemove(t *testing.T) {
	store, dir := tempStore(t)
	a := writeImage(t, dir, "a.png")
	b := writeImage(t, dir, "b.png")
	for _, path := range []string{a, b} {
		if err := store.Enqueue(path); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	if err := store.Remove(a); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	entries, err := store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(entries) != 1 || entries[0] != b {
		t.Fatalf("unexpected queue after remove: %v", entries)
	}
	if err := store.Remove(a); !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestShufflePreservesMembership(t *testing.T) {
	store, dir := tempStore(t)
	want := map[string]bool{}
	for _, name := range []string{"1.png", "2.png", "3.png", "4.png"} {
		path := writeImage(t, dir, name)
		want[path] = true
		if err := store.Enqueue(path); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	if err := store.Shuffle(); err != nil {
		t.Fatalf("Shuffle: %v", err)
	}
	entries, err := store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(entries) != len(want) {
		t.Fatalf("shuffle changed queue length: %v", entries)
	}
	for _, entry := range entries {
		if !want[entry] {
			t.Fatalf("shuffle introduced unknown entry %s", entry)
		}
	}
}

func TestClear(t *testing.T) {
	store, dir := tempStore(t)
	if err := store.Enqueue(writeImage(t, dir, "x.png")); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	n, err := store.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty queue, got %d entries", n)
	}
}
