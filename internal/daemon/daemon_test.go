package daemon_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"sw/internal/config"
	"sw/internal/daemon"
	"sw/internal/history"
	"sw/internal/notifications"
	"sw/internal/queue"
	"sw/internal/wallpaper"
)

type harness struct {
	daemon   *daemon.Daemon
	backend  *wallpaper.Fake
	recorder *notifications.Recorder
	cfg      *config.Config
	walls    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	walls := filepath.Join(dir, "walls")
	if err := os.MkdirAll(walls, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	cfg, _, err := config.Load(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Wallpaper.Directory = walls
	cfg.History.File = filepath.Join(dir, "history")
	cfg.Queue.File = filepath.Join(dir, "queue")
	cfg.Daemon.SocketPath = filepath.Join(dir, "sw.sock")
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	backend := wallpaper.NewFake()
	recorder := notifications.NewRecorder()
	d, err := daemon.New(cfg, backend, recorder, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(d.Stop)
	return &harness{daemon: d, backend: backend, recorder: recorder, cfg: cfg, walls: walls}
}

func (h *harness) addImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(h.walls, name)
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestSetExplicitAppliesAndRecords(t *testing.T) {
	h := newHarness(t)
	image := h.addImage(t, "chosen.png")

	applied, err := h.daemon.Set(context.Background(), image, daemon.ModeNext)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if applied != image {
		t.Fatalf("expected %s, got %s", image, applied)
	}
	if got := h.backend.Applied(); len(got) != 1 || got[0] != image {
		t.Fatalf("backend not invoked: %v", got)
	}

	ledger := history.New(h.cfg.History.File, h.cfg.History.Limit)
	newest, err := ledger.Newest()
	if err != nil {
		t.Fatalf("Newest: %v", err)
	}
	if newest.Path != image {
		t.Fatalf("history not appended: %s", newest.Path)
	}

	if h.daemon.Status().Current != image {
		t.Fatalf("current not updated: %s", h.daemon.Status().Current)
	}
	if len(h.recorder.Changed) != 1 || h.recorder.Changed[0] != image {
		t.Fatalf("notification not sent: %v", h.recorder.Changed)
	}
}

func TestSetBackendFailureLeavesHistoryUntouched(t *testing.T) {
	h := newHarness(t)
	first := h.addImage(t, "first.png")
	if _, err := h.daemon.Set(context.Background(), first, daemon.ModeNext); err != nil {
		t.Fatalf("Set: %v", err)
	}

	h.backend.FailWith(fmt.Errorf("%w: compositor gone", wallpaper.ErrApply))
	second := h.addImage(t, "second.png")
	if _, err := h.daemon.Set(context.Background(), second, daemon.ModeNext); !errors.Is(err, wallpaper.ErrApply) {
		t.Fatalf("expected ErrApply, got %v", err)
	}

	ledger := history.New(h.cfg.History.File, h.cfg.History.Limit)
	newest, err := ledger.Newest()
	if err != nil {
		t.Fatalf("Newest: %v", err)
	}
	if newest.Path != first {
		t.Fatalf("failed apply mutated history: %s", newest.Path)
	}
	if h.daemon.Status().Current != first {
		t.Fatalf("failed apply changed current: %s", h.daemon.Status().Current)
	}
	if len(h.recorder.Errors) != 1 {
		t.Fatalf("error notification not sent: %v", h.recorder.Errors)
	}
}

func TestSetPrevReappliesEarlierWallpaper(t *testing.T) {
	h := newHarness(t)
	first := h.addImage(t, "first.png")
	second := h.addImage(t, "second.png")
	for _, image := range []string{first, second} {
		if _, err := h.daemon.Set(context.Background(), image, daemon.ModeNext); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	applied, err := h.daemon.Set(context.Background(), "", daemon.ModePrev)
	if err != nil {
		t.Fatalf("Set prev: %v", err)
	}
	if applied != first {
		t.Fatalf("expected %s, got %s", first, applied)
	}
	// prev is itself an application: history gains a new entry.
	if h.daemon.Status().HistoryLen != 3 {
		t.Fatalf("expected 3 history entries, got %d", h.daemon.Status().HistoryLen)
	}
}

func TestSetConsumesQueueFront(t *testing.T) {
	h := newHarness(t)
	h.addImage(t, "random.png")
	queued := h.addImage(t, "queued.png")
	store := queue.New(h.cfg.Queue.File)
	if err := store.Enqueue(queued); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	applied, err := h.daemon.Set(context.Background(), "", daemon.ModeNext)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if applied != queued {
		t.Fatalf("expected queue front %s, got %s", queued, applied)
	}
	if h.daemon.Status().QueueLength != 0 {
		t.Fatal("queue front not consumed")
	}
}

func TestPrevAfterQueuedNextStepsThroughHistory(t *testing.T) {
	h := newHarness(t)
	before := h.addImage(t, "before.png")
	if _, err := h.daemon.Set(context.Background(), before, daemon.ModeNext); err != nil {
		t.Fatalf("Set: %v", err)
	}

	first := h.addImage(t, "first.png")
	second := h.addImage(t, "second.png")
	store := queue.New(h.cfg.Queue.File)
	for _, image := range []string{first, second} {
		if err := store.Enqueue(image); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	applied, err := h.daemon.Set(context.Background(), "", daemon.ModeNext)
	if err != nil {
		t.Fatalf("Set next: %v", err)
	}
	if applied != first {
		t.Fatalf("expected queue front %s, got %s", first, applied)
	}

	// prev steps back through history, not through the queue remainder.
	applied, err = h.daemon.Set(context.Background(), "", daemon.ModePrev)
	if err != nil {
		t.Fatalf("Set prev: %v", err)
	}
	if applied != before {
		t.Fatalf("expected %s, got %s", before, applied)
	}
	if h.daemon.Status().QueueLength != 1 {
		t.Fatalf("prev consumed the queue, %d entries left", h.daemon.Status().QueueLength)
	}
}

func TestSecondInstanceRejected(t *testing.T) {
	h := newHarness(t)

	other, err := daemon.New(h.cfg, wallpaper.NewFake(), nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := other.Start(context.Background()); !errors.Is(err, daemon.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestReloadConfigPicksUpNewStores(t *testing.T) {
	h := newHarness(t)
	image := h.addImage(t, "wall.png")
	if _, err := h.daemon.Set(context.Background(), image, daemon.ModeNext); err != nil {
		t.Fatalf("Set: %v", err)
	}

	relocated := filepath.Join(t.TempDir(), "history")
	h.cfg.History.File = relocated
	if err := h.cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	recovered, err := h.daemon.ReloadConfig()
	if err != nil {
		t.Fatalf("ReloadConfig: %v", err)
	}
	if recovered {
		t.Fatal("valid config reported as recovered")
	}
	if h.daemon.Status().HistoryLen != 0 {
		t.Fatal("reload did not switch to the relocated history file")
	}
}

func TestParseMode(t *testing.T) {
	if mode, err := daemon.ParseMode(""); err != nil || mode != daemon.ModeNext {
		t.Fatalf("empty mode: got %q, %v", mode, err)
	}
	if _, err := daemon.ParseMode("sideways"); err == nil {
		t.Fatal("expected unknown mode to be rejected")
	}
}
