package timer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sw/internal/timer"
)

type fakeRunner struct {
	calls   [][]string
	outputs map[string]string
	fail    map[string]error
}

func (f *fakeRunner) run(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	key := strings.Join(args, " ")
	for prefix, err := range f.fail {
		if strings.HasPrefix(key, prefix) {
			return "", err
		}
	}
	for prefix, out := range f.outputs {
		if strings.HasPrefix(key, prefix) {
			return out, nil
		}
	}
	return "", nil
}

func TestEnableUsesEnableNow(t *testing.T) {
	fake := &fakeRunner{}
	manager := timer.NewWithRunner(fake.run)

	if err := manager.Enable(context.Background()); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("expected one systemctl call, got %d", len(fake.calls))
	}
	got := strings.Join(fake.calls[0], " ")
	if got != "enable --now sw.timer" {
		t.Fatalf("unexpected invocation: %s", got)
	}
}

func TestDisablePropagatesFailure(t *testing.T) {
	boom := errors.New("unit not found")
	fake := &fakeRunner{fail: map[string]error{"disable": boom}}
	manager := timer.NewWithRunner(fake.run)

	if err := manager.Disable(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected runner error, got %v", err)
	}
}

func TestQueryParsesState(t *testing.T) {
	fake := &fakeRunner{outputs: map[string]string{
		"is-active":  "active\n",
		"is-enabled": "enabled\n",
		"show":       "Mon 2026-08-24 09:00:00 UTC\n",
	}}
	manager := timer.NewWithRunner(fake.run)

	status, err := manager.Query(context.Background())
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !status.Active || !status.Enabled {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.NextElapse != "Mon 2026-08-24 09:00:00 UTC" {
		t.Fatalf("unexpected next elapse: %q", status.NextElapse)
	}
}

func TestQueryTreatsInactiveAsStatusNotError(t *testing.T) {
	fake := &fakeRunner{
		outputs: map[string]string{"is-active": "inactive\n"},
		fail:    map[string]error{"is-enabled": errors.New("exit 1"), "show": errors.New("exit 1")},
	}
	manager := timer.NewWithRunner(fake.run)

	status, err := manager.Query(context.Background())
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if status.Active || status.Enabled || status.NextElapse != "" {
		t.Fatalf("unexpected status: %+v", status)
	}
}
