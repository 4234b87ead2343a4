// Package timer manages the sw.timer systemd user unit. The daemon never
// schedules itself; rotation cadence belongs to systemd.
package timer

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// UnitName is the systemd timer unit driving periodic rotation.
const UnitName = "sw.timer"

// Runner executes a systemctl invocation and returns its combined output.
// Tests substitute a fake.
type Runner func(ctx context.Context, args ...string) (string, error)

// Manager drives systemctl --user for the timer unit.
type Manager struct {
	unit string
	run  Runner
}

// New returns a manager for UnitName backed by the real systemctl binary.
func New() *Manager {
	return &Manager{unit: UnitName, run: execSystemctl}
}

// NewWithRunner returns a manager using a custom runner, for tests.
func NewWithRunner(run Runner) *Manager {
	return &Manager{unit: UnitName, run: run}
}

// Status describes the timer unit state.
type Status struct {
	Active     bool
	Enabled    bool
	NextElapse string
}

// Enable enables and starts the timer in one step.
func (m *Manager) Enable(ctx context.Context) error {
	_, err := m.run(ctx, "enable", "--now", m.unit)
	return err
}

// Disable stops and disables the timer.
func (m *Manager) Disable(ctx context.Context) error {
	_, err := m.run(ctx, "disable", "--now", m.unit)
	return err
}

// Start starts the timer without changing its enablement.
func (m *Manager) Start(ctx context.Context) error {
	_, err := m.run(ctx, "start", m.unit)
	return err
}

// Stop stops the timer without changing its enablement.
func (m *Manager) Stop(ctx context.Context) error {
	_, err := m.run(ctx, "stop", m.unit)
	return err
}

// Query reports whether the timer is active and enabled, plus the next
// elapse when systemd exposes it. is-active and is-enabled exit non-zero
// for inactive units, so their errors are not failures.
func (m *Manager) Query(ctx context.Context) (Status, error) {
	var status Status

	if out, err := m.run(ctx, "is-active", m.unit); err == nil {
		status.Active = strings.TrimSpace(out) == "active"
	}
	if out, err := m.run(ctx, "is-enabled", m.unit); err == nil {
		status.Enabled = strings.TrimSpace(out) == "enabled"
	}

	out, err := m.run(ctx, "show", m.unit, "--property=NextElapseUSecRealtime", "--value")
	if err != nil {
		return status, nil
	}
	if next := strings.TrimSpace(out); next != "" && next != "n/a" {
		status.NextElapse = next
	}
	return status, nil
}

func execSystemctl(ctx context.Context, args ...string) (string, error) {
	full := append([]string{"--user"}, args...)
	cmd := exec.CommandContext(ctx, "systemctl", full...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		return string(output), fmt.Errorf("systemctl %s: %s", strings.Join(args, " "), detail)
	}
	return string(output), nil
}
