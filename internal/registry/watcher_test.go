package registry

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeFramework(t, dir, "civ.yaml", sampleFramework)

	var reloads atomic.Int64
	var lastCount atomic.Int64
	w, err := NewWatcher(dir, nil, 50*time.Millisecond, func(reg *Registry) {
		reloads.Add(1)
		lastCount.Store(int64(reg.Stats().Rules))
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	writeFramework(t, dir, "extra.yaml", "id: extra\nrules:\n  - id: extra-rule?\n")

	deadline := time.After(5 * time.Second)
	for reloads.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("no reload observed; stats=%+v", w.Stats())
		case <-time.After(20 * time.Millisecond):
		}
	}
	if lastCount.Load() != 2 {
		t.Errorf("reloaded registry has %d rules, want 2", lastCount.Load())
	}
}

func TestWatcherKeepsPreviousOnBrokenReload(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeFramework(t, dir, "civ.yaml", sampleFramework)

	var reloads atomic.Int64
	w, err := NewWatcher(dir, nil, 50*time.Millisecond, func(*Registry) {
		reloads.Add(1)
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	// Invalid YAML: the reload must be dropped, not applied.
	writeFramework(t, dir, "broken.yaml", "id: [unclosed")

	deadline := time.After(5 * time.Second)
	for w.Stats().ReloadsFailed == 0 {
		select {
		case <-deadline:
			t.Fatalf("no failed reload observed; stats=%+v", w.Stats())
		case <-time.After(20 * time.Millisecond):
		}
	}
	if reloads.Load() != 0 {
		t.Errorf("broken reload was applied %d times", reloads.Load())
	}
}

func TestWatcherRequiresCallback(t *testing.T) {
	if _, err := NewWatcher(t.TempDir(), nil, 0, nil); err == nil {
		t.Fatalf("expected error for nil callback")
	}
}

func TestWatcherStopIdempotentBeforeStart(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), nil, 0, func(*Registry) {})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	w.Stop() // must not panic or block when never started
}

func TestWatcherStopIdempotentAfterStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeFramework(t, dir, "civ.yaml", sampleFramework)

	w, err := NewWatcher(dir, nil, 0, func(*Registry) {})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	w.Stop()
	w.Stop() // second Stop must not panic on a closed channel
}
