package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"refscribe/internal/runlock"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locks", "refscribe.lock")

	lock, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if lock.Path() != path {
		t.Fatalf("unexpected lock path: %q", lock.Path())
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	again, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("re-acquire after release failed: %v", err)
	}
	_ = again.Release()
}

func TestSecondAcquireFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refscribe.lock")

	lock, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer lock.Release()

	if _, err := runlock.Acquire(path); !errors.Is(err, runlock.ErrHeld) {
		t.Fatalf("expected ErrHeld, got %v", err)
	}
}

func TestReleaseNilLock(t *testing.T) {
	var lock *runlock.Lock
	if err := lock.Release(); err != nil {
		t.Fatalf("nil release should be a no-op, got %v", err)
	}
}
