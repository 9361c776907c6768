package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rexnie/gentags/internal/logger"
)

func TestRebuildTriggeredOnChange(t *testing.T) {
	dir := t.TempDir()
	log := logger.NewConsoleLogger(nil, "error")

	w := New([]string{dir}, log)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rebuilt := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(ctx context.Context) error {
			select {
			case rebuilt <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "new.c"), []byte("int x;\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild not triggered within timeout")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestEventsAreDebounced(t *testing.T) {
	dir := t.TempDir()
	log := logger.NewConsoleLogger(nil, "error")

	w := New([]string{dir}, log)
	w.debounce = 200 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rebuilds := make(chan struct{}, 16)
	go w.Run(ctx, func(ctx context.Context) error {
		rebuilds <- struct{}{}
		return nil
	})

	time.Sleep(100 * time.Millisecond)

	// A burst of writes inside the debounce window.
	for i := 0; i < 5; i++ {
		name := filepath.Join(dir, "burst"+string(rune('a'+i))+".c")
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-rebuilds:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after burst")
	}

	// The burst should have collapsed into a single rebuild.
	select {
	case <-rebuilds:
		t.Error("burst triggered more than one rebuild")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestMissingRootFails(t *testing.T) {
	log := logger.NewConsoleLogger(nil, "error")
	w := New([]string{filepath.Join(t.TempDir(), "nope")}, log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := w.Run(ctx, func(ctx context.Context) error { return nil })
	if err == nil || errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want watch registration error, got %v", err)
	}
}
