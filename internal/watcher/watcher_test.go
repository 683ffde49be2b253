package watcher

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

type tsFilter struct{}

func (tsFilter) ExcludedDir(rel string) bool { return filepath.Base(rel) == "skip" }
func (tsFilter) IsSource(rel string) bool {
	return strings.HasSuffix(rel, ".ts") && !strings.HasPrefix(filepath.ToSlash(rel), "skip/")
}

func newTestWatcher(t *testing.T, root string, debounce time.Duration) (*Watcher, chan []string) {
	t.Helper()
	changes := make(chan []string, 16)
	w, err := New(root, tsFilter{}, debounce, func(paths []string) { changes <- paths })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w, changes
}

func TestNewRequiresCallback(t *testing.T) {
	if _, err := New(t.TempDir(), tsFilter{}, time.Millisecond, nil); err == nil {
		t.Fatal("expected an error without a callback")
	}
}

func TestDebounceBatchesChanges(t *testing.T) {
	w, changes := newTestWatcher(t, t.TempDir(), 20*time.Millisecond)

	w.scheduleChange("b.ts")
	w.scheduleChange("a.ts")
	w.scheduleChange("a.ts")

	select {
	case got := <-changes:
		if want := []string{"a.ts", "b.ts"}; !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch delivered")
	}

	select {
	case extra := <-changes:
		t.Errorf("unexpected second batch %v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHandleFiltersEvents(t *testing.T) {
	root := t.TempDir()
	w, _ := newTestWatcher(t, root, time.Hour)

	w.handle(fsnotify.Event{Name: filepath.Join(root, "notes.md"), Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: filepath.Join(root, "skip", "x.ts"), Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: filepath.Join(root, "src", "a.ts"), Op: fsnotify.Chmod})
	w.handle(fsnotify.Event{Name: filepath.Join(root, "src", "b.ts"), Op: fsnotify.Remove})

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if len(w.pending) != 1 {
		t.Fatalf("expected one pending change, got %v", w.pending)
	}
	if _, ok := w.pending["src/b.ts"]; !ok {
		t.Errorf("expected src/b.ts pending, got %v", w.pending)
	}
}

func TestRunReportsSourceChanges(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "skip"), 0o755); err != nil {
		t.Fatal(err)
	}
	w, changes := newTestWatcher(t, root, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for received := false; !received; {
		select {
		case got := <-changes:
			for _, p := range got {
				if p != "main.ts" {
					t.Errorf("unexpected path in batch: %s", p)
				}
			}
			received = len(got) > 0
		case <-tick.C:
			// Writes repeat until the watch is registered.
			os.WriteFile(filepath.Join(root, "notes.md"), []byte("x"), 0o644)
			os.WriteFile(filepath.Join(root, "skip", "x.ts"), []byte("x"), 0o644)
			os.WriteFile(filepath.Join(root, "main.ts"), []byte("let a = 1;"), 0o644)
		case <-deadline:
			t.Fatal("no change reported")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
