package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newPayloadFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.json")
	writeFile(t, path, `{"data": []}`)
	return path
}

func newTestWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	// Give fsnotify time to start watching.
	time.Sleep(50 * time.Millisecond)
	return w
}

func TestNewWatcherSuccess(t *testing.T) {
	w := newTestWatcher(t, newPayloadFile(t))

	if w.Changes() == nil {
		t.Error("Changes() returned nil channel")
	}
	if w.Errors() == nil {
		t.Error("Errors() returned nil channel")
	}
}

func TestNewWatcherBadPath(t *testing.T) {
	if _, err := NewWatcher("/nonexistent/dir/payload.json"); err == nil {
		t.Error("NewWatcher should fail for nonexistent directory")
	}
}

func TestWatcherDetectsWrite(t *testing.T) {
	path := newPayloadFile(t)
	w := newTestWatcher(t, path)

	writeFile(t, path, `{"data": [{"name": "a"}]}`)

	select {
	case <-w.Changes():
		// Success.
	case <-time.After(2 * time.Second):
		t.Error("timed out waiting for change signal on payload write")
	}
}

func TestWatcherDetectsRenameOver(t *testing.T) {
	path := newPayloadFile(t)
	w := newTestWatcher(t, path)

	// Editors often save by writing a temp file and renaming it into place.
	tmp := filepath.Join(filepath.Dir(path), ".payload.json.swp")
	writeFile(t, tmp, `{"data": []}`)
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Error("timed out waiting for change signal on rename")
	}
}

func TestWatcherDebouncesBurst(t *testing.T) {
	path := newPayloadFile(t)
	w := newTestWatcher(t, path)

	for i := 0; i < 5; i++ {
		writeFile(t, path, `{"data": []}`)
	}

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change signal")
	}
	select {
	case <-w.Changes():
		t.Error("burst produced more than one signal")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	path := newPayloadFile(t)
	w := newTestWatcher(t, path)

	writeFile(t, filepath.Join(filepath.Dir(path), "other.txt"), "noise")

	select {
	case <-w.Changes():
		t.Error("unexpected change signal from unrelated file write")
	case <-time.After(300 * time.Millisecond):
		// Success: no signal.
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher(newPayloadFile(t))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
