package bundle

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// waitForKey drains watcher events until key arrives or the timeout fires.
func waitForKey(t *testing.T, w *Watcher, key string, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case got, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed while waiting for %q", key)
			}
			if got == key {
				return
			}
			// Unrelated event (parent dir churn etc.) - keep draining
		case <-deadline:
			t.Fatalf("timed out waiting for event for %q", key)
		}
	}
}

func TestWatcher_EmitsChangedKey(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "textures/hero.png", []byte("v1"))

	w, err := NewWatcher(root)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()
	w.Start()

	writeAsset(t, root, "textures/hero.png", []byte("v2"))
	waitForKey(t, w, "textures/hero.png", 3*time.Second)
}

func TestWatcher_EmitsCreatedKey(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "audio"), 0755))

	w, err := NewWatcher(root)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()
	w.Start()

	writeAsset(t, root, "audio/theme.ogg", []byte("fresh"))
	waitForKey(t, w, "audio/theme.ogg", 3*time.Second)
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	root := t.TempDir()

	w, err := NewWatcher(root)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()
	w.Start()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "maps"), 0755))
	// Give the watcher a beat to pick up the new directory watch
	time.Sleep(200 * time.Millisecond)

	writeAsset(t, root, "maps/overworld.dat", []byte("tiles"))
	waitForKey(t, w, "maps/overworld.dat", 3*time.Second)
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	w.Start()

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events()
	require.False(t, ok, "events channel should be closed")
}

func TestWatcher_CloseWithoutStart(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_ = w.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close timed out on an unstarted watcher")
	}
}

func TestNewWatcher_Errors(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = NewWatcher(file)
	require.ErrorContains(t, err, "not a directory")
}
