package store

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("Skipping: fsnotify Windows goroutines cause goleak failures")
	}
}

func TestWatcher_ReportsExternalWrites(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "saved_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	w, err := NewWatcher(path, 40*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`{"home":{}}`), 0644))

	select {
	case <-w.Events():
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcher_SeesAtomicReplace(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "saved_data.json")
	w, err := NewWatcher(path, 40*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, ExportEntries(path, nil))

	select {
	case <-w.Events():
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification for rename")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, "saved_data.json"), 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))

	select {
	case <-w.Events():
		t.Fatal("unexpected notification for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(filepath.Join(t.TempDir(), "saved_data.json"), 0)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	w.Stop()
	w.Stop()

	require.Error(t, w.Start(context.Background()))
}
