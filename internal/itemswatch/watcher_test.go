package itemswatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := New(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func waitEvent(t *testing.T, w *Watcher) bool {
	t.Helper()
	select {
	case <-w.Events():
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("Apple\n"), 0644))

	w := startWatcher(t, path)
	assert.Equal(t, path, w.Path())

	// A burst of writes collapses into one notification.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("Apple\nBanana\n"), 0644))
	}
	assert.True(t, waitEvent(t, w))

	select {
	case <-w.Events():
		t.Fatal("burst produced more than one notification")
	case <-time.After(3 * debounceInterval):
	}
}

func TestWatcherReportsRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- Apple\n"), 0644))

	w := startWatcher(t, path)

	tmp := filepath.Join(dir, "items.yaml.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("- Kiwi\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))

	assert.True(t, waitEvent(t, w))
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("Apple\n"), 0644))

	w := startWatcher(t, path)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))

	select {
	case <-w.Events():
		t.Fatal("sibling change reported")
	case <-time.After(3 * debounceInterval):
	}
}

func TestWatcherStopTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	w, err := New(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcherMissingDir(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "items.txt"))
	require.NoError(t, err)
	assert.Error(t, w.Start())
}
