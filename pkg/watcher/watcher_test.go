package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\n"), 0644))

	fw, err := NewFileWatcher(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	var mu sync.Mutex
	var calls []string
	require.NoError(t, fw.Watch([]string{path}, func(p string) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, p)
	}))
	fw.Start()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.obj"), []byte("x"), 0644))
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("v 1 1 1\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	absPath, err := filepath.Abs(path)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 1
	}, 3*time.Second, 20*time.Millisecond)

	// No further calls arrive once the burst is over.
	time.Sleep(300 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{absPath}, calls)
}

func TestRemoveAllStopsCallbacks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\n"), 0644))

	fw, err := NewFileWatcher(20*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	called := make(chan string, 10)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { called <- p }))
	fw.Start()
	require.NoError(t, fw.RemoveAll())

	require.NoError(t, os.WriteFile(path, []byte("v 1 1 1\n"), 0644))
	select {
	case p := <-called:
		t.Fatalf("unexpected callback for %s", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	err = fw.Watch([]string{filepath.Join(t.TempDir(), "missing", "model.obj")}, func(string) {})
	assert.Error(t, err)
}
