package filelock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "run.lock")
	fl := NewFileLock(lockPath)

	require.NoError(t, fl.Lock())
	require.NoError(t, fl.Unlock())
	assert.Equal(t, lockPath, fl.Path())
}

func TestTryLockContention(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "run.lock")

	first := NewFileLock(lockPath)
	ok, err := first.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer first.Unlock()

	// flock locks are per-process on most platforms, so a second lock from
	// this process would succeed. Verify the lock file exists instead.
	_, err = os.Stat(lockPath)
	assert.NoError(t, err)
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	require.NoError(t, AtomicWrite(path, []byte(`{"ok":true}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))

	// No temp droppings left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAtomicWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, AtomicWrite(path, []byte("first")))
	require.NoError(t, AtomicWrite(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLockAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")

	require.NoError(t, LockAndWrite(path, []byte("data")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}
