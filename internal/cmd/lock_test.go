//go:build !windows

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/itempicker/internal/config"
)

func TestAcquireLock_Success(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "picker.lock")

	fd, err := acquireLock(lockPath)
	require.NoError(t, err)
	defer releaseLock(fd)

	_, err = os.Stat(lockPath)
	assert.NoError(t, err, "lock file should exist")
}

func TestAcquireLock_SecondInstanceFails(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "picker.lock")

	fd1, err := acquireLock(lockPath)
	require.NoError(t, err)

	fd2, err := acquireLock(lockPath)
	if err == nil {
		releaseLock(fd2)
		releaseLock(fd1)
		t.Fatal("expected second acquireLock to fail, but it succeeded")
	}
	assert.ErrorIs(t, err, errLocked)

	releaseLock(fd1)

	fd3, err := acquireLock(lockPath)
	require.NoError(t, err, "lock is free after release")
	releaseLock(fd3)
}

func TestReleaseLock_InvalidFd(t *testing.T) {
	// Releasing with -1 should not panic.
	releaseLock(-1)
}

func TestPick_LockedFallsBack(t *testing.T) {
	isolate(t)
	calls := withKeys(t, keyEnter)

	paths := config.DefaultPaths()
	require.NoError(t, os.MkdirAll(paths.CacheDir, 0o755))
	fd, err := acquireLock(paths.LockFile())
	require.NoError(t, err)
	defer releaseLock(fd)

	_, err = execute(t, "", "pick", "a")
	assert.ErrorIs(t, err, errLocked)
	assert.Equal(t, exitFallback, ExitCode(err))
	assert.Zero(t, *calls)
}

func TestCheckTermWidth_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notatty")
	require.NoError(t, err)
	defer f.Close()

	assert.Error(t, checkTermWidth(f))
}
