package build

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cmb.dll")
	require.NoError(t, os.WriteFile(src, []byte("library"), 0755))
	mtime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	dest := filepath.Join(dir, "out.dll")
	require.NoError(t, copyFile(discardLogger(), src, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "library", string(data))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestCopyFileReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cmb.dll")
	dest := filepath.Join(dir, "staged.dll")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0644))
	require.NoError(t, os.WriteFile(dest, []byte("old and longer"), 0644))

	require.NoError(t, copyFile(discardLogger(), src, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temporary file left behind")
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()

	err := copyFile(discardLogger(), filepath.Join(dir, "missing.dll"), filepath.Join(dir, "out.dll"))

	require.Error(t, err)
	assert.True(t, errdefs.IsNotFound(err))
}

func TestCopyFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()

	err := copyFile(discardLogger(), dir, filepath.Join(dir, "out"))

	require.Error(t, err)
	assert.False(t, errdefs.IsNotFound(err))
}

func TestStageFiles(t *testing.T) {
	src := t.TempDir()
	for _, name := range []string{"cmb.dll", "cmb.pdb"} {
		require.NoError(t, os.WriteFile(filepath.Join(src, name), []byte(name), 0644))
	}
	dest := filepath.Join(t.TempDir(), "runtimes", "win-x64", "native")

	staged, err := stageFiles(discardLogger(), src, dest, []string{"cmb.dll", "cmb.pdb"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dest, "cmb.dll"), filepath.Join(dest, "cmb.pdb")}, staged)

	// Staging again into an existing directory succeeds.
	_, err = stageFiles(discardLogger(), src, dest, []string{"cmb.dll", "cmb.pdb"})
	require.NoError(t, err)
}

func TestStageFilesStopsAtFirstFailure(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "cmb.dll"), []byte("dll"), 0644))
	dest := t.TempDir()

	staged, err := stageFiles(discardLogger(), src, dest, []string{"cmb.dll", "cmb.pdb", "extra"})

	require.Error(t, err)
	assert.True(t, errdefs.IsNotFound(err))
	assert.Empty(t, staged)
	assert.NoFileExists(t, filepath.Join(dest, "cmb.dll"))
	assert.NoFileExists(t, filepath.Join(dest, "extra"))
}

func TestStageFilesLogsThroughLogger(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "cmb.dll"), []byte("dll"), 0644))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})).With("run", "r-1")

	_, err := stageFiles(logger, src, t.TempDir(), []string{"cmb.dll"})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "msg=staged")
	assert.Contains(t, logs.String(), "run=r-1")
}
