package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_CopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.txt")
	dest := filepath.Join(dir, "publish", "v001", "source.txt")

	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	fsys := New()
	require.NoError(t, fsys.CopyFile(src, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestOSFileSystem_CopyFile_SourceMissing(t *testing.T) {
	dir := t.TempDir()

	fsys := New()
	err := fsys.CopyFile(filepath.Join(dir, "absent.txt"), filepath.Join(dir, "out.txt"))
	assert.Error(t, err)
}

func TestOSFileSystem_CopyFile_SourceIsDir(t *testing.T) {
	dir := t.TempDir()

	fsys := New()
	err := fsys.CopyFile(dir, filepath.Join(dir, "out.txt"))
	assert.ErrorContains(t, err, "source is a directory")
}

func TestOSFileSystem_ExistsIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	fsys := New()
	assert.True(t, fsys.Exists(file))
	assert.True(t, fsys.Exists(dir))
	assert.False(t, fsys.Exists(filepath.Join(dir, "nope")))
	assert.True(t, fsys.IsDir(dir))
	assert.False(t, fsys.IsDir(file))
}

func TestOSFileSystem_Glob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"frame.0001.exr", "frame.0002.exr", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	fsys := New()
	matches, err := fsys.Glob(filepath.Join(dir, "frame.*.exr"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestOSFileSystem_GetFileInfo(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("abc"), 0o644))

	fsys := New()
	info, err := fsys.GetFileInfo(file)
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size)
	assert.False(t, info.IsDir)
}
