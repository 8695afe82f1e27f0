package testutil

import (
	"archive/zip"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStubCreatesExecutableThatSucceeds(t *testing.T) {
	dir := t.TempDir()
	WriteStub(t, dir, "ok-stub")

	info, err := os.Stat(filepath.Join(dir, "ok-stub"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111)
	require.NoError(t, exec.Command(filepath.Join(dir, "ok-stub")).Run())
}

func TestWriteStubWithExitReturnsCode(t *testing.T) {
	dir := t.TempDir()
	WriteStubWithExit(t, dir, "fail-stub", 3)

	err := exec.Command(filepath.Join(dir, "fail-stub")).Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestWriteZipRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg", "Update_1.0.zip")
	WriteZip(t, path,
		ZipEntry{Name: "dir/"},
		ZipEntry{Name: "dir/a.txt", Body: "alpha"},
	)

	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = reader.Close() }()
	require.Len(t, reader.File, 2)
	assert.True(t, reader.File[0].FileInfo().IsDir())
	assert.Equal(t, "dir/a.txt", reader.File[1].Name)
}

func TestWriteTreeAndReadTree(t *testing.T) {
	root := t.TempDir()
	WriteTree(t, root, map[string]string{"a.txt": "1", "sub/b.txt": "2"})

	tree := ReadTree(t, root)
	assert.Equal(t, map[string]string{"a.txt": "1", "sub/": "", "sub/b.txt": "2"}, tree)
	assert.Equal(t, []string{"a.txt", "sub/", "sub/b.txt"}, SortedKeys(tree))
}

func TestWithWorkingDirRestores(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()

	WithWorkingDir(t, dir, func() {
		cwd, err := os.Getwd()
		require.NoError(t, err)
		resolved, _ := filepath.EvalSymlinks(dir)
		actual, _ := filepath.EvalSymlinks(cwd)
		assert.Equal(t, resolved, actual)
	})

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
