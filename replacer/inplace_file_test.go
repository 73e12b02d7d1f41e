package replacer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplaceInFileShrinking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shrink.txt")
	require.NoError(t, os.WriteFile(path, []byte("abcabcabcad"), 0o644))

	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	require.NoError(t, err)
	require.NoError(t, ReplaceInFile(f, []byte("abc"), []byte("X")))
	require.NoError(t, f.Close())

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "XXXad", string(out))
}

func TestReplaceInFileGrowing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grow.txt")
	require.NoError(t, os.WriteFile(path, []byte("abcabcabcad"), 0o644))

	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	require.NoError(t, err)
	require.NoError(t, ReplaceInFile(f, []byte("abc"), []byte("universe")))
	require.NoError(t, f.Close())

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "universeuniverseuniversead", string(out))
}

func TestReplaceInFileRejectsEmptySearch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	require.NoError(t, err)
	defer f.Close()

	require.Error(t, ReplaceInFile(f, nil, []byte("x")))
}

func TestReplaceInFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Open(dir)
	require.NoError(t, err)
	defer f.Close()

	require.Error(t, ReplaceInFile(f, []byte("a"), []byte("b")))
}
