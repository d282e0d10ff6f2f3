package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_SetGetRemove(t *testing.T) {
	b := NewMemoryBackend()

	_, ok, err := b.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, b.Set("b", "2"))
	require.NoError(t, b.Set("a", "1"))

	value, ok, err := b.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", value)

	keys, err := b.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, b.Remove("a"))
	_, ok, err = b.Get("a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOpenFileBackend_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	b, err := OpenFileBackend(path)
	require.NoError(t, err)
	require.Equal(t, path, b.Path())

	keys, err := b.Keys()
	require.NoError(t, err)
	require.Empty(t, keys)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenFileBackend_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	b, err := OpenFileBackend(path)
	require.NoError(t, err)

	keys, err := b.Keys()
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestOpenFileBackend_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := OpenFileBackend(path)
	require.Error(t, err)
}

func TestFileBackend_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")

	b, err := OpenFileBackend(path)
	require.NoError(t, err)
	require.NoError(t, b.Set(KeyToken, "abc"))
	require.NoError(t, b.Set(KeyUsers, `[{"id":"1"}]`))

	reopened, err := OpenFileBackend(path)
	require.NoError(t, err)

	token, ok, err := reopened.Get(KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", token)

	require.NoError(t, reopened.Remove(KeyToken))

	again, err := OpenFileBackend(path)
	require.NoError(t, err)
	keys, err := again.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{KeyUsers}, keys)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileBackend_RemoveMissingKey(t *testing.T) {
	b, err := OpenFileBackend(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	require.NoError(t, b.Remove("nothing"))
}
