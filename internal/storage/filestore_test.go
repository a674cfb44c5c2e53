package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	in := payload{Name: "Ibuprofen 400mg", Count: 8}
	require.NoError(t, fs.Save("test_key", in))

	var out payload
	require.NoError(t, fs.Load("test_key", &out))
	assert.Equal(t, in, out)
}

func TestFileStoreOverwrite(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Save("k", payload{Count: 1}))
	require.NoError(t, fs.Save("k", payload{Count: 2}))

	var out payload
	require.NoError(t, fs.Load("k", &out))
	assert.Equal(t, 2, out.Count)
}

func TestFileStoreMissingKey(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var out payload
	assert.ErrorIs(t, fs.Load("absent", &out), ErrNotFound)
}

func TestFileStoreCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	var out payload
	err = fs.Load("bad", &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStoreCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
