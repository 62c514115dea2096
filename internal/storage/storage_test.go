package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	path := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, s.Write(ctx, path, []byte("a : 2\n")))

	ok, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := s.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "a : 2\n", string(data))

	require.NoError(t, s.Remove(ctx, path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStoreReadMissing(t *testing.T) {
	_, err := New().Read(context.Background(), filepath.Join(t.TempDir(), "missing.c"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputUnavailable)
}

func TestStoreReadDirectory(t *testing.T) {
	_, err := New().Read(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputUnavailable)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestStoreRemoveMissing(t *testing.T) {
	assert.NoError(t, New().Remove(context.Background(), filepath.Join(t.TempDir(), "gone")))
}
