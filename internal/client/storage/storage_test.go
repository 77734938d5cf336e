package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *SQLiteStorage {
	t.Helper()
	db, err := OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "clinicdesk.db"))
	require.NoError(t, err)
	s := NewSQLiteStorage(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func implementations(t *testing.T) map[string]Storage {
	return map[string]Storage{
		"sqlite": newSQLite(t),
		"memory": NewMemoryStorage(),
	}
}

func TestStorage_SetGet(t *testing.T) {
	for name, s := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := s.Get(ctx, "jwtToken")
			require.NoError(t, err)
			assert.False(t, ok, "absent key is not an error")

			require.NoError(t, s.Set(ctx, "jwtToken", "abc"))
			require.NoError(t, s.Set(ctx, "jwtToken", "def"))

			v, ok, err := s.Get(ctx, "jwtToken")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "def", v)
		})
	}
}

func TestStorage_EmptyValueIsPresent(t *testing.T) {
	for name, s := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, "userEmail", ""))

			v, ok, err := s.Get(ctx, "userEmail")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "", v)
		})
	}
}

func TestStorage_ApplyAndRemove(t *testing.T) {
	for name, s := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, "stale", "x"))

			err := s.Apply(ctx, map[string]string{"a": "1", "b": "2"}, []string{"stale"})
			require.NoError(t, err)

			all, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"a": "1", "b": "2"}, all)

			require.NoError(t, s.Remove(ctx, "a", "missing"))
			all, err = s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"b": "2"}, all)
		})
	}
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	db, err := OpenDatabase(ctx, path)
	require.NoError(t, err)
	s := NewSQLiteStorage(db)
	require.NoError(t, s.Set(ctx, "username", "nina"))
	require.NoError(t, s.Close())

	db, err = OpenDatabase(ctx, path)
	require.NoError(t, err)
	s = NewSQLiteStorage(db)
	defer s.Close()

	v, ok, err := s.Get(ctx, "username")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "nina", v)
}

func TestSQLiteStorage_ErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	s := newSQLite(t)
	require.NoError(t, s.Close())

	_, _, err := s.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get storage[k]")

	err = s.Set(ctx, "k", "v")
	require.ErrorContains(t, err, "failed to set storage[k]")

	_, err = s.List(ctx)
	require.ErrorContains(t, err, "failed to list storage")

	require.Error(t, s.Apply(ctx, map[string]string{"k": "v"}, nil))
}

func TestOpen_SelectsImplementation(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, MemoryPath)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	s, err = Open(ctx, filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLiteStorage{}, s)
}

func TestOpen_CreatesMissingDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "clinicdesk", "session.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "userId", "7"))
	assert.FileExists(t, path)
}
