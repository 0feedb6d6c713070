package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sieve.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Put("some-key", []byte(`{"a":1}`)))

	data, ok, err := s.Get("some-key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestSQLiteStore_MissingKey(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, ok, err := s.Get("nothing-here")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_Upsert(t *testing.T) {
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Put("k", []byte("v1")))
	require.NoError(t, s.Put("k", []byte("v2")))

	data, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v2", string(data))
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := newTestSQLiteStore(t)
	require.NoError(t, s.Put("k", []byte("v")))

	require.NoError(t, s.Delete("k"))

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, s.Delete("k"))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sieve.db")

	s1, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Put("k", []byte("v")))
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	data, ok, err := s2.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(data))
}

func TestSQLiteStore_InvalidKeys(t *testing.T) {
	s := newTestSQLiteStore(t)

	assert.Error(t, s.Put("", []byte("v")))
	assert.Error(t, s.Put("has space", []byte("v")))
}
