package prefs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeContract(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Get(KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyTheme, "dark"))
	require.NoError(t, s.Set(KeyTheme, "light"))
	v, ok, err := s.Get(KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	require.NoError(t, SetBool(s, KeySidebarCollapsed, true))
	assert.True(t, GetBool(s, KeySidebarCollapsed))
	require.NoError(t, SetBool(s, KeySidebarCollapsed, false))
	assert.False(t, GetBool(s, KeySidebarCollapsed))

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyTheme: "light", KeySidebarCollapsed: "false"}, all)

	require.NoError(t, s.Delete(KeyTheme))
	_, ok, err = s.Get(KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStore_Closed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Set(KeyTheme, "dark"), ErrClosed)
	_, _, err := s.Get(KeyTheme)
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, GetBool(s, KeySidebarCollapsed))
}

func TestSQLiteStore_Memory(t *testing.T) {
	s, err := OpenMemory()
	require.NoError(t, err)
	defer s.Close()

	storeContract(t, s)
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyTheme, "dark"))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
	assert.Equal(t, path, reopened.Path())
}
