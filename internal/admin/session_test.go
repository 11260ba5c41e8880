package admin

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicHeader(t *testing.T) {
	assert.Equal(t, "Basic YWRtaW46c2VjcmV0", BasicHeader("admin", "secret"))
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	c, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, c)

	require.NoError(t, store.Save(Credentials{Username: "admin", Password: "secret"}))
	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	c, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, &Credentials{Username: "admin", Password: "secret"}, c)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	c, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestSession_RestoresAndLogsOut(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save(Credentials{Username: "admin", Password: "secret"}))

	s, err := NewSession(store)
	require.NoError(t, err)
	h, ok := s.Header()
	require.True(t, ok)
	assert.Equal(t, BasicHeader("admin", "secret"), h)
	assert.Equal(t, "admin", s.Username())

	require.NoError(t, s.Logout())
	assert.False(t, s.Authenticated())
	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestSession_LoginValidation(t *testing.T) {
	s, err := NewSession(&MemoryStore{})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Login(" ", "x"), ErrValidation)
	assert.ErrorIs(t, s.Login("admin", ""), ErrValidation)
	assert.False(t, s.Authenticated())

	require.NoError(t, s.Login("admin", "secret"))
	assert.True(t, s.Authenticated())
}

func TestFileStore_Corrupt(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, os.WriteFile(store.Path(), []byte("{"), 0o600))

	s, err := NewSession(store)
	assert.Error(t, err)
	assert.False(t, s.Authenticated())
}
