package infra

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveReplaceDelete(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root, "http://localhost:8080/media/")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "doctors/a.jpg", strings.NewReader("first"), 5, "image/jpeg"))
	require.NoError(t, s.Save(ctx, "doctors/a.jpg", strings.NewReader("second"), 6, "image/jpeg"))

	data, err := os.ReadFile(filepath.Join(root, "doctors", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Join(root, "doctors"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, s.Delete(ctx, "doctors/a.jpg"))
	_, err = os.Stat(filepath.Join(root, "doctors", "a.jpg"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(ctx, "doctors/a.jpg"), "deleting a missing object is not an error")
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	for _, key := range []string{"../etc/passwd", "..", "doctors/../../x"} {
		err := s.Save(context.Background(), key, strings.NewReader("x"), 1, "")
		assert.Error(t, err, key)
	}
}

func TestLocalStorage_PublicURL(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/media/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/interior/hall.jpg", s.PublicURL("/interior/hall.jpg"))
}
