package locator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuiper-sh/kuiper/packages/core/request"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"uri":"http://x","method":"GET"}`), 0644))
}

func testTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "users", "get_user.kuiper"))
	writeFile(t, filepath.Join(root, "users", "create_user.kuiper"))
	writeFile(t, filepath.Join(root, "admin", "users", "get_user.kuiper"))
	writeFile(t, filepath.Join(root, "health.kuiper"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("get_user"), 0644))
	return root
}

func TestLocateExact(t *testing.T) {
	root := testTree(t)
	loc := New(root)

	path, err := loc.LocateExact("health.kuiper")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "health.kuiper"), path)

	path, err = loc.LocateExact(filepath.Join(root, "users", "get_user.kuiper"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "users", "get_user.kuiper"), path)
}

func TestLocateExactNotFound(t *testing.T) {
	loc := New(testTree(t))

	_, err := loc.LocateExact("missing.kuiper")
	assert.True(t, errors.Is(err, request.ErrNotFound))
}

func TestLocateExactDirectory(t *testing.T) {
	loc := New(testTree(t))

	_, err := loc.LocateExact("users")
	assert.True(t, errors.Is(err, request.ErrNotFound))
}

func TestSearch(t *testing.T) {
	root := testTree(t)
	loc := New(root)

	t.Run("single match", func(t *testing.T) {
		matches, err := loc.Search("create_user")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, filepath.Join(root, "users", "create_user.kuiper"), matches[0])
	})

	t.Run("multiple matches", func(t *testing.T) {
		matches, err := loc.Search("get_user")
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("no matches", func(t *testing.T) {
		matches, err := loc.Search("delete_user")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("matches on directory component", func(t *testing.T) {
		matches, err := loc.Search("admin")
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("case sensitive", func(t *testing.T) {
		matches, err := loc.Search("GET_USER")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("ignores other extensions", func(t *testing.T) {
		matches, err := loc.Search("notes")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestSearchMissingRoot(t *testing.T) {
	loc := New(filepath.Join(t.TempDir(), "nope"))

	_, err := loc.Search("anything")
	assert.Error(t, err)
}
