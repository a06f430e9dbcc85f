package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRecordAndRecent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, uri := range []string{"http://a", "http://b", "http://c"} {
		err := store.Record(ctx, Entry{
			SentAt:   base.Add(time.Duration(i) * time.Minute),
			Name:     "req.kuiper",
			Method:   "GET",
			URI:      uri,
			Status:   200,
			Duration: 15 * time.Millisecond,
		})
		require.NoError(t, err)
	}

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "http://c", entries[0].URI, "newest entry first")
	assert.Equal(t, "http://b", entries[1].URI)
	assert.Equal(t, 200, entries[0].Status)
	assert.Equal(t, 15*time.Millisecond, entries[0].Duration)
}

func TestStoreRecentEmpty(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), Entry{
		SentAt: time.Now(),
		Name:   "a.kuiper",
		Method: "GET",
		URI:    "http://a",
		Status: 204,
	}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
