package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cm "github.com/mosaicnetworks/hepmc/src/common"
)

func initBadgerStore(cacheSize int, t *testing.T) *BadgerStore {
	dir := filepath.Join(t.TempDir(), "badger")

	store, err := NewBadgerStore(cacheSize, dir, cm.NewTestEntry(t, "store"))
	require.NoError(t, err)

	return store
}

func TestNewBadgerStore(t *testing.T) {
	store := initBadgerStore(10, t)
	defer store.Close()

	_, err := os.Stat(store.StorePath())
	assert.NoError(t, err)
	assert.Equal(t, 10, store.CacheSize())

	l, err := store.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, l)
}

func TestBadgerStoreEvents(t *testing.T) {
	store := initBadgerStore(1, t)
	defer store.Close()

	for _, n := range []int{5, -2, 3} {
		require.NoError(t, store.SetEvent(newTestEvent(t, n)))
	}

	// only event 3 is still cached, the others come from the database
	for _, n := range []int{5, -2, 3} {
		got, err := store.GetEvent(n)
		require.NoError(t, err)
		assert.True(t, newTestEvent(t, n).Equal(got), "event %d", n)
	}

	numbers, err := store.EventNumbers()
	require.NoError(t, err)
	assert.Equal(t, []int{-2, 3, 5}, numbers)

	_, err = store.GetEvent(4)
	assert.True(t, cm.IsStore(err, cm.KeyNotFound), "%v", err)

	// eviction from the cache does not allow overwriting
	err = store.SetEvent(newTestEvent(t, 5))
	assert.True(t, cm.IsStore(err, cm.KeyAlreadyExists), "%v", err)
}

func TestLoadBadgerStore(t *testing.T) {
	store := initBadgerStore(10, t)
	path := store.StorePath()

	for n := 1; n <= 4; n++ {
		require.NoError(t, store.SetEvent(newTestEvent(t, n)))
	}
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err := store.GetEvent(1)
	assert.True(t, cm.IsStore(err, cm.Closed), "%v", err)

	loaded, err := LoadBadgerStore(10, path, cm.NewTestEntry(t, "store"))
	require.NoError(t, err)
	defer loaded.Close()

	l, err := loaded.Len()
	require.NoError(t, err)
	assert.Equal(t, 4, l)

	for n := 1; n <= 4; n++ {
		got, err := loaded.GetEvent(n)
		require.NoError(t, err)
		assert.True(t, newTestEvent(t, n).Equal(got), "event %d", n)
	}

	err = loaded.SetEvent(newTestEvent(t, 2))
	assert.True(t, cm.IsStore(err, cm.KeyAlreadyExists), "%v", err)
}

func TestLoadOrCreateBadgerStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")

	_, err := LoadBadgerStore(10, path, cm.NewTestEntry(t, "store"))
	assert.Error(t, err)

	store, err := LoadOrCreateBadgerStore(10, path, cm.NewTestEntry(t, "store"))
	require.NoError(t, err)
	require.NoError(t, store.SetEvent(newTestEvent(t, 1)))
	require.NoError(t, store.Close())

	store, err = LoadOrCreateBadgerStore(10, path, cm.NewTestEntry(t, "store"))
	require.NoError(t, err)
	defer store.Close()

	numbers, err := store.EventNumbers()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, numbers)
}

func TestEventKey(t *testing.T) {
	assert.Equal(t, "event_000000042", string(eventKey(42)))

	n, err := eventNumberFromKey(eventKey(-17))
	require.NoError(t, err)
	assert.Equal(t, -17, n)
}
