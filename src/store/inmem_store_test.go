package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cm "github.com/mosaicnetworks/hepmc/src/common"
)

func TestInmemStoreSetGet(t *testing.T) {
	store := NewInmemStore(10)

	events := []int{3, 1, 2}
	for _, n := range events {
		require.NoError(t, store.SetEvent(newTestEvent(t, n)))
	}

	for _, n := range events {
		got, err := store.GetEvent(n)
		require.NoError(t, err)
		assert.True(t, newTestEvent(t, n).Equal(got), "event %d", n)
	}

	numbers, err := store.EventNumbers()
	require.NoError(t, err)
	assert.Equal(t, events, numbers)

	l, err := store.Len()
	require.NoError(t, err)
	assert.Equal(t, 3, l)
	assert.Equal(t, 10, store.CacheSize())
	assert.Equal(t, "", store.StorePath())
}

func TestInmemStoreErrors(t *testing.T) {
	store := NewInmemStore(10)
	require.NoError(t, store.SetEvent(newTestEvent(t, 1)))

	err := store.SetEvent(newTestEvent(t, 1))
	assert.True(t, cm.IsStore(err, cm.KeyAlreadyExists), "%v", err)

	_, err = store.GetEvent(2)
	assert.True(t, cm.IsStore(err, cm.KeyNotFound), "%v", err)

	require.NoError(t, store.Close())
	_, err = store.GetEvent(1)
	assert.True(t, cm.IsStore(err, cm.Closed), "%v", err)
	err = store.SetEvent(newTestEvent(t, 3))
	assert.True(t, cm.IsStore(err, cm.Closed), "%v", err)
	_, err = store.Len()
	assert.True(t, cm.IsStore(err, cm.Closed), "%v", err)
}

func TestInmemStoreEviction(t *testing.T) {
	store := NewInmemStore(2)

	for n := 1; n <= 3; n++ {
		require.NoError(t, store.SetEvent(newTestEvent(t, n)))
	}

	numbers, err := store.EventNumbers()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, numbers)

	_, err = store.GetEvent(1)
	assert.True(t, cm.IsStore(err, cm.KeyNotFound), "%v", err)

	// an evicted number can be stored again
	require.NoError(t, store.SetEvent(newTestEvent(t, 1)))
	numbers, err = store.EventNumbers()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, numbers)
}

func TestInmemStoreSnapshot(t *testing.T) {
	store := NewInmemStore(10)

	evt := newTestEvent(t, 7)
	require.NoError(t, store.SetEvent(evt))

	evt.EventScale = 1
	evt.Vertices()[0].SetID(99)

	got, err := store.GetEvent(7)
	require.NoError(t, err)
	assert.True(t, newTestEvent(t, 7).Equal(got))

	// every call hands out an independent event
	got.EventScale = 2
	again, err := store.GetEvent(7)
	require.NoError(t, err)
	assert.Equal(t, 80.4, again.EventScale)
}
