package ascii

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicnetworks/hepmc/src/hepmc"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.hepmc")
	opts := testOptions(t, GenEvent)

	out, err := Open(path, ModeWrite, opts)
	require.NoError(t, err)
	require.NoError(t, out.WriteComment("file test"))
	for i := 1; i <= 3; i++ {
		require.NoError(t, out.WriteEvent(newTestEvent(t, i)))
	}
	require.NoError(t, out.Close())

	in, err := Open(path, ModeRead, opts)
	require.NoError(t, err)
	defer in.Close()

	evt := hepmc.NewEvent()
	for i := 1; i <= 3; i++ {
		require.NoError(t, in.FillNextEvent(evt))
		assert.True(t, newTestEvent(t, i).Equal(evt))
	}
	assert.Equal(t, io.EOF, in.FillNextEvent(evt))
	assert.Equal(t, []string{"file test"}, in.Reader().Comments())
}

func TestInvalidStreamMode(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(t, GenEvent)

	f, err := Open(filepath.Join(dir, "both.hepmc"), ModeRead|ModeWrite, opts)
	assert.Nil(t, f)
	assert.Equal(t, ErrInvalidStreamMode, err)
	_, statErr := os.Stat(filepath.Join(dir, "both.hepmc"))
	assert.True(t, os.IsNotExist(statErr))

	path := filepath.Join(dir, "out.hepmc")
	out, err := Open(path, ModeWrite, opts)
	require.NoError(t, err)
	_, err = out.ReadEvent()
	assert.Equal(t, ErrInvalidStreamMode, err)
	assert.Equal(t, ErrInvalidStreamMode, out.FillNextEvent(hepmc.NewEvent()))
	require.NoError(t, out.WriteEvent(newMinimalEvent(t, 1)))
	require.NoError(t, out.Close())

	in, err := Open(path, ModeRead, opts)
	require.NoError(t, err)
	defer in.Close()
	assert.Equal(t, ErrInvalidStreamMode, in.WriteEvent(newMinimalEvent(t, 2)))
	assert.Equal(t, ErrInvalidStreamMode, in.WriteComment("nope"))

	//the misuse did not disturb the stream
	evt, err := in.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, 1, evt.EventNumber)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.hepmc"), ModeRead, testOptions(t, GenEvent))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errorsCause(err)))
}
