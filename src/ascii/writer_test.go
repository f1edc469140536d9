package ascii

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicnetworks/hepmc/src/hepmc"
	"github.com/mosaicnetworks/hepmc/src/pdt"
)

func TestWriterFraming(t *testing.T) {
	out := writeEvents(t, testOptions(t, GenEvent), newMinimalEvent(t, 1), newMinimalEvent(t, 2))
	ls := lines(out)

	assert.Equal(t, Version, ls[0])
	assert.Equal(t, GenEvent.StartKey(), ls[1])
	assert.Equal(t, GenEvent.EndKey(), ls[len(ls)-1])
	assert.Equal(t, 1, strings.Count(out, GenEvent.StartKey()))
	assert.Equal(t, 1, strings.Count(out, GenEvent.EndKey()))
	assert.Equal(t, 2, strings.Count(out, "\nE "))
}

func TestWriterEmptyListing(t *testing.T) {
	out := writeEvents(t, testOptions(t, Ascii))
	assert.Equal(t, []string{Version, Ascii.StartKey(), Ascii.EndKey()}, lines(out))
}

func TestWriterCloseTwice(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, testOptions(t, GenEvent))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.Equal(t, 1, strings.Count(buf.String(), GenEvent.EndKey()))

	err := w.WriteEvent(newMinimalEvent(t, 1))
	assert.True(t, IsStreamError(err), "err: %v", err)
}

func TestWriterRecords(t *testing.T) {
	evt := newMinimalEvent(t, 42)
	evt.Weights().Set("nominal", 1)
	evt.Weights().Set("scale up", 0.5)

	ls := lines(writeEvents(t, testOptions(t, GenEvent), evt))

	assert.Equal(t, []string{
		Version,
		GenEvent.StartKey(),
		"E 42 -1 -1 -1 -1 0 0 1 0 0 0 2 1 0.5",
		`N 2 "nominal" "scale up"`,
		"U GEV MM",
		"H 0 0 0 0 0 0 0 0 0 0 0 0 0",
		"F 0 0 0 0 0 0 0 0 0",
		"V -1 0 0 0 0 0 1 1 0",
		"P 10001 2212 0 0 7000 7000 0 4 0 0 -1 0",
		"P 10002 11 1.5 -2 6999 6999.5 " + formatFloat(evt.BarcodeToParticle(10002).GeneratedMass(), 0) + " 1 0 0 0 0",
		GenEvent.EndKey(),
	}, ls)
}

func TestWriterZeroToken(t *testing.T) {
	assert.Equal(t, "0", formatFloat(0, 0))
	assert.Equal(t, "0", formatFloat(0, 16))
	assert.Equal(t, "0.1", formatFloat(0.1, 0))
	assert.Equal(t, "1e-300", formatFloat(1e-300, 0))
	assert.Equal(t, "-7000", formatFloat(-7000, 0))
	assert.Equal(t, "1.2346e+00", formatFloat(1.23456, 5))
}

func TestWriterLegacyRecords(t *testing.T) {
	evt := newTestEvent(t, 3)
	evt.CrossSection = hepmc.NewCrossSection(1, 0.1)
	evt.HeavyIon = &hepmc.HeavyIon{NcollHard: 1}
	evt.PdfInfo = &hepmc.PdfInfo{ID1: 21, ID2: 21, PDFID1: 10042, PDFID2: 10042}

	extended := writeEvents(t, testOptions(t, ExtendedAscii), evt)
	assert.Contains(t, extended, ExtendedAscii.StartKey())
	assert.Contains(t, extended, "\nE 3 91.1876 0.118 ")
	assert.Contains(t, extended, "\nH 1 0 0 ")
	assert.Contains(t, extended, "\nF 21 21 0 0 0 0 0\n")
	assert.NotContains(t, extended, "\nU ")
	assert.NotContains(t, extended, "\nC ")

	minimal := writeEvents(t, testOptions(t, Ascii), evt)
	assert.Contains(t, minimal, Ascii.StartKey())
	assert.NotContains(t, minimal, "\nH ")
	assert.NotContains(t, minimal, "\nF ")
	assert.Contains(t, minimal, "\nP 10001 2212 0 0 7000 7000 4 0 0 -1 0\n")
}

func TestWriteCommentAndParticleData(t *testing.T) {
	tbl := pdt.NewTable("leptons")
	tbl.Insert(&pdt.ParticleData{ID: 11, Name: "e-", Charge: -1, Mass: 0.000511, CLifetime: pdt.Stable, Spin: 0.5})

	var buf bytes.Buffer
	w := NewWriter(&buf, testOptions(t, GenEvent))
	require.NoError(t, w.WriteComment("generated\nby test"))
	require.NoError(t, w.WriteComment("   "))
	require.NoError(t, w.WriteParticleDataTable(tbl))
	require.NoError(t, w.Close())

	assert.Equal(t, []string{
		Version,
		GenEvent.StartKey(),
		commentKey,
		"generated by test",
		particleDataStartKey,
		"D 11 -1 0.000511 -1 1 e-",
		particleDataEndKey,
		GenEvent.EndKey(),
	}, lines(buf.String()))
}
