package hepmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	g := newTestGraph(t)
	g.event.MPI = 3
	g.event.EventScale = 91.1876
	g.event.AlphaQCD = 0.118
	g.event.AlphaQED = 1 / 137.0
	g.event.Weights().Set("nominal", 1.5)
	g.event.Weights().Push(0.75)
	g.event.RandomStates = []int64{17, 1234567}
	g.event.HeavyIon = &HeavyIon{NcollHard: 2, Ncoll: 9, ImpactParameter: 3.5, EventPlaneAngle: 0.1}
	g.event.PdfInfo = &PdfInfo{ID1: 21, ID2: 2, X1: 0.01, X2: 0.2, ScalePDF: 91.2, PDF1: 0.4, PDF2: 0.6}
	g.event.CrossSection = NewCrossSection(12.5, 0.5)

	data, err := g.event.ToRecord().Marshal()
	require.NoError(t, err)

	rec := new(Record)
	require.NoError(t, rec.Unmarshal(data))

	evt, err := FromRecord(rec)
	require.NoError(t, err)

	assert.True(t, g.event.Equal(evt))
	assert.Equal(t, []string{"nominal", "1"}, evt.Weights().Names())
	assert.Equal(t, 0.25, evt.BarcodeToVertex(-3).Weights().At(0))
	assert.Equal(t, -7, evt.BarcodeToVertex(-4).ID())
	assert.True(t, evt.SignalProcessVertex() == evt.BarcodeToVertex(-3))
	assert.True(t, evt.ValidBeamParticles())
	assert.Equal(t, 231, evt.BarcodeToParticle(10005).FlowCode(1))
	assert.True(t, evt.BarcodeToParticle(10006).Polarization().IsDefined())
	assert.Equal(t, g.particles[6].GeneratedMass(), evt.BarcodeToParticle(10007).GeneratedMass())
}

func TestRecordEmptyEvent(t *testing.T) {
	evt, err := FromRecord(NewEvent().ToRecord())
	require.NoError(t, err)
	assert.True(t, NewEvent().Equal(evt))
}

func TestFromRecordErrors(t *testing.T) {
	g := newTestGraph(t)

	rec := g.event.ToRecord()
	rec.Vertices[0].Out = append(rec.Vertices[0].Out, 999)
	_, err := FromRecord(rec)
	assert.Error(t, err)

	rec = g.event.ToRecord()
	rec.Particles[1].Barcode = rec.Particles[0].Barcode
	_, err = FromRecord(rec)
	assert.Error(t, err)

	rec = g.event.ToRecord()
	rec.Vertices[0].Barcode = 4
	_, err = FromRecord(rec)
	assert.Error(t, err)

	rec = g.event.ToRecord()
	rec.MomentumUnit = "furlong"
	_, err = FromRecord(rec)
	assert.Error(t, err)
}
