package ascii

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mosaicnetworks/hepmc/src/common"
	"github.com/mosaicnetworks/hepmc/src/hepmc"
	"github.com/mosaicnetworks/hepmc/src/pdt"
	"github.com/mosaicnetworks/hepmc/src/units"
	"github.com/mosaicnetworks/hepmc/src/vector"
)

func testOptions(t *testing.T, format Format) Options {
	opts := DefaultOptions()
	opts.Format = format
	opts.Logger = common.NewTestEntry(t, "ascii")
	return opts
}

// newTestEvent builds a proton-proton event with two beams, a hard vertex
// and a decay. Vertices are added in graph order so that reading it back
// gives the same insertion order everywhere.
func newTestEvent(t *testing.T, number int) *hepmc.Event {
	p1 := hepmc.NewParticle(vector.NewFourVector(0, 0, 7000, 7000), 2212, hepmc.StatusBeam)
	p2 := hepmc.NewParticle(vector.NewFourVector(0, 0, -7000, 7000), 2212, hepmc.StatusBeam)
	p3 := hepmc.NewParticle(vector.NewFourVector(0.751, -1.569, 32.191, 32.238), 1, 3)
	p4 := hepmc.NewParticle(vector.NewFourVector(-3.047, -19.0, -54.629, 57.920), -2, 3)
	p5 := hepmc.NewParticle(vector.NewFourVector(-3.813, 0.113, -1.833, 4.233), -24, hepmc.StatusDecayed)
	p6 := hepmc.NewParticle(vector.NewFourVector(1.517, -20.68, -20.605, 85.925), 22, hepmc.StatusUndecayed)
	p7 := hepmc.NewParticle(vector.NewFourVector(-2.445, 28.816, 6.082, 29.552), 1, hepmc.StatusUndecayed)
	p8 := hepmc.NewParticle(vector.NewFourVector(3.962, -49.498, -26.687, 56.373), -2, hepmc.StatusUndecayed)

	p3.SetFlowCode(1, 231)
	p5.SetFlowCode(1, 231)
	p5.SetFlowCode(2, 232)
	p6.SetPolarization(hepmc.NewPolarization(0.5, 1.25))

	v1 := hepmc.NewVertex(vector.FourVector{}, 0)
	v1.AddParticleIn(p1)
	v1.AddParticleOut(p3)
	v2 := hepmc.NewVertex(vector.FourVector{}, 0)
	v2.AddParticleIn(p2)
	v2.AddParticleOut(p4)
	v3 := hepmc.NewVertex(vector.FourVector{}, 0)
	v3.AddParticleIn(p3)
	v3.AddParticleIn(p4)
	v3.AddParticleOut(p5)
	v3.AddParticleOut(p6)
	v3.Weights().Push(0.25)
	v4 := hepmc.NewVertex(vector.NewFourVector(0.12, -0.3, 0.05, 0.004), -7)
	v4.AddParticleIn(p5)
	v4.AddParticleOut(p7)
	v4.AddParticleOut(p8)

	evt := hepmc.NewEvent()
	evt.SetLogger(common.NewTestEntry(t, "hepmc"))
	evt.EventNumber = number
	evt.SignalProcessID = 20
	evt.EventScale = 91.1876
	evt.AlphaQCD = 0.118
	evt.AlphaQED = 1 / 137.0
	for _, v := range []*hepmc.Vertex{v1, v2, v3, v4} {
		require.True(t, evt.AddVertex(v))
	}
	evt.SetSignalProcessVertex(v3)
	evt.SetBeamParticles(p1, p2)
	return evt
}

// newMinimalEvent builds one vertex at the origin with an orphan proton in
// and an electron out.
func newMinimalEvent(t *testing.T, number int) *hepmc.Event {
	v := hepmc.NewVertex(vector.FourVector{}, 0)
	v.AddParticleIn(hepmc.NewParticle(vector.NewFourVector(0, 0, 7000, 7000), 2212, hepmc.StatusBeam))
	v.AddParticleOut(hepmc.NewParticle(vector.NewFourVector(1.5, -2, 6999, 6999.5), 11, hepmc.StatusUndecayed))

	evt := hepmc.NewEventWithUnits(units.GEV, units.MM)
	evt.SetLogger(common.NewTestEntry(t, "hepmc"))
	evt.EventNumber = number
	require.True(t, evt.AddVertex(v))
	return evt
}

func writeEvents(t *testing.T, opts Options, events ...*hepmc.Event) string {
	var buf bytes.Buffer
	w := NewWriter(&buf, opts)
	for _, evt := range events {
		require.NoError(t, w.WriteEvent(evt))
	}
	require.NoError(t, w.Close())
	return buf.String()
}

func readAll(t *testing.T, r *Reader) []*hepmc.Event {
	res := []*hepmc.Event{}
	for {
		evt, err := r.ReadEvent()
		if err != nil {
			require.Equal(t, io.EOF, err)
			return res
		}
		res = append(res, evt)
	}
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func leptonTable() *pdt.Table {
	tbl := pdt.NewTable("leptons")
	e := &pdt.ParticleData{ID: 11, Name: "e-", Charge: -1, Mass: 0.000511, CLifetime: pdt.Stable, Spin: 0.5}
	tbl.Insert(e)
	tbl.Insert(e.AntiParticle("e+"))
	return tbl
}
