package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mosaicnetworks/hepmc/src/common"
	"github.com/mosaicnetworks/hepmc/src/hepmc"
	"github.com/mosaicnetworks/hepmc/src/vector"
)

// newTestEvent builds a two-vertex event: a beam splitting into a pair, one
// of which decays.
func newTestEvent(t *testing.T, number int) *hepmc.Event {
	beam := hepmc.NewParticle(vector.NewFourVector(0, 0, 45.6, 45.6), 11, hepmc.StatusBeam)
	w := hepmc.NewParticle(vector.NewFourVector(1.2, -3.4, 20.1, 40.2), 24, hepmc.StatusDecayed)
	gamma := hepmc.NewParticle(vector.NewFourVector(-1.2, 3.4, 25.5, 5.4), 22, hepmc.StatusUndecayed)
	mu := hepmc.NewParticle(vector.NewFourVector(0.7, -1.1, 12.3, 20.0), -13, hepmc.StatusUndecayed)
	nu := hepmc.NewParticle(vector.NewFourVector(0.5, -2.3, 7.8, 20.2), 14, hepmc.StatusUndecayed)
	w.SetFlowCode(1, 501)

	hard := hepmc.NewVertex(vector.FourVector{}, 0)
	hard.AddParticleIn(beam)
	hard.AddParticleOut(w)
	hard.AddParticleOut(gamma)
	decay := hepmc.NewVertex(vector.NewFourVector(0.01, 0.02, -0.5, 0.6), -3)
	decay.AddParticleIn(w)
	decay.AddParticleOut(mu)
	decay.AddParticleOut(nu)

	evt := hepmc.NewEvent()
	evt.SetLogger(common.NewTestEntry(t, "hepmc"))
	evt.EventNumber = number
	evt.SignalProcessID = 11
	evt.EventScale = 80.4
	evt.RandomStates = []int64{4357, int64(number)}
	evt.Weights().Set("nominal", 1.5)
	require.True(t, evt.AddVertex(hard))
	require.True(t, evt.AddVertex(decay))
	evt.SetSignalProcessVertex(hard)
	return evt
}
