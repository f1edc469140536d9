package hepmc

import (
	"testing"

	"github.com/mosaicnetworks/hepmc/src/common"
	"github.com/mosaicnetworks/hepmc/src/vector"
)

type testGraph struct {
	event     *Event
	vertices  []*Vertex   //v1..v4
	particles []*Particle //p1..p8
}

// newTestGraph builds a small proton-proton event:
//
//	p1 -> v1 -> p3 \
//	                v3 -> p5 -> v4 -> p7, p8
//	p2 -> v2 -> p4 /       p6
//
// Vertices are added after their particles are attached, in graph order, so
// the barcodes are -1..-4 and 10001..10008.
func newTestGraph(t *testing.T) *testGraph {
	p1 := NewParticle(vector.NewFourVector(0, 0, 7000, 7000), 2212, StatusBeam)
	p2 := NewParticle(vector.NewFourVector(0, 0, -7000, 7000), 2212, StatusBeam)
	p3 := NewParticle(vector.NewFourVector(0.751, -1.569, 32.191, 32.238), 1, 3)
	p4 := NewParticle(vector.NewFourVector(-3.047, -19.0, -54.629, 57.920), -2, 3)
	p5 := NewParticle(vector.NewFourVector(-3.813, 0.113, -1.833, 4.233), -24, StatusDecayed)
	p6 := NewParticle(vector.NewFourVector(1.517, -20.68, -20.605, 85.925), 22, StatusUndecayed)
	p7 := NewParticle(vector.NewFourVector(-2.445, 28.816, 6.082, 29.552), 1, StatusUndecayed)
	p8 := NewParticle(vector.NewFourVector(3.962, -49.498, -26.687, 56.373), -2, StatusUndecayed)

	p3.SetFlowCode(1, 231)
	p5.SetFlowCode(1, 231)
	p6.SetPolarization(NewPolarization(0.5, 1.25))

	v1 := NewVertex(vector.FourVector{}, 0)
	v1.AddParticleIn(p1)
	v1.AddParticleOut(p3)

	v2 := NewVertex(vector.FourVector{}, 0)
	v2.AddParticleIn(p2)
	v2.AddParticleOut(p4)

	v3 := NewVertex(vector.FourVector{}, 0)
	v3.AddParticleIn(p3)
	v3.AddParticleIn(p4)
	v3.AddParticleOut(p5)
	v3.AddParticleOut(p6)
	v3.Weights().Push(0.25)

	v4 := NewVertex(vector.NewFourVector(0.12, -0.3, 0.05, 0.004), -7)
	v4.AddParticleIn(p5)
	v4.AddParticleOut(p7)
	v4.AddParticleOut(p8)

	evt := NewEvent()
	evt.SetLogger(common.NewTestEntry(t, "hepmc"))
	evt.EventNumber = 42
	evt.SignalProcessID = 20
	for _, v := range []*Vertex{v1, v2, v3, v4} {
		if !evt.AddVertex(v) {
			t.Fatalf("AddVertex(%v) failed", v)
		}
	}
	evt.SetSignalProcessVertex(v3)
	evt.SetBeamParticles(p1, p2)

	return &testGraph{
		event:     evt,
		vertices:  []*Vertex{v1, v2, v3, v4},
		particles: []*Particle{p1, p2, p3, p4, p5, p6, p7, p8},
	}
}

func barcodesOf(ps []*Particle) []int {
	res := make([]int, len(ps))
	for i, p := range ps {
		res[i] = p.Barcode()
	}
	return res
}
