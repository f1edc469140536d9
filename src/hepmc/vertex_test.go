package hepmc

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicnetworks/hepmc/src/vector"
)

func TestVertexRanges(t *testing.T) {
	g := newTestGraph(t)
	v1, v3 := g.vertices[0], g.vertices[2]

	assert.Equal(t, []int{10003, 10004}, barcodesOf(v3.Particles(Parents)))
	assert.Equal(t, []int{10005, 10006}, barcodesOf(v3.Particles(Children)))
	assert.Equal(t, []int{10003, 10004, 10005, 10006}, barcodesOf(v3.Particles(Family)))
	assert.Equal(t, []int{10003, 10004, 10001, 10002}, barcodesOf(v3.Particles(Ancestors)))
	assert.Equal(t, []int{10005, 10006, 10007, 10008}, barcodesOf(v3.Particles(Descendants)))
	assert.Equal(t, []int{10003, 10004, 10001, 10002, 10005, 10006, 10007, 10008},
		barcodesOf(v3.Particles(Relatives)))
	assert.Equal(t, []int{10003, 10005, 10006, 10007, 10008}, barcodesOf(v1.Particles(Descendants)))
	assert.Equal(t, []int{10001}, barcodesOf(v1.Particles(Ancestors)))
}

func TestVertexRangesOnCycle(t *testing.T) {
	a := NewVertex(vector.FourVector{}, 0)
	b := NewVertex(vector.FourVector{}, 0)
	p := NewParticle(vector.NewFourVector(0, 0, 1, 1), 22, StatusUndecayed)
	q := NewParticle(vector.NewFourVector(0, 0, 1, 1), 22, StatusUndecayed)
	a.AddParticleOut(p)
	b.AddParticleIn(p)
	b.AddParticleOut(q)
	a.AddParticleIn(q)

	assert.Len(t, a.Particles(Descendants), 2)
	assert.Len(t, a.Particles(Ancestors), 2)
}

func TestAddParticleDetachesFromPreviousVertex(t *testing.T) {
	a := NewVertex(vector.FourVector{}, 0)
	b := NewVertex(vector.FourVector{}, 0)
	p := NewParticle(vector.NewFourVector(0, 0, 1, 1), 22, StatusUndecayed)

	a.AddParticleIn(p)
	b.AddParticleIn(p)
	assert.Equal(t, 0, a.ParticlesInSize())
	assert.Equal(t, 1, b.ParticlesInSize())
	assert.Equal(t, b, p.EndVertex())

	a.AddParticleOut(p)
	b.AddParticleOut(p)
	assert.Equal(t, 0, a.ParticlesOutSize())
	assert.Equal(t, b, p.ProductionVertex())

	assert.Equal(t, p, b.RemoveParticle(p))
	assert.Nil(t, p.ProductionVertex())
	assert.Nil(t, p.EndVertex())
	assert.Equal(t, 0, b.ParticlesInSize())
	assert.Equal(t, 0, b.ParticlesOutSize())

	a.AddParticleIn(nil)
	assert.Equal(t, 0, a.ParticlesInSize())
}

func TestCheckMomentumConservation(t *testing.T) {
	v := NewVertex(vector.FourVector{}, 0)
	v.AddParticleIn(NewParticle(vector.NewFourVector(0, 0, 10, 10), 23, StatusDecayed))
	v.AddParticleOut(NewParticle(vector.NewFourVector(3, 4, 5, 5), 11, StatusUndecayed))
	v.AddParticleOut(NewParticle(vector.NewFourVector(-3, -4, 5, 5), -11, StatusUndecayed))
	assert.InDelta(t, 0, v.CheckMomentumConservation(), 1e-12)

	v.AddParticleOut(NewParticle(vector.NewFourVector(0, 3, 4, 5), 22, StatusUndecayed))
	assert.InDelta(t, 5, v.CheckMomentumConservation(), 1e-12)
}

func TestVertexEqual(t *testing.T) {
	g := newTestGraph(t)
	c := g.event.Copy()

	for _, v := range g.event.Vertices() {
		assert.True(t, v.Equal(c.BarcodeToVertex(v.Barcode())))
	}
	assert.False(t, g.vertices[0].Equal(g.vertices[1]))
	assert.False(t, g.vertices[0].Equal(nil))
}

// newMergeEvent builds two production vertices feeding a third one. The
// incoming particles of the third vertex are linked in the given order.
func newMergeEvent(t *testing.T, swap bool) *Event {
	a := NewParticle(vector.NewFourVector(0, 0, 4, 4), 1, StatusDecayed)
	b := NewParticle(vector.NewFourVector(0, 0, -4, 4), -1, StatusDecayed)
	c := NewParticle(vector.NewFourVector(0, 0, 8, 8), 2212, StatusBeam)
	d := NewParticle(vector.NewFourVector(0, 0, -8, 8), 2212, StatusBeam)

	v1 := NewVertex(vector.FourVector{}, 0)
	v1.AddParticleIn(c)
	v1.AddParticleOut(a)
	v2 := NewVertex(vector.FourVector{}, 0)
	v2.AddParticleIn(d)
	v2.AddParticleOut(b)
	w := NewVertex(vector.FourVector{}, 0)
	if swap {
		w.AddParticleIn(b)
		w.AddParticleIn(a)
	} else {
		w.AddParticleIn(a)
		w.AddParticleIn(b)
	}
	w.AddParticleOut(NewParticle(vector.NewFourVector(0, 0, 0, 8), 23, StatusUndecayed))

	evt := NewEvent()
	for _, v := range []*Vertex{v1, v2, w} {
		require.True(t, evt.AddVertex(v))
	}
	return evt
}

func TestVertexEqualLinkedOrder(t *testing.T) {
	straight := newMergeEvent(t, false)
	swapped := newMergeEvent(t, true)

	//linked incoming particles compare by production vertex
	assert.True(t, straight.BarcodeToVertex(-3).Equal(swapped.BarcodeToVertex(-3)))
	assert.True(t, straight.Equal(swapped))

	//orphans keep their insertion order
	x := NewParticle(vector.NewFourVector(0, 0, 1, 1), 22, StatusBeam)
	y := NewParticle(vector.NewFourVector(0, 0, 2, 2), 22, StatusBeam)
	straight.BarcodeToVertex(-3).AddParticleIn(x)
	straight.BarcodeToVertex(-3).AddParticleIn(y)
	swapped.BarcodeToVertex(-3).AddParticleIn(y.Clone())
	swapped.BarcodeToVertex(-3).AddParticleIn(x.Clone())
	assert.False(t, straight.BarcodeToVertex(-3).Equal(swapped.BarcodeToVertex(-3)))
}

func TestSuggestBarcodeUsesEventLogger(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	g := newTestGraph(t)
	g.event.SetLogger(logger.WithField("prefix", "hepmc"))

	assert.False(t, g.vertices[0].SuggestBarcode(5))
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, "suggestion rejected")
	assert.Equal(t, 5, hook.LastEntry().Data["barcode"])

	hook.Reset()
	assert.False(t, g.particles[0].SuggestBarcode(-5))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, -5, hook.LastEntry().Data["barcode"])
	assert.Equal(t, -1, g.vertices[0].Barcode())
	assert.Equal(t, 10001, g.particles[0].Barcode())
}
